// Package importer turns price sheets (CSV, XLSX or an HTML table) into
// market price rows.
package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"kisan/entities"
)

const (
	DefaultUnit = "per quintal"
	// changes smaller than this, in percent, count as stable
	stableBand = 2.5
)

// Result is the outcome of parsing one sheet.
type Result struct {
	Rows    []entities.MarketPrice
	Skipped int
}

// column aliases, compared after normalizeHeader
var aliases = map[string][]string{
	"crop":           {"crop", "commodity", "item", "cropname"},
	"market":         {"market", "mandi", "apmc", "marketname", "marketyard"},
	"location":       {"location", "district", "city", "place"},
	"price":          {"price", "modalprice", "rate", "pricersquintal", "priceperquintal", "pricequintal", "modalpricersquintal"},
	"unit":           {"unit", "units"},
	"change":         {"change", "changepct", "changepercent", "pctchange"},
	"trend":          {"trend", "direction"},
	"recommendation": {"recommendation", "advice", "remark", "remarks"},
	"updated":        {"lastupdated", "updated", "date", "arrivaldate", "updatedat"},
}

func normalizeHeader(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "\uFEFF")
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, s)
}

type columns map[string]int

func mapColumns(header []string) (columns, error) {
	idx := map[string]int{}
	for i, h := range header {
		if _, dup := idx[normalizeHeader(h)]; !dup {
			idx[normalizeHeader(h)] = i
		}
	}
	cols := columns{}
	for field, names := range aliases {
		cols[field] = -1
		for _, n := range names {
			if i, ok := idx[n]; ok {
				cols[field] = i
				break
			}
		}
	}
	if cols["crop"] < 0 || cols["market"] < 0 || cols["price"] < 0 {
		return nil, fmt.Errorf("price sheet needs crop, market and price columns, found %q", header)
	}
	return cols, nil
}

func (c columns) get(rec []string, field string) string {
	i := c[field]
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// fromTable converts a header plus data rows. Rows without a crop, market or
// readable price are skipped.
func fromTable(header []string, records [][]string, now time.Time) (*Result, error) {
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}
	res := &Result{Rows: []entities.MarketPrice{}}
	for _, rec := range records {
		p, ok := parseRow(cols, rec, now)
		if !ok {
			res.Skipped++
			continue
		}
		res.Rows = append(res.Rows, p)
	}
	return res, nil
}

func parseRow(cols columns, rec []string, now time.Time) (entities.MarketPrice, bool) {
	crop, market := cols.get(rec, "crop"), cols.get(rec, "market")
	if crop == "" || market == "" {
		return entities.MarketPrice{}, false
	}
	price, err := parsePrice(cols.get(rec, "price"))
	if err != nil || price.IsNegative() {
		return entities.MarketPrice{}, false
	}
	change := parseChange(cols.get(rec, "change"))

	p := entities.MarketPrice{
		Crop:           crop,
		Market:         market,
		Location:       cols.get(rec, "location"),
		Price:          price,
		Unit:           cols.get(rec, "unit"),
		Change:         change,
		Trend:          parseTrend(cols.get(rec, "trend"), change),
		Recommendation: cols.get(rec, "recommendation"),
		LastUpdated:    parseTime(cols.get(rec, "updated"), now),
	}
	if p.Unit == "" {
		p.Unit = DefaultUnit
	}
	if p.Recommendation == "" {
		p.Recommendation = Recommend(p.Trend)
	}
	return p, true
}

var priceCleaner = strings.NewReplacer("₹", "", "Rs.", "", "Rs", "", ",", "", " ", "")

func parsePrice(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(priceCleaner.Replace(s))
}

func parseChange(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(s), "+"), "%"))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseTrend(s string, change float64) entities.Trend {
	switch strings.ToLower(s) {
	case "up", "rising":
		return entities.TrendUp
	case "down", "falling":
		return entities.TrendDown
	case "stable", "steady", "flat":
		return entities.TrendStable
	}
	return TrendOf(change)
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"02 Jan 2006",
}

// parseTime reads a sheet date; blank or unreadable dates mean now.
func parseTime(s string, now time.Time) time.Time {
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.UTC()
		}
	}
	return now.UTC()
}

// TrendOf classifies a percentage change.
func TrendOf(change float64) entities.Trend {
	switch {
	case change >= stableBand:
		return entities.TrendUp
	case change <= -stableBand:
		return entities.TrendDown
	default:
		return entities.TrendStable
	}
}

func Recommend(t entities.Trend) string {
	switch t {
	case entities.TrendUp:
		return "Good time to sell - prices trending upward"
	case entities.TrendDown:
		return "Prices declining - sell soon if possible"
	default:
		return "Stable prices - steady market"
	}
}

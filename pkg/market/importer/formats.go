package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

var ErrUnknownFormat = errors.New("unsupported price sheet format")

// Detect picks a format from the file name, then the content type, then
// the leading bytes.
func Detect(name, contentType string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "spreadsheetml"):
		return FormatXLSX, nil
	case strings.Contains(ct, "text/html"):
		return FormatHTML, nil
	case strings.Contains(ct, "text/csv"):
		return FormatCSV, nil
	}
	head := bytes.TrimSpace(data[:min(len(data), 512)])
	switch {
	case bytes.HasPrefix(head, []byte("PK\x03\x04")):
		return FormatXLSX, nil
	case bytes.HasPrefix(head, []byte("<")):
		return FormatHTML, nil
	case bytes.ContainsRune(head, ','):
		return FormatCSV, nil
	}
	return "", ErrUnknownFormat
}

// Parse reads one sheet in the given format. now stamps rows without a date.
func Parse(f Format, data []byte, now time.Time) (*Result, error) {
	var (
		header  []string
		records [][]string
		err     error
	)
	switch f {
	case FormatCSV:
		header, records, err = readCSV(bytes.NewReader(data))
	case FormatXLSX:
		header, records, err = readXLSX(bytes.NewReader(data))
	case FormatHTML:
		header, records, err = readHTML(bytes.NewReader(data))
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, err
	}
	return fromTable(header, records, now)
}

func readCSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, errors.New("csv is empty")
	}
	return all[0], all[1:], nil
}

// readXLSX uses the first sheet; its first non-empty row is the header.
func readXLSX(r io.Reader) ([]string, [][]string, error) {
	x, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("xlsx has no sheets")
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	for i, row := range rows {
		if len(row) > 0 {
			return row, rows[i+1:], nil
		}
	}
	return nil, nil, errors.New("xlsx sheet is empty")
}

// readHTML takes the first table whose header row names the required
// columns. Header cells come from th, or from the first row's td.
func readHTML(r io.Reader) ([]string, [][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parse html: %w", err)
	}
	var header []string
	var records [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		var rows [][]string
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("th,td").Each(func(_ int, td *goquery.Selection) {
				cells = append(cells, strings.Join(strings.Fields(td.Text()), " "))
			})
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		})
		if len(rows) == 0 {
			return true
		}
		if _, err := mapColumns(rows[0]); err != nil {
			return true
		}
		header, records = rows[0], rows[1:]
		return false
	})
	if header == nil {
		return nil, nil, errors.New("no price table found in page")
	}
	return header, records, nil
}

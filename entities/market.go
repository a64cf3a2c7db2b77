package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const CollectionMarketPrices = "marketPrices"

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type MarketPrice struct {
	PriceID        string          `gorm:"primaryKey;size:36" json:"id"`
	Crop           string          `gorm:"index" json:"crop"`
	Market         string          `json:"market"`
	Location       string          `json:"location"`
	Price          decimal.Decimal `gorm:"type:numeric" json:"price"`
	Unit           string          `json:"unit"`
	Change         float64         `json:"change"` // percent
	Trend          Trend           `json:"trend"`
	Recommendation string          `json:"recommendation"`
	LastUpdated    time.Time       `gorm:"index" json:"last_updated"`
}

func (MarketPrice) TableName() string { return "market_prices" }

func (p *MarketPrice) BeforeCreate(*gorm.DB) error {
	if p.PriceID == "" {
		p.PriceID = uuid.NewString()
	}
	return nil
}

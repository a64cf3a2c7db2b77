package service

import (
	"context"

	"kisan/entities"
)

type Options struct {
	Crops     []string `json:"crops"`
	Locations []string `json:"locations"`
}

// Source is a price sheet to import, either uploaded or downloaded.
type Source struct {
	Name        string
	ContentType string
	Data        []byte
}

type ImportReport struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type MarketService interface {
	Search(ctx context.Context, query, location string) ([]entities.MarketPrice, error)
	Options() Options
	// Seed loads the built-in catalog into an empty collection and reports
	// how many rows it added.
	Seed(ctx context.Context) (int, error)
	Import(ctx context.Context, src Source) (*ImportReport, error)
	ImportURL(ctx context.Context, url string) (*ImportReport, error)
}

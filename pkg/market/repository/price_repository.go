package repository

import (
	"context"

	"kisan/entities"
)

type PriceRepository interface {
	// Search matches query against crop or market and location against the
	// location, both as case-insensitive substrings. Empty arguments match
	// everything. Results are newest first.
	Search(ctx context.Context, query, location string) ([]entities.MarketPrice, error)
	Count(ctx context.Context) (int64, error)
	// CreateBatch inserts all rows or none.
	CreateBatch(ctx context.Context, rows []entities.MarketPrice) error
}

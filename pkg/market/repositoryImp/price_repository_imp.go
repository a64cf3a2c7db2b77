package repositoryImp

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"kisan/entities"
	"kisan/pkg/market/repository"
)

type priceRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PriceRepository { return &priceRepo{db} }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func contains(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func (r *priceRepo) Search(ctx context.Context, query, location string) ([]entities.MarketPrice, error) {
	out := []entities.MarketPrice{}
	q := r.db.WithContext(ctx).Order("last_updated DESC, rowid DESC")
	if query = strings.TrimSpace(query); query != "" {
		pat := contains(query)
		q = q.Where(`(lower(crop) LIKE ? ESCAPE '\' OR lower(market) LIKE ? ESCAPE '\')`, pat, pat)
	}
	if location = strings.TrimSpace(location); location != "" {
		q = q.Where(`lower(location) LIKE ? ESCAPE '\'`, contains(location))
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *priceRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.MarketPrice{}).Count(&n).Error
	return n, err
}

func (r *priceRepo) CreateBatch(ctx context.Context, rows []entities.MarketPrice) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&rows, 100).Error
	})
}

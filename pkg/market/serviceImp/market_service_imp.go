package serviceImp

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/feed"
	"kisan/pkg/market/importer"
	"kisan/pkg/market/repository"
	"kisan/pkg/market/service"
)

//go:embed seed_prices.yaml
var seedYAML []byte

var (
	crops     = []string{"Tomato", "Onion", "Potato", "Brinjal", "Cabbage", "Carrot"}
	locations = []string{"Bangalore", "Mysore", "Hubli", "Mandya", "Hassan"}
)

type seedRow struct {
	Crop            string         `yaml:"crop"`
	Market          string         `yaml:"market"`
	Location        string         `yaml:"location"`
	Price           string         `yaml:"price"`
	Unit            string         `yaml:"unit"`
	Change          float64        `yaml:"change"`
	Trend           entities.Trend `yaml:"trend"`
	Recommendation  string         `yaml:"recommendation"`
	UpdatedHoursAgo int            `yaml:"updated_hours_ago"`
}

type marketSvc struct {
	repo    repository.PriceRepository
	fetcher *importer.Fetcher
	hub     *feed.Hub
	log     *zap.Logger
	now     func() time.Time
}

func New(repo repository.PriceRepository, fetcher *importer.Fetcher, hub *feed.Hub, log *zap.Logger) service.MarketService {
	return &marketSvc{repo: repo, fetcher: fetcher, hub: hub, log: log, now: time.Now}
}

func (s *marketSvc) Search(ctx context.Context, query, location string) ([]entities.MarketPrice, error) {
	return s.repo.Search(ctx, query, location)
}

func (s *marketSvc) Options() service.Options {
	return service.Options{Crops: crops, Locations: locations}
}

func (s *marketSvc) Seed(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count prices: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	rows, err := seedRows(s.now())
	if err != nil {
		return 0, err
	}
	if err := s.save(ctx, rows); err != nil {
		return 0, err
	}
	s.log.Info("seeded market prices", zap.Int("rows", len(rows)))
	return len(rows), nil
}

func seedRows(now time.Time) ([]entities.MarketPrice, error) {
	var raw []seedRow
	if err := yaml.Unmarshal(seedYAML, &raw); err != nil {
		return nil, fmt.Errorf("parse price seed: %w", err)
	}
	rows := make([]entities.MarketPrice, 0, len(raw))
	for _, r := range raw {
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, fmt.Errorf("price seed %s@%s: %w", r.Crop, r.Market, err)
		}
		rows = append(rows, entities.MarketPrice{
			Crop:           r.Crop,
			Market:         r.Market,
			Location:       r.Location,
			Price:          price,
			Unit:           r.Unit,
			Change:         r.Change,
			Trend:          r.Trend,
			Recommendation: r.Recommendation,
			LastUpdated:    now.Add(-time.Duration(r.UpdatedHoursAgo) * time.Hour).UTC(),
		})
	}
	return rows, nil
}

func (s *marketSvc) Import(ctx context.Context, src service.Source) (*service.ImportReport, error) {
	if len(src.Data) == 0 {
		return nil, apperr.Validation("price sheet is empty")
	}
	f, err := importer.Detect(src.Name, src.ContentType, src.Data)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "unsupported price sheet format", err)
	}
	res, err := importer.Parse(f, src.Data, s.now())
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	if len(res.Rows) == 0 {
		return nil, apperr.Validation("price sheet has no usable rows")
	}
	if err := s.save(ctx, res.Rows); err != nil {
		return nil, err
	}
	s.log.Info("imported market prices",
		zap.String("source", src.Name), zap.String("format", string(f)),
		zap.Int("rows", len(res.Rows)), zap.Int("skipped", res.Skipped))
	return &service.ImportReport{Imported: len(res.Rows), Skipped: res.Skipped}, nil
}

func (s *marketSvc) ImportURL(ctx context.Context, url string) (*service.ImportReport, error) {
	if s.fetcher == nil {
		return nil, apperr.New(apperr.KindForbidden, "remote import disabled")
	}
	d, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	name := d.Name
	if name == "" || name == "/" || name == "." {
		name = url
	}
	return s.Import(ctx, service.Source{Name: name, ContentType: d.ContentType, Data: d.Data})
}

func (s *marketSvc) save(ctx context.Context, rows []entities.MarketPrice) error {
	if err := s.repo.CreateBatch(ctx, rows); err != nil {
		return fmt.Errorf("save prices: %w", err)
	}
	s.hub.Publish(feed.Topic{Collection: entities.CollectionMarketPrices})
	return nil
}

package serviceImp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kisan/database"
	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/feed"
	"kisan/pkg/market/importer"
	"kisan/pkg/market/repositoryImp"
	"kisan/pkg/market/service"
)

func newSvc(t *testing.T, fetcher *importer.Fetcher) (service.MarketService, *feed.Hub) {
	t.Helper()
	db, err := database.OpenMigrated(":memory:")
	require.NoError(t, err)
	hub := feed.NewHub(zap.NewNop())
	return New(repositoryImp.New(db), fetcher, hub, zap.NewNop()), hub
}

func TestSeed_OnceIntoEmptyCollection(t *testing.T) {
	svc, _ := newSvc(t, nil)
	ctx := context.Background()

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := svc.Search(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 4)
	// newest first: KR Market was updated an hour ago
	assert.Equal(t, "KR Market", all[0].Market)
	assert.True(t, decimal.NewFromInt(2650).Equal(all[0].Price))
	assert.Equal(t, "Potato", all[3].Crop)
}

func TestSearch_CropOrMarketAndLocation(t *testing.T) {
	svc, _ := newSvc(t, nil)
	ctx := context.Background()
	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	got, err := svc.Search(ctx, "tomato", "")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.Search(ctx, "APMC", "")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = svc.Search(ctx, "apmc", "bangalore")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.Search(ctx, "rice", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOptions(t *testing.T) {
	svc, _ := newSvc(t, nil)
	o := svc.Options()
	assert.Equal(t, []string{"Tomato", "Onion", "Potato", "Brinjal", "Cabbage", "Carrot"}, o.Crops)
	assert.Equal(t, []string{"Bangalore", "Mysore", "Hubli", "Mandya", "Hassan"}, o.Locations)
}

func TestImport_PublishesGlobalTopic(t *testing.T) {
	svc, hub := newSvc(t, nil)
	ctx := context.Background()
	notify, cancel := hub.Subscribe(feed.Topic{Collection: entities.CollectionMarketPrices})
	defer cancel()

	rep, err := svc.Import(ctx, service.Source{
		Name: "today.csv",
		Data: []byte("crop,market,location,price,change\nCarrot,Hassan APMC,Hassan,2100,-3\nBeans,,Hassan,1,1\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, &service.ImportReport{Imported: 1, Skipped: 1}, rep)

	select {
	case <-notify:
	case <-time.After(time.Second):
		t.Fatal("import did not publish")
	}

	got, err := svc.Search(ctx, "carrot", "hassan")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entities.TrendDown, got[0].Trend)
}

func TestImport_Rejects(t *testing.T) {
	svc, _ := newSvc(t, nil)
	ctx := context.Background()

	_, err := svc.Import(ctx, service.Source{Name: "x.csv"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Import(ctx, service.Source{Name: "x.csv", Data: []byte("crop,market,price\n")})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Import(ctx, service.Source{Name: "x.pdf", Data: []byte{0x25, 0x50, 0x44, 0x46}})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.ImportURL(ctx, "https://agmarknet.gov.in/prices.csv")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestImportURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<table><tr><th>Crop</th><th>Market</th><th>Price</th></tr><tr><td>Onion</td><td>Hubli APMC</td><td>1,750</td></tr></table>`))
	}))
	defer srv.Close()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	svc, _ := newSvc(t, importer.NewFetcher([]string{u.Hostname()}, 1<<20))
	rep, err := svc.ImportURL(context.Background(), srv.URL+"/daily")
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Imported)
}

// Package app wires the document store, services and HTTP surface together.
package app

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kisan/config"
	"kisan/pkg/ai"
	"kisan/pkg/feed"
	"kisan/router"

	assistantCtrlImp "kisan/pkg/assistant/controllerImp"
	assistantRepoImp "kisan/pkg/assistant/repositoryImp"
	assistantSvcImp "kisan/pkg/assistant/serviceImp"
	authCtrlImp "kisan/pkg/auth/controllerImp"
	authRepoImp "kisan/pkg/auth/repositoryImp"
	authSvc "kisan/pkg/auth/service"
	authSvcImp "kisan/pkg/auth/serviceImp"
	"kisan/pkg/auth/token"
	dashboardCtrlImp "kisan/pkg/dashboard/controllerImp"
	dashboardSvcImp "kisan/pkg/dashboard/serviceImp"
	diagCtrlImp "kisan/pkg/diagnosis/controllerImp"
	"kisan/pkg/diagnosis/imagestore"
	diagRepoImp "kisan/pkg/diagnosis/repositoryImp"
	diagSvcImp "kisan/pkg/diagnosis/serviceImp"
	healthCtrlImp "kisan/pkg/health/controllerImp"
	marketCtrlImp "kisan/pkg/market/controllerImp"
	"kisan/pkg/market/importer"
	marketRepoImp "kisan/pkg/market/repositoryImp"
	marketSvc "kisan/pkg/market/service"
	marketSvcImp "kisan/pkg/market/serviceImp"
	schemeCtrlImp "kisan/pkg/scheme/controllerImp"
	schemeRepoImp "kisan/pkg/scheme/repositoryImp"
	schemeSvc "kisan/pkg/scheme/service"
	schemeSvcImp "kisan/pkg/scheme/serviceImp"
)

// maxAudioBytes caps a recorded question sent to /assistant/listen.
const maxAudioBytes = 5 << 20

type App struct {
	Echo    *echo.Echo
	Hub     *feed.Hub
	Auth    authSvc.AuthService
	Market  marketSvc.MarketService
	Schemes schemeSvc.SchemeService
}

// New builds the application on an already migrated database.
func New(cfg config.AppConfig, db *gorm.DB, log *zap.Logger) (*App, error) {
	hub := feed.NewHub(log.Named("feed"))
	up := feed.NewUpgrader(cfg.CORSOrigins)

	// Auth
	if cfg.UsesDevSecret() {
		log.Warn("JWT_SECRET not set, sessions are signed with the development secret")
	}
	auth := authSvcImp.New(authRepoImp.New(db), token.NewIssuer(cfg.JWTSecret, cfg.SessionTTL), bcrypt.DefaultCost, log.Named("auth"))

	// Diagnosis
	diagnoses := diagSvcImp.New(
		diagRepoImp.New(db),
		imagestore.NewLocal(cfg.UploadDir),
		diagSvcImp.NewCannedClassifier(),
		hub,
		diagSvcImp.Options{Wait: cfg.DiagnosisWait, MaxBytes: cfg.MaxUploadBytes()},
		log.Named("diagnosis"),
	)

	// Market
	market := NewMarket(cfg, db, hub, log)

	// Schemes
	schemes, err := NewSchemes()
	if err != nil {
		return nil, err
	}

	// Assistant
	var llm ai.Client
	if cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "" {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel, log.Named("ai"))
	} else {
		llm = ai.NewMock()
	}
	assistant := assistantSvcImp.New(
		assistantRepoImp.New(db),
		llm,
		hub,
		assistantSvcImp.Timing{Listen: cfg.ListenWait, Reply: cfg.ReplyWait, Speak: cfg.SpeakDuration},
		log.Named("assistant"),
	)

	e := router.New(echo.New(), router.Options{
		Log:         log.Named("http"),
		Auth:        auth,
		CORSOrigins: cfg.CORSOrigins,
		MaxBodyMB:   cfg.MaxUploadMB,
		UploadDir:   cfg.UploadDir,
	}, router.Controllers{
		Auth:      authCtrlImp.NewAuthController(auth, log),
		Diagnosis: diagCtrlImp.New(diagnoses, hub, up, cfg.MaxUploadBytes(), log),
		Market:    marketCtrlImp.New(market, hub, up, cfg.MaxUploadBytes(), log),
		Scheme:    schemeCtrlImp.New(schemes),
		Assistant: assistantCtrlImp.New(assistant, hub, up, maxAudioBytes, log),
		Dashboard: dashboardCtrlImp.New(dashboardSvcImp.New(auth, diagnoses, assistant), log),
		Health:    healthCtrlImp.NewHealthCtrl(db, cfg.UploadDir),
	})

	return &App{Echo: e, Hub: hub, Auth: auth, Market: market, Schemes: schemes}, nil
}

// NewMarket is the market service alone, for the CLI.
func NewMarket(cfg config.AppConfig, db *gorm.DB, hub *feed.Hub, log *zap.Logger) marketSvc.MarketService {
	fetcher := importer.NewFetcher(cfg.PriceImportHosts, cfg.PriceImportMaxLen)
	return marketSvcImp.New(marketRepoImp.New(db), fetcher, hub, log.Named("market"))
}

func NewSchemes() (schemeSvc.SchemeService, error) {
	catalog, err := schemeRepoImp.New()
	if err != nil {
		return nil, fmt.Errorf("load schemes: %w", err)
	}
	return schemeSvcImp.New(catalog), nil
}

// Seed fills empty collections with the built-in catalog when enabled.
func (a *App) Seed(ctx context.Context, cfg config.AppConfig) error {
	if !cfg.SeedPrices {
		return nil
	}
	if _, err := a.Market.Seed(ctx); err != nil {
		return fmt.Errorf("seed prices: %w", err)
	}
	return nil
}

package router

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"kisan/pkg/apperr"
	assistantCtrl "kisan/pkg/assistant/controller"
	authCtrl "kisan/pkg/auth/controller"
	diagCtrl "kisan/pkg/diagnosis/controller"
	"kisan/pkg/diagnosis/imagestore"
	marketCtrl "kisan/pkg/market/controller"
	"kisan/pkg/middleware"
	schemeCtrl "kisan/pkg/scheme/controller"
)

type Options struct {
	Log         *zap.Logger
	Auth        middleware.Authenticator
	CORSOrigins []string
	// MaxBodyMB caps every request body; uploads need a little headroom.
	MaxBodyMB int
	UploadDir string
}

type Controllers struct {
	Auth      authCtrl.AuthController
	Diagnosis diagCtrl.DiagnosisController
	Market    marketCtrl.MarketController
	Scheme    schemeCtrl.SchemeController
	Assistant assistantCtrl.AssistantController
	Dashboard interface{ Overview(echo.Context) error }
	Health    interface{ Health(echo.Context) error }
}

func New(e *echo.Echo, o Options, c Controllers) *echo.Echo {
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(o.Log)

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Session(o.Auth))
	e.Use(middleware.RequestLog(o.Log))
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     o.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
		AllowCredentials: len(o.CORSOrigins) > 0 && o.CORSOrigins[0] != "*",
	}))
	e.Use(echoMiddleware.BodyLimit(fmt.Sprintf("%dM", o.MaxBodyMB+1)))

	e.GET("/health", c.Health.Health)
	e.Static(imagestore.URLPrefix, o.UploadDir)

	auth := e.Group("/auth")
	auth.POST("/signup", c.Auth.Signup)
	auth.POST("/login", c.Auth.Login)
	auth.POST("/logout", c.Auth.Logout)
	auth.GET("/me", c.Auth.WhoAmI, middleware.RequireUser)

	// public catalog reads
	e.GET("/prices", c.Market.Search)
	e.GET("/prices/options", c.Market.Options)
	e.GET("/schemes", c.Scheme.List)
	e.GET("/schemes/options", c.Scheme.Options)
	e.GET("/assistant/languages", c.Assistant.Languages)
	e.GET("/assistant/samples", c.Assistant.Samples)
	e.GET("/ws/prices", c.Market.Feed)

	signedIn := middleware.RequireUser
	e.GET("/diagnoses", c.Diagnosis.List, signedIn)
	e.POST("/diagnoses", c.Diagnosis.Analyze, signedIn)
	e.POST("/prices/import", c.Market.Import, signedIn)
	e.POST("/assistant/listen", c.Assistant.Listen, signedIn)
	e.POST("/assistant/ask", c.Assistant.Ask, signedIn)
	e.GET("/conversations", c.Assistant.ListConversations, signedIn)
	e.POST("/conversations", c.Assistant.AddConversation, signedIn)
	e.GET("/dashboard", c.Dashboard.Overview, signedIn)
	e.GET("/ws/diagnoses", c.Diagnosis.Feed, signedIn)
	e.GET("/ws/conversations", c.Assistant.Feed, signedIn)
	return e
}

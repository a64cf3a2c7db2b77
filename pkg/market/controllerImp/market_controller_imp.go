package controllerImp

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/feed"
	"kisan/pkg/market/controller"
	"kisan/pkg/market/service"
)

type marketCtrl struct {
	svc      service.MarketService
	hub      *feed.Hub
	up       *websocket.Upgrader
	maxBytes int64
	log      *zap.Logger
}

func New(svc service.MarketService, hub *feed.Hub, up *websocket.Upgrader, maxBytes int64, log *zap.Logger) controller.MarketController {
	return &marketCtrl{svc: svc, hub: hub, up: up, maxBytes: maxBytes, log: log}
}

func (h *marketCtrl) Search(c echo.Context) error {
	out, err := h.svc.Search(c.Request().Context(), c.QueryParam("q"), c.QueryParam("location"))
	if err != nil {
		return apperr.JSON(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *marketCtrl) Options(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Options())
}

// Import accepts a multipart "file" upload or a JSON body {"url": "..."}.
func (h *marketCtrl) Import(c echo.Context) error {
	ctx := c.Request().Context()
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "file required"})
		}
		f, err := fh.Open()
		if err != nil {
			return apperr.JSON(c, h.log, err)
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
		if err != nil {
			return apperr.JSON(c, h.log, err)
		}
		if int64(len(data)) > h.maxBytes {
			return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large"})
		}
		rep, err := h.svc.Import(ctx, service.Source{
			Name:        fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Data:        data,
		})
		if err != nil {
			return apperr.JSON(c, h.log, err)
		}
		return c.JSON(http.StatusCreated, rep)
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := c.Bind(&body); err != nil || strings.TrimSpace(body.URL) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "url required"})
	}
	rep, err := h.svc.ImportURL(ctx, strings.TrimSpace(body.URL))
	if err != nil {
		return apperr.JSON(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, rep)
}

// Feed streams search results, refreshed after every import. It takes the
// same q and location parameters as Search.
func (h *marketCtrl) Feed(c echo.Context) error {
	q, loc := c.QueryParam("q"), c.QueryParam("location")
	v := feed.NewView(h.hub, entities.CollectionMarketPrices, false,
		func(ctx context.Context, _ string) ([]entities.MarketPrice, error) {
			return h.svc.Search(ctx, q, loc)
		}, h.log)
	return feed.Stream(c, h.up, v, "", h.log)
}

package controllerImp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/diagnosis/controller"
	"kisan/pkg/diagnosis/service"
	"kisan/pkg/feed"
	"kisan/pkg/middleware"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type diagnosisCtrl struct {
	svc      service.DiagnosisService
	hub      *feed.Hub
	up       *websocket.Upgrader
	maxBytes int64
	log      *zap.Logger
}

func New(svc service.DiagnosisService, hub *feed.Hub, up *websocket.Upgrader, maxBytes int64, log *zap.Logger) controller.DiagnosisController {
	return &diagnosisCtrl{svc: svc, hub: hub, up: up, maxBytes: maxBytes, log: log}
}

// Analyze takes a multipart "image" upload.
func (h *diagnosisCtrl) Analyze(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "please select an image"})
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": fmt.Sprintf("image must be at most %d MB", h.maxBytes>>20)})
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

	a, err := h.svc.Analyze(c.Request().Context(), middleware.UserID(c), data)
	if err != nil {
		return apperr.JSON(c, h.log, err)
	}
	status := http.StatusCreated
	if !a.Saved {
		status = http.StatusOK
	}
	return c.JSON(status, a)
}

func (h *diagnosisCtrl) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context(), middleware.UserID(c), limit(c))
	if err != nil {
		return apperr.JSON(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Feed streams the caller's diagnosis history over a WebSocket.
func (h *diagnosisCtrl) Feed(c echo.Context) error {
	n := limit(c)
	v := feed.NewView(h.hub, entities.CollectionDiagnoses, true,
		func(ctx context.Context, uid string) ([]entities.CropDiagnosis, error) {
			return h.svc.List(ctx, uid, n)
		}, h.log)
	return feed.Stream(c, h.up, v, middleware.UserID(c), h.log)
}

func limit(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || n <= 0 {
		return defaultLimit
	}
	return min(n, maxLimit)
}

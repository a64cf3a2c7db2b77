package controllerImp

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/assistant/controller"
	"kisan/pkg/assistant/service"
	"kisan/pkg/feed"
	"kisan/pkg/middleware"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type assistantCtrl struct {
	svc      service.AssistantService
	hub      *feed.Hub
	up       *websocket.Upgrader
	maxAudio int64
	log      *zap.Logger
}

func New(svc service.AssistantService, hub *feed.Hub, up *websocket.Upgrader, maxAudio int64, log *zap.Logger) controller.AssistantController {
	return &assistantCtrl{svc: svc, hub: hub, up: up, maxAudio: maxAudio, log: log}
}

func (h *assistantCtrl) Languages(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Languages())
}

func (h *assistantCtrl) Samples(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Samples(c.QueryParam("language")))
}

// Listen takes an optional multipart "audio" part and a "language" field.
func (h *assistantCtrl) Listen(c echo.Context) error {
	var audio []byte
	if fh, err := c.FormFile("audio"); err == nil {
		if fh.Size > h.maxAudio {
			return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "recording too large"})
		}
		f, err := fh.Open()
		if err != nil {
			return apperr.JSON(c, h.log, err)
		}
		defer f.Close()
		if audio, err = io.ReadAll(io.LimitReader(f, h.maxAudio)); err != nil {
			return apperr.JSON(c, h.log, err)
		}
	}
	u, err := h.svc.Listen(c.Request().Context(), c.FormValue("language"), audio)
	if err != nil {
		return apperr.JSON(c, h.log, err)
	}
	return c.JSON(http.StatusOK, u)
}

type askReq struct {
	Language string `json:"language"`
	Text     string `json:"text"`
	Save     *bool  `json:"save"`
}

// Ask saves the exchange unless the body says "save": false.
func (h *assistantCtrl) Ask(c echo.Context) error {
	var req askReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	in := service.AskInput{Language: req.Language, Text: req.Text, Save: req.Save == nil || *req.Save}
	ex, err := h.svc.Ask(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return apperr.JSON(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ex)
}

func (h *assistantCtrl) ListConversations(c echo.Context) error {
	out, err := h.svc.ListConversations(c.Request().Context(), middleware.UserID(c), limit(c))
	if err != nil {
		return apperr.JSON(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *assistantCtrl) AddConversation(c echo.Context) error {
	var req struct {
		Messages []entities.Turn `json:"messages"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	conv, err := h.svc.AddConversation(c.Request().Context(), middleware.UserID(c), req.Messages)
	if err != nil {
		return apperr.JSON(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, conv)
}

func (h *assistantCtrl) Feed(c echo.Context) error {
	n := limit(c)
	v := feed.NewView(h.hub, entities.CollectionConversations, true,
		func(ctx context.Context, uid string) ([]entities.Conversation, error) {
			return h.svc.ListConversations(ctx, uid, n)
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

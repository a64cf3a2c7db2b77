package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kisan/pkg/apperr"
	"kisan/pkg/dashboard/service"
	"kisan/pkg/middleware"
)

type DashboardCtrl struct {
	svc service.DashboardService
	log *zap.Logger
}

func New(svc service.DashboardService, log *zap.Logger) *DashboardCtrl {
	return &DashboardCtrl{svc: svc, log: log}
}

func (h *DashboardCtrl) Overview(c echo.Context) error {
	o, err := h.svc.Overview(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return apperr.JSON(c, h.log, err)
	}
	return c.JSON(http.StatusOK, o)
}

package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kisan/pkg/scheme/controller"
	"kisan/pkg/scheme/service"
)

type schemeCtrl struct{ svc service.SchemeService }

func New(svc service.SchemeService) controller.SchemeController { return &schemeCtrl{svc} }

// List filters by the q, category and state query parameters.
func (h *schemeCtrl) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Filter(service.Filter{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		State:    c.QueryParam("state"),
	}))
}

func (h *schemeCtrl) Options(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Options())
}

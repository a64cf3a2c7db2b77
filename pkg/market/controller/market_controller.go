package controller

import "github.com/labstack/echo/v4"

type MarketController interface {
	Search(c echo.Context) error
	Options(c echo.Context) error
	Import(c echo.Context) error
	Feed(c echo.Context) error
}

package controller

import "github.com/labstack/echo/v4"

type DiagnosisController interface {
	Analyze(c echo.Context) error
	List(c echo.Context) error
	Feed(c echo.Context) error
}

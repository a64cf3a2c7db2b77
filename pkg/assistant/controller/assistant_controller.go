package controller

import "github.com/labstack/echo/v4"

type AssistantController interface {
	Languages(c echo.Context) error
	Samples(c echo.Context) error
	Listen(c echo.Context) error
	Ask(c echo.Context) error
	ListConversations(c echo.Context) error
	AddConversation(c echo.Context) error
	Feed(c echo.Context) error
}

package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kisan/pkg/apperr"
	"kisan/pkg/auth/controller"
	"kisan/pkg/auth/service"
	"kisan/pkg/middleware"
)

type authCtrl struct {
	svc service.AuthService
	log *zap.Logger
}

func NewAuthController(svc service.AuthService, log *zap.Logger) controller.AuthController {
	return &authCtrl{svc: svc, log: log}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authCtrl) Signup(c echo.Context) error {
	var in service.SignupInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	sess, err := h.svc.Signup(c.Request().Context(), in)
	if err != nil {
		return apperr.JSON(c, h.log, err)
	}
	middleware.SetSessionCookie(c, sess.Token, sess.ExpiresAt)
	return c.JSON(http.StatusCreated, sess)
}

func (h *authCtrl) Login(c echo.Context) error {
	var in loginReq
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	sess, err := h.svc.Login(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		return apperr.JSON(c, h.log, err)
	}
	middleware.SetSessionCookie(c, sess.Token, sess.ExpiresAt)
	return c.JSON(http.StatusOK, sess)
}

// Logout only drops the cookie; tokens are not tracked server side.
func (h *authCtrl) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	u, err := h.svc.Profile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return apperr.JSON(c, h.log, err)
	}
	return c.JSON(http.StatusOK, u)
}

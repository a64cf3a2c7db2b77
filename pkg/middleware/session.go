package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	SessionCookie = "kisan_session"
	uidKey        = "uid"
)

type Authenticator interface {
	Authenticate(token string) (string, error)
}

// Session resolves the caller from a bearer token, the session cookie or a
// "token" query parameter (browsers cannot set headers on WebSocket
// handshakes). Invalid tokens leave the request anonymous.
func Session(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tok := sessionToken(c); tok != "" {
				if uid, err := auth.Authenticate(tok); err == nil {
					c.Set(uidKey, uid)
				}
			}
			return next(c)
		}
	}
}

// RequireUser rejects anonymous requests.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if UserID(c) == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "sign in required"})
		}
		return next(c)
	}
}

// UserID is the signed-in user's id, or "".
func UserID(c echo.Context) string {
	uid, _ := c.Get(uidKey).(string)
	return uid
}

func SetSessionCookie(c echo.Context, tok string, exp time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    tok,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.IsTLS(),
	})
}

func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
	}
	if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	return c.QueryParam("token")
}

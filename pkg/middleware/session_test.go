package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type fakeAuth map[string]string

func (f fakeAuth) Authenticate(tok string) (string, error) {
	if uid, ok := f[tok]; ok {
		return uid, nil
	}
	return "", errors.New("bad token")
}

func run(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	var seen string
	h := Session(fakeAuth{"good": "u1"})(RequireUser(func(c echo.Context) error {
		seen = UserID(c)
		return c.NoContent(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	_ = h(e.NewContext(req, rec))
	return rec, seen
}

func TestSession_TokenSources(t *testing.T) {
	bearer := httptest.NewRequest(http.MethodGet, "/", nil)
	bearer.Header.Set(echo.HeaderAuthorization, "Bearer good")

	cookie := httptest.NewRequest(http.MethodGet, "/", nil)
	cookie.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})

	query := httptest.NewRequest(http.MethodGet, "/?token=good", nil)

	for name, req := range map[string]*http.Request{"bearer": bearer, "cookie": cookie, "query": query} {
		rec, uid := run(t, req)
		assert.Equal(t, http.StatusNoContent, rec.Code, name)
		assert.Equal(t, "u1", uid, name)
	}
}

func TestRequireUser_RejectsAnonymousAndInvalid(t *testing.T) {
	rec, _ := run(t, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"sign in required"}`, rec.Body.String())

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.Header.Set(echo.HeaderAuthorization, "Bearer forged")
	rec, _ = run(t, bad)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionCookie(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	SetSessionCookie(c, "tok", time.Now().Add(time.Hour))
	ClearSessionCookie(c)

	cookies := rec.Result().Cookies()
	if assert.Len(t, cookies, 2) {
		assert.Equal(t, "tok", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, -1, cookies[1].MaxAge)
	}
}

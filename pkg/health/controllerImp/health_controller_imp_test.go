package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisan/database"
)

type body struct {
	Status struct {
		OK bool `json:"ok"`
	} `json:"status"`
	Checks map[string]check `json:"checks"`
}

func call(t *testing.T, h *HealthCtrl) (int, body) {
	t.Helper()
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, h.Health(c))
	var b body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	return rec.Code, b
}

func TestHealth(t *testing.T) {
	db, err := database.OpenMigrated(":memory:")
	require.NoError(t, err)

	code, b := call(t, NewHealthCtrl(db, t.TempDir()))
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, b.Status.OK)
	assert.True(t, b.Checks["uploads"].OK)

	code, b = call(t, NewHealthCtrl(db, filepath.Join(t.TempDir(), "missing")))
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, b.Checks["uploads"].OK)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	code, b = call(t, NewHealthCtrl(db, t.TempDir()))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, b.Checks["database"].OK)

	code, _ = call(t, NewHealthCtrl(nil, t.TempDir()))
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

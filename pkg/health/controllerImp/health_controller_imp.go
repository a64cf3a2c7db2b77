package controllerImp

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

type HealthCtrl struct {
	db        *gorm.DB
	uploadDir string
	started   time.Time
}

func NewHealthCtrl(db *gorm.DB, uploadDir string) *HealthCtrl {
	return &HealthCtrl{db: db, uploadDir: uploadDir, started: time.Now()}
}

// Health answers 503 when the document store is unreachable. A missing
// upload directory is reported but not fatal; it is created on first use.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.pingDB(ctx)
	uploads := check{OK: true}
	if st, err := os.Stat(h.uploadDir); err != nil {
		uploads = check{OK: false, Err: err.Error()}
	} else if !st.IsDir() {
		uploads = check{OK: false, Err: "not a directory"}
	}

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(h.started).Seconds()),
		"checks": map[string]check{
			"database": db,
			"uploads":  uploads,
		},
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "no database"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

// Package imagestore keeps uploaded crop photos on local disk. Stored images
// are served by the router under URLPrefix.
package imagestore

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const URLPrefix = "/uploads/"

type Store interface {
	// Save writes data and returns the URL it is served at.
	Save(ctx context.Context, data []byte) (string, error)
}

type local struct{ dir string }

func NewLocal(dir string) Store { return &local{dir: dir} }

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

func (s *local) Save(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	ext, ok := extensions[http.DetectContentType(data)]
	if !ok {
		ext = ".img"
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return URLPrefix + name, nil
}

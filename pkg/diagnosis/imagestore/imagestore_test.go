package imagestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestLocalSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := NewLocal(dir)

	url, err := s.Save(context.Background(), pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, URLPrefix))
	assert.True(t, strings.HasSuffix(url, ".png"))

	got, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, URLPrefix)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, got)
}

func TestLocalSave_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocal(t.TempDir()).Save(ctx, pngHeader)
	assert.ErrorIs(t, err, context.Canceled)
}

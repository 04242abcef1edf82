package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quill/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
const tinyPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func newTestImageService(t *testing.T) *ImageService {
	t.Helper()
	return NewImageService(&config.Config{MediaDir: t.TempDir()})
}

func TestImageService_SaveDataURI(t *testing.T) {
	t.Parallel()

	svc := newTestImageService(t)
	relPath, err := svc.SaveDataURI(context.Background(), "data:image/png;base64,"+tinyPNGBase64)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, "posts/"), "path %q should live under posts/", relPath)
	assert.True(t, strings.HasSuffix(relPath, ".png"), "path %q should carry the sniffed extension", relPath)

	// the file must exist on disk
	_, statErr := os.Stat(filepath.Join(svc.MediaDir(), filepath.FromSlash(relPath)))
	assert.NoError(t, statErr)
}

func TestImageService_SaveDataURI_Malformed(t *testing.T) {
	t.Parallel()

	svc := newTestImageService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		dataURI string
	}{
		{"not a data URI", "http://example.com/cat.png"},
		{"missing base64 delimiter", "data:image/png,rawbytes"},
		{"non-image media type", "data:text/plain;base64," + tinyPNGBase64},
		{"empty payload", "data:image/png;base64,"},
		{"invalid base64", "data:image/png;base64,!!!not-base64!!!"},
		{"payload not an image", "data:image/png;base64,aGVsbG8gd29ybGQ="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveDataURI(ctx, tt.dataURI)
			assertValidationError(t, err)
		})
	}
}

func TestImageService_Remove(t *testing.T) {
	t.Parallel()

	svc := newTestImageService(t)
	relPath, err := svc.SaveDataURI(context.Background(), "data:image/png;base64,"+tinyPNGBase64)
	require.NoError(t, err)

	full := filepath.Join(svc.MediaDir(), filepath.FromSlash(relPath))
	_, statErr := os.Stat(full)
	require.NoError(t, statErr)

	svc.Remove(relPath)
	_, statErr = os.Stat(full)
	assert.True(t, os.IsNotExist(statErr))

	// removing again (or removing nothing) must not panic
	svc.Remove(relPath)
	svc.Remove("")
	svc.Remove("../outside.png")
}

// Package service implements the business rules on top of the repositories.
package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"quill/internal/config"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultMediaDir  = "media"
	postImagesSubdir = "posts"
	maxImageBytes    = 10 * 1024 * 1024
	dataURIPrefix    = "data:"
	base64Delimiter  = ";base64,"
)

type ImageService struct {
	mediaDir string
}

func NewImageService(cfg *config.Config) *ImageService {
	mediaDir := DefaultMediaDir
	if cfg != nil && cfg.MediaDir != "" {
		mediaDir = cfg.MediaDir
	}
	return &ImageService{mediaDir: mediaDir}
}

// MediaDir returns the root directory stored images are written under.
func (s *ImageService) MediaDir() string {
	return s.mediaDir
}

// SaveDataURI validates and decodes a `data:image/<subtype>;base64,<payload>`
// string, writes the blob under <mediaDir>/posts/ and returns the relative
// path to store on the post. Malformed input comes back as a validation error.
func (s *ImageService) SaveDataURI(ctx context.Context, dataURI string) (string, error) {
	span, ctx := observability.NewSpan(ctx, "image.save_data_uri")
	defer span.End()

	payload, err := decodeDataURI(dataURI)
	if err != nil {
		span.SetError(err)
		return "", err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		err = models.NewValidationError("image payload is not a decodable image")
		span.SetError(err)
		return "", err
	}

	dir := filepath.Join(s.mediaDir, postImagesSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}

	filename := uuid.NewString() + "." + extensionForFormat(format)
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}

	observability.ImagesStored.WithLabelValues(format).Inc()
	span.AddAttributes(
		attribute.String("image.format", format),
		attribute.Int("image.bytes", len(payload)),
		attribute.Int("image.width", cfg.Width),
		attribute.Int("image.height", cfg.Height),
	)
	middleware.Logger.InfoContext(ctx, "stored post image",
		"format", format,
		"bytes", len(payload),
		"path", path,
	)

	return filepath.ToSlash(filepath.Join(postImagesSubdir, filename)), nil
}

// Remove deletes a previously stored image file. Best-effort: a missing file
// is not an error.
func (s *ImageService) Remove(relPath string) {
	if relPath == "" {
		return
	}
	// Stored paths are always relative to the media dir; refuse anything else.
	clean := filepath.Clean(relPath)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return
	}
	_ = os.Remove(filepath.Join(s.mediaDir, clean))
}

func decodeDataURI(dataURI string) ([]byte, error) {
	if !strings.HasPrefix(dataURI, dataURIPrefix) {
		return nil, models.NewValidationError("image must be a data URI")
	}

	idx := strings.Index(dataURI, base64Delimiter)
	if idx < 0 {
		return nil, models.NewValidationError("image data URI must be base64-encoded")
	}

	mediaType := dataURI[len(dataURIPrefix):idx]
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, models.NewValidationError(fmt.Sprintf("unsupported media type %q", mediaType))
	}

	encoded := dataURI[idx+len(base64Delimiter):]
	if encoded == "" {
		return nil, models.NewValidationError("image data URI has an empty payload")
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, models.NewValidationError("image data URI payload is not valid base64")
	}
	if len(payload) > maxImageBytes {
		return nil, models.NewValidationError(fmt.Sprintf("image too large (max %dMB)", maxImageBytes/(1024*1024)))
	}

	return payload, nil
}

func extensionForFormat(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	default:
		return format
	}
}

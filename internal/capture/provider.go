// Package capture turns external images into catalogue-ready JPEG data.
// A Provider yields a decoded image; Encode crops, scales and compresses
// it; an Inbox watches a directory and feeds new files through both.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Capture errors.
var (
	ErrCancelled   = errors.New("capture cancelled")
	ErrUnsupported = errors.New("unsupported image format")
)

// imageExts lists the file extensions the registered decoders handle.
var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// IsImageFile reports whether path has an extension a decoder is
// registered for.
func IsImageFile(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// Provider produces one image per call. Implementations return
// ErrCancelled when the user or ctx abandons the capture.
type Provider interface {
	Capture(ctx context.Context) (image.Image, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (image.Image, error)

// Capture calls f.
func (f ProviderFunc) Capture(ctx context.Context) (image.Image, error) {
	return f(ctx)
}

// FileProvider captures by decoding an image file.
type FileProvider struct {
	Path string
}

// Capture decodes the file at p.Path.
func (p FileProvider) Capture(ctx context.Context) (image.Image, error) {
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	f, err := os.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if errors.Is(err, image.ErrFormat) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, p.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", p.Path, err)
	}
	return img, nil
}

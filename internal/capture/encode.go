package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// DefaultQuality is the JPEG quality used when EncodeOptions.Quality is 0.
const DefaultQuality = 80

// ErrEmptyImage is returned when there are no pixels left to encode.
var ErrEmptyImage = errors.New("empty image")

// EncodeOptions controls Encode.
type EncodeOptions struct {
	// Crop selects a region of the source image. The zero rectangle keeps
	// the whole image; other values are clipped to the image bounds.
	Crop image.Rectangle

	// MaxDimension caps the longer edge in pixels. 0 disables scaling.
	// Images are never enlarged.
	MaxDimension int

	// Quality is the JPEG quality, 1-100.
	Quality int
}

// Encode crops and scales img per opts and returns JPEG bytes.
func Encode(img image.Image, opts EncodeOptions) ([]byte, error) {
	src := img.Bounds()
	if !opts.Crop.Empty() {
		src = opts.Crop.Intersect(src)
	}
	if src.Empty() {
		return nil, ErrEmptyImage
	}

	dst := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	if w, h, ok := scaledSize(src.Dx(), src.Dy(), opts.MaxDimension); ok {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	} else {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	}

	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// scaledSize fits w x h inside a limit x limit box, keeping the aspect
// ratio. ok is false when no scaling is needed.
func scaledSize(w, h, limit int) (int, int, bool) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h, false
	}
	if w >= h {
		return limit, max(1, h*limit/w), true
	}
	return max(1, w*limit/h), limit, true
}

// Tests for image capture, encoding and the watched inbox.
package capture

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestFileProvider_Capture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sunset.png")
	writePNG(t, path, 40, 20)

	img, err := FileProvider{Path: path}.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), img.Bounds())
}

func TestFileProvider_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := FileProvider{Path: filepath.Join(dir, "missing.png")}.Capture(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0o644))
	_, err = FileProvider{Path: junk}.Capture(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FileProvider{Path: junk}.Capture(ctx)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestProviderFunc(t *testing.T) {
	p := ProviderFunc(func(context.Context) (image.Image, error) {
		return nil, ErrCancelled
	})
	_, err := p.Capture(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("a.JPG"))
	assert.True(t, IsImageFile("/x/y/b.webp"))
	assert.True(t, IsImageFile("c.tiff"))
	assert.False(t, IsImageFile("notes.txt"))
	assert.False(t, IsImageFile("noext"))
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		opts EncodeOptions
		want image.Rectangle
	}{
		{"unchanged", 40, 20, EncodeOptions{}, image.Rect(0, 0, 40, 20)},
		{"no upscale", 40, 20, EncodeOptions{MaxDimension: 100}, image.Rect(0, 0, 40, 20)},
		{"landscape scaled", 200, 100, EncodeOptions{MaxDimension: 50}, image.Rect(0, 0, 50, 25)},
		{"portrait scaled", 100, 200, EncodeOptions{MaxDimension: 50}, image.Rect(0, 0, 25, 50)},
		{"cropped", 40, 40, EncodeOptions{Crop: image.Rect(10, 10, 30, 20)}, image.Rect(0, 0, 20, 10)},
		{"crop clipped", 40, 40, EncodeOptions{Crop: image.Rect(30, 30, 60, 60)}, image.Rect(0, 0, 10, 10)},
		{"crop then scale", 100, 100, EncodeOptions{Crop: image.Rect(0, 0, 80, 40), MaxDimension: 40}, image.Rect(0, 0, 40, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(testImage(tt.w, tt.h), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, decodeJPEG(t, data).Bounds())
		})
	}
}

func TestEncode_EmptyCrop(t *testing.T) {
	_, err := Encode(testImage(10, 10), EncodeOptions{Crop: image.Rect(20, 20, 30, 30)})
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestEncode_QualityAffectsSize(t *testing.T) {
	img := testImage(64, 64)
	low, err := Encode(img, EncodeOptions{Quality: 10})
	require.NoError(t, err)
	high, err := Encode(img, EncodeOptions{Quality: 100})
	require.NoError(t, err)
	assert.Less(t, len(low), len(high))
}

func TestInbox_CapturesNewImages(t *testing.T) {
	dir := t.TempDir()
	items := make(chan Item, 4)
	inbox := &Inbox{
		Dir:    dir,
		Encode: EncodeOptions{MaxDimension: 16},
		Settle: 20 * time.Millisecond,
		Handler: func(_ context.Context, item Item) error {
			items <- item
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- inbox.Run(ctx) }()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	writePNG(t, filepath.Join(dir, ".hidden.png"), 8, 8)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	writePNG(t, filepath.Join(dir, "upload.png.tmp"), 8, 8)
	writePNG(t, filepath.Join(dir, "Harbour at Dusk.png"), 64, 32)

	select {
	case item := <-items:
		assert.Equal(t, "Harbour at Dusk", item.Title)
		assert.Equal(t, image.Rect(0, 0, 16, 8), decodeJPEG(t, item.JPEG).Bounds())
	case <-time.After(5 * time.Second):
		t.Fatal("no item captured")
	}

	select {
	case item := <-items:
		t.Fatalf("unexpected item %q", item.Path)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("inbox did not stop")
	}
}

func TestInbox_RunErrors(t *testing.T) {
	err := (&Inbox{Dir: t.TempDir()}).Run(context.Background())
	assert.Error(t, err)

	inbox := &Inbox{
		Dir:     filepath.Join(t.TempDir(), "missing"),
		Handler: func(context.Context, Item) error { return nil },
	}
	assert.Error(t, inbox.Run(context.Background()))
}

package loaders

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestLoadImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 255, 255})

	encoders := []struct {
		format string
		encode func(io.Writer, image.Image) error
	}{
		{"png", png.Encode},
		{"bmp", bmp.Encode},
		{"tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }},
	}

	for _, enc := range encoders {
		t.Run(enc.format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "texture."+enc.format)
			f, err := os.Create(path)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if err := enc.encode(f, img); err != nil {
				t.Fatalf("encode: %v", err)
			}
			f.Close()

			data, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage: %v", err)
			}
			if data.Format != enc.format {
				t.Errorf("Expected format %q, got %q", enc.format, data.Format)
			}
			if data.Width != 2 || data.Height != 1 {
				t.Fatalf("Expected 2x1, got %dx%d", data.Width, data.Height)
			}
			if data.Pixels[0].X != 1 || data.Pixels[0].Z != 0 {
				t.Errorf("Expected red first pixel, got %v", data.Pixels[0])
			}
			if data.Pixels[1].Z != 1 || data.Pixels[1].X != 0 {
				t.Errorf("Expected blue second pixel, got %v", data.Pixels[1])
			}
		})
	}
}

func TestLoadImage_Errors(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected an error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "garbage.png")
	os.WriteFile(path, []byte("not an image"), 0644)
	if _, err := LoadImage(path); err == nil {
		t.Error("Expected a decode error")
	}
}

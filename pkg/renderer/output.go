package renderer

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Image formats SaveImage can write
const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// FormatFromPath picks the image format from a file extension
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("unsupported image extension %q", ext)
	}
}

// EncodeImage writes img to w in the given format
func EncodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("unsupported image format %q", format)
}

// SaveImage writes img to path, creating parent directories as needed.
// The format follows the file extension.
func SaveImage(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodeImage(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

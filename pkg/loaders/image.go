package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-hair-raytracer/pkg/core"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
	Format string // decoder that read the file
}

// LoadImage loads a PNG, JPEG, BMP or TIFF image and converts it to a Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// The format is detected from the file header
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}
	return FromImage(img, format), nil
}

// FromImage converts a decoded image to [0, 1] colors
func FromImage(img image.Image, format string) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns uint32 in [0, 65535]
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
		Format: format,
	}
}

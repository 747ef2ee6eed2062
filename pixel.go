package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // the capture backends write PNG
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB holds an 8-bit color value.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d) %s", c.R, c.G, c.B, c.Hex())
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// ErrUnsupportedLayout is returned when a decoded image does not carry
// plain 3- or 4-channel RGB pixel data.
var ErrUnsupportedLayout = errors.New("unsupported pixel layout")

// SamplePixel decodes the image at path and returns the color at (x, y).
// Alpha, if present, is discarded. The coordinate must lie within the
// image bounds.
func SamplePixel(path string, x, y int) (RGB, error) {
	f, err := os.Open(path)
	if err != nil {
		return RGB{}, fmt.Errorf("opening capture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return RGB{}, fmt.Errorf("decoding capture: %w", err)
	}

	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return RGB{}, fmt.Errorf("coordinate (%d, %d) outside capture bounds %v", x, y, b)
	}

	// Read channels directly off the pixel buffer. Going through
	// Color.RGBA() would premultiply alpha, which changes the stored
	// channel values for translucent pixels.
	switch p := img.(type) {
	case *image.RGBA:
		px := p.RGBAAt(x, y)
		return RGB{R: px.R, G: px.G, B: px.B}, nil
	case *image.NRGBA:
		px := p.NRGBAAt(x, y)
		return RGB{R: px.R, G: px.G, B: px.B}, nil
	default:
		return RGB{}, fmt.Errorf("%w: %T", ErrUnsupportedLayout, img)
	}
}

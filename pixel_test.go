package main

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.png")
	if err := writePNG(img, path); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	return path
}

func TestSamplePixel_ExactColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 10
		img.Pix[i+1] = 20
		img.Pix[i+2] = 30
		img.Pix[i+3] = 255
	}
	img.SetNRGBA(5, 9, color.NRGBA{R: 255, G: 0, B: 0, A: 255})

	path := writeTestPNG(t, img)

	got, err := SamplePixel(path, 5, 9)
	if err != nil {
		t.Fatalf("SamplePixel: %v", err)
	}
	if got.R != 255 || got.G != 0 || got.B != 0 {
		t.Errorf("expected RGB{255, 0, 0}, got RGB{%d, %d, %d}", got.R, got.G, got.B)
	}

	got, err = SamplePixel(path, 0, 0)
	if err != nil {
		t.Fatalf("SamplePixel: %v", err)
	}
	if got.R != 10 || got.G != 20 || got.B != 30 {
		t.Errorf("expected RGB{10, 20, 30}, got RGB{%d, %d, %d}", got.R, got.G, got.B)
	}
}

func TestSamplePixel_AlphaDiscarded(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 200
		img.Pix[i+1] = 100
		img.Pix[i+2] = 50
		img.Pix[i+3] = 128
	}

	path := writeTestPNG(t, img)

	got, err := SamplePixel(path, 3, 3)
	if err != nil {
		t.Fatalf("SamplePixel: %v", err)
	}
	if got.R != 200 || got.G != 100 || got.B != 50 {
		t.Errorf("expected RGB{200, 100, 50}, got RGB{%d, %d, %d}", got.R, got.G, got.B)
	}
}

func TestSamplePixel_UnsupportedGrayscale(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	path := writeTestPNG(t, img)

	_, err := SamplePixel(path, 2, 2)
	if !errors.Is(err, ErrUnsupportedLayout) {
		t.Fatalf("expected ErrUnsupportedLayout, got %v", err)
	}
}

func TestSamplePixel_OutOfBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	path := writeTestPNG(t, img)

	_, err := SamplePixel(path, 100, 50)
	if err == nil {
		t.Fatal("expected an error for out-of-bounds coordinate")
	}
	if errors.Is(err, ErrUnsupportedLayout) {
		t.Fatalf("out-of-bounds should not report a layout error, got %v", err)
	}
}

func TestSamplePixel_MissingFile(t *testing.T) {
	_, err := SamplePixel(filepath.Join(t.TempDir(), "nope.png"), 0, 0)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestSamplePixel_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.png")
	if err := os.WriteFile(path, []byte("not a png"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := SamplePixel(path, 0, 0)
	if err == nil {
		t.Fatal("expected a decode error for a corrupt file")
	}
}

func TestRGBString(t *testing.T) {
	got := RGB{R: 255, G: 0, B: 0}.String()
	want := "rgb(255, 0, 0) #ff0000"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRGBHex(t *testing.T) {
	got := RGB{R: 18, G: 52, B: 86}.Hex()
	if got != "#123456" {
		t.Errorf("got %q, want #123456", got)
	}
}

package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"

	"github.com/kbinani/screenshot"
)

// Capturer writes a full-screen capture to a file.
type Capturer interface {
	CaptureToFile(path string) error
	Close() error
}

// x11Capturer wraps kbinani/screenshot-based capture.
type x11Capturer struct{}

func (x11Capturer) CaptureToFile(path string) error {
	img, err := CaptureScreen()
	if err != nil {
		return err
	}
	return writePNG(img, path)
}

func (x11Capturer) Close() error { return nil }

// NewCapturer tries the desktop portal → X11 and returns the first that works.
func NewCapturer() (Capturer, string, error) {
	c, method, err := newPortalCapturer()
	if err == nil {
		return c, method, nil
	}

	return x11Capturer{}, "X11", nil
}

// CaptureScreen captures display 0 and returns the image.
func CaptureScreen() (*image.RGBA, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("no active displays found")
	}
	bounds := screenshot.GetDisplayBounds(0)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("capturing screen: %w", err)
	}
	return img, nil
}

// writePNG encodes img as PNG at path, overwriting any existing file.
func writePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating capture file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding capture: %w", err)
	}
	return f.Close()
}

// hasExecutable reports whether the named program is on PATH.
func hasExecutable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// screenSize returns the dimensions of display 0 using kbinani/screenshot.
func screenSize() (int, int, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return 0, 0, fmt.Errorf("no active displays")
	}
	b := screenshot.GetDisplayBounds(0)
	return b.Dx(), b.Dy(), nil
}

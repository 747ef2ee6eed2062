package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Error categories for the sampling loop; main maps each to its own exit code.
var (
	ErrCursor  = errors.New("cursor query failed")
	ErrCapture = errors.New("screen capture failed")
	ErrDecode  = errors.New("capture decode failed")
	ErrCleanup = errors.New("capture file removal failed")
)

// removeFile is swapped out in tests to simulate cleanup failures.
var removeFile = os.Remove

// Picker runs the sample → capture → decode → report → cleanup cycle.
type Picker struct {
	Cursor   CursorSampler
	Screen   Capturer
	Path     string
	Interval time.Duration
	Out      io.Writer
}

// Sample performs one cycle without reporting: query the cursor, capture
// the screen to the configured path, decode the pixel under the cursor,
// then delete the capture file. The file never survives a successful
// cycle, so at most one exists on disk at any time.
func (p *Picker) Sample() (x, y int, c RGB, err error) {
	x, y, err = p.Cursor.Position()
	if err != nil {
		return 0, 0, RGB{}, fmt.Errorf("%w: %w", ErrCursor, err)
	}

	if err := p.Screen.CaptureToFile(p.Path); err != nil {
		return 0, 0, RGB{}, fmt.Errorf("%w: %w", ErrCapture, err)
	}

	c, err = SamplePixel(p.Path, x, y)
	if err != nil {
		if errors.Is(err, ErrUnsupportedLayout) {
			return 0, 0, RGB{}, err
		}
		return 0, 0, RGB{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if err := removeFile(p.Path); err != nil {
		return 0, 0, RGB{}, fmt.Errorf("%w: %w", ErrCleanup, err)
	}
	return x, y, c, nil
}

// RunOnce performs a single cycle and writes one report line to Out.
func (p *Picker) RunOnce() error {
	x, y, c, err := p.Sample()
	if err != nil {
		return err
	}
	fmt.Fprintf(p.Out, "(%d, %d) %s\n", x, y, c)
	return nil
}

// Run repeats RunOnce on the configured interval until ctx is cancelled,
// which is the only non-error way out. Any cycle error aborts the loop.
func (p *Picker) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		if err := p.RunOnce(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

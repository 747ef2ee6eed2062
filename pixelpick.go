package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// Exit codes per failure category. 0 is reserved for external interruption.
const (
	exitCleanup = 1
	exitLayout  = 2
	exitCapture = 3
	exitDecode  = 4
	exitCursor  = 5
)

func main() {
	tui := flag.Bool("tui", false, "show a live color view instead of line output")
	flag.Parse()

	if *tui {
		p := tea.NewProgram(newModel())
		result, err := p.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if m := result.(model); m.err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", m.err)
			os.Exit(exitCode(m.err))
		}
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	settings, _, err := LoadSettings()
	if err != nil {
		return err
	}

	path := settings.CapturePath
	if path == "" {
		if path, err = defaultCapturePath(); err != nil {
			return err
		}
	}

	cursor, cursorMethod, err := NewCursorSampler()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCursor, err)
	}
	defer cursor.Close()

	screen, captureMethod, err := NewCapturer()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCapture, err)
	}
	defer screen.Close()

	fmt.Fprintf(os.Stderr, "cursor backend: %s | capture backend: %s\n", cursorMethod, captureMethod)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	picker := &Picker{
		Cursor:   cursor,
		Screen:   screen,
		Path:     path,
		Interval: settings.Interval(),
		Out:      os.Stdout,
	}
	return picker.Run(ctx)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, ErrCleanup):
		return exitCleanup
	case errors.Is(err, ErrUnsupportedLayout):
		return exitLayout
	case errors.Is(err, ErrCapture):
		return exitCapture
	case errors.Is(err, ErrDecode):
		return exitDecode
	case errors.Is(err, ErrCursor):
		return exitCursor
	default:
		return 1
	}
}

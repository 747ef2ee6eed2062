package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestWritePNG_RoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	img.SetNRGBA(7, 3, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	path := filepath.Join(t.TempDir(), "capture.png")
	if err := writePNG(img, path); err != nil {
		t.Fatalf("writePNG: %v", err)
	}

	got, err := SamplePixel(path, 7, 3)
	if err != nil {
		t.Fatalf("SamplePixel: %v", err)
	}
	if got.R != 1 || got.G != 2 || got.B != 3 {
		t.Errorf("expected RGB{1, 2, 3}, got RGB{%d, %d, %d}", got.R, got.G, got.B)
	}
}

func TestWritePNG_UnwritablePath(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))

	err := writePNG(img, filepath.Join(t.TempDir(), "missing", "capture.png"))
	if err == nil {
		t.Fatal("expected an error for an unwritable path")
	}
}

func TestFileURIToPath(t *testing.T) {
	got, err := fileURIToPath("file:///tmp/shot.png")
	if err != nil {
		t.Fatalf("fileURIToPath: %v", err)
	}
	if got != "/tmp/shot.png" {
		t.Errorf("got %q, want /tmp/shot.png", got)
	}
}

func TestFileURIToPath_Escaped(t *testing.T) {
	got, err := fileURIToPath("file:///tmp/my%20shot.png")
	if err != nil {
		t.Fatalf("fileURIToPath: %v", err)
	}
	if got != "/tmp/my shot.png" {
		t.Errorf("got %q, want \"/tmp/my shot.png\"", got)
	}
}

func TestFileURIToPath_WrongScheme(t *testing.T) {
	if _, err := fileURIToPath("https://example.com/shot.png"); err == nil {
		t.Fatal("expected an error for a non-file scheme")
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "dst.png")

	if err := os.WriteFile(src, []byte("payload"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := moveFile(src, dst); err != nil {
		t.Fatalf("moveFile: %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("source still exists after move: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("got %q, want payload", data)
	}
}

func TestSenderToToken(t *testing.T) {
	if got := senderToToken(":1.42"); got != "1_42" {
		t.Errorf("got %q, want 1_42", got)
	}
}

package io

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"

	"cvgl-demos/internal/logging"
)

func TestEnsureDirIdempotent(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "output")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("first EnsureDir: %v", err)
	}
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("second EnsureDir: %v", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !entries[0].IsDir() || entries[0].Name() != "output" {
		t.Fatalf("expected exactly one directory, got %v", entries)
	}
}

func TestEnsureDirNested(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("nested directory missing: %v", err)
	}
}

func TestEnsureDirRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDir(path); err == nil {
		t.Fatal("expected error when a file occupies the directory path")
	}
}

func grayFrame(width, height int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(128, 0, 0, 0), height, width, gocv.MatTypeCV8UC1)
}

func TestVideoSinkWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.avi")

	sink, err := OpenVideoSink(path, "MJPG", 30, 64, 48, false, logging.Discard())
	if err != nil {
		t.Fatalf("OpenVideoSink: %v", err)
	}

	frame := grayFrame(64, 48)
	defer frame.Close()

	for i := 0; i < 2; i++ {
		if err := sink.Write(frame); err != nil {
			t.Fatalf("Write %d: %v", i, err)
		}
	}

	wrong := grayFrame(32, 48)
	defer wrong.Close()
	if err := sink.Write(wrong); !errors.Is(err, ErrFrameSize) {
		t.Errorf("Write(wrong size) = %v, want ErrFrameSize", err)
	}

	empty := gocv.NewMat()
	defer empty.Close()
	if err := sink.Write(empty); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("Write(empty) = %v, want ErrEmptyFrame", err)
	}

	if sink.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", sink.Frames())
	}

	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := sink.Write(frame); err == nil {
		t.Error("write after close succeeded")
	}

	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("video file missing or empty: %v", err)
	}
}

func TestOpenVideoSinkValidation(t *testing.T) {
	dir := t.TempDir()
	if _, err := OpenVideoSink(filepath.Join(dir, "a.avi"), "MJ", 30, 64, 48, false, logging.Discard()); err == nil {
		t.Error("accepted a two-character codec")
	}
	if _, err := OpenVideoSink(filepath.Join(dir, "b.avi"), "MJPG", 30, 0, 48, false, logging.Discard()); err == nil {
		t.Error("accepted a zero width")
	}
}

func TestSaveImage(t *testing.T) {
	writer := NewImageWriter(logging.Discard())
	dir := t.TempDir()

	frame := grayFrame(16, 8)
	defer frame.Close()

	path := filepath.Join(dir, "canvas.png")
	if err := writer.SaveImage(frame, path); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	loaded := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer loaded.Close()
	if loaded.Cols() != 16 || loaded.Rows() != 8 {
		t.Errorf("reloaded image is %dx%d", loaded.Cols(), loaded.Rows())
	}

	if err := writer.SaveImage(frame, filepath.Join(dir, "canvas.gif")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("SaveImage(.gif) = %v, want ErrUnsupportedFormat", err)
	}

	empty := gocv.NewMat()
	defer empty.Close()
	if err := writer.SaveImage(empty, filepath.Join(dir, "empty.png")); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("SaveImage(empty) = %v, want ErrEmptyFrame", err)
	}
}

func TestGetFileExtension(t *testing.T) {
	tests := map[string]string{
		"out/canvas.PNG":   ".PNG",
		"canvas":           "",
		"dir.d/canvas":     "",
		`C:\out\frame.bmp`: ".bmp",
	}
	for in, want := range tests {
		if got := getFileExtension(in); got != want {
			t.Errorf("getFileExtension(%q) = %q, want %q", in, got, want)
		}
	}
}

// Run configuration for the curve renderer and the capture loop
package config

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// Curve viewer backends
const (
	DisplayHighGUI = "highgui"
	DisplayFyne    = "fyne"
)

// CurveConfig holds the fixed parameters of one curve rendering run
type CurveConfig struct {
	Samples   int
	Width     int
	Height    int
	LineWidth float64
	Title     string
	Display   string
	SavePath  string
	NoDisplay bool
}

// DefaultCurveConfig returns the reference parameters: 2000 samples on an 800x600 canvas
func DefaultCurveConfig() CurveConfig {
	return CurveConfig{
		Samples:   2000,
		Width:     800,
		Height:    600,
		LineWidth: 1,
		Title:     "Bird in Flight",
		Display:   DisplayHighGUI,
	}
}

func (c CurveConfig) Validate() error {
	if c.Samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", c.Samples)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid canvas size: %dx%d", c.Width, c.Height)
	}
	if c.LineWidth <= 0 {
		return fmt.Errorf("line width must be positive, got %g", c.LineWidth)
	}
	switch c.Display {
	case DisplayHighGUI, DisplayFyne:
	default:
		return fmt.Errorf("unknown display backend: %q", c.Display)
	}
	return nil
}

// CaptureConfig holds the parameters of the capture/process/display loop
type CaptureConfig struct {
	// Source is a camera index ("0") or a video file path
	Source      string
	Width       int
	Height      int
	DefaultFPS  float64
	OutputDir   string
	OutputFile  string
	FourCC      string
	WindowTitle string

	// StrictWrites stops the loop on the first failed sink write
	StrictWrites bool
}

func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		Source:       "0",
		Width:        640,
		Height:       480,
		DefaultFPS:   30,
		OutputDir:    "output",
		OutputFile:   "output.mp4",
		FourCC:       "mp4v",
		WindowTitle:  "Grayscale Video (OpenCV + OpenGL)",
		StrictWrites: true,
	}
}

// OutputPath is the location of the persisted video
func (c CaptureConfig) OutputPath() string {
	return filepath.Join(c.OutputDir, c.OutputFile)
}

// CameraIndex reports whether Source names a device index rather than a file
func (c CaptureConfig) CameraIndex() (int, bool) {
	idx, err := strconv.Atoi(c.Source)
	if err != nil {
		return 0, false
	}
	return idx, true
}

func (c CaptureConfig) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("capture source must not be empty")
	}
	if idx, ok := c.CameraIndex(); ok && idx < 0 {
		return fmt.Errorf("camera index must not be negative, got %d", idx)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid capture size: %dx%d", c.Width, c.Height)
	}
	if c.DefaultFPS <= 0 {
		return fmt.Errorf("default fps must be positive, got %g", c.DefaultFPS)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file name must not be empty")
	}
	if len(c.FourCC) != 4 {
		return fmt.Errorf("fourcc must be exactly four characters, got %q", c.FourCC)
	}
	for i := 0; i < len(c.FourCC); i++ {
		if c.FourCC[i] < 0x20 || c.FourCC[i] > 0x7e {
			return fmt.Errorf("fourcc must be printable ASCII, got %q", c.FourCC)
		}
	}
	return nil
}

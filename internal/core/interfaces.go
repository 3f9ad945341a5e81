// Collaborators of the capture loop
package core

import (
	"gocv.io/x/gocv"

	"cvgl-demos/internal/config"
)

// FrameSource yields color frames. Read blocks with no timeout.
type FrameSource interface {
	RequestSize(width, height int)
	Size() (int, int)
	FPS() float64
	Read(frame *gocv.Mat) bool
	Description() string
	Close() error
}

// FiniteSource is implemented by sources that can tell a clean end of
// stream apart from a device failure after a failed Read.
type FiniteSource interface {
	Exhausted() bool
}

// FrameSink persists frames in order
type FrameSink interface {
	Write(frame gocv.Mat) error
	Close() error
}

// Display owns the window, its GL context and one texture.
type Display interface {
	ShouldClose() bool
	CancelRequested() bool
	// Upload replaces the whole texture with a single-channel frame
	Upload(frame gocv.Mat) error
	Render()
	// Present swaps buffers and processes pending window events
	Present()
	ReleaseTexture()
	// Close destroys the window and shuts the windowing subsystem down
	Close()
}

// Opener creates the external resources in setup order
type Opener interface {
	OpenSource(cfg config.CaptureConfig) (FrameSource, error)
	OpenSink(path, fourcc string, fps float64, width, height int) (FrameSink, error)
	OpenDisplay(title string, width, height int) (Display, error)
}

package main

import (
	"github.com/sirupsen/logrus"

	"cvgl-demos/internal/capture"
	"cvgl-demos/internal/config"
	"cvgl-demos/internal/core"
	"cvgl-demos/internal/gui"
	"cvgl-demos/internal/io"
)

var (
	_ core.FrameSource  = (*capture.Device)(nil)
	_ core.FiniteSource = (*capture.Device)(nil)
	_ core.FrameSink    = (*io.VideoSink)(nil)
	_ core.Display      = (*gui.GLDisplay)(nil)
)

// deviceOpener wires the loop to OpenCV capture, an OpenCV video writer and
// a GLFW window
type deviceOpener struct {
	logger *logrus.Logger
}

func newDeviceOpener(logger *logrus.Logger) *deviceOpener {
	return &deviceOpener{logger: logger}
}

func (o *deviceOpener) OpenSource(cfg config.CaptureConfig) (core.FrameSource, error) {
	device, err := capture.Open(cfg.Source, o.logger)
	if err != nil {
		return nil, err
	}
	return device, nil
}

func (o *deviceOpener) OpenSink(path, fourcc string, fps float64, width, height int) (core.FrameSink, error) {
	sink, err := io.OpenVideoSink(path, fourcc, fps, width, height, false, o.logger)
	if err != nil {
		return nil, err
	}
	return sink, nil
}

func (o *deviceOpener) OpenDisplay(title string, width, height int) (core.Display, error) {
	display, err := gui.NewGLDisplay(title, width, height, o.logger)
	if err != nil {
		return nil, err
	}
	return display, nil
}

package core

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"cvgl-demos/internal/capture"
	"cvgl-demos/internal/config"
	"cvgl-demos/internal/io"
)

// Session holds every resource acquired by Setup
type Session struct {
	Source     FrameSource
	Sink       FrameSink
	Display    Display
	OutputPath string
	FPS        float64
	Width      int
	Height     int

	textureReleased bool
}

// Setup acquires source, output directory, sink, window and texture in
// that order. On failure everything already acquired is released and the
// error names the resource that could not be created.
func Setup(cfg config.CaptureConfig, opener Opener, logger logrus.FieldLogger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid capture config: %w", err)
	}

	s := &Session{OutputPath: cfg.OutputPath()}

	source, err := opener.OpenSource(cfg)
	if err != nil {
		return nil, err
	}
	s.Source = source

	source.RequestSize(cfg.Width, cfg.Height)
	s.Width, s.Height = cfg.Width, cfg.Height
	if w, h := source.Size(); w > 0 && h > 0 {
		s.Width, s.Height = w, h
	}

	s.FPS = capture.ResolveFPS(source.FPS(), cfg.DefaultFPS)

	if err := io.EnsureDir(cfg.OutputDir); err != nil {
		s.release(logger)
		return nil, err
	}

	sink, err := opener.OpenSink(s.OutputPath, cfg.FourCC, s.FPS, s.Width, s.Height)
	if err != nil {
		s.release(logger)
		return nil, err
	}
	s.Sink = sink

	display, err := opener.OpenDisplay(cfg.WindowTitle, s.Width, s.Height)
	if err != nil {
		s.release(logger)
		return nil, err
	}
	s.Display = display

	logger.WithFields(logrus.Fields{
		"source": source.Description(),
		"width":  s.Width,
		"height": s.Height,
		"fps":    s.FPS,
		"output": s.OutputPath,
	}).Info("Capture session ready")

	return s, nil
}

// Teardown releases the session: sink, texture, source, window, windowing
// subsystem. Safe to call more than once.
func (s *Session) Teardown(logger logrus.FieldLogger) error {
	return s.release(logger)
}

func (s *Session) release(logger logrus.FieldLogger) error {
	var errs []error

	if s.Sink != nil {
		if err := s.Sink.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close video sink")
			errs = append(errs, err)
		}
		s.Sink = nil
	}

	if s.Display != nil && !s.textureReleased {
		s.Display.ReleaseTexture()
		s.textureReleased = true
	}

	if s.Source != nil {
		if err := s.Source.Close(); err != nil {
			logger.WithError(err).Warn("Failed to release capture source")
			errs = append(errs, err)
		}
		s.Source = nil
	}

	if s.Display != nil {
		s.Display.Close()
		s.Display = nil
	}

	return errors.Join(errs...)
}

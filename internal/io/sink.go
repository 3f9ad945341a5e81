package io

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

var ErrFrameSize = errors.New("frame size does not match sink")

// VideoSink is an append-only video file with fixed geometry and rate
type VideoSink struct {
	writer  *gocv.VideoWriter
	path    string
	fps     float64
	width   int
	height  int
	isColor bool
	frames  int
	logger  logrus.FieldLogger
}

// OpenVideoSink opens path for writing with the given four-character codec
func OpenVideoSink(path, fourcc string, fps float64, width, height int, isColor bool, logger logrus.FieldLogger) (*VideoSink, error) {
	if len(fourcc) != 4 {
		return nil, fmt.Errorf("invalid codec %q: want four characters", fourcc)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid sink size: %dx%d", width, height)
	}

	writer, err := gocv.VideoWriterFile(path, fourcc, fps, width, height, isColor)
	if err != nil {
		return nil, fmt.Errorf("could not open video writer at %s: %w", path, err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("could not open video writer at %s", path)
	}

	logger.WithFields(logrus.Fields{
		"path":   path,
		"codec":  fourcc,
		"fps":    fps,
		"width":  width,
		"height": height,
		"color":  isColor,
	}).Info("Video sink opened")

	return &VideoSink{
		writer:  writer,
		path:    path,
		fps:     fps,
		width:   width,
		height:  height,
		isColor: isColor,
		logger:  logger,
	}, nil
}

// Write appends one frame. Its size and channel count must match the sink.
func (s *VideoSink) Write(frame gocv.Mat) error {
	if s.writer == nil {
		return fmt.Errorf("write to closed sink %s", s.path)
	}
	if frame.Empty() {
		return fmt.Errorf("write frame %d: %w", s.frames, ErrEmptyFrame)
	}
	if frame.Cols() != s.width || frame.Rows() != s.height {
		return fmt.Errorf("write frame %d: %w: got %dx%d, want %dx%d",
			s.frames, ErrFrameSize, frame.Cols(), frame.Rows(), s.width, s.height)
	}
	wantChannels := 1
	if s.isColor {
		wantChannels = 3
	}
	if frame.Channels() != wantChannels {
		return fmt.Errorf("write frame %d: got %d channels, want %d", s.frames, frame.Channels(), wantChannels)
	}

	if err := s.writer.Write(frame); err != nil {
		return fmt.Errorf("write frame %d: %w", s.frames, err)
	}
	s.frames++
	return nil
}

func (s *VideoSink) Path() string { return s.path }

func (s *VideoSink) Frames() int { return s.frames }

func (s *VideoSink) Size() (int, int) { return s.width, s.height }

func (s *VideoSink) Close() error {
	if s.writer == nil {
		return nil
	}
	err := s.writer.Close()
	s.writer = nil

	s.logger.WithFields(logrus.Fields{
		"path":   s.path,
		"frames": s.frames,
	}).Info("Video sink closed")

	if err != nil {
		return fmt.Errorf("close video writer %s: %w", s.path, err)
	}
	return nil
}

package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"cvgl-demos/internal/algorithms"
	"cvgl-demos/internal/config"
)

var (
	ErrCaptureFailed    = errors.New("failed to capture frame")
	ErrProcessingFailed = errors.New("failed to process frame")
	ErrWriteFailed      = errors.New("failed to write frame")
)

// State of the capture loop
type State int

const (
	StateSetup State = iota
	StateRunning
	StateStopping
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateTornDown:
		return "torn_down"
	}
	return "unknown"
}

// StopReason records why the loop left the running state
type StopReason int

const (
	StopNone StopReason = iota
	StopSetupFailed
	StopWindowClosed
	StopCancelKey
	StopEndOfStream
	StopCaptureFailed
	StopProcessingFailed
	StopWriteFailed
)

func (r StopReason) String() string {
	switch r {
	case StopNone:
		return "none"
	case StopSetupFailed:
		return "setup_failed"
	case StopWindowClosed:
		return "window_closed"
	case StopCancelKey:
		return "cancel_key"
	case StopEndOfStream:
		return "end_of_stream"
	case StopCaptureFailed:
		return "capture_failed"
	case StopProcessingFailed:
		return "processing_failed"
	case StopWriteFailed:
		return "write_failed"
	}
	return "unknown"
}

// Graceful reports whether the stop was requested rather than caused by a failure
func (r StopReason) Graceful() bool {
	return r == StopWindowClosed || r == StopCancelKey || r == StopEndOfStream
}

// Loop drives setup, the capture/process/display iterations and teardown.
// Each call to Step performs one transition or one iteration.
type Loop struct {
	cfg    config.CaptureConfig
	opener Opener
	logger logrus.FieldLogger
	now    func() time.Time

	state   State
	reason  StopReason
	err     error
	session *Session
	frame   gocv.Mat
	stats   *Stats
}

func NewLoop(cfg config.CaptureConfig, opener Opener, logger logrus.FieldLogger) *Loop {
	return &Loop{
		cfg:    cfg,
		opener: opener,
		logger: logger,
		now:    time.Now,
		state:  StateSetup,
		stats:  NewStats(),
	}
}

func (l *Loop) State() State { return l.state }

func (l *Loop) Reason() StopReason { return l.reason }

// Err is the failure that stopped the loop, nil for a graceful stop
func (l *Loop) Err() error { return l.err }

func (l *Loop) Stats() *Stats { return l.stats }

// OutputPath is where the sink writes, known before setup runs
func (l *Loop) OutputPath() string { return l.cfg.OutputPath() }

// Step advances the loop and reports whether more steps remain
func (l *Loop) Step() bool {
	switch l.state {
	case StateSetup:
		l.setup()
	case StateRunning:
		l.iterate()
	case StateStopping:
		l.teardown()
	case StateTornDown:
		return false
	}
	return l.state != StateTornDown
}

// Run steps the loop until it is torn down
func (l *Loop) Run() error {
	for l.Step() {
	}
	return l.err
}

func (l *Loop) setup() {
	session, err := Setup(l.cfg, l.opener, l.logger)
	if err != nil {
		l.reason = StopSetupFailed
		l.err = err
		l.state = StateTornDown
		return
	}

	l.session = session
	l.frame = gocv.NewMat()
	l.stats.Start(l.now())
	l.state = StateRunning
}

func (l *Loop) stop(reason StopReason, err error) {
	l.reason = reason
	l.err = err
	l.state = StateStopping
}

func (l *Loop) iterate() {
	src := l.session.Source
	display := l.session.Display

	if display.ShouldClose() {
		l.stop(StopWindowClosed, nil)
		return
	}

	start := l.now()
	if !src.Read(&l.frame) || l.frame.Empty() {
		if finite, ok := src.(FiniteSource); ok && finite.Exhausted() {
			l.stop(StopEndOfStream, nil)
			return
		}
		l.stop(StopCaptureFailed, fmt.Errorf("%w from %s", ErrCaptureFailed, src.Description()))
		return
	}
	l.stats.Observe(StageRead, l.now().Sub(start))

	written, err := l.process(l.frame)
	if err != nil {
		if errors.Is(err, ErrWriteFailed) {
			l.stop(StopWriteFailed, err)
		} else {
			l.stop(StopProcessingFailed, err)
		}
		return
	}
	l.stats.FrameDone(written)
	l.stats.LogFrame(l.logger)

	if display.CancelRequested() {
		l.stop(StopCancelKey, nil)
	}
}

// process converts, persists and displays one frame
func (l *Loop) process(frame gocv.Mat) (bool, error) {
	if err := ValidateFrame(frame); err != nil {
		return false, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	start := l.now()
	gray, err := algorithms.Apply(algorithms.Grayscale, frame)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}
	defer gray.Close()

	persist, err := algorithms.Apply(algorithms.FlipHorizontal, gray)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}
	defer persist.Close()
	l.stats.Observe(StageConvert, l.now().Sub(start))

	start = l.now()
	written := true
	if err := l.session.Sink.Write(persist); err != nil {
		if l.cfg.StrictWrites {
			return false, fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
		l.logger.WithError(err).Warn("Dropping frame the sink rejected")
		written = false
	}
	l.stats.Observe(StageWrite, l.now().Sub(start))

	start = l.now()
	upright, err := algorithms.Apply(algorithms.FlipVertical, gray)
	if err != nil {
		return written, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}
	defer upright.Close()

	if err := l.session.Display.Upload(upright); err != nil {
		return written, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}
	l.stats.Observe(StageUpload, l.now().Sub(start))

	start = l.now()
	l.session.Display.Render()
	l.session.Display.Present()
	l.stats.Observe(StageRender, l.now().Sub(start))

	return written, nil
}

func (l *Loop) teardown() {
	l.stats.Stop(l.now())

	if err := l.session.Teardown(l.logger); err != nil {
		l.logger.WithError(err).Warn("Teardown reported errors")
	}
	l.frame.Close()

	l.stats.LogSummary(l.logger)
	l.logger.WithFields(logrus.Fields{
		"reason": l.reason.String(),
		"frames": l.stats.Frames(),
	}).Info("Capture loop stopped")

	l.state = StateTornDown
}

package core

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Stage names one timed step of an iteration
type Stage int

const (
	StageRead Stage = iota
	StageConvert
	StageWrite
	StageUpload
	StageRender
	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageRead:
		return "read"
	case StageConvert:
		return "convert"
	case StageWrite:
		return "write"
	case StageUpload:
		return "upload"
	case StageRender:
		return "render"
	}
	return "unknown"
}

// Stats accumulates per-stage timings across loop iterations
type Stats struct {
	started time.Time
	stopped time.Time
	frames  int
	written int
	totals  [stageCount]time.Duration
	current [stageCount]time.Duration
	last    [stageCount]time.Duration
}

func NewStats() *Stats {
	return &Stats{}
}

func (st *Stats) Start(now time.Time) {
	st.started = now
}

func (st *Stats) Stop(now time.Time) {
	st.stopped = now
}

// Observe records the duration of a stage for the current frame
func (st *Stats) Observe(stage Stage, d time.Duration) {
	st.totals[stage] += d
	st.current[stage] = d
}

// FrameDone closes the current iteration. Its timings stay readable
// through Last until the next FrameDone.
func (st *Stats) FrameDone(written bool) {
	st.frames++
	if written {
		st.written++
	}
	st.last = st.current
	st.current = [stageCount]time.Duration{}
}

// Last returns a stage's duration in the most recently completed frame
func (st *Stats) Last(stage Stage) time.Duration {
	return st.last[stage]
}

func (st *Stats) Frames() int { return st.frames }

func (st *Stats) Written() int { return st.written }

// Mean returns the average duration of a stage per completed frame
func (st *Stats) Mean(stage Stage) time.Duration {
	if st.frames == 0 {
		return 0
	}
	return st.totals[stage] / time.Duration(st.frames)
}

// Elapsed is the wall time between Start and Stop
func (st *Stats) Elapsed() time.Duration {
	if st.started.IsZero() || st.stopped.Before(st.started) {
		return 0
	}
	return st.stopped.Sub(st.started)
}

// FPS is the achieved loop rate
func (st *Stats) FPS() float64 {
	elapsed := st.Elapsed()
	if elapsed <= 0 {
		return 0
	}
	return float64(st.frames) / elapsed.Seconds()
}

func (st *Stats) fields() logrus.Fields {
	fields := logrus.Fields{}
	for s := Stage(0); s < stageCount; s++ {
		fields[s.String()+"_ms"] = float64(st.last[s].Microseconds()) / 1000
	}
	return fields
}

// LogFrame emits the last completed frame's timings at debug level
func (st *Stats) LogFrame(logger logrus.FieldLogger) {
	logger.WithFields(st.fields()).WithField("frame", st.frames).Debug("Frame processed")
}

// LogSummary emits totals for the whole run
func (st *Stats) LogSummary(logger logrus.FieldLogger) {
	fields := logrus.Fields{
		"frames":       st.frames,
		"written":      st.written,
		"elapsed":      st.Elapsed().String(),
		"achieved_fps": st.FPS(),
	}
	for s := Stage(0); s < stageCount; s++ {
		fields["mean_"+s.String()+"_ms"] = float64(st.Mean(s).Microseconds()) / 1000
	}
	logger.WithFields(fields).Info("Capture loop summary")
}

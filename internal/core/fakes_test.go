package core

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"cvgl-demos/internal/config"
)

// recorder captures the order of resource lifecycle calls
type recorder struct {
	events []string
}

func (r *recorder) add(event string) {
	r.events = append(r.events, event)
}

type fakeSource struct {
	rec    *recorder
	frames []gocv.Mat
	next   int
	reads  int
	fps    float64
	width  int
	height int
	finite bool
}

func (s *fakeSource) RequestSize(width, height int) {}

func (s *fakeSource) Size() (int, int) { return s.width, s.height }

func (s *fakeSource) FPS() float64 { return s.fps }

func (s *fakeSource) Read(frame *gocv.Mat) bool {
	s.reads++
	if s.next >= len(s.frames) {
		return false
	}
	s.frames[s.next].CopyTo(frame)
	s.next++
	return true
}

func (s *fakeSource) Exhausted() bool {
	return s.finite && s.next >= len(s.frames)
}

func (s *fakeSource) Description() string { return "fake" }

func (s *fakeSource) Close() error {
	s.rec.add("source.close")
	return nil
}

type fakeSink struct {
	rec    *recorder
	frames []gocv.Mat
	// failAt is the zero-based write that fails; negative never fails
	failAt   int
	attempts int
}

func (s *fakeSink) Write(frame gocv.Mat) error {
	defer func() { s.attempts++ }()
	if s.failAt >= 0 && s.attempts == s.failAt {
		return errors.New("disk full")
	}
	s.frames = append(s.frames, frame.Clone())
	return nil
}

func (s *fakeSink) Close() error {
	s.rec.add("sink.close")
	return nil
}

func (s *fakeSink) release() {
	for _, f := range s.frames {
		f.Close()
	}
}

type fakeDisplay struct {
	rec *recorder
	// closeAfter and cancelAfter trigger once that many frames were presented; negative never
	closeAfter  int
	cancelAfter int
	presents    int
	renders     int
	uploads     []gocv.Mat
}

func (d *fakeDisplay) ShouldClose() bool {
	return d.closeAfter >= 0 && d.presents >= d.closeAfter
}

func (d *fakeDisplay) CancelRequested() bool {
	return d.cancelAfter >= 0 && d.presents >= d.cancelAfter
}

func (d *fakeDisplay) Upload(frame gocv.Mat) error {
	if frame.Channels() != 1 {
		return fmt.Errorf("texture expects one channel, got %d", frame.Channels())
	}
	d.uploads = append(d.uploads, frame.Clone())
	return nil
}

func (d *fakeDisplay) Render() { d.renders++ }

func (d *fakeDisplay) Present() { d.presents++ }

func (d *fakeDisplay) ReleaseTexture() { d.rec.add("texture.release") }

func (d *fakeDisplay) Close() {
	d.rec.add("window.destroy")
	d.rec.add("windowing.terminate")
}

func (d *fakeDisplay) release() {
	for _, f := range d.uploads {
		f.Close()
	}
}

type fakeOpener struct {
	rec     *recorder
	source  *fakeSource
	sink    *fakeSink
	display *fakeDisplay

	sourceErr  error
	sinkErr    error
	displayErr error

	sinkPath   string
	sinkFourCC string
	sinkFPS    float64
	sinkWidth  int
	sinkHeight int
}

func newFakeOpener(frames ...gocv.Mat) *fakeOpener {
	rec := &recorder{}
	return &fakeOpener{
		rec:     rec,
		source:  &fakeSource{rec: rec, frames: frames, fps: 25, width: 8, height: 6, finite: true},
		sink:    &fakeSink{rec: rec, failAt: -1},
		display: &fakeDisplay{rec: rec, closeAfter: -1, cancelAfter: -1},
	}
}

func (o *fakeOpener) OpenSource(cfg config.CaptureConfig) (FrameSource, error) {
	o.rec.add("source.open")
	if o.sourceErr != nil {
		return nil, o.sourceErr
	}
	return o.source, nil
}

func (o *fakeOpener) OpenSink(path, fourcc string, fps float64, width, height int) (FrameSink, error) {
	o.rec.add("sink.open")
	o.sinkPath, o.sinkFourCC, o.sinkFPS = path, fourcc, fps
	o.sinkWidth, o.sinkHeight = width, height
	if o.sinkErr != nil {
		return nil, o.sinkErr
	}
	return o.sink, nil
}

func (o *fakeOpener) OpenDisplay(title string, width, height int) (Display, error) {
	o.rec.add("display.open")
	if o.displayErr != nil {
		return nil, o.displayErr
	}
	return o.display, nil
}

func (o *fakeOpener) release() {
	o.sink.release()
	o.display.release()
}

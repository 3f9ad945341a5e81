// Frame acquisition from cameras and video files
package capture

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// Device wraps an OpenCV capture opened on a camera index or a file
type Device struct {
	source  string
	camera  bool
	capture *gocv.VideoCapture
	logger  logrus.FieldLogger
}

// Open opens source, which is either a camera index ("0") or a file path
func Open(source string, logger logrus.FieldLogger) (*Device, error) {
	var (
		vc  *gocv.VideoCapture
		err error
	)
	idx, convErr := strconv.Atoi(source)
	camera := convErr == nil
	if camera {
		vc, err = gocv.VideoCaptureDevice(idx)
		if err != nil || !vc.IsOpened() {
			closeQuietly(vc)
			return nil, fmt.Errorf("could not open camera #%d", idx)
		}
	} else {
		vc, err = gocv.VideoCaptureFile(source)
		if err != nil || !vc.IsOpened() {
			closeQuietly(vc)
			return nil, fmt.Errorf("could not open video source %s", source)
		}
	}

	logger.WithField("source", source).Info("Capture source opened")

	return &Device{
		source:  source,
		camera:  camera,
		capture: vc,
		logger:  logger,
	}, nil
}

func closeQuietly(vc *gocv.VideoCapture) {
	if vc != nil {
		vc.Close()
	}
}

// RequestSize asks the device for a capture resolution. Devices may ignore it.
func (d *Device) RequestSize(width, height int) {
	d.capture.Set(gocv.VideoCaptureFrameWidth, float64(width))
	d.capture.Set(gocv.VideoCaptureFrameHeight, float64(height))

	gotW, gotH := d.Size()
	d.logger.WithFields(logrus.Fields{
		"requested_width":  width,
		"requested_height": height,
		"reported_width":   gotW,
		"reported_height":  gotH,
	}).Debug("Capture size requested")
}

// Size reports the device's current frame size
func (d *Device) Size() (int, int) {
	return int(d.capture.Get(gocv.VideoCaptureFrameWidth)), int(d.capture.Get(gocv.VideoCaptureFrameHeight))
}

// FPS reports the device frame rate; zero or negative means unknown
func (d *Device) FPS() float64 {
	return d.capture.Get(gocv.VideoCaptureFPS)
}

// Read blocks until the next frame is available
func (d *Device) Read(frame *gocv.Mat) bool {
	return d.capture.Read(frame)
}

// Exhausted reports whether a file source has delivered its last frame.
// Cameras and streams without a frame count never run out; a failed read
// from them is a device failure.
func (d *Device) Exhausted() bool {
	if d.camera || d.capture == nil {
		return false
	}
	return reachedEnd(d.capture.Get(gocv.VideoCaptureFrameCount), d.capture.Get(gocv.VideoCapturePosFrames))
}

// reachedEnd needs a known frame count; streams that report none never end
// cleanly.
func reachedEnd(total, pos float64) bool {
	return total > 0 && pos >= total
}

func (d *Device) Description() string {
	return d.source
}

func (d *Device) Close() error {
	if d.capture == nil {
		return nil
	}
	err := d.capture.Close()
	d.capture = nil
	d.logger.WithField("source", d.source).Info("Capture source released")
	return err
}

// ResolveFPS substitutes fallback for a missing or non-positive reported rate
func ResolveFPS(reported, fallback float64) float64 {
	if math.IsNaN(reported) || reported <= 0 {
		return fallback
	}
	return reported
}

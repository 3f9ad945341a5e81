package algorithms

import (
	"fmt"

	"gocv.io/x/gocv"
)

// GrayscaleConverter converts color frames to a single 8-bit intensity channel
type GrayscaleConverter struct{}

func NewGrayscaleConverter() *GrayscaleConverter {
	return &GrayscaleConverter{}
}

func (g *GrayscaleConverter) Apply(input gocv.Mat) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}

	output := gocv.NewMat()
	switch input.Channels() {
	case 1:
		input.CopyTo(&output)
	case 3:
		gocv.CvtColor(input, &output, gocv.ColorBGRToGray)
	case 4:
		gocv.CvtColor(input, &output, gocv.ColorBGRAToGray)
	default:
		output.Close()
		return gocv.NewMat(), fmt.Errorf("unsupported number of channels: %d", input.Channels())
	}

	if output.Empty() {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("grayscale conversion produced an empty image")
	}
	return output, nil
}

func (g *GrayscaleConverter) GetName() string {
	return "Grayscale"
}

func (g *GrayscaleConverter) GetDescription() string {
	return "Convert BGR/BGRA frames to single-channel intensity"
}

// FlipAxis selects the reflection axis, using OpenCV flip codes
type FlipAxis int

const (
	// FlipAroundX mirrors top-to-bottom
	FlipAroundX FlipAxis = 0
	// FlipAroundY mirrors left-to-right
	FlipAroundY FlipAxis = 1
)

// Flip mirrors a frame across one axis
type Flip struct {
	axis FlipAxis
}

func NewFlip(axis FlipAxis) *Flip {
	return &Flip{axis: axis}
}

func (f *Flip) Apply(input gocv.Mat) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}

	output := gocv.NewMat()
	gocv.Flip(input, &output, int(f.axis))

	if output.Empty() {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("flip produced an empty image")
	}
	return output, nil
}

func (f *Flip) GetName() string {
	if f.axis == FlipAroundX {
		return "Vertical Flip"
	}
	return "Horizontal Flip"
}

func (f *Flip) GetDescription() string {
	if f.axis == FlipAroundX {
		return "Mirror the frame top-to-bottom"
	}
	return "Mirror the frame left-to-right"
}

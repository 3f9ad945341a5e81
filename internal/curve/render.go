package curve

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gg"
	"gocv.io/x/gocv"

	"cvgl-demos/internal/config"
)

// Render rasterizes every segment as an anti-aliased black line on a white
// canvas. Lines accumulate; parts falling outside the canvas are clipped by
// the rasterizer.
func Render(cfg config.CurveConfig) (canvas *image.RGBA, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid curve config: %w", err)
	}

	dc := gg.NewContext(cfg.Width, cfg.Height)
	defer func() {
		if cerr := dc.Close(); cerr != nil && err == nil {
			canvas, err = nil, fmt.Errorf("close drawing context: %w", cerr)
		}
	}()

	dc.ClearWithColor(gg.White)
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(cfg.LineWidth)

	for i := 1; i <= cfg.Samples; i++ {
		seg := SegmentAt(i, cfg)
		// Integer pixel coordinates name pixel centers.
		dc.DrawLine(
			float64(seg.P1.X)+0.5, float64(seg.P1.Y)+0.5,
			float64(seg.P2.X)+0.5, float64(seg.P2.Y)+0.5,
		)
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("stroke segment %d: %w", i, err)
		}
	}

	src := dc.Image()
	canvas = image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(canvas, canvas.Bounds(), src, src.Bounds().Min, draw.Src)
	return canvas, nil
}

// ToMat converts a rendered canvas into a 3-channel BGR Mat
func ToMat(img image.Image) (gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("convert canvas to mat: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("converted canvas is empty")
	}
	return mat, nil
}

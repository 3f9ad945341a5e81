package curve

import (
	"image"
	"testing"

	"cvgl-demos/internal/config"
)

func TestSegmentAtReferenceValues(t *testing.T) {
	cfg := config.DefaultCurveConfig()

	tests := []struct {
		i      int
		p1, p2 image.Point
	}{
		{1, image.Pt(400, 599), image.Pt(400, 449)},
		{500, image.Pt(800, 600), image.Pt(600, 150)},
		{1000, image.Pt(400, 600), image.Pt(400, 450)},
		{1500, image.Pt(0, 600), image.Pt(200, 150)},
		{2000, image.Pt(400, 600), image.Pt(400, 450)},
	}

	for _, tt := range tests {
		seg := SegmentAt(tt.i, cfg)
		if seg.P1 != tt.p1 || seg.P2 != tt.p2 {
			t.Errorf("SegmentAt(%d) = %v -> %v, want %v -> %v", tt.i, seg.P1, seg.P2, tt.p1, tt.p2)
		}
	}
}

func TestSegmentsDeterministic(t *testing.T) {
	cfg := config.DefaultCurveConfig()

	first := Segments(cfg)
	second := Segments(cfg)

	if len(first) != cfg.Samples {
		t.Fatalf("got %d segments, want %d", len(first), cfg.Samples)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("segment %d differs between runs: %v vs %v", i+1, first[i], second[i])
		}
		if first[i].Index != i+1 {
			t.Fatalf("segment %d has index %d", i+1, first[i].Index)
		}
	}
}

func TestToPixelTruncates(t *testing.T) {
	tests := []struct {
		x, y float64
		want image.Point
	}{
		{-3, 1, image.Pt(0, 0)},
		{3, -1, image.Pt(800, 600)},
		{0, 0, image.Pt(400, 300)},
		// 400.8 and 299.7 truncate, they do not round
		{0.006, 0.001, image.Pt(400, 299)},
	}

	for _, tt := range tests {
		if got := ToPixel(tt.x, tt.y, 800, 600); got != tt.want {
			t.Errorf("ToPixel(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSegmentsStayInRange(t *testing.T) {
	cfg := config.DefaultCurveConfig()
	inner := image.Rect(0, 0, cfg.Width, cfg.Height)
	// The max edge of the domain maps one past the last pixel
	outer := image.Rect(0, 0, cfg.Width+1, cfg.Height+1)

	for _, seg := range Segments(cfg) {
		if !seg.P1.In(outer) {
			t.Fatalf("segment %d: P1 %v outside %v", seg.Index, seg.P1, outer)
		}
		if !seg.P2.In(inner) {
			t.Fatalf("segment %d: P2 %v outside %v", seg.Index, seg.P2, inner)
		}
	}
}

func TestEndpointsBounds(t *testing.T) {
	const n = 2000
	for i := 1; i <= n; i++ {
		x1, y1, x2, y2 := Endpoints(i, n)
		if x1 < -3 || x1 > 3 || x2 < -1.5 || x2 > 1.5 {
			t.Fatalf("i=%d: x out of range: x1=%v x2=%v", i, x1, x2)
		}
		if y1 < -1 || y1 > 1 || y2 < -0.5 || y2 > 0.5 {
			t.Fatalf("i=%d: y out of range: y1=%v y2=%v", i, y1, y2)
		}
	}
}

package utils

import (
	"math"
	"testing"
)

func TestSegmentIntersectsCircle(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		want           bool
	}{
		{"穿过圆心", -20, 0, 20, 0, true},
		{"擦边", -20, 10, 20, 10, true},
		{"圆外平行", -20, 11, 20, 11, false},
		{"端点在圆内", 0, 0, 50, 50, true},
		{"线段未到达圆", 30, 0, 50, 0, false},
		{"退化为圆内的点", 3, 3, 3, 3, true},
		{"退化为圆外的点", 30, 30, 30, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentIntersectsCircle(tt.x1, tt.y1, tt.x2, tt.y2, 0, 0, 10)
			if got != tt.want {
				t.Errorf("SegmentIntersectsCircle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoverFit(t *testing.T) {
	scale, ox, oy := CoverFit(640, 480, 1280, 720)
	if math.Abs(scale-2) > 1e-9 {
		t.Errorf("scale: got %v, want 2", scale)
	}
	if ox != 0 || math.Abs(oy-(-120)) > 1e-9 {
		t.Errorf("offset: got (%v, %v), want (0, -120)", ox, oy)
	}

	if s, _, _ := CoverFit(0, 10, 100, 100); s != 1 {
		t.Errorf("degenerate source scale: got %v, want 1", s)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, 4); math.Abs(d-5) > 1e-9 {
		t.Errorf("Distance = %v, want 5", d)
	}
}

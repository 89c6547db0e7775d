package utils

import "math"

// Distance 两点之间的距离
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// SegmentIntersectsCircle 检查线段 (x1,y1)-(x2,y2) 是否与圆相交
// 线段退化为点时按点是否在圆内判断
func SegmentIntersectsCircle(x1, y1, x2, y2, cx, cy, r float64) bool {
	dx, dy := x2-x1, y2-y1
	lenSq := dx*dx + dy*dy

	t := 0.0
	if lenSq > 0 {
		t = ((cx-x1)*dx + (cy-y1)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	px, py := x1+t*dx, y1+t*dy
	return (px-cx)*(px-cx)+(py-cy)*(py-cy) <= r*r
}

// PointInRect 检查点是否在矩形内（含边界）
func PointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}

// CoverFit 计算把 srcW x srcH 的图像铺满 dstW x dstH 所需的缩放和偏移
// 等比缩放，超出部分居中裁掉（摄像头画面做背景）
func CoverFit(srcW, srcH, dstW, dstH float64) (scale, offsetX, offsetY float64) {
	if srcW <= 0 || srcH <= 0 {
		return 1, 0, 0
	}
	scale = math.Max(dstW/srcW, dstH/srcH)
	offsetX = (dstW - srcW*scale) / 2
	offsetY = (dstH - srcH*scale) / 2
	return scale, offsetX, offsetY
}

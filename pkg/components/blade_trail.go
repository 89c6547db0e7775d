package components

import "image/color"

// TrailPoint 刀光轨迹上的一个点
type TrailPoint struct {
	X, Y float64
	Age  float64
}

// BladeTrailComponent 一个输入源（手指、鼠标、手腕）的刀光轨迹
type BladeTrailComponent struct {
	Source   int
	Points   []TrailPoint
	Lifetime float64 // 轨迹点存活时间（秒）
	Color    color.RGBA
	Width    float64
	// Idle 距离最近一个点加入后经过的时间
	Idle float64
	// Ended 笔画已结束，下一个点开始新的笔画
	Ended bool
}

// HandCursorComponent 手腕关键点的光标
type HandCursorComponent struct {
	Hand    int // 0 = 左手，1 = 右手
	Visible bool
	Idle    float64 // 距离上次更新的时间（秒）
}

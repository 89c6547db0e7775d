// Package utils 提供通用工具函数
package utils

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// MousePointerID 鼠标左键使用的指针ID（触摸ID均为非负数）
const MousePointerID = -1

// PointerSample 某一帧中一个按下的指针
type PointerSample struct {
	ID   int
	X, Y float64
}

// PollPointers 读取本帧所有按下的指针（多点触摸 + 鼠标左键）
// 结果追加到 dst 并返回，按 ID 升序
func PollPointers(dst []PointerSample, includeMouse bool) []PointerSample {
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		dst = append(dst, PointerSample{ID: int(id), X: float64(x), Y: float64(y)})
	}
	if includeMouse && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		dst = append(dst, PointerSample{ID: MousePointerID, X: float64(x), Y: float64(y)})
	}
	sort.Slice(dst, func(i, j int) bool { return dst[i].ID < dst[j].ID })
	return dst
}

// StrokeState 一次划动的状态
type StrokeState int

const (
	// StrokeStarted 本帧刚按下
	StrokeStarted StrokeState = iota
	// StrokeMoving 按住中
	StrokeMoving
	// StrokeEnded 本帧刚释放（位置为最后一次已知位置）
	StrokeEnded
)

// StrokeEvent 单个指针在本帧的划动事件
type StrokeEvent struct {
	ID           int
	State        StrokeState
	X, Y         float64
	PrevX, PrevY float64 // 上一帧位置（Started 时等于当前位置）
}

// StrokeTracker 跟踪多个指针的划动
// 每帧传入当前按下的指针，输出按下/移动/释放事件
type StrokeTracker struct {
	active map[int]PointerSample
}

// NewStrokeTracker 创建划动跟踪器
func NewStrokeTracker() *StrokeTracker {
	return &StrokeTracker{active: make(map[int]PointerSample)}
}

// Update 比较上一帧和本帧的指针集合
// 返回的事件按 ID 升序，释放事件排在最后
func (st *StrokeTracker) Update(samples []PointerSample) []StrokeEvent {
	events := make([]StrokeEvent, 0, len(samples))
	seen := make(map[int]bool, len(samples))

	for _, s := range samples {
		seen[s.ID] = true
		prev, ok := st.active[s.ID]
		if !ok {
			events = append(events, StrokeEvent{ID: s.ID, State: StrokeStarted, X: s.X, Y: s.Y, PrevX: s.X, PrevY: s.Y})
		} else {
			events = append(events, StrokeEvent{ID: s.ID, State: StrokeMoving, X: s.X, Y: s.Y, PrevX: prev.X, PrevY: prev.Y})
		}
		st.active[s.ID] = s
	}

	ended := make([]int, 0)
	for id := range st.active {
		if !seen[id] {
			ended = append(ended, id)
		}
	}
	sort.Ints(ended)
	for _, id := range ended {
		last := st.active[id]
		events = append(events, StrokeEvent{ID: id, State: StrokeEnded, X: last.X, Y: last.Y, PrevX: last.X, PrevY: last.Y})
		delete(st.active, id)
	}
	return events
}

// Reset 丢弃所有正在跟踪的指针（不产生释放事件）
func (st *StrokeTracker) Reset() {
	st.active = make(map[int]PointerSample)
}

// ActiveCount 返回正在按下的指针数量
func (st *StrokeTracker) ActiveCount() int {
	return len(st.active)
}

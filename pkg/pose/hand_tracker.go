package pose

import "math"

// HandLandmarkListener 接收过滤后的手部关键点
// 未移动或缺失的手以缺失关键点传入
type HandLandmarkListener interface {
	OnHandLandmarks(left, right Keypoint)
}

// HandLandmarkListenerFunc 函数适配器
type HandLandmarkListenerFunc func(left, right Keypoint)

// OnHandLandmarks 实现 HandLandmarkListener
func (f HandLandmarkListenerFunc) OnHandLandmarks(left, right Keypoint) {
	f(left, right)
}

// HandTracker 对原始关键点应用移动阈值
//
// 每只手只保留上一次转发的位置：与该位置的距离小于阈值时本帧不转发。
// 坐标缺失的手直接丢弃，不影响已记录的位置。
// 不是并发安全的，只在游戏主循环中调用。
type HandTracker struct {
	threshold float64
	listener  HandLandmarkListener
	last      [2]lastPoint
}

type lastPoint struct {
	x, y  float64
	valid bool
}

// NewHandTracker 创建手部跟踪器
//
// 参数：
//   - movementThreshold: 移动阈值（像素），0 表示每帧都转发
//   - listener: 接收过滤后关键点的监听者，可为 nil
func NewHandTracker(movementThreshold float64, listener HandLandmarkListener) *HandTracker {
	return &HandTracker{threshold: movementThreshold, listener: listener}
}

// Process 处理一帧关键点并通知监听者
// 两只手都没有可转发的坐标时不通知
func (ht *HandTracker) Process(frame HandFrame) (left, right Keypoint) {
	left = ht.filter(0, frame.Left)
	right = ht.filter(1, frame.Right)
	if ht.listener != nil && (left.Present() || right.Present()) {
		ht.listener.OnHandLandmarks(left, right)
	}
	return left, right
}

func (ht *HandTracker) filter(hand int, kp Keypoint) Keypoint {
	x, y, ok := kp.Point()
	if !ok {
		return Keypoint{}
	}
	prev := ht.last[hand]
	if prev.valid && math.Hypot(x-prev.x, y-prev.y) < ht.threshold {
		return Keypoint{}
	}
	ht.last[hand] = lastPoint{x: x, y: y, valid: true}
	return At(x, y)
}

// Reset 清除记录的位置（检测源重启时调用）
func (ht *HandTracker) Reset() {
	ht.last = [2]lastPoint{}
}

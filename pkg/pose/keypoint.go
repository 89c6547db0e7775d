// Package pose 接收外部姿态检测程序推送的手部关键点
//
// 检测程序（摄像头 + 姿态模型）运行在游戏进程之外，通过 WebSocket 推送
// 每帧最多两个手腕坐标。坐标已经是游戏逻辑屏幕像素，游戏不做平滑或预测。
package pose

// Keypoint 一个可选的 (x, y) 坐标
// 任一坐标缺失（nil）表示本帧没有检测到该关键点
type Keypoint struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// At 构造一个完整的关键点
func At(x, y float64) Keypoint {
	return Keypoint{X: &x, Y: &y}
}

// Point 返回坐标，两个坐标都存在时 ok 为 true
func (k Keypoint) Point() (x, y float64, ok bool) {
	if k.X == nil || k.Y == nil {
		return 0, 0, false
	}
	return *k.X, *k.Y, true
}

// Present 两个坐标是否都存在
func (k Keypoint) Present() bool {
	return k.X != nil && k.Y != nil
}

// HandFrame 一帧的左右手腕关键点
type HandFrame struct {
	Left  Keypoint `json:"left"`
	Right Keypoint `json:"right"`
}

package components

// ToastComponent 屏幕底部的短暂提示
type ToastComponent struct {
	Message  string
	Duration float64
	Elapsed  float64
}

package components

// CountdownComponent 恢复游戏前的倒计时
//
// Remaining 从起始数字递减到 1，再经过一个间隔后触发 OnDone。
// Cancelled 之后 OnDone 永远不会被调用。
type CountdownComponent struct {
	Remaining int
	Interval  float64
	Elapsed   float64
	OnDone    func()
	Fired     bool
	Cancelled bool
}

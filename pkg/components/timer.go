package components

// TimerComponent 通用计时器组件
// 用于出果波次间隔等需要周期触发的行为
type TimerComponent struct {
	Name        string  // 计时器名称，如 "spawn_wave"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成
}

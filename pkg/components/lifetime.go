package components

// LifetimeComponent 管理实体的生命周期
// 用于自动清理短暂存在的实体（果汁、碎片、提示文字）
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	IsExpired       bool    // 是否已过期
	FadeOut         bool    // 是否随时间线性淡出（修改 AppearanceComponent.Alpha）
}

package components

// PositionComponent 实体中心在逻辑屏幕上的坐标
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 线速度和角速度
type VelocityComponent struct {
	VX   float64 // 像素/秒
	VY   float64 // 像素/秒，向下为正
	Spin float64 // 弧度/秒，作用于 AppearanceComponent.Angle
}

// GravityComponent 标记受重力影响的实体
type GravityComponent struct {
	Scale float64 // 重力倍率（1.0 = 配置的重力加速度）
}

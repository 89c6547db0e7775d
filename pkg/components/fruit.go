package components

import "image/color"

// FruitComponent 可切的水果
type FruitComponent struct {
	Kind       string
	Radius     float64
	JuiceColor color.RGBA
	Score      int
	Sliced     bool
	// Missable 为 false 时落出屏幕不扣生命（开始界面的水果）
	Missable bool
}

// BombComponent 炸弹，切中即本局结束
type BombComponent struct {
	Radius    float64
	Triggered bool
}

// DebrisComponent 切开后的碎片和果汁，离开屏幕即销毁
type DebrisComponent struct{}

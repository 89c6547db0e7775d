package components

import "github.com/decker502/ninjafruit/pkg/utils"

// TweenProperty 补间动画可以驱动的属性
type TweenProperty int

const (
	TweenX TweenProperty = iota
	TweenY
	TweenScale
	TweenAlpha
	TweenAngle
)

// TweenTrack 单个属性的起止值
type TweenTrack struct {
	Property TweenProperty
	From     float64
	To       float64
}

// TweenComponent 补间动画
// 一个实体同一时间只有一个补间，新补间直接替换旧的
type TweenComponent struct {
	Tracks     []TweenTrack
	Delay      float64 // 开始前的等待时间（秒）
	Duration   float64 // 持续时间（秒）
	Elapsed    float64 // 已过时间（含 Delay）
	Easing     utils.EasingFunc
	OnComplete func()
	Finished   bool
	// DestroyOnComplete 完成后销毁实体
	DestroyOnComplete bool
}

package entities

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/utils"
)

// toastMaxWidth 提示文字的折行宽度
const toastMaxWidth = 960.0

var (
	// TitleColor 标题文字颜色
	TitleColor = color.RGBA{R: 0xff, G: 0xd1, B: 0x66, A: 0xff}
	// TextColor 普通文字颜色
	TextColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	// RingColor 开始圆环颜色
	RingColor = color.RGBA{R: 0xf4, G: 0xa2, B: 0x61, A: 0xff}
	// BannerColor 游戏结束横幅颜色
	BannerColor = color.RGBA{R: 0xe6, G: 0x39, B: 0x46, A: 0xff}
)

// NewLabel 创建一段文字
func NewLabel(em *ecs.EntityManager, font *text.GoTextFace, s string, x, y float64, c color.RGBA, layer int) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.AppearanceComponent{
		Shape: components.ShapeText,
		Text:  s,
		Font:  font,
		Color: c,
		Scale: 1,
		Alpha: 1,
		Layer: layer,
	})
	return id
}

// NewTitle 创建标题，从 fromY 回弹落到 toY
func NewTitle(em *ecs.EntityManager, font *text.GoTextFace, x, fromY, toY float64) ecs.EntityID {
	id := NewLabel(em, font, "Ninja Fruit", x, fromY, TitleColor, components.LayerHUD)
	ecs.AddComponent(em, id, &components.TweenComponent{
		Tracks:   []components.TweenTrack{{Property: components.TweenY, From: fromY, To: toY}},
		Duration: 0.8,
		Easing:   utils.EaseOutBack,
	})
	return id
}

// NewStartRing 创建开始界面旋转的"新游戏"圆环
func NewStartRing(em *ecs.EntityManager, font *text.GoTextFace, x, y, radius float64) (ring, label ecs.EntityID) {
	ring = em.CreateEntity()
	ecs.AddComponent(em, ring, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, ring, &components.VelocityComponent{Spin: -0.8})
	ecs.AddComponent(em, ring, &components.AppearanceComponent{
		Shape:       components.ShapeRing,
		Radius:      radius,
		StrokeWidth: 10,
		Color:       RingColor,
		Accent:      TitleColor,
		Scale:       0,
		Alpha:       1,
		Layer:       components.LayerHUD,
	})
	ecs.AddComponent(em, ring, &components.TweenComponent{
		Tracks:   []components.TweenTrack{{Property: components.TweenScale, From: 0, To: 1}},
		Delay:    0.3,
		Duration: 0.6,
		Easing:   utils.EaseOutBack,
	})

	label = NewLabel(em, font, "New Game", x, y+radius+28, TextColor, components.LayerHUD)
	return ring, label
}

// NewGameOverBanner 创建游戏结束横幅，延迟 delay 秒后弹出
func NewGameOverBanner(em *ecs.EntityManager, font *text.GoTextFace, x, y, delay float64) ecs.EntityID {
	id := NewLabel(em, font, "GAME OVER", x, y, BannerColor, components.LayerBanner)
	if app, ok := ecs.GetComponent[*components.AppearanceComponent](em, id); ok {
		app.Scale = 0
	}
	ecs.AddComponent(em, id, &components.TweenComponent{
		Tracks:   []components.TweenTrack{{Property: components.TweenScale, From: 0, To: 1}},
		Delay:    delay,
		Duration: 0.5,
		Easing:   utils.EaseOutBack,
	})
	return id
}

// NewButton 创建按钮，(x, y) 为左上角
func NewButton(em *ecs.EntityManager, font *text.GoTextFace, label string, x, y, w, h float64, onClick func()) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.ButtonComponent{
		Label:   label,
		Width:   w,
		Height:  h,
		Enabled: true,
		Inside:  make(map[int]bool),
		OnClick: onClick,
	})
	ecs.AddComponent(em, id, &components.AppearanceComponent{
		Shape: components.ShapeRect,
		Font:  font,
		Color: TextColor,
		Scale: 1,
		Alpha: 1,
		Layer: components.LayerDialog,
	})
	return id
}

// NewToggleButton 创建开关按钮
func NewToggleButton(em *ecs.EntityManager, font *text.GoTextFace, label string, x, y, w, h float64, checked bool, onClick func()) ecs.EntityID {
	id := NewButton(em, font, label, x, y, w, h, onClick)
	if btn, ok := ecs.GetComponent[*components.ButtonComponent](em, id); ok {
		btn.IsToggle = true
		btn.Checked = checked
	}
	return id
}

// NewToast 创建提示文字
func NewToast(em *ecs.EntityManager, font *text.GoTextFace, message string, x, y, duration float64) ecs.EntityID {
	id := NewLabel(em, font, message, x, y, TextColor, components.LayerToast)
	if app, ok := ecs.GetComponent[*components.AppearanceComponent](em, id); ok {
		app.MaxWidth = toastMaxWidth
	}
	ecs.AddComponent(em, id, &components.ToastComponent{Message: message, Duration: duration})
	return id
}

// NewCountdown 创建倒计时，结束后调用 onDone
func NewCountdown(em *ecs.EntityManager, font *text.GoTextFace, x, y float64, seconds int, interval float64, onDone func()) ecs.EntityID {
	id := NewLabel(em, font, "", x, y, TitleColor, components.LayerOverlay)
	ecs.AddComponent(em, id, &components.CountdownComponent{
		Remaining: seconds,
		Interval:  interval,
		OnDone:    onDone,
	})
	return id
}

// NewBladeTrail 创建一个输入源的刀光轨迹
func NewBladeTrail(em *ecs.EntityManager, source int, lifetime float64, c color.RGBA) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.BladeTrailComponent{
		Source:   source,
		Lifetime: lifetime,
		Color:    c,
		Width:    8,
	})
	return id
}

// NewHandCursor 创建手腕光标（默认隐藏，收到关键点后显示）
func NewHandCursor(em *ecs.EntityManager, hand int, radius float64, c color.RGBA) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{})
	ecs.AddComponent(em, id, &components.HandCursorComponent{Hand: hand})
	ecs.AddComponent(em, id, &components.AppearanceComponent{
		Shape:       components.ShapeRing,
		Radius:      radius,
		StrokeWidth: 4,
		Color:       c,
		Scale:       1,
		Alpha:       1,
		Layer:       components.LayerOverlay,
		Hidden:      true,
	})
	return id
}

package systems

import (
	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/utils"
)

// ButtonSystem 按钮交互系统
//
// 按钮有两种触发方式：
//   - Tap: 点击/触摸按下
//   - Hover: 刀光或手腕划入按钮区域，一个输入源进入时触发一次，离开后才能再次触发
//
// 每次调用最多触发一个按钮，回调在遍历结束后执行，
// 回调里可以安全地销毁或创建按钮。
type ButtonSystem struct {
	entityManager *ecs.EntityManager
	sound         SoundPlayer
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager, sound SoundPlayer) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
		sound:         sound,
	}
}

// Tap 在 (x, y) 处点击
// 同时记录该输入源已在按钮内，随后的 Hover 不会重复触发
//
// 返回：是否点中了一个可用按钮
func (s *ButtonSystem) Tap(source int, x, y float64) bool {
	var hit *components.ButtonComponent
	s.each(func(btn *components.ButtonComponent, pos *components.PositionComponent) {
		inside := utils.PointInRect(x, y, pos.X, pos.Y, btn.Width, btn.Height)
		btn.Inside[source] = inside
		if inside && hit == nil && btn.Enabled {
			hit = btn
		}
	})
	return s.click(hit)
}

// Hover 输入源移动到 (x, y)
// 返回：是否触发了一个按钮
func (s *ButtonSystem) Hover(source int, x, y float64) bool {
	var hit *components.ButtonComponent
	s.each(func(btn *components.ButtonComponent, pos *components.PositionComponent) {
		inside := utils.PointInRect(x, y, pos.X, pos.Y, btn.Width, btn.Height)
		entered := inside && !btn.Inside[source]
		btn.Inside[source] = inside
		if entered && hit == nil && btn.Enabled {
			hit = btn
		}
	})
	return s.click(hit)
}

// Leave 输入源离开（手指抬起、手离开画面）
func (s *ButtonSystem) Leave(source int) {
	s.each(func(btn *components.ButtonComponent, _ *components.PositionComponent) {
		delete(btn.Inside, source)
	})
}

// Update 根据输入源位置刷新按钮的显示状态
func (s *ButtonSystem) Update(deltaTime float64) {
	s.each(func(btn *components.ButtonComponent, _ *components.PositionComponent) {
		switch {
		case !btn.Enabled:
			btn.State = components.UIDisabled
		case btn.State == components.UIClicked:
			btn.State = components.UINormal
		case anyInside(btn.Inside):
			btn.State = components.UIHovered
		default:
			btn.State = components.UINormal
		}
	})
}

func (s *ButtonSystem) each(fn func(*components.ButtonComponent, *components.PositionComponent)) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		btn, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if btn.Inside == nil {
			btn.Inside = make(map[int]bool)
		}
		fn(btn, pos)
	}
}

func (s *ButtonSystem) click(btn *components.ButtonComponent) bool {
	if btn == nil {
		return false
	}
	btn.State = components.UIClicked
	playSound(s.sound, game.SoundButton)
	if btn.OnClick != nil {
		btn.OnClick()
	}
	return true
}

func anyInside(inside map[int]bool) bool {
	for _, v := range inside {
		if v {
			return true
		}
	}
	return false
}

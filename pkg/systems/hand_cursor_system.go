package systems

import (
	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/pose"
)

// handCursorTimeout 没有新关键点多久后隐藏光标（秒）
const handCursorTimeout = 0.5

// HandCursorSystem 手腕光标系统
// 把最新的左右手腕坐标同步到光标实体，长时间没有数据时隐藏
type HandCursorSystem struct {
	entityManager *ecs.EntityManager
}

// NewHandCursorSystem 创建手腕光标系统
func NewHandCursorSystem(em *ecs.EntityManager) *HandCursorSystem {
	return &HandCursorSystem{entityManager: em}
}

// SetHands 更新光标位置，缺失的关键点保持原状
func (s *HandCursorSystem) SetHands(left, right pose.Keypoint) {
	s.each(func(c *components.HandCursorComponent, pos *components.PositionComponent, app *components.AppearanceComponent) {
		kp := left
		if c.Hand == 1 {
			kp = right
		}
		x, y, ok := kp.Point()
		if !ok {
			return
		}
		pos.X, pos.Y = x, y
		c.Visible = true
		c.Idle = 0
		app.Hidden = false
	})
}

// HideAll 立即隐藏所有光标
func (s *HandCursorSystem) HideAll() {
	s.each(func(c *components.HandCursorComponent, _ *components.PositionComponent, app *components.AppearanceComponent) {
		c.Visible = false
		app.Hidden = true
	})
}

// Update 隐藏长时间没有更新的光标
func (s *HandCursorSystem) Update(deltaTime float64) {
	s.each(func(c *components.HandCursorComponent, _ *components.PositionComponent, app *components.AppearanceComponent) {
		if !c.Visible {
			return
		}
		c.Idle += deltaTime
		if c.Idle > handCursorTimeout {
			c.Visible = false
			app.Hidden = true
		}
	})
}

func (s *HandCursorSystem) each(fn func(*components.HandCursorComponent, *components.PositionComponent, *components.AppearanceComponent)) {
	for _, id := range ecs.GetEntitiesWith3[*components.HandCursorComponent, *components.PositionComponent, *components.AppearanceComponent](s.entityManager) {
		c, _ := ecs.GetComponent[*components.HandCursorComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		app, _ := ecs.GetComponent[*components.AppearanceComponent](s.entityManager, id)
		fn(c, pos, app)
	}
}

package systems

import (
	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
)

// offscreenMargin 碎片落出屏幕后再销毁的余量（像素）
const offscreenMargin = 100.0

// MissSystem 漏接判定
//
// 下落中的水果完全离开屏幕底部即为漏接：实体被销毁，
// Missable 的水果会触发 OnMiss 回调（扣除生命）。
// 炸弹、两半水果和果汁离开屏幕只销毁，不计漏接。
type MissSystem struct {
	entityManager *ecs.EntityManager
	screenHeight  float64

	// OnMiss 漏接一个可计分水果时调用
	OnMiss func(id ecs.EntityID)
}

// NewMissSystem 创建漏接判定系统
func NewMissSystem(em *ecs.EntityManager, screenHeight float64) *MissSystem {
	return &MissSystem{
		entityManager: em,
		screenHeight:  screenHeight,
	}
}

// Update 检查离开屏幕的实体
// 返回本帧漏接的水果数量
func (s *MissSystem) Update(deltaTime float64) int {
	missed := 0

	for _, id := range ecs.GetEntitiesWith2[*components.FruitComponent, *components.PositionComponent](s.entityManager) {
		fruit, _ := ecs.GetComponent[*components.FruitComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if fruit.Sliced || !s.fallenOut(id, pos.Y, fruit.Radius) {
			continue
		}
		s.entityManager.DestroyEntity(id)
		if fruit.Missable {
			missed++
			if s.OnMiss != nil {
				s.OnMiss(id)
			}
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.BombComponent, *components.PositionComponent](s.entityManager) {
		bomb, _ := ecs.GetComponent[*components.BombComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !bomb.Triggered && s.fallenOut(id, pos.Y, bomb.Radius) {
			s.entityManager.DestroyEntity(id)
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.DebrisComponent, *components.PositionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if pos.Y > s.screenHeight+offscreenMargin {
			s.entityManager.DestroyEntity(id)
		}
	}

	return missed
}

// fallenOut 实体正在下落且上边缘已低于屏幕底部
// 刚从底部抛出的实体（上升中）不算
func (s *MissSystem) fallenOut(id ecs.EntityID, y, radius float64) bool {
	vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
	if !ok || vel.VY <= 0 {
		return false
	}
	return y-radius > s.screenHeight
}

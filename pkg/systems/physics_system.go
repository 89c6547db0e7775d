package systems

import (
	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
)

// PhysicsSystem 运动积分系统
//
// 职责：
//   - 对带 GravityComponent 的实体施加重力
//   - 按速度更新位置
//   - 按角速度更新外观旋转角
type PhysicsSystem struct {
	entityManager *ecs.EntityManager
	gravity       float64
}

// NewPhysicsSystem 创建运动积分系统
// gravity 为重力加速度（像素/秒²，向下为正）
func NewPhysicsSystem(em *ecs.EntityManager, gravity float64) *PhysicsSystem {
	return &PhysicsSystem{
		entityManager: em,
		gravity:       gravity,
	}
}

// Update 半隐式欧拉积分：先更新速度，再用新速度更新位置
func (s *PhysicsSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](s.entityManager)

	for _, id := range entities {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		if g, ok := ecs.GetComponent[*components.GravityComponent](s.entityManager, id); ok {
			vel.VY += s.gravity * g.Scale * deltaTime
		}

		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime

		if vel.Spin != 0 {
			if app, ok := ecs.GetComponent[*components.AppearanceComponent](s.entityManager, id); ok {
				app.Angle += vel.Spin * deltaTime
			}
		}
	}
}

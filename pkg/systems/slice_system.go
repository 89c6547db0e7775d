package systems

import (
	"math"
	"math/rand/v2"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/utils"
)

// SliceResult 一次刀光线段的切割结果
type SliceResult struct {
	Fruits []ecs.EntityID // 被切中的水果（已销毁）
	Score  int            // 本次获得的分数
	Bomb   bool           // 是否切中了炸弹
}

// Hit 是否切中了任何东西
func (r SliceResult) Hit() bool {
	return len(r.Fruits) > 0 || r.Bomb
}

// SliceSystem 刀光切割判定
//
// 一条线段与水果（圆）相交即视为切中：
// 水果被替换为两半和果汁，炸弹被标记为已触发。
// 每个水果和炸弹只会被切中一次。
type SliceSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
	sound         SoundPlayer
}

// NewSliceSystem 创建切割系统
func NewSliceSystem(em *ecs.EntityManager, rng *rand.Rand, sound SoundPlayer) *SliceSystem {
	return &SliceSystem{
		entityManager: em,
		rng:           rng,
		sound:         sound,
	}
}

// Slice 用线段 (x1,y1)-(x2,y2) 切割所有水果和炸弹
func (s *SliceSystem) Slice(x1, y1, x2, y2 float64) SliceResult {
	var result SliceResult
	cutAngle := math.Atan2(y2-y1, x2-x1)

	for _, id := range ecs.GetEntitiesWith2[*components.FruitComponent, *components.PositionComponent](s.entityManager) {
		fruit, _ := ecs.GetComponent[*components.FruitComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if fruit.Sliced || !utils.SegmentIntersectsCircle(x1, y1, x2, y2, pos.X, pos.Y, fruit.Radius) {
			continue
		}

		fruit.Sliced = true
		s.splitFruit(id, fruit, pos, cutAngle)
		result.Fruits = append(result.Fruits, id)
		result.Score += fruit.Score
	}

	for _, id := range ecs.GetEntitiesWith2[*components.BombComponent, *components.PositionComponent](s.entityManager) {
		bomb, _ := ecs.GetComponent[*components.BombComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if bomb.Triggered || !utils.SegmentIntersectsCircle(x1, y1, x2, y2, pos.X, pos.Y, bomb.Radius) {
			continue
		}
		bomb.Triggered = true
		result.Bomb = true
		if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id); ok {
			vel.VX, vel.VY, vel.Spin = 0, 0, 0
		}
		ecs.RemoveComponent[*components.GravityComponent](s.entityManager, id)
	}

	if len(result.Fruits) > 0 {
		playSound(s.sound, game.SoundSlice)
		playSound(s.sound, game.SoundSplatter)
	}
	if result.Bomb {
		playSound(s.sound, game.SoundBomb)
	}
	return result
}

// splitFruit 用两半水果和果汁替换整个水果
func (s *SliceSystem) splitFruit(id ecs.EntityID, fruit *components.FruitComponent, pos *components.PositionComponent, cutAngle float64) {
	var vx, vy float64
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id); ok {
		vx, vy = vel.VX, vel.VY
	}
	skin := fruit.JuiceColor
	if app, ok := ecs.GetComponent[*components.AppearanceComponent](s.entityManager, id); ok {
		skin = app.Color
	}

	entities.NewFruitHalves(s.entityManager, pos.X, pos.Y, fruit.Radius, skin, fruit.JuiceColor, vx, vy, cutAngle)
	entities.NewJuiceSplash(s.entityManager, s.rng, pos.X, pos.Y, fruit.JuiceColor, fruit.Radius)
	s.entityManager.DestroyEntity(id)
}

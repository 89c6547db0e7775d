package entities

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/ecs"
)

var (
	bombColor = color.RGBA{R: 0x22, G: 0x22, B: 0x28, A: 0xff}
	fuseColor = color.RGBA{R: 0xff, G: 0x55, B: 0x22, A: 0xff}
)

const (
	// BombRadius 炸弹半径
	BombRadius = 36.0
	// HalfLifetime 切开的半个水果最多存在的时间（秒）
	HalfLifetime = 3.0
	// JuiceLifetime 果汁飞溅的存在时间（秒）
	JuiceLifetime = 0.7
	// juiceDrops 每次飞溅的果汁滴数
	juiceDrops = 12
)

// NewFruit 创建一个被抛出的水果
//
// 参数:
//   - kind: 水果种类（来自 game.yaml）
//   - x, y: 初始位置
//   - vx, vy: 初速度（vy 为负表示向上）
//   - spin: 旋转角速度（弧度/秒）
func NewFruit(em *ecs.EntityManager, kind config.FruitKind, x, y, vx, vy, spin float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: vx, VY: vy, Spin: spin})
	ecs.AddComponent(em, id, &components.GravityComponent{Scale: 1})
	ecs.AddComponent(em, id, &components.FruitComponent{
		Kind:       kind.Name,
		Radius:     kind.Radius,
		JuiceColor: config.MustColor(kind.JuiceColor),
		Score:      kind.Score,
		Missable:   true,
	})
	ecs.AddComponent(em, id, &components.AppearanceComponent{
		Shape:  components.ShapeCircle,
		Radius: kind.Radius,
		Color:  config.MustColor(kind.Color),
		Accent: config.MustColor(kind.JuiceColor),
		Scale:  1,
		Alpha:  1,
		Layer:  components.LayerFruit,
	})
	return id
}

// NewStartFruit 创建开始界面圆环中的水果
// 不受重力影响，原地旋转，切开即开始游戏
func NewStartFruit(em *ecs.EntityManager, kind config.FruitKind, x, y float64) ecs.EntityID {
	id := NewFruit(em, kind, x, y, 0, 0, 1.2)
	ecs.RemoveComponent[*components.GravityComponent](em, id)
	if fruit, ok := ecs.GetComponent[*components.FruitComponent](em, id); ok {
		fruit.Missable = false
	}
	return id
}

// NewBomb 创建一个被抛出的炸弹
func NewBomb(em *ecs.EntityManager, x, y, vx, vy, spin float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: vx, VY: vy, Spin: spin})
	ecs.AddComponent(em, id, &components.GravityComponent{Scale: 1})
	ecs.AddComponent(em, id, &components.BombComponent{Radius: BombRadius})
	ecs.AddComponent(em, id, &components.AppearanceComponent{
		Shape:  components.ShapeCircle,
		Radius: BombRadius,
		Color:  bombColor,
		Accent: fuseColor,
		Scale:  1,
		Alpha:  1,
		Layer:  components.LayerFruit,
	})
	return id
}

// NewFruitHalves 创建切开后的两半水果
// 两半沿垂直于刀口的方向分开，继承原水果的速度
//
// 参数:
//   - cutAngle: 刀口方向（弧度）
func NewFruitHalves(em *ecs.EntityManager, x, y, radius float64, skin, flesh color.RGBA, vx, vy, cutAngle float64) [2]ecs.EntityID {
	const separation = 140.0
	nx, ny := -math.Sin(cutAngle), math.Cos(cutAngle)

	var ids [2]ecs.EntityID
	for i, side := range []float64{1, -1} {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.PositionComponent{X: x + nx*side*4, Y: y + ny*side*4})
		ecs.AddComponent(em, id, &components.VelocityComponent{
			VX:   vx + nx*side*separation,
			VY:   vy + ny*side*separation,
			Spin: side * 2.5,
		})
		ecs.AddComponent(em, id, &components.GravityComponent{Scale: 1})
		ecs.AddComponent(em, id, &components.DebrisComponent{})
		ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: HalfLifetime})
		angle := cutAngle
		if side < 0 {
			angle += math.Pi
		}
		ecs.AddComponent(em, id, &components.AppearanceComponent{
			Shape:  components.ShapeHalfCircle,
			Radius: radius,
			Color:  skin,
			Accent: flesh,
			Scale:  1,
			Alpha:  1,
			Angle:  angle,
			Layer:  components.LayerHalves,
		})
		ids[i] = id
	}
	return ids
}

// NewJuiceSplash 创建果汁飞溅，返回所有果汁滴
func NewJuiceSplash(em *ecs.EntityManager, rng *rand.Rand, x, y float64, juice color.RGBA, radius float64) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, juiceDrops)
	for i := 0; i < juiceDrops; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := 120 + rng.Float64()*260
		size := radius * (0.08 + rng.Float64()*0.12)

		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
		ecs.AddComponent(em, id, &components.VelocityComponent{
			VX: math.Cos(angle) * speed,
			VY: math.Sin(angle)*speed - 120,
		})
		ecs.AddComponent(em, id, &components.GravityComponent{Scale: 0.6})
		ecs.AddComponent(em, id, &components.DebrisComponent{})
		ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: JuiceLifetime, FadeOut: true})
		ecs.AddComponent(em, id, &components.AppearanceComponent{
			Shape:  components.ShapeCircle,
			Radius: size,
			Color:  juice,
			Scale:  1,
			Alpha:  1,
			Layer:  components.LayerJuice,
		})
		ids = append(ids, id)
	}
	return ids
}

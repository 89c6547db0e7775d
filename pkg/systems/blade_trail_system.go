package systems

import (
	"image/color"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
	"github.com/decker502/ninjafruit/pkg/utils"
)

// Segment 刀光的一段
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// BladeTrailSystem 刀光轨迹系统
//
// 每个输入源（触点、鼠标、左右手腕）各有一条轨迹。
// 新点与上一个点距离足够时生成一段可用于切割的线段；
// 超过 Lifetime 的旧点被丢弃，整条轨迹空闲一段时间后销毁。
type BladeTrailSystem struct {
	entityManager *ecs.EntityManager
	lifetime      float64
	minDistance   float64
	color         color.RGBA

	trails map[int]ecs.EntityID
}

// NewBladeTrailSystem 创建刀光轨迹系统
//
// 参数:
//   - lifetime: 轨迹点存活时间（秒）
//   - minDistance: 生成线段所需的最小移动距离（像素）
func NewBladeTrailSystem(em *ecs.EntityManager, lifetime, minDistance float64, c color.RGBA) *BladeTrailSystem {
	return &BladeTrailSystem{
		entityManager: em,
		lifetime:      lifetime,
		minDistance:   minDistance,
		color:         c,
		trails:        make(map[int]ecs.EntityID),
	}
}

// AddPoint 向输入源的轨迹追加一个点
//
// 返回:
//   - Segment: 上一个点到新点的线段
//   - bool: 是否生成了线段（笔画的第一个点和移动过短的点不生成）
func (s *BladeTrailSystem) AddPoint(source int, x, y float64) (Segment, bool) {
	trail := s.trail(source)
	trail.Idle = 0

	n := len(trail.Points)
	if trail.Ended || n == 0 || trail.Points[n-1].Age > s.lifetime {
		// 新笔画：不和旧轨迹相连
		trail.Ended = false
		trail.Points = append(trail.Points[:0], components.TrailPoint{X: x, Y: y})
		return Segment{}, false
	}

	last := trail.Points[n-1]
	if utils.Distance(last.X, last.Y, x, y) < s.minDistance {
		return Segment{}, false
	}

	trail.Points = append(trail.Points, components.TrailPoint{X: x, Y: y})
	return Segment{X1: last.X, Y1: last.Y, X2: x, Y2: y}, true
}

// EndStroke 结束输入源当前的笔画（手指抬起、手离开画面）
// 已有的点继续淡出
func (s *BladeTrailSystem) EndStroke(source int) {
	id, ok := s.trails[source]
	if !ok {
		return
	}
	if trail, ok := ecs.GetComponent[*components.BladeTrailComponent](s.entityManager, id); ok {
		trail.Ended = true
	}
}

// Clear 立即移除所有轨迹
func (s *BladeTrailSystem) Clear() {
	for source, id := range s.trails {
		s.entityManager.DestroyEntity(id)
		delete(s.trails, source)
	}
}

// PointCount 返回输入源当前的轨迹点数量
func (s *BladeTrailSystem) PointCount(source int) int {
	id, ok := s.trails[source]
	if !ok {
		return 0
	}
	trail, ok := ecs.GetComponent[*components.BladeTrailComponent](s.entityManager, id)
	if !ok {
		return 0
	}
	return len(trail.Points)
}

// Update 老化轨迹点，清理空闲轨迹
func (s *BladeTrailSystem) Update(deltaTime float64) {
	for source, id := range s.trails {
		trail, ok := ecs.GetComponent[*components.BladeTrailComponent](s.entityManager, id)
		if !ok {
			delete(s.trails, source)
			continue
		}

		trail.Idle += deltaTime
		kept := trail.Points[:0]
		for _, p := range trail.Points {
			p.Age += deltaTime
			if p.Age <= s.lifetime {
				kept = append(kept, p)
			}
		}
		trail.Points = kept

		if len(trail.Points) == 0 && trail.Idle > s.lifetime*4 {
			s.entityManager.DestroyEntity(id)
			delete(s.trails, source)
		}
	}
}

func (s *BladeTrailSystem) trail(source int) *components.BladeTrailComponent {
	if id, ok := s.trails[source]; ok {
		if trail, ok := ecs.GetComponent[*components.BladeTrailComponent](s.entityManager, id); ok {
			return trail
		}
	}
	id := entities.NewBladeTrail(s.entityManager, source, s.lifetime, s.color)
	s.trails[source] = id
	trail, _ := ecs.GetComponent[*components.BladeTrailComponent](s.entityManager, id)
	return trail
}

package systems

import (
	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/utils"
)

// TweenSystem 补间动画系统
// 驱动标题下落、圆环弹出、结束横幅等界面动画
type TweenSystem struct {
	entityManager *ecs.EntityManager
}

// NewTweenSystem 创建补间动画系统
func NewTweenSystem(em *ecs.EntityManager) *TweenSystem {
	return &TweenSystem{entityManager: em}
}

// Update 推进所有未完成的补间
func (s *TweenSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.TweenComponent](s.entityManager)

	for _, id := range entities {
		tw, _ := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
		if tw.Finished {
			continue
		}

		tw.Elapsed += deltaTime
		if tw.Elapsed < tw.Delay {
			continue
		}

		progress := 1.0
		if tw.Duration > 0 {
			progress = (tw.Elapsed - tw.Delay) / tw.Duration
		}
		value := utils.Ease(tw.Easing, progress)
		for _, track := range tw.Tracks {
			s.apply(id, track.Property, utils.Lerp(track.From, track.To, value))
		}

		if progress >= 1 {
			tw.Finished = true
			if tw.OnComplete != nil {
				tw.OnComplete()
			}
			if tw.DestroyOnComplete {
				s.entityManager.DestroyEntity(id)
			}
		}
	}
}

func (s *TweenSystem) apply(id ecs.EntityID, prop components.TweenProperty, v float64) {
	switch prop {
	case components.TweenX, components.TweenY:
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			return
		}
		if prop == components.TweenX {
			pos.X = v
		} else {
			pos.Y = v
		}
	default:
		app, ok := ecs.GetComponent[*components.AppearanceComponent](s.entityManager, id)
		if !ok {
			return
		}
		switch prop {
		case components.TweenScale:
			app.Scale = v
		case components.TweenAlpha:
			app.Alpha = v
		case components.TweenAngle:
			app.Angle = v
		}
	}
}

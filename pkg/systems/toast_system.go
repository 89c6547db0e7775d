package systems

import (
	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
)

// toastFade 提示文字淡入淡出时间（秒）
const toastFade = 0.3

// ToastSystem 屏幕提示系统：淡入、停留、淡出后销毁
type ToastSystem struct {
	entityManager *ecs.EntityManager
}

// NewToastSystem 创建提示系统
func NewToastSystem(em *ecs.EntityManager) *ToastSystem {
	return &ToastSystem{entityManager: em}
}

// Update 推进所有提示
func (s *ToastSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.ToastComponent](s.entityManager) {
		toast, _ := ecs.GetComponent[*components.ToastComponent](s.entityManager, id)
		toast.Elapsed += deltaTime
		if toast.Elapsed >= toast.Duration {
			s.entityManager.DestroyEntity(id)
			continue
		}

		if app, ok := ecs.GetComponent[*components.AppearanceComponent](s.entityManager, id); ok {
			app.Alpha = toastAlpha(toast.Elapsed, toast.Duration)
		}
	}
}

// Clear 移除所有提示
func (s *ToastSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.ToastComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
}

func toastAlpha(elapsed, duration float64) float64 {
	switch {
	case elapsed < toastFade:
		return elapsed / toastFade
	case duration-elapsed < toastFade:
		return (duration - elapsed) / toastFade
	default:
		return 1
	}
}

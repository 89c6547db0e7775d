package modules

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
	"github.com/decker502/ninjafruit/pkg/systems"
)

// ToastModule 屏幕底部的提示文字
// 同一时间只显示一条，新的提示替换旧的
type ToastModule struct {
	entityManager *ecs.EntityManager
	toastSystem   *systems.ToastSystem
	renderSystem  *systems.RenderSystem
	fonts         Fonts

	current ecs.EntityID
}

// NewToastModule 创建提示模块
func NewToastModule(fonts Fonts) *ToastModule {
	em := ecs.NewEntityManager()
	return &ToastModule{
		entityManager: em,
		toastSystem:   systems.NewToastSystem(em),
		renderSystem:  systems.NewRenderSystem(em),
		fonts:         fonts,
	}
}

// Show 显示一条提示
// long 为 true 时使用较长的显示时间
func (m *ToastModule) Show(message string, long bool) {
	m.toastSystem.Clear()

	duration := config.ToastShortDuration
	if long {
		duration = config.ToastLongDuration
	}
	m.current = entities.NewToast(m.entityManager, m.fonts.Normal, message,
		config.GameWindowWidth/2, config.ToastY, duration)
	log.Printf("[ToastModule] %s", message)
}

// Current 返回当前显示的提示文字，没有时返回空串
func (m *ToastModule) Current() string {
	toast, ok := ecs.GetComponent[*components.ToastComponent](m.entityManager, m.current)
	if !ok {
		return ""
	}
	return toast.Message
}

// Update 推进提示的淡入淡出
func (m *ToastModule) Update(deltaTime float64) {
	m.toastSystem.Update(deltaTime)
	m.entityManager.RemoveMarkedEntities()
}

// Draw 绘制提示
func (m *ToastModule) Draw(screen *ebiten.Image) {
	m.renderSystem.Draw(screen)
}

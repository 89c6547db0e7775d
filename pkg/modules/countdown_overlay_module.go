package modules

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
	"github.com/decker502/ninjafruit/pkg/systems"
)

// countdownOverlayAlpha 倒计时期间的遮罩透明度
const countdownOverlayAlpha = 96

// CountdownOverlayModule 恢复游戏前的倒计时
//
// 显示 3、2、1 后调用回调；期间可以被取消，取消后回调永远不会执行。
// 倒计时期间暂停按钮保持可用（点击或手划入都会触发 onPause）。
type CountdownOverlayModule struct {
	entityManager   *ecs.EntityManager
	countdownSystem *systems.CountdownSystem
	buttonSystem    *systems.ButtonSystem
	renderSystem    *systems.RenderSystem
	fonts           Fonts
	onPause         func()

	seconds  int
	interval float64

	overlay     ecs.EntityID
	pauseButton ecs.EntityID
	active      ecs.EntityID
}

// NewCountdownOverlayModule 创建倒计时模块
// onPause 在倒计时期间按下暂停按钮时调用，可为 nil
func NewCountdownOverlayModule(cfg config.CountdownConfig, fonts Fonts, sound systems.SoundPlayer, onPause func()) *CountdownOverlayModule {
	em := ecs.NewEntityManager()
	return &CountdownOverlayModule{
		entityManager:   em,
		countdownSystem: systems.NewCountdownSystem(em, sound),
		buttonSystem:    systems.NewButtonSystem(em, sound),
		renderSystem:    systems.NewRenderSystem(em),
		fonts:           fonts,
		onPause:         onPause,
		seconds:         cfg.Seconds,
		interval:        cfg.TickInterval,
	}
}

// StartCountdown 开始倒计时，结束时调用 onDone
// 已有的倒计时会先被取消
func (m *CountdownOverlayModule) StartCountdown(onDone func()) {
	m.CancelCountdown()

	m.overlay = newOverlay(m.entityManager, countdownOverlayAlpha)
	m.pauseButton = entities.NewButton(m.entityManager, m.fonts.Normal, "II",
		config.PauseButtonX, config.PauseButtonY, config.PauseButtonSize, config.PauseButtonSize,
		m.requestPause)
	var id ecs.EntityID
	id = entities.NewCountdown(m.entityManager, m.fonts.Countdown,
		config.GameWindowWidth/2, config.GameWindowHeight/2,
		m.seconds, m.interval, func() {
			if m.active == id {
				m.finish()
			}
			if onDone != nil {
				onDone()
			}
		})
	m.active = id
	m.countdownSystem.Start(id)
	log.Printf("[CountdownOverlayModule] Countdown started (%d)", m.seconds)
}

// CancelCountdown 取消正在进行的倒计时
func (m *CountdownOverlayModule) CancelCountdown() {
	if m.active == 0 {
		return
	}
	m.countdownSystem.Cancel(m.active)
	m.finish()
}

// IsVisible 是否正在倒计时
func (m *CountdownOverlayModule) IsVisible() bool {
	return m.active != 0
}

func (m *CountdownOverlayModule) finish() {
	for _, id := range []ecs.EntityID{m.overlay, m.pauseButton} {
		if id != 0 {
			m.entityManager.DestroyEntity(id)
		}
	}
	m.overlay, m.pauseButton = 0, 0
	m.active = 0
}

func (m *CountdownOverlayModule) requestPause() {
	log.Printf("[CountdownOverlayModule] Pause requested during countdown")
	if m.onPause != nil {
		m.onPause()
	}
}

// OnSliceAt 手或指针划入暂停按钮
func (m *CountdownOverlayModule) OnSliceAt(source int, x, y float64) {
	if m.IsVisible() {
		m.buttonSystem.Hover(source, x, y)
	}
}

// OnSliceEnd 输入源离开
func (m *CountdownOverlayModule) OnSliceEnd(source int) {
	m.buttonSystem.Leave(source)
}

// OnTap 点击暂停按钮
func (m *CountdownOverlayModule) OnTap(source int, x, y float64) {
	if m.IsVisible() {
		m.buttonSystem.Tap(source, x, y)
	}
}

// Update 推进倒计时
func (m *CountdownOverlayModule) Update(deltaTime float64) {
	m.countdownSystem.Update(deltaTime)
	m.buttonSystem.Update(deltaTime)
	m.entityManager.RemoveMarkedEntities()
}

// Draw 绘制遮罩和数字
func (m *CountdownOverlayModule) Draw(screen *ebiten.Image) {
	if m.IsVisible() {
		m.renderSystem.Draw(screen)
	}
}

package modules

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
	"github.com/decker502/ninjafruit/pkg/systems"
)

// QuitDialogMessage 退出确认文字
const QuitDialogMessage = "Are you sure you want to quit the game?"

var dialogPanelColor = color.RGBA{R: 0x14, G: 0x14, B: 0x1a, A: 0xf0}

// QuitDialogModule 退出确认对话框
// Yes 调用 OnQuit，Cancel 关闭对话框
type QuitDialogModule struct {
	entityManager *ecs.EntityManager
	buttonSystem  *systems.ButtonSystem
	renderSystem  *systems.RenderSystem
	fonts         Fonts

	onQuit  func()
	visible bool
}

// NewQuitDialogModule 创建退出确认对话框（默认隐藏）
func NewQuitDialogModule(fonts Fonts, sound systems.SoundPlayer, onQuit func()) *QuitDialogModule {
	em := ecs.NewEntityManager()
	return &QuitDialogModule{
		entityManager: em,
		buttonSystem:  systems.NewButtonSystem(em, sound),
		renderSystem:  systems.NewRenderSystem(em),
		fonts:         fonts,
		onQuit:        onQuit,
	}
}

// Show 显示对话框
func (m *QuitDialogModule) Show() {
	if m.visible {
		return
	}
	m.visible = true

	const panelW, panelH = 620.0, 260.0
	px := (config.GameWindowWidth - panelW) / 2
	py := (config.GameWindowHeight - panelH) / 2

	newOverlay(m.entityManager, config.MenuOverlayAlpha)

	panel := m.entityManager.CreateEntity()
	ecs.AddComponent(m.entityManager, panel, &components.PositionComponent{X: px, Y: py})
	ecs.AddComponent(m.entityManager, panel, &components.AppearanceComponent{
		Shape: components.ShapeRect, Width: panelW, Height: panelH,
		Color: dialogPanelColor, Scale: 1, Alpha: 1, Layer: components.LayerDialog - 1,
	})

	entities.NewLabel(m.entityManager, m.fonts.Normal, QuitDialogMessage,
		config.GameWindowWidth/2, py+80, entities.TextColor, components.LayerDialog)

	const btnW, btnH = 200.0, config.MenuButtonHeight
	by := py + panelH - btnH - 40
	entities.NewButton(m.entityManager, m.fonts.Normal, "Yes", px+50, by, btnW, btnH, m.confirm)
	entities.NewButton(m.entityManager, m.fonts.Normal, "Cancel", px+panelW-50-btnW, by, btnW, btnH, m.Hide)
	log.Printf("[QuitDialogModule] Shown")
}

// Hide 关闭对话框
func (m *QuitDialogModule) Hide() {
	if !m.visible {
		return
	}
	m.visible = false
	destroyAll(m.entityManager)
}

// IsVisible 对话框是否可见
func (m *QuitDialogModule) IsVisible() bool {
	return m.visible
}

func (m *QuitDialogModule) confirm() {
	log.Printf("[QuitDialogModule] Quit confirmed")
	m.Hide()
	if m.onQuit != nil {
		m.onQuit()
	}
}

// OnSliceAt 刀光划过按钮即触发
func (m *QuitDialogModule) OnSliceAt(source int, x, y float64) {
	m.buttonSystem.Hover(source, x, y)
}

// OnSliceEnd 实现 SliceEffectReceiver
func (m *QuitDialogModule) OnSliceEnd(source int) {
	m.buttonSystem.Leave(source)
}

// OnTap 点击按钮
func (m *QuitDialogModule) OnTap(source int, x, y float64) {
	m.buttonSystem.Tap(source, x, y)
}

// Update 刷新按钮状态
func (m *QuitDialogModule) Update(deltaTime float64) {
	m.buttonSystem.Update(deltaTime)
	m.entityManager.RemoveMarkedEntities()
}

// Draw 绘制对话框
func (m *QuitDialogModule) Draw(screen *ebiten.Image) {
	if m.visible {
		m.renderSystem.Draw(screen)
	}
}

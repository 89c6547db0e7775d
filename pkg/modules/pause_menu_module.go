package modules

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/systems"
)

// 暂停菜单按钮
const (
	MenuResume        = "Resume"
	MenuRestart       = "Restart"
	MenuBackToStart   = "Back to start"
	MenuClose         = "Close"
	MenuMusic         = "Music"
	MenuSound         = "Sound"
	MenuCamera        = "Camera background"
	MenuHandDetection = "Hand detection"
	MenuBackground    = "Background"
)

// PauseMenuCallbacks 暂停菜单回调函数集合
type PauseMenuCallbacks struct {
	OnResume              func() // "继续"（未开局时为"关闭"）
	OnRestart             func()
	OnBackToStart         func()
	OnToggleMusic         func()
	OnToggleSound         func()
	OnToggleCamera        func()
	OnToggleHandDetection func()
	OnNextBackground      func()
}

// PauseMenuModule 暂停/设置菜单
//
// 游戏中打开时显示继续、重新开始、返回开始界面和全部设置开关；
// 在开始界面打开时只显示关闭按钮和设置开关。
// 所有按钮都可以点击或用刀光划过触发。
// 菜单不绘制刀光轨迹。
type PauseMenuModule struct {
	entityManager *ecs.EntityManager
	buttonSystem  *systems.ButtonSystem
	renderSystem  *systems.RenderSystem
	fonts         Fonts

	gameState *game.GameState
	callbacks PauseMenuCallbacks

	visible bool
	buttons map[string]ecs.EntityID
}

// NewPauseMenuModule 创建暂停菜单（默认隐藏）
func NewPauseMenuModule(gs *game.GameState, fonts Fonts, sound systems.SoundPlayer, callbacks PauseMenuCallbacks) *PauseMenuModule {
	em := ecs.NewEntityManager()
	return &PauseMenuModule{
		entityManager: em,
		buttonSystem:  systems.NewButtonSystem(em, sound),
		renderSystem:  systems.NewRenderSystem(em),
		fonts:         fonts,
		gameState:     gs,
		callbacks:     callbacks,
		buttons:       make(map[string]ecs.EntityID),
	}
}

// Show 显示菜单
// inGame 为 true 时显示游戏控制按钮
func (m *PauseMenuModule) Show(inGame bool) {
	if m.visible {
		m.Hide()
	}
	m.visible = true

	newOverlay(m.entityManager, config.MenuOverlayAlpha)

	title := "Settings"
	if inGame {
		title = "Paused"
	}
	entities.NewLabel(m.entityManager, m.fonts.Large, title,
		config.GameWindowWidth/2, 48, entities.TitleColor, components.LayerDialog)

	type item struct {
		label  string
		toggle bool
		action func()
	}
	var items []item
	if inGame {
		items = append(items,
			item{MenuResume, false, m.callbacks.OnResume},
			item{MenuRestart, false, m.callbacks.OnRestart},
			item{MenuBackToStart, false, m.callbacks.OnBackToStart},
		)
	} else {
		items = append(items, item{MenuClose, false, m.callbacks.OnResume})
	}
	items = append(items,
		item{MenuMusic, true, m.callbacks.OnToggleMusic},
		item{MenuSound, true, m.callbacks.OnToggleSound},
		item{MenuCamera, true, m.callbacks.OnToggleCamera},
		item{MenuHandDetection, true, m.callbacks.OnToggleHandDetection},
		item{MenuBackground, false, m.callbacks.OnNextBackground},
	)

	x := (config.GameWindowWidth - config.MenuButtonWidth) / 2
	y := 90.0
	for _, it := range items {
		action := it.action
		onClick := func() {
			if action != nil {
				action()
			}
			if m.visible {
				m.Refresh()
			}
		}
		var id ecs.EntityID
		if it.toggle {
			id = entities.NewToggleButton(m.entityManager, m.fonts.Normal, it.label, x, y,
				config.MenuButtonWidth, config.MenuButtonHeight, false, onClick)
		} else {
			id = entities.NewButton(m.entityManager, m.fonts.Normal, it.label, x, y,
				config.MenuButtonWidth, config.MenuButtonHeight, onClick)
		}
		m.buttons[it.label] = id
		y += config.MenuButtonHeight + config.MenuButtonSpacing
	}

	m.Refresh()
	log.Printf("[PauseMenuModule] Shown (in game: %v)", inGame)
}

// Hide 隐藏菜单
func (m *PauseMenuModule) Hide() {
	if !m.visible {
		return
	}
	m.visible = false
	destroyAll(m.entityManager)
	clear(m.buttons)
	log.Printf("[PauseMenuModule] Hidden")
}

// IsVisible 菜单是否可见
func (m *PauseMenuModule) IsVisible() bool {
	return m.visible
}

// Refresh 用当前设置刷新开关按钮的状态
func (m *PauseMenuModule) Refresh() {
	settings := m.gameState.GetSettingsManager().GetSettings()
	m.setChecked(MenuMusic, m.gameState.MusicEnabled)
	m.setChecked(MenuSound, settings.SoundEnabled)
	m.setChecked(MenuCamera, m.gameState.UseCamera)
	m.setChecked(MenuHandDetection, m.gameState.UseHandTracker)
	if btn := m.button(MenuBackground); btn != nil {
		btn.Label = fmt.Sprintf("%s %d", MenuBackground, settings.BackgroundIndex)
	}
}

// HasButton 菜单当前是否有该按钮
func (m *PauseMenuModule) HasButton(label string) bool {
	return m.button(label) != nil
}

// IsChecked 开关按钮当前是否打开
func (m *PauseMenuModule) IsChecked(label string) bool {
	btn := m.button(label)
	return btn != nil && btn.Checked
}

// ButtonCenter 返回按钮中心坐标
func (m *PauseMenuModule) ButtonCenter(label string) (x, y float64, ok bool) {
	id, found := m.buttons[label]
	if !found {
		return 0, 0, false
	}
	pos, ok1 := ecs.GetComponent[*components.PositionComponent](m.entityManager, id)
	btn, ok2 := ecs.GetComponent[*components.ButtonComponent](m.entityManager, id)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return pos.X + btn.Width/2, pos.Y + btn.Height/2, true
}

func (m *PauseMenuModule) setChecked(label string, checked bool) {
	if btn := m.button(label); btn != nil {
		btn.Checked = checked
	}
}

func (m *PauseMenuModule) button(label string) *components.ButtonComponent {
	id, ok := m.buttons[label]
	if !ok {
		return nil
	}
	btn, ok := ecs.GetComponent[*components.ButtonComponent](m.entityManager, id)
	if !ok {
		return nil
	}
	return btn
}

// OnSliceAt 刀光划过按钮即触发
func (m *PauseMenuModule) OnSliceAt(source int, x, y float64) {
	m.buttonSystem.Hover(source, x, y)
}

// OnSliceEnd 实现 SliceEffectReceiver
func (m *PauseMenuModule) OnSliceEnd(source int) {
	m.buttonSystem.Leave(source)
}

// OnTap 点击按钮
func (m *PauseMenuModule) OnTap(source int, x, y float64) {
	m.buttonSystem.Tap(source, x, y)
}

// Update 刷新按钮状态
func (m *PauseMenuModule) Update(deltaTime float64) {
	m.buttonSystem.Update(deltaTime)
	m.entityManager.RemoveMarkedEntities()
}

// Draw 绘制菜单
func (m *PauseMenuModule) Draw(screen *ebiten.Image) {
	if m.visible {
		m.renderSystem.Draw(screen)
	}
}

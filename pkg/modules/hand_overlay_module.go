package modules

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/pose"
	"github.com/decker502/ninjafruit/pkg/systems"
)

var (
	leftHandColor  = color.RGBA{R: 0x4c, G: 0xc9, B: 0xf0, A: 0xff}
	rightHandColor = color.RGBA{R: 0xf7, G: 0x25, B: 0x85, A: 0xff}
	boneColor      = color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0x90}
)

// HandOverlayModule 手腕关键点叠加层
// 只在手部检测开启时绘制；关闭手部检测后即使摄像头背景仍在，也不绘制
type HandOverlayModule struct {
	entityManager *ecs.EntityManager
	cursorSystem  *systems.HandCursorSystem
	renderSystem  *systems.RenderSystem
	gameState     *game.GameState

	left, right ecs.EntityID
}

// NewHandOverlayModule 创建手腕叠加层
func NewHandOverlayModule(gs *game.GameState) *HandOverlayModule {
	em := ecs.NewEntityManager()
	return &HandOverlayModule{
		entityManager: em,
		cursorSystem:  systems.NewHandCursorSystem(em),
		renderSystem:  systems.NewRenderSystem(em),
		gameState:     gs,
		left:          entities.NewHandCursor(em, 0, config.HandCursorRadius, leftHandColor),
		right:         entities.NewHandCursor(em, 1, config.HandCursorRadius, rightHandColor),
	}
}

// UpdateLeftHandPosition 实现 HandPositionReceiver
func (m *HandOverlayModule) UpdateLeftHandPosition(x, y float64) {
	m.cursorSystem.SetHands(pose.At(x, y), pose.Keypoint{})
}

// UpdateRightHandPosition 实现 HandPositionReceiver
func (m *HandOverlayModule) UpdateRightHandPosition(x, y float64) {
	m.cursorSystem.SetHands(pose.Keypoint{}, pose.At(x, y))
}

// IsVisible 叠加层是否绘制
func (m *HandOverlayModule) IsVisible() bool {
	return m.gameState.UseHandTracker
}

// HideCursors 隐藏光标（关键点源断开时）
func (m *HandOverlayModule) HideCursors() {
	m.cursorSystem.HideAll()
}

// CursorVisible 返回某只手的光标是否可见（0 = 左，1 = 右）
func (m *HandOverlayModule) CursorVisible(hand int) bool {
	id := m.left
	if hand == 1 {
		id = m.right
	}
	c, ok := ecs.GetComponent[*components.HandCursorComponent](m.entityManager, id)
	return ok && c.Visible
}

// Update 隐藏长时间没有更新的光标
func (m *HandOverlayModule) Update(deltaTime float64) {
	m.cursorSystem.Update(deltaTime)
}

// Draw 绘制两只手腕之间的连线和光标
func (m *HandOverlayModule) Draw(screen *ebiten.Image) {
	if !m.IsVisible() {
		return
	}
	if m.CursorVisible(0) && m.CursorVisible(1) {
		lp, _ := ecs.GetComponent[*components.PositionComponent](m.entityManager, m.left)
		rp, _ := ecs.GetComponent[*components.PositionComponent](m.entityManager, m.right)
		vector.StrokeLine(screen, float32(lp.X), float32(lp.Y), float32(rp.X), float32(rp.Y), 3, boneColor, true)
	}
	m.renderSystem.Draw(screen)
}

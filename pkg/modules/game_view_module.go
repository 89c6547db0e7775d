package modules

import (
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/systems"
	"github.com/decker502/ninjafruit/pkg/utils"
)

var (
	lifeColor     = color.RGBA{R: 0x5c, G: 0xd6, B: 0x6b, A: 0xff}
	lifeLostColor = color.RGBA{R: 0xe6, G: 0x39, B: 0x46, A: 0xff}
)

// GameViewCallbacks 游戏界面回调函数集合
type GameViewCallbacks struct {
	OnGameOver       func() // 切中炸弹或生命耗尽
	OnPauseRequested func() // 点击暂停按钮
}

// GameViewModule 游戏主界面
//
// 负责一局的全部玩法：出果、切割、漏接计数、分数显示和结束横幅。
// 只有在游戏已开始且未暂停时才会收到输入；暂停时画面冻结。
type GameViewModule struct {
	entityManager  *ecs.EntityManager
	physicsSystem  *systems.PhysicsSystem
	lifetimeSystem *systems.LifetimeSystem
	tweenSystem    *systems.TweenSystem
	spawnSystem    *systems.FruitSpawnSystem
	sliceSystem    *systems.SliceSystem
	missSystem     *systems.MissSystem
	trailSystem    *systems.BladeTrailSystem
	buttonSystem   *systems.ButtonSystem
	renderSystem   *systems.RenderSystem

	gameState *game.GameState
	cfg       *config.GameConfig
	fonts     Fonts
	callbacks GameViewCallbacks

	scoreLabel ecs.EntityID
	bestLabel  ecs.EntityID
	lifeMarks  []ecs.EntityID
}

// NewGameViewModule 创建游戏界面
func NewGameViewModule(gs *game.GameState, cfg *config.GameConfig, fonts Fonts, sound systems.SoundPlayer, rng *rand.Rand, callbacks GameViewCallbacks) *GameViewModule {
	em := ecs.NewEntityManager()
	m := &GameViewModule{
		entityManager:  em,
		physicsSystem:  systems.NewPhysicsSystem(em, cfg.Gameplay.Gravity),
		lifetimeSystem: systems.NewLifetimeSystem(em),
		tweenSystem:    systems.NewTweenSystem(em),
		spawnSystem:    systems.NewFruitSpawnSystem(em, cfg, rng, sound, config.GameWindowWidth, config.GameWindowHeight),
		sliceSystem:    systems.NewSliceSystem(em, rng, sound),
		missSystem:     systems.NewMissSystem(em, config.GameWindowHeight),
		trailSystem:    systems.NewBladeTrailSystem(em, cfg.Gameplay.TrailLifetime, cfg.Gameplay.MinSliceDistance, bladeColor),
		buttonSystem:   systems.NewButtonSystem(em, sound),
		renderSystem:   systems.NewRenderSystem(em),
		gameState:      gs,
		cfg:            cfg,
		fonts:          fonts,
		callbacks:      callbacks,
	}
	m.missSystem.OnMiss = m.onMiss
	return m
}

// IsVisible 已开局时游戏界面可见
func (m *GameViewModule) IsVisible() bool {
	return m.gameState.IsGameStarted()
}

// ResetGame 清空场地并开始新的一局
func (m *GameViewModule) ResetGame() {
	m.Clear()
	m.gameState.ResetRound(m.cfg.Gameplay.Lives)
	m.spawnSystem.Reset()
	m.createHUD()
	m.syncHUD()
	log.Printf("[GameViewModule] New round (lives: %d)", m.cfg.Gameplay.Lives)
}

// Clear 移除所有实体
func (m *GameViewModule) Clear() {
	m.trailSystem.Clear()
	destroyAll(m.entityManager)
	m.entityManager.RemoveMarkedEntities()
	m.lifeMarks = m.lifeMarks[:0]
	m.scoreLabel, m.bestLabel = 0, 0
}

func (m *GameViewModule) createHUD() {
	m.scoreLabel = entities.NewLabel(m.entityManager, m.fonts.Large, "", config.ScoreTextX, config.ScoreTextY, entities.TitleColor, components.LayerHUD)
	m.bestLabel = entities.NewLabel(m.entityManager, m.fonts.Small, "", config.BestTextX, config.BestTextY, entities.TextColor, components.LayerHUD)
	for _, id := range []ecs.EntityID{m.scoreLabel, m.bestLabel} {
		if app, ok := ecs.GetComponent[*components.AppearanceComponent](m.entityManager, id); ok {
			app.AlignStart = true
		}
	}

	for i := 0; i < m.cfg.Gameplay.Lives; i++ {
		id := m.entityManager.CreateEntity()
		ecs.AddComponent(m.entityManager, id, &components.PositionComponent{
			X: config.GameWindowWidth - config.LivesRightMargin + float64(i)*28,
			Y: config.PauseButtonY + config.PauseButtonSize/2,
		})
		ecs.AddComponent(m.entityManager, id, &components.AppearanceComponent{
			Shape: components.ShapeCircle, Radius: 10, Color: lifeColor,
			Scale: 1, Alpha: 1, Layer: components.LayerHUD,
		})
		m.lifeMarks = append(m.lifeMarks, id)
	}
	// 生命标记从左往右排，暂停按钮放在它们右侧
	entities.NewButton(m.entityManager, m.fonts.Normal, "II",
		config.PauseButtonX, config.PauseButtonY, config.PauseButtonSize, config.PauseButtonSize,
		m.requestPause)
}

// syncHUD 把分数和生命同步到 HUD 实体
func (m *GameViewModule) syncHUD() {
	if app, ok := ecs.GetComponent[*components.AppearanceComponent](m.entityManager, m.scoreLabel); ok {
		app.Text = fmt.Sprintf("%d", m.gameState.Score)
	}
	if app, ok := ecs.GetComponent[*components.AppearanceComponent](m.entityManager, m.bestLabel); ok {
		app.Text = fmt.Sprintf("Best %d", m.gameState.GetBestScore())
	}
	lost := m.cfg.Gameplay.Lives - m.gameState.Lives
	for i, id := range m.lifeMarks {
		app, ok := ecs.GetComponent[*components.AppearanceComponent](m.entityManager, id)
		if !ok {
			continue
		}
		// 从右往左依次变红
		if i >= len(m.lifeMarks)-lost {
			app.Color = lifeLostColor
		} else {
			app.Color = lifeColor
		}
	}
}

func (m *GameViewModule) requestPause() {
	if m.callbacks.OnPauseRequested != nil {
		m.callbacks.OnPauseRequested()
	}
}

// onMiss 漏接一个水果
func (m *GameViewModule) onMiss(ecs.EntityID) {
	if m.gameState.IsGameOver() {
		return
	}
	remaining := m.gameState.LoseLife()
	log.Printf("[GameViewModule] Fruit missed, %d lives left", remaining)
	if remaining == 0 {
		m.triggerGameOver()
	}
}

func (m *GameViewModule) triggerGameOver() {
	if m.gameState.IsGameOver() {
		return
	}
	m.gameState.SetGameOver(true)
	log.Printf("[GameViewModule] Game over (score: %d)", m.gameState.Score)
	if m.callbacks.OnGameOver != nil {
		m.callbacks.OnGameOver()
	}
}

// ShowGameOverBanner 延迟 delay 秒弹出结束横幅
func (m *GameViewModule) ShowGameOverBanner(delay float64, newBest bool) {
	entities.NewGameOverBanner(m.entityManager, m.fonts.Title,
		config.GameWindowWidth/2, config.GameWindowHeight/2, delay)
	if newBest {
		id := entities.NewLabel(m.entityManager, m.fonts.Normal, "New best score!",
			config.GameWindowWidth/2, config.GameWindowHeight/2+70, entities.TitleColor, components.LayerBanner)
		app, _ := ecs.GetComponent[*components.AppearanceComponent](m.entityManager, id)
		app.Alpha = 0
		ecs.AddComponent(m.entityManager, id, &components.TweenComponent{
			Tracks:   []components.TweenTrack{{Property: components.TweenAlpha, From: 0, To: 1}},
			Delay:    delay + 0.4,
			Duration: 0.4,
			Easing:   utils.EaseOutCubic,
		})
	}
}

// SliceSegment 用一段刀光切割（供输入和测试使用）
func (m *GameViewModule) SliceSegment(x1, y1, x2, y2 float64) systems.SliceResult {
	result := m.sliceSystem.Slice(x1, y1, x2, y2)
	if m.gameState.IsGameOver() {
		return result
	}
	m.gameState.AddScore(result.Score)
	if result.Bomb {
		m.triggerGameOver()
	}
	m.syncHUD()
	return result
}

// OnSliceAt 刀光移动
func (m *GameViewModule) OnSliceAt(source int, x, y float64) {
	if !m.gameState.IsGameStarted() || m.gameState.IsPaused() {
		return
	}
	seg, ok := m.trailSystem.AddPoint(source, x, y)
	if !ok || m.gameState.IsGameOver() {
		return
	}
	m.SliceSegment(seg.X1, seg.Y1, seg.X2, seg.Y2)
}

// OnSliceEnd 结束输入源的笔画
func (m *GameViewModule) OnSliceEnd(source int) {
	m.trailSystem.EndStroke(source)
	m.buttonSystem.Leave(source)
}

// OnTap 点击暂停按钮
func (m *GameViewModule) OnTap(source int, x, y float64) {
	if !m.gameState.IsGameStarted() || m.gameState.IsPaused() || m.gameState.IsGameOver() {
		return
	}
	m.buttonSystem.Tap(source, x, y)
}

// Update 推进一帧；暂停时画面冻结
func (m *GameViewModule) Update(deltaTime float64) {
	if !m.gameState.IsGameStarted() || m.gameState.IsPaused() {
		return
	}

	if !m.gameState.IsGameOver() {
		m.spawnSystem.Update(deltaTime)
	}
	m.physicsSystem.Update(deltaTime)
	m.missSystem.Update(deltaTime)
	m.lifetimeSystem.Update(deltaTime)
	m.tweenSystem.Update(deltaTime)
	m.trailSystem.Update(deltaTime)
	m.buttonSystem.Update(deltaTime)
	m.syncHUD()
	m.entityManager.RemoveMarkedEntities()
}

// Draw 绘制游戏界面
func (m *GameViewModule) Draw(screen *ebiten.Image) {
	if m.gameState.IsGameStarted() {
		m.renderSystem.Draw(screen)
	}
}

// EntityManager 返回游戏界面的实体管理器（测试使用）
func (m *GameViewModule) EntityManager() *ecs.EntityManager {
	return m.entityManager
}

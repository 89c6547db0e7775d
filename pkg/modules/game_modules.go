package modules

import (
	"context"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/pose"
	"github.com/decker502/ninjafruit/pkg/systems"
)

// GameModulesConfig 组装界面和控制器所需的依赖
type GameModulesConfig struct {
	Context   context.Context
	GameState *game.GameState
	Config    *config.GameConfig
	Fonts     Fonts
	Audio     Audio       // 可为 nil
	Source    pose.Source // 可为 nil
	RNG       *rand.Rand

	// OnQuit 退出确认后调用
	OnQuit func()
	// OnBackgroundChanged 背景切换后调用
	OnBackgroundChanged func(index int)
}

// GameModules 游戏的全部界面和控制器，以及它们之间的回调连接
type GameModules struct {
	Toast       *ToastModule
	QuitDialog  *QuitDialogModule
	PauseMenu   *PauseMenuModule
	Countdown   *CountdownOverlayModule
	StartScreen *StartScreenModule
	GameView    *GameViewModule
	HandOverlay *HandOverlayModule

	Pause    *PauseController
	Settings *SettingsController
	Router   *InputRouter
}

// NewGameModules 创建并连接所有界面
// 创建后开始界面处于显示状态
func NewGameModules(cfg GameModulesConfig) *GameModules {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.RNG == nil {
		cfg.RNG = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	var sound systems.SoundPlayer
	if cfg.Audio != nil {
		sound = cfg.Audio
	}

	m := &GameModules{}
	m.Toast = NewToastModule(cfg.Fonts)
	m.QuitDialog = NewQuitDialogModule(cfg.Fonts, sound, cfg.OnQuit)
	m.Countdown = NewCountdownOverlayModule(cfg.Config.Countdown, cfg.Fonts, sound, func() { m.Pause.RequestPause() })
	m.HandOverlay = NewHandOverlayModule(cfg.GameState)

	m.Settings = NewSettingsController(cfg.Context, cfg.GameState, cfg.Audio, cfg.Source, m.Toast,
		cfg.Config.BackgroundCount(), cfg.OnBackgroundChanged)

	m.PauseMenu = NewPauseMenuModule(cfg.GameState, cfg.Fonts, sound, PauseMenuCallbacks{
		OnResume:              func() { m.Pause.Resume() },
		OnRestart:             func() { m.Pause.Restart() },
		OnBackToStart:         func() { m.Pause.BackToStart() },
		OnToggleMusic:         m.Settings.ToggleMusic,
		OnToggleSound:         m.Settings.ToggleSound,
		OnToggleCamera:        m.Settings.ToggleCameraBackground,
		OnToggleHandDetection: m.Settings.ToggleHandDetection,
		OnNextBackground:      m.Settings.NextBackground,
	})

	m.StartScreen = NewStartScreenModule(cfg.Config, cfg.Fonts, sound, cfg.RNG, StartScreenCallbacks{
		OnStart:    func() { m.Pause.StartGame() },
		OnSettings: func() { m.Pause.OpenSettings() },
		OnQuit:     m.QuitDialog.Show,
	})

	m.GameView = NewGameViewModule(cfg.GameState, cfg.Config, cfg.Fonts, sound, cfg.RNG, GameViewCallbacks{
		OnGameOver:       func() { m.Pause.GameOver() },
		OnPauseRequested: func() { m.Pause.RequestPause() },
	})

	m.Pause = NewPauseController(cfg.GameState, cfg.Config, cfg.Audio, PauseControllerDeps{
		StartScreen: m.StartScreen,
		GameView:    m.GameView,
		PauseMenu:   m.PauseMenu,
		Countdown:   m.Countdown,
	})

	m.Router = NewInputRouter(cfg.GameState, InputRouterViews{
		QuitDialog:  m.QuitDialog,
		PauseMenu:   m.PauseMenu,
		StartScreen: m.StartScreen,
		Countdown:   m.Countdown,
		GameView:    m.GameView,
	})
	m.Router.AddHandReceiver(m.HandOverlay)

	m.StartScreen.Show()
	log.Printf("[GameModules] Modules wired")
	return m
}

// HandleBack 返回键/Esc：关闭对话框、暂停或打开退出确认
func (m *GameModules) HandleBack() {
	switch {
	case m.QuitDialog.IsVisible():
		m.QuitDialog.Hide()
	case m.PauseMenu.IsVisible():
		m.Pause.Resume()
	case m.Pause.State() == StateRunning || m.Pause.State() == StateShowingCountdown:
		m.Pause.RequestPause()
	case m.StartScreen.IsVisible():
		m.QuitDialog.Show()
	}
}

// Update 按固定顺序更新所有界面
func (m *GameModules) Update(deltaTime float64) {
	m.StartScreen.Update(deltaTime)
	m.GameView.Update(deltaTime)
	m.HandOverlay.Update(deltaTime)
	m.Countdown.Update(deltaTime)
	m.PauseMenu.Update(deltaTime)
	m.QuitDialog.Update(deltaTime)
	m.Toast.Update(deltaTime)
	m.Pause.Update(deltaTime)
}

// Draw 按层级绘制所有界面（背景由场景绘制）
func (m *GameModules) Draw(screen *ebiten.Image) {
	m.GameView.Draw(screen)
	m.StartScreen.Draw(screen)
	m.HandOverlay.Draw(screen)
	m.Countdown.Draw(screen)
	m.PauseMenu.Draw(screen)
	m.QuitDialog.Draw(screen)
	m.Toast.Draw(screen)
}

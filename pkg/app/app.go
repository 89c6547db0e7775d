// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	synth "github.com/decker502/ninjafruit/internal/audio"
	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/pose"
	"github.com/decker502/ninjafruit/pkg/scenes"
	"github.com/decker502/ninjafruit/pkg/utils"
)

// DefaultAppName gdata 存储目录名
const DefaultAppName = "ninjafruit"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 游戏配置文件，为空时使用内置的 data/config/game.yaml
	ConfigPath string
	// PoseAddr 覆盖配置中的关键点源监听地址
	PoseAddr string
	// DisablePose 不创建关键点源（只支持触摸和鼠标）
	DisablePose bool
	// AppName gdata 存储目录名，为空时使用 DefaultAppName
	AppName string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	gameState    *game.GameState
	source       pose.Source
	mainScene    *scenes.MainScene
	verbose      bool

	pendingWindowSizeReset   bool // 退出全屏后延迟恢复窗口大小
	windowSizeResetCountdown int
	shutdown                 bool
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = config.DefaultGameConfigPath
	}
	gameConfig, err := config.LoadGameConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}
	if cfg.PoseAddr != "" {
		gameConfig.Pose.ListenAddr = cfg.PoseAddr
	}
	log.Printf("[App] Game config loaded from %s (%d fruit kinds, %d backgrounds)",
		configPath, len(gameConfig.Fruits), gameConfig.BackgroundCount())

	// 持久化存储，失败时降级为内存模式
	gameState := game.GetGameState()
	gameState.AttachStorage(openStorage(cfg.AppName))
	if gameState.GetSettingsManager().GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(synth.SampleRate)
	resourceManager := game.NewResourceManager(audioContext)

	audioManager := game.NewAudioManager(audioContext, gameState.GetSettingsManager())
	gameState.SetAudioManager(audioManager)
	log.Printf("[App] AudioManager initialized")

	a := &App{
		gameState: gameState,
		verbose:   cfg.Verbose,
	}

	if !cfg.DisablePose {
		a.source = pose.NewServer(pose.ServerConfig{
			Addr:         gameConfig.Pose.ListenAddr,
			Path:         gameConfig.Pose.Path,
			EventBuffer:  gameConfig.Pose.EventBuffer,
			ScreenWidth:  config.GameWindowWidth,
			ScreenHeight: config.GameWindowHeight,
		})
		log.Printf("[App] Pose source configured on %s%s", gameConfig.Pose.ListenAddr, gameConfig.Pose.Path)
	}

	a.sceneManager = game.NewSceneManager()
	loadingScene := scenes.NewLoadingScene(resourceManager, a.sceneManager, gameConfig.Backgrounds, func() game.Scene {
		a.mainScene = scenes.NewMainScene(resourceManager, gameState, scenes.MainSceneConfig{
			Config: gameConfig,
			Source: a.source,
		})
		return a.mainScene
	})
	a.sceneManager.SwitchTo(loadingScene)

	return a, nil
}

// openStorage 打开 gdata 存储，失败返回 nil
func openStorage(appName string) *gdata.Manager {
	if appName == "" {
		appName = DefaultAppName
	}
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
	} else if dir := utils.GetStoragePath(); dir != "" {
		log.Printf("[App] Storage dir: %s", dir)
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
		return nil
	}
	return manager
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.SetFocused(ebiten.IsFocused())

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)

	if a.mainScene != nil && a.mainScene.QuitRequested() {
		log.Printf("[App] Quit confirmed, terminating")
		return ebiten.Termination
	}
	return nil
}

// toggleFullscreen 切换全屏并保存，下次启动时恢复
func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		// 窗口管理器需要几帧处理退出全屏
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}

	sm := a.gameState.GetSettingsManager()
	sm.SetFullscreen(fullscreen)
	if err := sm.Save(); err != nil {
		log.Printf("[App] Failed to save fullscreen setting: %v", err)
	}
	log.Printf("[App] Fullscreen: %v", fullscreen)
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右留黑边，用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 保存最高分和设置并停止关键点源
// 可重复调用，只有第一次生效
func (a *App) Shutdown() bool {
	if a.shutdown {
		return true
	}
	a.shutdown = true

	ok := a.sceneManager.SaveOnExit()
	if a.mainScene == nil {
		// 还在加载界面，直接写回启动时载入的状态
		if err := a.gameState.Persist(); err != nil {
			log.Printf("[App] Failed to persist state: %v", err)
			ok = false
		}
	}
	if a.source != nil && a.source.Running() {
		a.source.Stop()
	}
	log.Printf("[App] Shutdown complete (saved: %v)", ok)
	return ok
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

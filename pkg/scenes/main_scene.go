package scenes

import (
	"context"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/modules"
	"github.com/decker502/ninjafruit/pkg/pose"
	"github.com/decker502/ninjafruit/pkg/utils"
)

// maxPoseEventsPerFrame 每帧最多处理的关键点事件数
const maxPoseEventsPerFrame = 32

// MainSceneConfig MainScene 的依赖
type MainSceneConfig struct {
	Config *config.GameConfig
	// Source 手部关键点源，可为 nil（只支持触摸和鼠标）
	Source pose.Source
	// RNG 可为 nil
	RNG *rand.Rand
}

// MainScene 游戏唯一的主场景
//
// 持有全部界面模块，每帧：
//  1. 处理返回键
//  2. 读取触摸/鼠标并通过 InputRouter 分发
//  3. 在主循环中消费关键点源的事件
//  4. 更新所有模块
//
// 摄像头背景开启且已有预览帧时以摄像头画面为背景，否则绘制渐变背景。
type MainScene struct {
	resourceManager *game.ResourceManager
	gameState       *game.GameState
	cfg             *config.GameConfig

	modules *modules.GameModules
	source  pose.Source
	tracker *pose.HandTracker
	cancel  context.CancelFunc

	strokes *utils.StrokeTracker
	samples []utils.PointerSample

	backgroundIndex int
	quitRequested   bool
}

// NewMainScene 创建主场景并应用已保存的设置
func NewMainScene(rm *game.ResourceManager, gs *game.GameState, cfg MainSceneConfig) *MainScene {
	ctx, cancel := context.WithCancel(context.Background())
	s := &MainScene{
		resourceManager: rm,
		gameState:       gs,
		cfg:             cfg.Config,
		source:          cfg.Source,
		cancel:          cancel,
		strokes:         utils.NewStrokeTracker(),
		backgroundIndex: gs.GetSettingsManager().GetSettings().BackgroundIndex,
	}

	// 避免把 nil 指针包装成非 nil 接口
	var audio modules.Audio
	if am := gs.GetAudioManager(); am != nil {
		audio = am
	}

	s.modules = modules.NewGameModules(modules.GameModulesConfig{
		Context:             ctx,
		GameState:           gs,
		Config:              cfg.Config,
		Fonts:               modules.LoadFonts(rm),
		Audio:               audio,
		Source:              cfg.Source,
		RNG:                 cfg.RNG,
		OnQuit:              s.requestQuit,
		OnBackgroundChanged: s.setBackground,
	})
	s.tracker = pose.NewHandTracker(cfg.Config.Pose.MovementThreshold, s.modules.Router)

	s.modules.Settings.ApplyStartup()
	if audio != nil {
		audio.PlayMusic(game.MusicTheme)
	}
	log.Printf("[MainScene] Initialized (background: %d)", s.backgroundIndex)
	return s
}

// Modules 返回界面模块（测试和调试工具使用）
func (s *MainScene) Modules() *modules.GameModules {
	return s.modules
}

// QuitRequested 玩家是否确认了退出
func (s *MainScene) QuitRequested() bool {
	return s.quitRequested
}

// BackgroundIndex 当前背景序号（1-based）
func (s *MainScene) BackgroundIndex() int {
	return s.backgroundIndex
}

func (s *MainScene) requestQuit() {
	log.Printf("[MainScene] Quit requested")
	s.quitRequested = true
}

func (s *MainScene) setBackground(index int) {
	s.backgroundIndex = index
}

// Update 更新一帧
func (s *MainScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		s.modules.HandleBack()
	}

	s.samples = utils.PollPointers(s.samples[:0], !utils.IsMobile())
	for _, ev := range s.strokes.Update(s.samples) {
		s.modules.Router.DispatchPointer(ev)
	}

	s.drainPoseEvents()
	s.modules.Update(deltaTime)
}

// drainPoseEvents 非阻塞地处理关键点源积压的事件
func (s *MainScene) drainPoseEvents() {
	if s.source == nil {
		return
	}
	events := s.source.Events()
	for i := 0; i < maxPoseEventsPerFrame; i++ {
		select {
		case ev := <-events:
			s.HandlePoseEvent(ev)
		default:
			return
		}
	}
}

// HandlePoseEvent 处理一条关键点源事件（必须在游戏主循环中调用）
func (s *MainScene) HandlePoseEvent(ev pose.Event) {
	switch ev.Kind {
	case pose.EventConnected:
		log.Printf("[MainScene] Pose detector connected (session %s)", ev.Session)

	case pose.EventHands:
		if !s.gameState.UseHandTracker {
			return
		}
		s.tracker.Process(ev.Hands)

	case pose.EventPreview:
		if !s.gameState.UseCamera {
			return
		}
		if err := s.resourceManager.SetCameraPreview(ev.Preview); err != nil {
			log.Printf("[MainScene] Dropping preview frame: %v", err)
		}

	case pose.EventDisconnected:
		log.Printf("[MainScene] Pose detector disconnected (session %s)", ev.Session)
		s.resetHands()
		s.resourceManager.ClearCameraPreview()
	}
}

// resetHands 结束两只手的刀光并隐藏光标
func (s *MainScene) resetHands() {
	s.tracker.Reset()
	s.modules.HandOverlay.HideCursors()
	for _, id := range []int{modules.HandSourceLeft, modules.HandSourceRight} {
		s.modules.Router.DispatchPointer(utils.StrokeEvent{ID: id, State: utils.StrokeEnded})
	}
}

// Draw 绘制背景和所有界面
func (s *MainScene) Draw(screen *ebiten.Image) {
	s.drawBackground(screen)
	s.modules.Draw(screen)
}

func (s *MainScene) drawBackground(screen *ebiten.Image) {
	if s.gameState.UseCamera {
		if preview := s.resourceManager.CameraPreview(); preview != nil {
			b := preview.Bounds()
			scale, ox, oy := utils.CoverFit(float64(b.Dx()), float64(b.Dy()),
				config.GameWindowWidth, config.GameWindowHeight)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scale, scale)
			op.GeoM.Translate(ox, oy)
			op.Filter = ebiten.FilterLinear
			screen.DrawImage(preview, op)
			return
		}
	}
	bg := s.resourceManager.BackgroundImage(s.cfg.Background(s.backgroundIndex))
	screen.DrawImage(bg, nil)
}

// SaveOnExit 实现 game.Saveable：保存最高分和设置
func (s *MainScene) SaveOnExit() bool {
	if err := s.gameState.Persist(); err != nil {
		log.Printf("[MainScene] Failed to persist state: %v", err)
		return false
	}
	log.Printf("[MainScene] State saved (best score: %d)", s.gameState.GetBestScore())
	return true
}

// OnFocusChanged 实现 game.FocusAware
func (s *MainScene) OnFocusChanged(focused bool) {
	log.Printf("[MainScene] Focus changed: %v", focused)
	if !focused {
		// 松开所有正在按住的触点
		for _, ev := range s.strokes.Update(nil) {
			s.modules.Router.DispatchPointer(ev)
		}
		s.resetHands()
	}
	s.modules.Pause.OnFocusChanged(focused)
	s.modules.Settings.OnFocusChanged(focused)
}

// OnLeave 实现 game.Leaver：停止关键点源
func (s *MainScene) OnLeave() {
	if s.source != nil && s.source.Running() {
		s.source.Stop()
	}
	s.cancel()
}

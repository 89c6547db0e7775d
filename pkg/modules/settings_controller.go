package modules

import (
	"context"
	"errors"
	"log"

	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/pose"
)

// 设置相关的提示文字
const (
	ToastNeedHandDetection  = "Enable hand detection to use this feature"
	ToastHandEnabled        = "Hand detection enabled"
	ToastHandDisabled       = "Hand detection disabled"
	ToastCameraUnavailable  = "Camera unavailable, hand detection disabled"
	ToastPermissionDenied   = "Camera permission denied, hand detection disabled"
	ToastDisabledForSession = "Hand detection is unavailable for this session"
)

// SettingsController 设置开关的处理逻辑
//
// 规则：
//   - 摄像头背景只能在手部检测开启时打开，否则强制关闭并提示
//   - 打开手部检测会同时打开摄像头背景
//   - 关闭手部检测不影响摄像头背景，只隐藏骨架叠加层
//   - 手部检测或摄像头背景任一开启时关键点源保持运行
//   - 关键点源启动失败：提示、关闭两项设置，本次运行期间不再尝试
type SettingsController struct {
	ctx       context.Context
	gameState *game.GameState
	settings  *game.SettingsManager
	audio     Audio
	source    pose.Source
	toast     *ToastModule

	backgroundCount     int
	onBackgroundChanged func(index int)

	disabledForSession bool
}

// NewSettingsController 创建设置控制器
//
// 参数:
//   - ctx: 关键点源的生命周期
//   - source: 关键点源，可以为 nil（手部检测不可用）
//   - backgroundCount: 可选背景数量
//   - onBackgroundChanged: 背景切换后调用（1-based 序号）
func NewSettingsController(ctx context.Context, gs *game.GameState, audio Audio, source pose.Source, toast *ToastModule,
	backgroundCount int, onBackgroundChanged func(index int)) *SettingsController {
	return &SettingsController{
		ctx:                 ctx,
		gameState:           gs,
		settings:            gs.GetSettingsManager(),
		audio:               audio,
		source:              source,
		toast:               toast,
		backgroundCount:     backgroundCount,
		onBackgroundChanged: onBackgroundChanged,
	}
}

// ApplyStartup 启动时应用已保存的设置
func (c *SettingsController) ApplyStartup() {
	s := c.settings.GetSettings()
	if c.audio != nil {
		c.audio.SetSoundEnabled(s.SoundEnabled)
		c.audio.SetMusicEnabled(c.gameState.MusicEnabled)
	}
	c.SyncSource()
}

// ToggleMusic 切换背景音乐
func (c *SettingsController) ToggleMusic() {
	enabled := !c.gameState.MusicEnabled
	c.gameState.MusicEnabled = enabled
	c.settings.SetMusicEnabled(enabled)
	if c.audio != nil {
		c.audio.SetMusicEnabled(enabled)
	}
	log.Printf("[SettingsController] Music: %v", enabled)
}

// ToggleSound 切换音效
func (c *SettingsController) ToggleSound() {
	enabled := !c.settings.GetSettings().SoundEnabled
	c.settings.SetSoundEnabled(enabled)
	if c.audio != nil {
		c.audio.SetSoundEnabled(enabled)
	}
	log.Printf("[SettingsController] Sound: %v", enabled)
}

// ToggleCameraBackground 切换摄像头背景
func (c *SettingsController) ToggleCameraBackground() {
	if !c.gameState.UseHandTracker {
		c.setUseCamera(false)
		c.showToast(ToastNeedHandDetection)
		return
	}
	c.setUseCamera(!c.gameState.UseCamera)
	c.SyncSource()
	log.Printf("[SettingsController] Camera background: %v", c.gameState.UseCamera)
}

// ToggleHandDetection 切换手部检测
func (c *SettingsController) ToggleHandDetection() {
	if c.disabledForSession {
		c.showToast(ToastDisabledForSession)
		return
	}

	if c.gameState.UseHandTracker {
		c.setUseHandTracker(false)
		c.SyncSource()
		c.showToast(ToastHandDisabled)
		return
	}

	c.setUseHandTracker(true)
	c.setUseCamera(true)
	if err := c.SyncSource(); err != nil {
		return
	}
	c.showToast(ToastHandEnabled)
}

// ChangeBackground 切换到指定背景（1-based，超出范围的序号由配置回退到第 1 张）
func (c *SettingsController) ChangeBackground(index int) {
	if index < 1 || index > c.backgroundCount {
		index = 1
	}
	c.settings.SetBackgroundIndex(index)
	if c.onBackgroundChanged != nil {
		c.onBackgroundChanged(index)
	}
	log.Printf("[SettingsController] Background: %d", index)
}

// NextBackground 循环切换到下一张背景
func (c *SettingsController) NextBackground() {
	c.ChangeBackground(c.settings.GetSettings().BackgroundIndex + 1)
}

// SyncSource 根据设置启动或停止关键点源
// 启动失败时关闭手部相关设置并返回错误
func (c *SettingsController) SyncSource() error {
	if c.source == nil {
		return nil
	}

	want := (c.gameState.UseHandTracker || c.gameState.UseCamera) && !c.disabledForSession
	switch {
	case want && !c.source.Running():
		if err := c.source.Start(c.ctx); err != nil {
			c.handleSourceFailure(err)
			return err
		}
		log.Printf("[SettingsController] Pose source started")
	case !want && c.source.Running():
		c.source.Stop()
		log.Printf("[SettingsController] Pose source stopped")
	}
	return nil
}

// OnFocusChanged 失去焦点时停止关键点源，恢复焦点时按设置重新启动
func (c *SettingsController) OnFocusChanged(focused bool) {
	if c.source == nil {
		return
	}
	if !focused {
		if c.source.Running() {
			c.source.Stop()
			log.Printf("[SettingsController] Pose source stopped (focus lost)")
		}
		return
	}
	c.SyncSource()
}

// IsDisabledForSession 关键点源是否已因失败被禁用
func (c *SettingsController) IsDisabledForSession() bool {
	return c.disabledForSession
}

func (c *SettingsController) handleSourceFailure(err error) {
	log.Printf("[SettingsController] Pose source failed to start: %v", err)
	c.disabledForSession = true
	c.setUseHandTracker(false)
	c.setUseCamera(false)

	if errors.Is(err, pose.ErrPermissionDenied) {
		c.showToastLong(ToastPermissionDenied)
	} else {
		c.showToastLong(ToastCameraUnavailable)
	}
}

func (c *SettingsController) setUseCamera(enabled bool) {
	c.gameState.UseCamera = enabled
	c.settings.SetUseCamera(enabled)
}

func (c *SettingsController) setUseHandTracker(enabled bool) {
	c.gameState.UseHandTracker = enabled
	c.settings.SetUseHandTracker(enabled)
}

func (c *SettingsController) showToast(msg string) {
	if c.toast != nil {
		c.toast.Show(msg, false)
	}
}

func (c *SettingsController) showToastLong(msg string) {
	if c.toast != nil {
		c.toast.Show(msg, true)
	}
}

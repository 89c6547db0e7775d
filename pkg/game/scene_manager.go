package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	focused      bool
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{focused: true}
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene receives OnLeave if it implements Leaver.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if leaver, ok := sm.currentScene.(Leaver); ok {
		leaver.OnLeave()
	}
	sm.currentScene = scene
	log.Printf("[SceneManager] 切换场景: %T", scene)
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// SetFocused 记录窗口焦点变化并通知当前场景
// 焦点未变化时不重复通知
func (sm *SceneManager) SetFocused(focused bool) {
	if sm.focused == focused {
		return
	}
	sm.focused = focused
	if aware, ok := sm.currentScene.(FocusAware); ok {
		aware.OnFocusChanged(focused)
	}
}

// IsFocused 返回最近一次记录的焦点状态
func (sm *SceneManager) IsFocused() bool {
	return sm.focused
}

// SaveOnExit 让当前场景保存状态（如果它实现了 Saveable）
func (sm *SceneManager) SaveOnExit() bool {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		return saveable.SaveOnExit()
	}
	return true
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

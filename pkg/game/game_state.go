package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// GameState 存储全局游戏状态
// 这是一个单例，用于管理跨模块的全局状态数据
//
// 所有字段只在游戏主循环（ebiten Update）中读写，不需要加锁。
// 网络线程收到的手部关键点必须先投递回主循环再访问这里的状态。
type GameState struct {
	// 流程标志
	GameStarted bool // 是否已开始一局（开始界面时为 false）
	Paused      bool // 是否暂停（暂停菜单/倒计时/开始界面期间为 true）
	GameOver    bool // 本局是否已结束（结束动画期间为 true）

	// 设置标志（启动时从 SettingsManager 同步，退出时写回）
	MusicEnabled   bool // 背景音乐开关
	UseCamera      bool // 摄像头画面作为背景
	UseHandTracker bool // 手部检测开关

	// 计分
	Score     int // 本局得分
	Lives     int // 剩余可漏接次数
	BestScore int // 历史最高分（只增不减）

	// 外部依赖（可为 nil，降级为内存模式）
	gdataManager    *gdata.Manager
	settingsManager *SettingsManager
	scoreStore      *ScoreStore
	audioManager    *AudioManager
}

// 全局单例实例（这是架构规范允许的唯一全局变量）
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个游戏生命周期只有一个实例
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = NewGameState()
	}
	return globalGameState
}

// NewGameState 创建一个独立的 GameState（测试使用）
// 初始状态：未开始、暂停（开始界面）、音乐开启
func NewGameState() *GameState {
	return &GameState{
		Paused:       true,
		MusicEnabled: true,
	}
}

// AttachStorage 绑定持久化存储并加载设置和最高分
//
// gdataManager 可为 nil：设置和最高分仅保存在内存中（降级模式）。
// 加载失败不是致命错误，只记录日志并使用默认值。
func (gs *GameState) AttachStorage(gdataManager *gdata.Manager) {
	gs.gdataManager = gdataManager

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		log.Printf("[GameState] Warning: settings manager init failed: %v", err)
	}
	gs.settingsManager = sm

	gs.scoreStore = NewScoreStore(gdataManager)
	best, err := gs.scoreStore.LoadBestScore()
	if err != nil {
		log.Printf("[GameState] Warning: failed to load best score: %v (using 0)", err)
		best = 0
	}
	gs.SetBestScore(best)

	settings := sm.GetSettings()
	gs.MusicEnabled = settings.MusicEnabled
	gs.UseHandTracker = settings.UseHandTracker
	gs.UseCamera = settings.UseCamera
	log.Printf("[GameState] Storage attached (best score: %d, music: %v, hand tracker: %v)",
		gs.BestScore, gs.MusicEnabled, gs.UseHandTracker)
}

// GetSettingsManager 返回设置管理器
// 未调用 AttachStorage 时返回一个内存模式的设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	if gs.settingsManager == nil {
		gs.settingsManager, _ = NewSettingsManager(nil)
	}
	return gs.settingsManager
}

// SetAudioManager 设置音频管理器
func (gs *GameState) SetAudioManager(am *AudioManager) {
	gs.audioManager = am
}

// GetAudioManager 返回音频管理器（可能为 nil）
func (gs *GameState) GetAudioManager() *AudioManager {
	return gs.audioManager
}

// PlaySound 通过音频管理器播放音效，未设置音频管理器时静默忽略
func (gs *GameState) PlaySound(soundID string) {
	if gs.audioManager != nil {
		gs.audioManager.PlaySound(soundID)
	}
}

// SetGameStarted 设置是否已开始一局
func (gs *GameState) SetGameStarted(started bool) {
	gs.GameStarted = started
}

// IsGameStarted 返回是否已开始一局
func (gs *GameState) IsGameStarted() bool {
	return gs.GameStarted
}

// SetPaused 设置暂停状态
func (gs *GameState) SetPaused(paused bool) {
	gs.Paused = paused
}

// IsPaused 返回是否暂停
func (gs *GameState) IsPaused() bool {
	return gs.Paused
}

// SetGameOver 设置本局结束标志
func (gs *GameState) SetGameOver(over bool) {
	gs.GameOver = over
}

// IsGameOver 返回本局是否已结束
func (gs *GameState) IsGameOver() bool {
	return gs.GameOver
}

// SetBestScore 直接设置最高分
// 仅用于启动时载入持久化的值，负数视为 0
func (gs *GameState) SetBestScore(score int) {
	if score < 0 {
		score = 0
	}
	gs.BestScore = score
}

// GetBestScore 返回最高分
func (gs *GameState) GetBestScore() int {
	return gs.BestScore
}

// SubmitScore 在游戏结束时提交本局得分
// 最高分只增不减：仅当 score 超过当前最高分时更新
//
// 返回：
//   - bool: 是否刷新了最高分
func (gs *GameState) SubmitScore(score int) bool {
	if score <= gs.BestScore {
		return false
	}
	gs.BestScore = score
	return true
}

// ResetRound 开始新一局前重置计分
func (gs *GameState) ResetRound(lives int) {
	gs.Score = 0
	gs.Lives = lives
	gs.GameOver = false
}

// AddScore 增加得分
func (gs *GameState) AddScore(points int) {
	if points > 0 {
		gs.Score += points
	}
}

// LoseLife 扣除一次生命，返回剩余次数（不会小于 0）
func (gs *GameState) LoseLife() int {
	if gs.Lives > 0 {
		gs.Lives--
	}
	return gs.Lives
}

// Persist 将最高分和设置写回存储
// 在进程退出时调用（见 scenes.MainScene.SaveOnExit）
func (gs *GameState) Persist() error {
	if gs.scoreStore == nil {
		gs.scoreStore = NewScoreStore(gs.gdataManager)
	}
	if err := gs.scoreStore.SaveBestScore(gs.BestScore); err != nil {
		return err
	}

	sm := gs.GetSettingsManager()
	sm.SetMusicEnabled(gs.MusicEnabled)
	sm.SetUseHandTracker(gs.UseHandTracker)
	sm.SetUseCamera(gs.UseCamera)
	return sm.Save()
}

package modules

import (
	"log"

	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/game"
)

// PauseState 游戏流程状态
type PauseState int

const (
	// StatePaused 开始界面、暂停菜单、游戏结束返回前
	StatePaused PauseState = iota
	// StateRunning 游戏进行中
	StateRunning
	// StateShowingCountdown 恢复前的倒计时
	StateShowingCountdown
)

func (s PauseState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateShowingCountdown:
		return "countdown"
	default:
		return "paused"
	}
}

// PauseController 开局、暂停、恢复、结束的状态机
//
// 状态转换：
//
//	Paused  --StartGame-->          Running
//	Running --RequestPause-->       Paused
//	Paused  --Resume(已开局)-->      ShowingCountdown --倒计时结束--> Running
//	Paused  --Restart-->            ShowingCountdown（新的一局）
//	ShowingCountdown --RequestPause--> Paused（倒计时取消，回调不会执行）
//	Running --GameOver--> (延迟) --> BackToStart --> Paused
type PauseController struct {
	gameState *game.GameState
	gameplay  config.GameplayConfig
	audio     Audio

	startScreen *StartScreenModule
	gameView    *GameViewModule
	pauseMenu   *PauseMenuModule
	countdown   *CountdownOverlayModule

	state PauseState

	returning   bool
	returnTimer float64
}

// PauseControllerDeps 状态机操作的界面
type PauseControllerDeps struct {
	StartScreen *StartScreenModule
	GameView    *GameViewModule
	PauseMenu   *PauseMenuModule
	Countdown   *CountdownOverlayModule
}

// NewPauseController 创建状态机，初始状态为 Paused（开始界面）
func NewPauseController(gs *game.GameState, cfg *config.GameConfig, audio Audio, deps PauseControllerDeps) *PauseController {
	return &PauseController{
		gameState:   gs,
		gameplay:    cfg.Gameplay,
		audio:       audio,
		startScreen: deps.StartScreen,
		gameView:    deps.GameView,
		pauseMenu:   deps.PauseMenu,
		countdown:   deps.Countdown,
		state:       StatePaused,
	}
}

// State 返回当前状态
func (c *PauseController) State() PauseState {
	return c.state
}

// StartGame 开始新的一局
func (c *PauseController) StartGame() {
	c.returning = false
	c.countdown.CancelCountdown()
	c.pauseMenu.Hide()
	c.startScreen.Hide()

	c.gameView.ResetGame()
	c.gameState.SetGameStarted(true)
	c.gameState.SetPaused(false)
	c.state = StateRunning
	c.playSound(game.SoundStart)
	log.Printf("[PauseController] Game started")
}

// RequestPause 暂停游戏并显示暂停菜单
// 倒计时期间调用会取消倒计时
func (c *PauseController) RequestPause() {
	if !c.gameState.IsGameStarted() || c.gameState.IsGameOver() {
		return
	}

	switch c.state {
	case StateShowingCountdown:
		c.countdown.CancelCountdown()
	case StateRunning:
	default:
		if c.pauseMenu.IsVisible() {
			return
		}
	}

	c.gameState.SetPaused(true)
	c.state = StatePaused
	c.pauseMenu.Show(true)
	log.Printf("[PauseController] Paused")
}

// OpenSettings 在开始界面打开设置菜单
func (c *PauseController) OpenSettings() {
	if c.gameState.IsGameStarted() {
		c.RequestPause()
		return
	}
	c.pauseMenu.Show(false)
}

// Resume 关闭菜单
// 已开局时先倒计时再继续，未开局时直接回到开始界面
func (c *PauseController) Resume() {
	c.pauseMenu.Hide()

	if !c.gameState.IsGameStarted() || c.gameState.IsGameOver() {
		c.state = StatePaused
		return
	}

	c.startCountdown()
}

// Restart 重新开始一局，和恢复一样先倒计时
func (c *PauseController) Restart() {
	c.returning = false
	c.pauseMenu.Hide()
	c.startScreen.Hide()

	c.gameView.ResetGame()
	c.gameState.SetGameOver(false)
	c.gameState.SetGameStarted(true)
	c.gameState.SetPaused(true)
	c.playSound(game.SoundStart)
	log.Printf("[PauseController] Restart")
	c.startCountdown()
}

func (c *PauseController) startCountdown() {
	c.state = StateShowingCountdown
	c.countdown.StartCountdown(func() {
		c.state = StateRunning
		c.gameState.SetPaused(false)
		log.Printf("[PauseController] Resumed")
	})
}

// BackToStart 结束当前局并回到开始界面
func (c *PauseController) BackToStart() {
	c.returning = false
	c.countdown.CancelCountdown()
	c.pauseMenu.Hide()

	c.gameView.Clear()
	c.gameState.SetGameStarted(false)
	c.gameState.SetGameOver(false)
	c.gameState.SetPaused(true)
	c.state = StatePaused
	c.startScreen.Show()
	log.Printf("[PauseController] Back to start screen")
}

// GameOver 本局结束：提交分数、弹出横幅，延迟后回到开始界面
func (c *PauseController) GameOver() {
	if c.returning {
		return
	}
	c.gameState.SetGameOver(true)
	newBest := c.gameState.SubmitScore(c.gameState.Score)
	c.playSound(game.SoundOver)
	c.gameView.ShowGameOverBanner(c.gameplay.GameOverBannerDelay, newBest)

	c.returning = true
	c.returnTimer = c.gameplay.GameOverDelay
	log.Printf("[PauseController] Game over: score %d, best %d (new best: %v)",
		c.gameState.Score, c.gameState.GetBestScore(), newBest)
}

// IsReturning 是否正在等待返回开始界面
func (c *PauseController) IsReturning() bool {
	return c.returning
}

// Update 处理游戏结束后的延迟返回
func (c *PauseController) Update(deltaTime float64) {
	if !c.returning {
		return
	}
	c.returnTimer -= deltaTime
	if c.returnTimer <= 0 {
		c.BackToStart()
	}
}

// OnFocusChanged 应用失去焦点时暂停游戏和音乐，恢复焦点时恢复音乐
// 游戏本身保持暂停，由玩家在菜单中继续
func (c *PauseController) OnFocusChanged(focused bool) {
	if !focused {
		if c.state != StatePaused {
			c.RequestPause()
		}
		if c.audio != nil {
			c.audio.PauseMusic()
		}
		return
	}
	if c.audio != nil && c.gameState.MusicEnabled {
		c.audio.ResumeMusic()
	}
}

func (c *PauseController) playSound(id string) {
	if c.audio != nil {
		c.audio.PlaySound(id)
	}
}

package modules

import (
	"slices"
	"testing"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/utils"
)

func TestGameViewSliceScores(t *testing.T) {
	h := newHarness(t)
	h.startRunning()
	em := h.mods.GameView.EntityManager()
	kind := h.cfg.Fruits[0]

	entities.NewFruit(em, kind, 400, 300, 0, 0, 0)
	entities.NewFruit(em, kind, 600, 300, 0, 0, 0)

	result := h.mods.GameView.SliceSegment(300, 300, 700, 300)

	if len(result.Fruits) != 2 {
		t.Fatalf("sliced %d fruits, want 2", len(result.Fruits))
	}
	if h.gs.Score != 2*kind.Score {
		t.Errorf("Score = %d, want %d", h.gs.Score, 2*kind.Score)
	}
	if !slices.Contains(h.audio.sounds, game.SoundSlice) {
		t.Error("slice sound should play")
	}
}

// TestGameViewPointerSlice 鼠标拖动产生的刀光切开水果
func TestGameViewPointerSlice(t *testing.T) {
	h := newHarness(t)
	h.startRunning()
	em := h.mods.GameView.EntityManager()
	entities.NewFruit(em, h.cfg.Fruits[0], 400, 300, 0, 0, 0)

	h.mods.Router.DispatchPointer(pointer(utils.StrokeStarted, 300, 280))
	h.mods.Router.DispatchPointer(pointer(utils.StrokeMoving, 500, 320))

	if h.gs.Score != h.cfg.Fruits[0].Score {
		t.Errorf("Score = %d, want %d", h.gs.Score, h.cfg.Fruits[0].Score)
	}
}

func TestGameViewBombEndsRound(t *testing.T) {
	h := newHarness(t)
	h.startRunning()
	em := h.mods.GameView.EntityManager()
	entities.NewBomb(em, 400, 300, 0, 0, 0)

	result := h.mods.GameView.SliceSegment(300, 300, 500, 300)

	if !result.Bomb {
		t.Fatal("bomb should be hit")
	}
	if !h.gs.IsGameOver() {
		t.Error("slicing a bomb should end the round")
	}
	if !h.mods.Pause.IsReturning() {
		t.Error("pause controller should schedule the return to the start screen")
	}
	if !slices.Contains(h.audio.sounds, game.SoundOver) {
		t.Error("game over sound should play")
	}

	// 结束动画期间不再切割和计分
	entities.NewFruit(em, h.cfg.Fruits[0], 400, 500, 0, 0, 0)
	h.mods.GameView.OnSliceAt(utils.MousePointerID, 300, 500)
	h.mods.GameView.OnSliceAt(utils.MousePointerID, 500, 500)
	if h.gs.Score != 0 {
		t.Errorf("Score = %d, want 0 after game over", h.gs.Score)
	}
}

func TestGameViewMissesCostLives(t *testing.T) {
	h := newHarness(t)
	h.startRunning()
	em := h.mods.GameView.EntityManager()
	kind := h.cfg.Fruits[0]
	lives := h.cfg.Gameplay.Lives

	for i := 0; i < lives-1; i++ {
		entities.NewFruit(em, kind, 200+float64(i)*100, config.GameWindowHeight+kind.Radius+5, 0, 50, 0)
	}
	h.step(0.1)

	if h.gs.Lives != 1 {
		t.Fatalf("Lives = %d, want 1", h.gs.Lives)
	}
	if h.gs.IsGameOver() {
		t.Fatal("round should continue with one life left")
	}

	entities.NewFruit(em, kind, 900, config.GameWindowHeight+kind.Radius+5, 0, 50, 0)
	h.step(0.1)

	if h.gs.Lives != 0 || !h.gs.IsGameOver() {
		t.Errorf("Lives = %d, GameOver = %v; want 0, true", h.gs.Lives, h.gs.IsGameOver())
	}
}

func TestGameViewBombFallingIsNotAMiss(t *testing.T) {
	h := newHarness(t)
	h.startRunning()
	em := h.mods.GameView.EntityManager()
	entities.NewBomb(em, 400, config.GameWindowHeight+entities.BombRadius+5, 0, 50, 0)

	h.step(0.1)

	if h.gs.Lives != h.cfg.Gameplay.Lives {
		t.Errorf("Lives = %d, want %d", h.gs.Lives, h.cfg.Gameplay.Lives)
	}
}

func TestGameViewPauseButton(t *testing.T) {
	h := newHarness(t)
	h.startRunning()

	cx := config.PauseButtonX + config.PauseButtonSize/2
	cy := config.PauseButtonY + config.PauseButtonSize/2
	h.mods.Router.DispatchPointer(pointer(utils.StrokeStarted, cx, cy))

	if h.mods.Pause.State() != StatePaused || !h.mods.PauseMenu.IsVisible() {
		t.Errorf("pause button: state=%v menu=%v", h.mods.Pause.State(), h.mods.PauseMenu.IsVisible())
	}
}

// TestGameViewFrozenWhilePaused 暂停时水果不再移动
func TestGameViewFrozenWhilePaused(t *testing.T) {
	h := newHarness(t)
	h.startRunning()
	em := h.mods.GameView.EntityManager()
	id := entities.NewFruit(em, h.cfg.Fruits[0], 400, 300, 100, -100, 0)

	h.mods.Pause.RequestPause()
	h.step(1)

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatal("fruit should still exist")
	}
	if pos.X != 400 || pos.Y != 300 {
		t.Errorf("fruit moved while paused: (%v, %v)", pos.X, pos.Y)
	}

	h.mods.GameView.OnSliceAt(utils.MousePointerID, 300, 300)
	h.mods.GameView.OnSliceAt(utils.MousePointerID, 500, 300)
	if h.gs.Score != 0 {
		t.Error("slices while paused should be ignored")
	}
}

func TestGameViewResetGame(t *testing.T) {
	h := newHarness(t)
	h.startRunning()
	h.gs.AddScore(7)
	h.gs.LoseLife()

	h.mods.Pause.Restart()

	if h.gs.Score != 0 || h.gs.Lives != h.cfg.Gameplay.Lives {
		t.Errorf("after restart: score=%d lives=%d", h.gs.Score, h.gs.Lives)
	}
	if n := len(ecs.GetEntitiesWith1[*components.FruitComponent](h.mods.GameView.EntityManager())); n != 0 {
		t.Errorf("%d fruits left after restart", n)
	}
}

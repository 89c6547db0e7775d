package game

import "testing"

// TestNewGameStateDefaults 初始处于开始界面：未开始、暂停
func TestNewGameStateDefaults(t *testing.T) {
	gs := NewGameState()

	if gs.IsGameStarted() {
		t.Error("new game state should not be started")
	}
	if !gs.IsPaused() {
		t.Error("new game state should be paused (start screen)")
	}
	if gs.IsGameOver() {
		t.Error("new game state should not be game over")
	}
	if gs.GetBestScore() != 0 {
		t.Errorf("BestScore: got %d, want 0", gs.GetBestScore())
	}
}

// TestSubmitScoreMonotonic 最高分在多次游戏结束之间只增不减
func TestSubmitScoreMonotonic(t *testing.T) {
	gs := NewGameState()

	rounds := []struct {
		score    int
		improved bool
		best     int
	}{
		{10, true, 10},
		{5, false, 10},
		{10, false, 10},
		{0, false, 10},
		{25, true, 25},
		{24, false, 25},
	}

	prev := gs.GetBestScore()
	for i, r := range rounds {
		improved := gs.SubmitScore(r.score)
		if improved != r.improved {
			t.Errorf("round %d: SubmitScore(%d) improved = %v, want %v", i, r.score, improved, r.improved)
		}
		if gs.GetBestScore() != r.best {
			t.Errorf("round %d: BestScore = %d, want %d", i, gs.GetBestScore(), r.best)
		}
		if gs.GetBestScore() < prev {
			t.Fatalf("round %d: best score decreased from %d to %d", i, prev, gs.GetBestScore())
		}
		prev = gs.GetBestScore()
	}
}

func TestSetBestScoreClampsNegative(t *testing.T) {
	gs := NewGameState()
	gs.SetBestScore(-3)
	if gs.GetBestScore() != 0 {
		t.Errorf("SetBestScore(-3): got %d, want 0", gs.GetBestScore())
	}
}

func TestRoundScoringAndLives(t *testing.T) {
	gs := NewGameState()
	gs.ResetRound(3)
	gs.SetGameOver(true)
	gs.ResetRound(3)

	if gs.IsGameOver() {
		t.Error("ResetRound should clear game over")
	}

	gs.AddScore(2)
	gs.AddScore(-5) // 负分被忽略
	if gs.Score != 2 {
		t.Errorf("Score: got %d, want 2", gs.Score)
	}

	for want := 2; want >= 0; want-- {
		if got := gs.LoseLife(); got != want {
			t.Errorf("LoseLife() = %d, want %d", got, want)
		}
	}
	if got := gs.LoseLife(); got != 0 {
		t.Errorf("LoseLife() below zero = %d, want 0", got)
	}
}

// TestAttachStorageLoadsBestScore 启动时读取一次最高分，退出时写回
func TestAttachStorageLoadsBestScore(t *testing.T) {
	gdataManager := openTestGdata(t, "test_ninjafruit_state")
	if err := NewScoreStore(gdataManager).SaveBestScore(31); err != nil {
		t.Fatalf("SaveBestScore() error: %v", err)
	}

	gs := NewGameState()
	gs.AttachStorage(gdataManager)
	if gs.GetBestScore() != 31 {
		t.Fatalf("BestScore after attach: got %d, want 31", gs.GetBestScore())
	}

	gs.SubmitScore(40)
	gs.UseHandTracker = true
	gs.UseCamera = true
	if err := gs.Persist(); err != nil {
		t.Fatalf("Persist() error: %v", err)
	}

	next := NewGameState()
	next.AttachStorage(gdataManager)
	if next.GetBestScore() != 40 {
		t.Errorf("BestScore after restart: got %d, want 40", next.GetBestScore())
	}
	if !next.UseHandTracker || !next.UseCamera {
		t.Error("hand tracker and camera flags should survive restart")
	}
}

func TestGetGameStateSingleton(t *testing.T) {
	original := globalGameState
	defer func() { globalGameState = original }()
	globalGameState = nil

	if GetGameState() != GetGameState() {
		t.Error("GetGameState() should return the same instance")
	}
}

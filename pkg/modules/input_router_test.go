package modules

import (
	"testing"

	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/pose"
	"github.com/decker502/ninjafruit/pkg/utils"
)

// recordingView 记录收到的输入
type recordingView struct {
	name    string
	visible bool
	slices  []int
	taps    int
	ends    int
}

func (v *recordingView) OnSliceAt(source int, x, y float64) { v.slices = append(v.slices, source) }
func (v *recordingView) OnSliceEnd(source int)              { v.ends++ }
func (v *recordingView) OnTap(source int, x, y float64)     { v.taps++ }
func (v *recordingView) IsVisible() bool                    { return v.visible }

type recordingHands struct {
	left, right int
}

func (r *recordingHands) UpdateLeftHandPosition(x, y float64)  { r.left++ }
func (r *recordingHands) UpdateRightHandPosition(x, y float64) { r.right++ }

func newRecordingRouter(gs *game.GameState) (*InputRouter, map[string]*recordingView) {
	views := map[string]*recordingView{
		"quit":      {name: "quit"},
		"pause":     {name: "pause"},
		"start":     {name: "start"},
		"countdown": {name: "countdown"},
		"game":      {name: "game", visible: true},
	}
	r := NewInputRouter(gs, InputRouterViews{
		QuitDialog:  views["quit"],
		PauseMenu:   views["pause"],
		StartScreen: views["start"],
		Countdown:   views["countdown"],
		GameView:    views["game"],
	})
	return r, views
}

func TestInputRouterPriority(t *testing.T) {
	tests := []struct {
		name      string
		quit      bool
		pause     bool
		start     bool
		countdown bool
		started   bool
		paused    bool
		want      string
	}{
		{"quit dialog over everything", true, true, true, true, true, false, "quit"},
		{"pause menu over start screen", false, true, true, false, false, true, "pause"},
		{"pause menu over game", false, true, false, false, true, true, "pause"},
		{"start screen", false, false, true, false, false, true, "start"},
		{"countdown over paused game", false, false, false, true, true, true, "countdown"},
		{"running game", false, false, false, false, true, false, "game"},
		{"paused game without menu", false, false, false, false, true, true, ""},
		{"nothing started", false, false, false, false, false, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := game.NewGameState()
			gs.SetGameStarted(tt.started)
			gs.SetPaused(tt.paused)
			r, views := newRecordingRouter(gs)
			views["quit"].visible = tt.quit
			views["pause"].visible = tt.pause
			views["start"].visible = tt.start
			views["countdown"].visible = tt.countdown

			got := r.ActiveReceiver()
			if tt.want == "" {
				if got != nil {
					t.Errorf("ActiveReceiver() = %v, want nil", got)
				}
				return
			}
			if got != views[tt.want] {
				t.Errorf("ActiveReceiver() = %v, want %s", got, tt.want)
			}
		})
	}
}

// TestInputRouterPauseMenuShieldsGameView 暂停菜单可见时刀光永远不会到达游戏界面
func TestInputRouterPauseMenuShieldsGameView(t *testing.T) {
	gs := game.NewGameState()
	gs.SetGameStarted(true)
	gs.SetPaused(false)
	r, views := newRecordingRouter(gs)
	views["pause"].visible = true

	r.DispatchPointer(utils.StrokeEvent{ID: 0, State: utils.StrokeStarted, X: 10, Y: 10})
	r.DispatchPointer(utils.StrokeEvent{ID: 0, State: utils.StrokeMoving, X: 50, Y: 50})
	r.DispatchHands(pose.At(100, 100), pose.At(200, 200))

	if n := len(views["game"].slices); n != 0 {
		t.Errorf("game view received %d slices while the pause menu is visible", n)
	}
	if views["game"].taps != 0 {
		t.Errorf("game view received %d taps while the pause menu is visible", views["game"].taps)
	}
	if n := len(views["pause"].slices); n != 4 {
		t.Errorf("pause menu received %d slices, want 4", n)
	}
}

func TestInputRouterPointerEvents(t *testing.T) {
	gs := game.NewGameState()
	r, views := newRecordingRouter(gs)
	views["start"].visible = true

	r.DispatchPointer(utils.StrokeEvent{ID: 3, State: utils.StrokeStarted, X: 1, Y: 1})
	r.DispatchPointer(utils.StrokeEvent{ID: 3, State: utils.StrokeMoving, X: 9, Y: 9})
	r.DispatchPointer(utils.StrokeEvent{ID: 3, State: utils.StrokeEnded, X: 9, Y: 9})

	start := views["start"]
	if start.taps != 1 || len(start.slices) != 2 {
		t.Errorf("start screen taps=%d slices=%d, want 1 and 2", start.taps, len(start.slices))
	}
	// 笔画结束广播给所有界面
	for name, v := range views {
		if v.ends != 1 {
			t.Errorf("%s got %d stroke ends, want 1", name, v.ends)
		}
	}
}

// TestInputRouterAbsentCoordinates 缺少坐标的手不产生刀光
func TestInputRouterAbsentCoordinates(t *testing.T) {
	x := 10.0
	tests := []struct {
		name        string
		left, right pose.Keypoint
		wantSources []int
	}{
		{"both present", pose.At(1, 1), pose.At(2, 2), []int{HandSourceLeft, HandSourceRight}},
		{"left missing y", pose.Keypoint{X: &x}, pose.At(2, 2), []int{HandSourceRight}},
		{"right missing x", pose.At(1, 1), pose.Keypoint{Y: &x}, []int{HandSourceLeft}},
		{"both absent", pose.Keypoint{}, pose.Keypoint{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := game.NewGameState()
			gs.SetGameStarted(true)
			gs.SetPaused(false)
			r, views := newRecordingRouter(gs)
			hands := &recordingHands{}
			r.AddHandReceiver(hands)

			r.DispatchHands(tt.left, tt.right)

			got := views["game"].slices
			if len(got) != len(tt.wantSources) {
				t.Fatalf("slices = %v, want %v", got, tt.wantSources)
			}
			for i := range got {
				if got[i] != tt.wantSources[i] {
					t.Errorf("slice %d source = %d, want %d", i, got[i], tt.wantSources[i])
				}
			}
			if hands.left+hands.right != len(tt.wantSources) {
				t.Errorf("cursor updates = %d, want %d", hands.left+hands.right, len(tt.wantSources))
			}
		})
	}
}

func TestInputRouterDropsHandSlicesOnGameOver(t *testing.T) {
	gs := game.NewGameState()
	gs.SetGameStarted(true)
	gs.SetPaused(false)
	gs.SetGameOver(true)
	r, views := newRecordingRouter(gs)
	hands := &recordingHands{}
	r.AddHandReceiver(hands)

	r.DispatchHands(pose.At(1, 1), pose.At(2, 2))

	if len(views["game"].slices) != 0 {
		t.Error("hand slices should be dropped during game over")
	}
	if hands.left != 1 || hands.right != 1 {
		t.Errorf("cursors should still update, got left=%d right=%d", hands.left, hands.right)
	}
}

// TestInputRouterWithHandTracker 手部追踪器过滤后的关键点经路由分发
func TestInputRouterWithHandTracker(t *testing.T) {
	gs := game.NewGameState()
	gs.SetGameStarted(true)
	gs.SetPaused(false)
	r, views := newRecordingRouter(gs)
	tracker := pose.NewHandTracker(3, r)

	tracker.Process(pose.HandFrame{Left: pose.At(100, 100), Right: pose.At(300, 300)})
	tracker.Process(pose.HandFrame{Left: pose.At(101, 101), Right: pose.At(300, 300)})
	tracker.Process(pose.HandFrame{Left: pose.At(110, 100), Right: pose.Keypoint{}})

	want := []int{HandSourceLeft, HandSourceRight, HandSourceLeft}
	got := views["game"].slices
	if len(got) != len(want) {
		t.Fatalf("slices = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slice %d = %d, want %d", i, got[i], want[i])
		}
	}
}

package scenes

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"testing"

	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/entities"
	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/pose"
	"github.com/decker502/ninjafruit/pkg/utils"
)

type fakeSource struct {
	running bool
	events  chan pose.Event
}

func (f *fakeSource) Start(ctx context.Context) error { f.running = true; return nil }
func (f *fakeSource) Stop()                           { f.running = false }
func (f *fakeSource) Running() bool                   { return f.running }
func (f *fakeSource) Events() <-chan pose.Event       { return f.events }

func newTestScene(t *testing.T) (*MainScene, *game.GameState, *fakeSource, *game.ResourceManager) {
	t.Helper()
	gs := game.NewGameState()
	rm := game.NewResourceManager(nil)
	src := &fakeSource{events: make(chan pose.Event, 64)}
	s := NewMainScene(rm, gs, MainSceneConfig{
		Config: config.DefaultGameConfig(),
		Source: src,
		RNG:    rand.New(rand.NewPCG(3, 4)),
	})
	return s, gs, src, rm
}

func pngFrame(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.Set(0, 0, color.RGBA{R: 0xff, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error: %v", err)
	}
	return buf.Bytes()
}

func handsAt(x, y float64) pose.Event {
	return pose.Event{Kind: pose.EventHands, Hands: pose.HandFrame{Left: pose.At(x, y), Right: pose.At(x+200, y)}}
}

func TestMainSceneHandsRequireHandDetection(t *testing.T) {
	s, gs, _, _ := newTestScene(t)
	overlay := s.Modules().HandOverlay

	s.HandlePoseEvent(handsAt(100, 100))
	if overlay.CursorVisible(0) {
		t.Error("hand events should be ignored while hand detection is off")
	}

	gs.UseHandTracker = true
	s.HandlePoseEvent(handsAt(100, 100))
	if !overlay.CursorVisible(0) || !overlay.CursorVisible(1) {
		t.Error("both cursors should be visible")
	}

	s.HandlePoseEvent(pose.Event{Kind: pose.EventDisconnected})
	if overlay.CursorVisible(0) || overlay.CursorVisible(1) {
		t.Error("cursors should hide when the detector disconnects")
	}
}

// TestMainSceneHandSlicesFruit 手腕划过水果得分
func TestMainSceneHandSlicesFruit(t *testing.T) {
	s, gs, _, _ := newTestScene(t)
	gs.UseHandTracker = true
	mods := s.Modules()
	mods.Pause.StartGame()

	em := mods.GameView.EntityManager()
	kind := config.DefaultGameConfig().Fruits[0]
	entities.NewFruit(em, kind, 400, 300, 0, 0, 0)

	s.HandlePoseEvent(pose.Event{Kind: pose.EventHands, Hands: pose.HandFrame{Left: pose.At(300, 300)}})
	s.HandlePoseEvent(pose.Event{Kind: pose.EventHands, Hands: pose.HandFrame{Left: pose.At(500, 300)}})

	if gs.Score != kind.Score {
		t.Errorf("Score = %d, want %d", gs.Score, kind.Score)
	}
}

func TestMainScenePreviewRequiresCamera(t *testing.T) {
	s, gs, _, rm := newTestScene(t)
	frame := pngFrame(t)

	s.HandlePoseEvent(pose.Event{Kind: pose.EventPreview, Preview: frame})
	if rm.CameraPreview() != nil {
		t.Error("preview frames should be dropped while the camera background is off")
	}

	gs.UseCamera = true
	s.HandlePoseEvent(pose.Event{Kind: pose.EventPreview, Preview: frame})
	if rm.CameraPreview() == nil {
		t.Fatal("preview should be stored")
	}

	s.HandlePoseEvent(pose.Event{Kind: pose.EventPreview, Preview: []byte("not an image")})
	if rm.CameraPreview() == nil {
		t.Error("a broken frame should keep the previous preview")
	}

	s.HandlePoseEvent(pose.Event{Kind: pose.EventDisconnected})
	if rm.CameraPreview() != nil {
		t.Error("preview should clear on disconnect")
	}
}

func TestMainSceneDrainPoseEvents(t *testing.T) {
	s, gs, src, _ := newTestScene(t)
	gs.UseHandTracker = true
	for i := 0; i < maxPoseEventsPerFrame+5; i++ {
		src.events <- handsAt(100+float64(i)*10, 100)
	}

	s.drainPoseEvents()

	if got := len(src.events); got != 5 {
		t.Errorf("%d events left, want 5", got)
	}
	if !s.Modules().HandOverlay.CursorVisible(0) {
		t.Error("cursor should follow the drained hand events")
	}
}

func TestMainSceneQuit(t *testing.T) {
	s, _, _, _ := newTestScene(t)
	s.Modules().HandleBack()
	s.Modules().Router.DispatchPointer(utils.StrokeEvent{ID: utils.MousePointerID, State: utils.StrokeStarted, X: 480, Y: 422})

	if !s.QuitRequested() {
		t.Error("confirming the dialog should request quit")
	}
}

func TestMainSceneBackground(t *testing.T) {
	s, _, _, _ := newTestScene(t)
	if s.BackgroundIndex() != 1 {
		t.Errorf("BackgroundIndex() = %d, want 1", s.BackgroundIndex())
	}
	s.Modules().Settings.ChangeBackground(1)
	if s.BackgroundIndex() != 1 {
		t.Errorf("BackgroundIndex() = %d, want 1", s.BackgroundIndex())
	}
}

func TestMainSceneFocusAndLeave(t *testing.T) {
	s, _, src, _ := newTestScene(t)
	s.Modules().Settings.ToggleHandDetection()
	if !src.Running() {
		t.Fatal("source should run after enabling hand detection")
	}

	s.OnFocusChanged(false)
	if src.Running() {
		t.Error("source should stop on focus loss")
	}
	s.OnFocusChanged(true)
	if !src.Running() {
		t.Error("source should restart on focus regain")
	}

	s.OnLeave()
	if src.Running() {
		t.Error("source should stop when the scene is left")
	}
}

func TestMainSceneSaveOnExit(t *testing.T) {
	s, gs, _, _ := newTestScene(t)
	gs.SubmitScore(42)

	if !s.SaveOnExit() {
		t.Error("SaveOnExit() should succeed in memory mode")
	}
}

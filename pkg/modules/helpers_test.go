package modules

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/pose"
)

// fakeSource 不联网的关键点源
type fakeSource struct {
	running  bool
	startErr error
	starts   int
	stops    int
	events   chan pose.Event
}

func newFakeSource() *fakeSource {
	return &fakeSource{events: make(chan pose.Event, 8)}
}

func (f *fakeSource) Start(ctx context.Context) error {
	f.starts++
	if f.startErr != nil {
		return f.startErr
	}
	f.running = true
	return nil
}

func (f *fakeSource) Stop() {
	f.stops++
	f.running = false
}

func (f *fakeSource) Running() bool             { return f.running }
func (f *fakeSource) Events() <-chan pose.Event { return f.events }

// fakeAudio 记录音频调用
type fakeAudio struct {
	sounds       []string
	musicPaused  int
	musicResumed int
	musicEnabled bool
	soundEnabled bool
}

func (a *fakeAudio) PlaySound(id string) bool     { a.sounds = append(a.sounds, id); return true }
func (a *fakeAudio) PlayMusic(string) bool        { return true }
func (a *fakeAudio) PauseMusic()                  { a.musicPaused++ }
func (a *fakeAudio) ResumeMusic()                 { a.musicResumed++ }
func (a *fakeAudio) SetMusicEnabled(enabled bool) { a.musicEnabled = enabled }
func (a *fakeAudio) SetSoundEnabled(enabled bool) { a.soundEnabled = enabled }

// harness 组装好的全部界面
type harness struct {
	gs      *game.GameState
	cfg     *config.GameConfig
	audio   *fakeAudio
	source  *fakeSource
	mods    *GameModules
	quits   int
	bgIndex int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		gs:     game.NewGameState(),
		cfg:    config.DefaultGameConfig(),
		audio:  &fakeAudio{},
		source: newFakeSource(),
	}
	h.cfg.Backgrounds = append(h.cfg.Backgrounds,
		config.BackgroundPalette{Name: "night", Top: "#000000", Bottom: "#222222"},
		config.BackgroundPalette{Name: "sunset", Top: "#ff8800", Bottom: "#220000"},
	)
	h.mods = NewGameModules(GameModulesConfig{
		Context:             context.Background(),
		GameState:           h.gs,
		Config:              h.cfg,
		Audio:               h.audio,
		Source:              h.source,
		RNG:                 rand.New(rand.NewPCG(7, 11)),
		OnQuit:              func() { h.quits++ },
		OnBackgroundChanged: func(index int) { h.bgIndex = index },
	})
	return h
}

// step 以 60 FPS 推进 seconds 秒
func (h *harness) step(seconds float64) {
	const dt = 1.0 / 60
	for elapsed := 0.0; elapsed < seconds; elapsed += dt {
		h.mods.Update(dt)
	}
}

// startRunning 直接开局
func (h *harness) startRunning() {
	h.mods.Pause.StartGame()
}

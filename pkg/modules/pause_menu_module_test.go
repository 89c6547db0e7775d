package modules

import (
	"testing"
)

func TestPauseMenuModuleButtons(t *testing.T) {
	h := newHarness(t)
	h.startRunning()
	h.mods.Pause.RequestPause()
	menu := h.mods.PauseMenu

	for _, label := range []string{MenuResume, MenuRestart, MenuBackToStart, MenuMusic, MenuSound, MenuCamera, MenuHandDetection, MenuBackground} {
		if !menu.HasButton(label) {
			t.Errorf("missing button %q", label)
		}
	}
	if !menu.IsChecked(MenuMusic) || !menu.IsChecked(MenuSound) {
		t.Error("music and sound should start checked")
	}
	if menu.IsChecked(MenuCamera) || menu.IsChecked(MenuHandDetection) {
		t.Error("camera and hand detection should start unchecked")
	}
}

// TestPauseMenuModuleSliceActivation 刀光划过按钮触发一次
func TestPauseMenuModuleSliceActivation(t *testing.T) {
	h := newHarness(t)
	h.startRunning()
	h.mods.Pause.RequestPause()
	menu := h.mods.PauseMenu

	x, y, ok := menu.ButtonCenter(MenuMusic)
	if !ok {
		t.Fatal("music button not found")
	}

	menu.OnSliceAt(HandSourceRight, x-200, y)
	menu.OnSliceAt(HandSourceRight, x, y)
	menu.OnSliceAt(HandSourceRight, x+10, y)
	if h.gs.MusicEnabled {
		t.Fatal("slicing into the music toggle should turn music off")
	}
	if menu.IsChecked(MenuMusic) {
		t.Error("toggle should refresh to unchecked")
	}

	menu.OnSliceAt(HandSourceRight, x+200, y)
	menu.OnSliceAt(HandSourceRight, x, y)
	if !h.gs.MusicEnabled {
		t.Error("re-entering the toggle should turn music back on")
	}
}

func TestPauseMenuModuleTapResume(t *testing.T) {
	h := newHarness(t)
	h.startRunning()
	h.mods.Pause.RequestPause()

	x, y, _ := h.mods.PauseMenu.ButtonCenter(MenuResume)
	h.mods.PauseMenu.OnTap(-1, x, y)

	if h.mods.PauseMenu.IsVisible() {
		t.Error("menu should close on Resume")
	}
	if h.mods.Pause.State() != StateShowingCountdown {
		t.Errorf("State() = %v, want countdown", h.mods.Pause.State())
	}
}

func TestPauseMenuModuleBackgroundLabel(t *testing.T) {
	h := newHarness(t)
	h.mods.Pause.OpenSettings()

	x, y, _ := h.mods.PauseMenu.ButtonCenter(MenuBackground)
	h.mods.PauseMenu.OnTap(-1, x, y)

	if h.bgIndex != 2 {
		t.Errorf("background index = %d, want 2", h.bgIndex)
	}
	btn := h.mods.PauseMenu.button(MenuBackground)
	if btn == nil || btn.Label != "Background 2" {
		t.Errorf("background label not refreshed: %+v", btn)
	}
}

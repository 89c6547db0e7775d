package systems

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
)

func TestFade(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	tests := []struct {
		alpha float64
		want  color.RGBA
	}{
		{1, c},
		{2, c},
		{0, color.RGBA{}},
		{-1, color.RGBA{}},
		{0.5, color.RGBA{R: 100, G: 50, B: 25, A: 127}},
	}
	for _, tt := range tests {
		if got := fade(c, tt.alpha); got != tt.want {
			t.Errorf("fade(%v) = %v, want %v", tt.alpha, got, tt.want)
		}
	}
}

// TestRenderSystemDrawAllShapes 渲染所有形状不应 panic
func TestRenderSystemDrawAllShapes(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewRenderSystem(em)

	entities.NewFruit(em, testFruitKind(), 100, 100, 0, 0, 0)
	entities.NewBomb(em, 200, 100, 0, 0, 0)
	entities.NewFruitHalves(em, 300, 100, 30, testFruitKindColor(), testFruitKindColor(), 0, 0, 0.5)
	entities.NewJuiceSplash(em, newTestRNG(), 400, 100, testFruitKindColor(), 30)
	entities.NewStartRing(em, nil, 500, 300, 80)
	entities.NewButton(em, nil, "Resume", 100, 400, 200, 50, nil)
	entities.NewToggleButton(em, nil, "Music", 100, 460, 200, 50, true, nil)

	hidden := entities.NewHandCursor(em, 0, 14, color.RGBA{A: 255})
	ecs.AddComponent(em, hidden, &components.TweenComponent{})

	trails := NewBladeTrailSystem(em, 0.2, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	trails.AddPoint(0, 10, 10)
	trails.AddPoint(0, 40, 40)
	trails.AddPoint(0, 80, 60)

	screen := ebiten.NewImage(640, 480)
	system.Draw(screen)
}

// TestWrapLabel 设置 MaxWidth 的文字按宽度折行
func TestWrapLabel(t *testing.T) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("NewGoTextFaceSource() error: %v", err)
	}
	face := &text.GoTextFace{Source: source, Size: 24}
	message := "Hand detection is disabled for this session because the camera is unavailable"

	plain := &components.AppearanceComponent{Text: message, Font: face}
	if got := wrapLabel(plain); got != message {
		t.Errorf("wrapLabel() without MaxWidth = %q, want unchanged", got)
	}

	wrapped := &components.AppearanceComponent{Text: message, Font: face, MaxWidth: 300}
	got := wrapLabel(wrapped)
	if !strings.Contains(got, "\n") {
		t.Fatalf("wrapLabel() = %q, want multiple lines", got)
	}
	if strings.ReplaceAll(got, "\n", " ") != message {
		t.Errorf("wrapped text lost words: %q", got)
	}
}

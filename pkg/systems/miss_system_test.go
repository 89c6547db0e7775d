package systems

import (
	"image/color"
	"testing"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
)

func TestMissSystem(t *testing.T) {
	tests := []struct {
		name       string
		y, vy      float64
		startRing  bool
		wantMissed int
		wantAlive  bool
	}{
		{"rising below screen", 760, -800, false, 0, true},
		{"falling on screen", 600, 300, false, 0, true},
		{"falling partly visible", 740, 300, false, 0, true},
		{"falling out", 800, 300, false, 1, false},
		{"start screen fruit", 800, 300, true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			system := NewMissSystem(em, 720)
			callbacks := 0
			system.OnMiss = func(ecs.EntityID) { callbacks++ }

			id := entities.NewFruit(em, testFruitKind(), 300, tt.y, 0, tt.vy, 0)
			if tt.startRing {
				fruit, _ := ecs.GetComponent[*components.FruitComponent](em, id)
				fruit.Missable = false
			}

			missed := system.Update(1.0 / 60)
			flush(em)

			if missed != tt.wantMissed || callbacks != tt.wantMissed {
				t.Errorf("missed = %d (callbacks %d), want %d", missed, callbacks, tt.wantMissed)
			}
			if em.Exists(id) != tt.wantAlive {
				t.Errorf("alive = %v, want %v", em.Exists(id), tt.wantAlive)
			}
		})
	}
}

func TestMissSystemBombsAndDebrisDoNotCount(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewMissSystem(em, 720)

	bomb := entities.NewBomb(em, 300, 800, 0, 300, 0)
	halves := entities.NewFruitHalves(em, 300, 900, 30, testFruitKindColor(), testFruitKindColor(), 0, 300, 0)

	if missed := system.Update(1.0 / 60); missed != 0 {
		t.Errorf("missed = %d, want 0", missed)
	}
	flush(em)
	if em.Exists(bomb) {
		t.Error("fallen bomb should be destroyed")
	}
	for _, id := range halves {
		if em.Exists(id) {
			t.Errorf("offscreen half %d should be destroyed", id)
		}
	}
}

func testFruitKindColor() color.RGBA {
	return color.RGBA{R: 0xd7, G: 0x26, B: 0x3d, A: 0xff}
}

package systems

import (
	"math"
	"testing"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
)

func TestToastSystemLifecycle(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewToastSystem(em)

	id := entities.NewToast(em, nil, "hello", 640, 630, 2.0)
	app, _ := ecs.GetComponent[*components.AppearanceComponent](em, id)

	system.Update(0.15)
	if math.Abs(app.Alpha-0.5) > 1e-9 {
		t.Errorf("fade-in alpha = %v, want 0.5", app.Alpha)
	}
	system.Update(0.85)
	if app.Alpha != 1 {
		t.Errorf("steady alpha = %v, want 1", app.Alpha)
	}
	system.Update(1.0)
	flush(em)
	if em.Exists(id) {
		t.Error("toast should be removed after its duration")
	}
}

func TestToastSystemClear(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewToastSystem(em)

	entities.NewToast(em, nil, "a", 0, 0, 2)
	entities.NewToast(em, nil, "b", 0, 0, 2)
	system.Clear()
	flush(em)

	if n := len(ecs.GetEntitiesWith1[*components.ToastComponent](em)); n != 0 {
		t.Errorf("%d toasts left after Clear()", n)
	}
}

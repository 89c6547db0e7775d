package systems

import (
	"testing"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
)

func TestLifetimeUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: 10.0})

	system.Update(5.0)

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.CurrentLifetime != 5.0 {
		t.Errorf("Expected CurrentLifetime=5.0, got %f", lifetime.CurrentLifetime)
	}
	if lifetime.IsExpired {
		t.Error("Entity should not be expired yet")
	}
}

func TestLifetimeExpiration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: 10.0})

	system.Update(12.0)

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !lifetime.IsExpired {
		t.Error("Entity should be expired")
	}

	flush(em)
	if em.Exists(id) {
		t.Error("Expired entity should be removed")
	}
}

func TestLifetimeFadeOut(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: 2.0, FadeOut: true})
	ecs.AddComponent(em, id, &components.AppearanceComponent{Alpha: 1})

	system.Update(0.5)

	app, _ := ecs.GetComponent[*components.AppearanceComponent](em, id)
	if app.Alpha != 0.75 {
		t.Errorf("Alpha = %v, want 0.75", app.Alpha)
	}

	// 没有 FadeOut 的实体保持不透明
	solid := em.CreateEntity()
	ecs.AddComponent(em, solid, &components.LifetimeComponent{MaxLifetime: 2.0})
	ecs.AddComponent(em, solid, &components.AppearanceComponent{Alpha: 1})
	system.Update(0.5)
	solidApp, _ := ecs.GetComponent[*components.AppearanceComponent](em, solid)
	if solidApp.Alpha != 1 {
		t.Errorf("non-fading Alpha = %v, want 1", solidApp.Alpha)
	}
}

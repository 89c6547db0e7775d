package systems

import (
	"image/color"
	"testing"

	"github.com/decker502/ninjafruit/pkg/ecs"
)

func newTestTrailSystem() (*ecs.EntityManager, *BladeTrailSystem) {
	em := ecs.NewEntityManager()
	return em, NewBladeTrailSystem(em, 0.2, 6, color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

func TestBladeTrailSegments(t *testing.T) {
	_, system := newTestTrailSystem()

	if _, ok := system.AddPoint(0, 10, 10); ok {
		t.Fatal("first point of a stroke should not produce a segment")
	}
	if _, ok := system.AddPoint(0, 12, 10); ok {
		t.Fatal("movement below the minimum distance should not produce a segment")
	}

	seg, ok := system.AddPoint(0, 30, 10)
	if !ok {
		t.Fatal("expected a segment")
	}
	want := Segment{X1: 10, Y1: 10, X2: 30, Y2: 10}
	if seg != want {
		t.Errorf("segment = %+v, want %+v", seg, want)
	}
	if system.PointCount(0) != 2 {
		t.Errorf("PointCount = %d, want 2", system.PointCount(0))
	}
}

func TestBladeTrailSourcesAreIndependent(t *testing.T) {
	_, system := newTestTrailSystem()

	system.AddPoint(0, 0, 0)
	system.AddPoint(1, 500, 500)

	seg, ok := system.AddPoint(1, 520, 500)
	if !ok || seg.X1 != 500 {
		t.Errorf("source 1 should continue from its own point, got %+v ok=%v", seg, ok)
	}
	seg, ok = system.AddPoint(0, 20, 0)
	if !ok || seg.X1 != 0 {
		t.Errorf("source 0 should continue from its own point, got %+v ok=%v", seg, ok)
	}
}

func TestBladeTrailEndStrokeStartsNewStroke(t *testing.T) {
	_, system := newTestTrailSystem()

	system.AddPoint(0, 0, 0)
	system.AddPoint(0, 50, 0)
	system.EndStroke(0)

	if _, ok := system.AddPoint(0, 400, 400); ok {
		t.Error("point after EndStroke should start a new stroke, not bridge the gap")
	}
	if system.PointCount(0) != 1 {
		t.Errorf("PointCount = %d, want 1", system.PointCount(0))
	}
}

func TestBladeTrailStalePointsStartNewStroke(t *testing.T) {
	_, system := newTestTrailSystem()

	system.AddPoint(0, 0, 0)
	system.Update(0.5)

	if system.PointCount(0) != 0 {
		t.Errorf("aged points should be dropped, PointCount = %d", system.PointCount(0))
	}
	if _, ok := system.AddPoint(0, 300, 0); ok {
		t.Error("point after a long pause should not connect to the old stroke")
	}
}

func TestBladeTrailIdleTrailIsDestroyed(t *testing.T) {
	em, system := newTestTrailSystem()

	system.AddPoint(0, 0, 0)
	for i := 0; i < 10; i++ {
		system.Update(0.2)
	}
	em.RemoveMarkedEntities()

	if em.Count() != 0 {
		t.Errorf("idle trail should be destroyed, %d entities left", em.Count())
	}

	system.AddPoint(0, 0, 0)
	system.Clear()
	em.RemoveMarkedEntities()
	if em.Count() != 0 {
		t.Errorf("Clear() left %d entities", em.Count())
	}
}

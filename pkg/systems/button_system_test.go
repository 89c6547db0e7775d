package systems

import (
	"testing"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
	"github.com/decker502/ninjafruit/pkg/game"
)

func TestButtonSystemTap(t *testing.T) {
	em := ecs.NewEntityManager()
	sound := &recordingSound{}
	system := NewButtonSystem(em, sound)

	clicks := 0
	entities.NewButton(em, nil, "Resume", 100, 100, 200, 50, func() { clicks++ })

	if system.Tap(-1, 50, 50) {
		t.Error("tap outside should not hit")
	}
	if !system.Tap(-1, 150, 120) {
		t.Error("tap inside should hit")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if sound.count(game.SoundButton) != 1 {
		t.Errorf("button sound = %d, want 1", sound.count(game.SoundButton))
	}

	// 按下后在按钮内移动不重复触发
	if system.Hover(-1, 160, 120) {
		t.Error("hover after tap inside the same button should not trigger")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestButtonSystemHoverTriggersOnEnter(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewButtonSystem(em, nil)

	clicks := 0
	entities.NewButton(em, nil, "Restart", 100, 100, 200, 50, func() { clicks++ })

	steps := []struct {
		x, y float64
		want int
	}{
		{50, 120, 0},  // 外面
		{150, 120, 1}, // 进入
		{200, 120, 1}, // 仍在里面
		{350, 120, 1}, // 离开
		{250, 120, 2}, // 再次进入
	}
	for i, step := range steps {
		system.Hover(100, step.x, step.y)
		if clicks != step.want {
			t.Errorf("step %d: clicks = %d, want %d", i, clicks, step.want)
		}
	}

	// 另一个输入源独立计数
	system.Hover(101, 150, 120)
	if clicks != 3 {
		t.Errorf("second source should trigger, clicks = %d", clicks)
	}

	// Leave 后同一位置再次进入会触发
	system.Leave(100)
	system.Hover(100, 250, 120)
	if clicks != 4 {
		t.Errorf("after Leave clicks = %d, want 4", clicks)
	}
}

func TestButtonSystemDisabledAndCallbackMutation(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewButtonSystem(em, nil)

	clicks := 0
	disabled := entities.NewButton(em, nil, "Off", 0, 0, 100, 100, func() { clicks++ })
	btn, _ := ecs.GetComponent[*components.ButtonComponent](em, disabled)
	btn.Enabled = false

	if system.Tap(-1, 50, 50) {
		t.Error("disabled button should not be clickable")
	}
	system.Update(0)
	if btn.State != components.UIDisabled {
		t.Errorf("State = %v, want UIDisabled", btn.State)
	}

	// 回调中销毁所有按钮
	var id ecs.EntityID
	id = entities.NewButton(em, nil, "Close", 200, 0, 100, 100, func() {
		em.DestroyEntity(id)
		em.DestroyEntity(disabled)
	})
	if !system.Tap(-1, 250, 50) {
		t.Error("expected close button hit")
	}
	flush(em)
	if em.Exists(id) || em.Exists(disabled) {
		t.Error("buttons should be destroyed by the callback")
	}
}

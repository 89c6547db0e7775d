package modules

import (
	"image/color"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/ecs"
)

// bladeColor 刀光颜色
var bladeColor = color.RGBA{R: 0xf0, G: 0xf4, B: 0xff, A: 0xff}

// newOverlay 创建覆盖全屏的半透明黑色遮罩
func newOverlay(em *ecs.EntityManager, alpha uint8) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{})
	ecs.AddComponent(em, id, &components.AppearanceComponent{
		Shape:  components.ShapeRect,
		Width:  config.GameWindowWidth,
		Height: config.GameWindowHeight,
		Color:  color.RGBA{A: alpha},
		Scale:  1,
		Alpha:  1,
		Layer:  components.LayerOverlay,
	})
	return id
}

// destroyAll 标记删除界面内的所有实体
func destroyAll(em *ecs.EntityManager) {
	for _, id := range em.GetEntitiesWith() {
		em.DestroyEntity(id)
	}
}

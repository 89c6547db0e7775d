package modules

import (
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
	"github.com/decker502/ninjafruit/pkg/systems"
	"github.com/decker502/ninjafruit/pkg/utils"
)

// exitAnimationDuration 开始界面退场动画时长（秒）
const exitAnimationDuration = 0.5

// StartScreenCallbacks 开始界面回调函数集合
type StartScreenCallbacks struct {
	OnStart    func() // 退场动画结束后调用
	OnSettings func()
	OnQuit     func()
}

// StartScreenModule 开始界面
//
// 标题从上方落下，"新游戏"圆环弹出并旋转，圆环中间放着一个水果：
// 切开水果或点击圆环即开始游戏。下方有设置和退出按钮。
type StartScreenModule struct {
	entityManager  *ecs.EntityManager
	physicsSystem  *systems.PhysicsSystem
	lifetimeSystem *systems.LifetimeSystem
	tweenSystem    *systems.TweenSystem
	trailSystem    *systems.BladeTrailSystem
	sliceSystem    *systems.SliceSystem
	buttonSystem   *systems.ButtonSystem
	renderSystem   *systems.RenderSystem

	fonts     Fonts
	fruits    []config.FruitKind
	rng       *rand.Rand
	callbacks StartScreenCallbacks

	visible bool
	exiting bool

	title      ecs.EntityID
	ring       ecs.EntityID
	ringLabel  ecs.EntityID
	startFruit ecs.EntityID
}

// NewStartScreenModule 创建开始界面（默认隐藏）
func NewStartScreenModule(cfg *config.GameConfig, fonts Fonts, sound systems.SoundPlayer, rng *rand.Rand, callbacks StartScreenCallbacks) *StartScreenModule {
	em := ecs.NewEntityManager()
	return &StartScreenModule{
		entityManager:  em,
		physicsSystem:  systems.NewPhysicsSystem(em, cfg.Gameplay.Gravity),
		lifetimeSystem: systems.NewLifetimeSystem(em),
		tweenSystem:    systems.NewTweenSystem(em),
		trailSystem:    systems.NewBladeTrailSystem(em, cfg.Gameplay.TrailLifetime, cfg.Gameplay.MinSliceDistance, bladeColor),
		sliceSystem:    systems.NewSliceSystem(em, rng, sound),
		buttonSystem:   systems.NewButtonSystem(em, sound),
		renderSystem:   systems.NewRenderSystem(em),
		fonts:          fonts,
		fruits:         cfg.Fruits,
		rng:            rng,
		callbacks:      callbacks,
	}
}

// Show 显示开始界面并播放入场动画
func (m *StartScreenModule) Show() {
	if m.visible {
		return
	}
	m.visible = true
	m.exiting = false

	m.title = entities.NewTitle(m.entityManager, m.fonts.Title, config.GameWindowWidth/2, -80, config.StartTitleY)
	m.ring, m.ringLabel = entities.NewStartRing(m.entityManager, m.fonts.Normal,
		config.StartRingX, config.StartRingY, config.StartRingRadius)

	kind := m.fruits[m.rng.IntN(len(m.fruits))]
	m.startFruit = entities.NewStartFruit(m.entityManager, kind, config.StartRingX, config.StartRingY)

	const btnW = 200.0
	bx := config.GameWindowWidth*0.2 - btnW/2
	by := config.StartRingY - config.MenuButtonHeight - config.MenuButtonSpacing/2
	entities.NewButton(m.entityManager, m.fonts.Normal, "Settings", bx, by, btnW, config.MenuButtonHeight, m.callbacks.OnSettings)
	entities.NewButton(m.entityManager, m.fonts.Normal, "Quit", bx, by+config.MenuButtonHeight+config.MenuButtonSpacing,
		btnW, config.MenuButtonHeight, m.callbacks.OnQuit)

	log.Printf("[StartScreenModule] Shown")
}

// Hide 立即隐藏开始界面
func (m *StartScreenModule) Hide() {
	if !m.visible {
		return
	}
	m.visible = false
	m.exiting = false
	m.trailSystem.Clear()
	destroyAll(m.entityManager)
}

// IsVisible 开始界面是否可见（退场动画期间仍可见）
func (m *StartScreenModule) IsVisible() bool {
	return m.visible
}

// IsExiting 是否正在播放退场动画
func (m *StartScreenModule) IsExiting() bool {
	return m.exiting
}

// PlayExitAnimation 播放退场动画，结束后隐藏界面并调用 onDone
// 动画期间忽略输入
func (m *StartScreenModule) PlayExitAnimation(onDone func()) {
	if !m.visible || m.exiting {
		return
	}
	m.exiting = true

	if pos, ok := ecs.GetComponent[*components.PositionComponent](m.entityManager, m.title); ok {
		ecs.AddComponent(m.entityManager, m.title, &components.TweenComponent{
			Tracks:   []components.TweenTrack{{Property: components.TweenY, From: pos.Y, To: -120}},
			Duration: exitAnimationDuration,
			Easing:   utils.EaseInBack,
		})
	}
	for _, id := range []ecs.EntityID{m.ring, m.ringLabel} {
		ecs.AddComponent(m.entityManager, id, &components.TweenComponent{
			Tracks:   []components.TweenTrack{{Property: components.TweenAlpha, From: 1, To: 0}},
			Duration: exitAnimationDuration,
			Easing:   utils.EaseInQuad,
		})
	}

	done := m.entityManager.CreateEntity()
	ecs.AddComponent(m.entityManager, done, &components.TweenComponent{
		Duration: exitAnimationDuration,
		OnComplete: func() {
			m.Hide()
			if onDone != nil {
				onDone()
			}
		},
	})
	log.Printf("[StartScreenModule] Exit animation started")
}

// start 切开开始水果或点击圆环
func (m *StartScreenModule) start() {
	m.PlayExitAnimation(m.callbacks.OnStart)
}

// OnSliceAt 刀光：切开始水果，划过按钮
func (m *StartScreenModule) OnSliceAt(source int, x, y float64) {
	if !m.visible || m.exiting {
		return
	}
	if seg, ok := m.trailSystem.AddPoint(source, x, y); ok {
		result := m.sliceSystem.Slice(seg.X1, seg.Y1, seg.X2, seg.Y2)
		for _, id := range result.Fruits {
			if id == m.startFruit {
				m.start()
				return
			}
		}
	}
	m.buttonSystem.Hover(source, x, y)
}

// OnSliceEnd 结束输入源的笔画
func (m *StartScreenModule) OnSliceEnd(source int) {
	m.trailSystem.EndStroke(source)
	m.buttonSystem.Leave(source)
}

// OnTap 点击按钮或圆环
func (m *StartScreenModule) OnTap(source int, x, y float64) {
	if !m.visible || m.exiting {
		return
	}
	if m.buttonSystem.Tap(source, x, y) {
		return
	}
	if utils.Distance(x, y, config.StartRingX, config.StartRingY) <= config.StartRingRadius {
		m.start()
	}
}

// Update 推进动画
func (m *StartScreenModule) Update(deltaTime float64) {
	if !m.visible {
		return
	}
	m.physicsSystem.Update(deltaTime)
	m.tweenSystem.Update(deltaTime)
	m.lifetimeSystem.Update(deltaTime)
	m.trailSystem.Update(deltaTime)
	m.buttonSystem.Update(deltaTime)
	m.entityManager.RemoveMarkedEntities()
}

// Draw 绘制开始界面
func (m *StartScreenModule) Draw(screen *ebiten.Image) {
	if m.visible {
		m.renderSystem.Draw(screen)
	}
}

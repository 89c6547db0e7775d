package systems

import (
	"log"
	"strconv"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/game"
)

// CountdownSystem 恢复游戏前的倒计时系统
//
// 每个数字显示一个 Interval，切换数字时播放倒计时音效；
// 数字走完后播放开局音效、销毁实体并调用一次 OnDone。
// 已取消的倒计时不会再触发任何回调。
type CountdownSystem struct {
	entityManager *ecs.EntityManager
	sound         SoundPlayer
}

// NewCountdownSystem 创建倒计时系统
func NewCountdownSystem(em *ecs.EntityManager, sound SoundPlayer) *CountdownSystem {
	return &CountdownSystem{
		entityManager: em,
		sound:         sound,
	}
}

// Start 显示倒计时的第一个数字
func (s *CountdownSystem) Start(id ecs.EntityID) {
	cd, ok := ecs.GetComponent[*components.CountdownComponent](s.entityManager, id)
	if !ok {
		return
	}
	s.syncText(id, cd)
	playSound(s.sound, game.SoundCountdown)
}

// Cancel 取消倒计时并销毁实体
func (s *CountdownSystem) Cancel(id ecs.EntityID) {
	cd, ok := ecs.GetComponent[*components.CountdownComponent](s.entityManager, id)
	if !ok {
		return
	}
	cd.Cancelled = true
	s.entityManager.DestroyEntity(id)
	log.Printf("[CountdownSystem] Countdown cancelled at %d", cd.Remaining)
}

// Update 推进所有倒计时
func (s *CountdownSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CountdownComponent](s.entityManager) {
		cd, _ := ecs.GetComponent[*components.CountdownComponent](s.entityManager, id)
		if cd.Cancelled || cd.Fired {
			continue
		}

		cd.Elapsed += deltaTime
		for cd.Elapsed >= cd.Interval {
			cd.Elapsed -= cd.Interval
			cd.Remaining--
			if cd.Remaining > 0 {
				s.syncText(id, cd)
				playSound(s.sound, game.SoundCountdown)
				continue
			}

			cd.Fired = true
			s.entityManager.DestroyEntity(id)
			playSound(s.sound, game.SoundStart)
			if cd.OnDone != nil {
				cd.OnDone()
			}
			break
		}
	}
}

func (s *CountdownSystem) syncText(id ecs.EntityID, cd *components.CountdownComponent) {
	if app, ok := ecs.GetComponent[*components.AppearanceComponent](s.entityManager, id); ok {
		app.Text = strconv.Itoa(cd.Remaining)
	}
}

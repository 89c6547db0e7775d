package systems

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/entities"
	"github.com/decker502/ninjafruit/pkg/game"
)

// firstWaveDelay 开局后第一波出果的等待时间（秒）
const firstWaveDelay = 0.8

// FruitSpawnSystem 出果系统
//
// 按波次从屏幕底部抛出水果和炸弹。
// 波次间隔从 SpawnInterval 开始逐波缩短，直到 MinSpawnInterval。
// 波次计时保存在一个 TimerComponent 实体上。
type FruitSpawnSystem struct {
	entityManager *ecs.EntityManager
	gameplay      config.GameplayConfig
	fruits        []config.FruitKind
	rng           *rand.Rand
	sound         SoundPlayer

	screenWidth  float64
	screenHeight float64

	timerID  ecs.EntityID
	interval float64
	waves    int
}

// NewFruitSpawnSystem 创建出果系统
func NewFruitSpawnSystem(em *ecs.EntityManager, cfg *config.GameConfig, rng *rand.Rand, sound SoundPlayer, screenWidth, screenHeight float64) *FruitSpawnSystem {
	s := &FruitSpawnSystem{
		entityManager: em,
		gameplay:      cfg.Gameplay,
		fruits:        cfg.Fruits,
		rng:           rng,
		sound:         sound,
		screenWidth:   screenWidth,
		screenHeight:  screenHeight,
	}
	s.Reset()
	return s
}

// Reset 开始新一局时重置波次和间隔
func (s *FruitSpawnSystem) Reset() {
	if s.timerID != 0 && s.entityManager.Exists(s.timerID) {
		s.entityManager.DestroyEntity(s.timerID)
	}
	s.timerID = s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, s.timerID, &components.TimerComponent{
		Name:       "spawn_wave",
		TargetTime: firstWaveDelay,
	})
	s.interval = s.gameplay.SpawnInterval
	s.waves = 0
}

// Waves 返回本局已抛出的波数
func (s *FruitSpawnSystem) Waves() int {
	return s.waves
}

// Interval 返回当前波次间隔
func (s *FruitSpawnSystem) Interval() float64 {
	return s.interval
}

// Update 推进波次计时，到点时抛出一波
func (s *FruitSpawnSystem) Update(deltaTime float64) {
	timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, s.timerID)
	if !ok {
		return
	}

	timer.CurrentTime += deltaTime
	if timer.CurrentTime < timer.TargetTime {
		return
	}
	timer.IsReady = true

	s.SpawnWave()

	s.interval = math.Max(s.gameplay.MinSpawnInterval, s.interval-s.gameplay.SpawnAcceleration)
	timer.CurrentTime = 0
	timer.TargetTime = s.interval
	timer.IsReady = false
}

// SpawnWave 立即抛出一波，返回新建的实体
// 波的大小随波数增长，每波最多一个炸弹
func (s *FruitSpawnSystem) SpawnWave() []ecs.EntityID {
	maxSize := min(s.gameplay.MaxWaveSize, 1+s.waves/3)
	size := 1 + s.rng.IntN(maxSize)
	s.waves++

	ids := make([]ecs.EntityID, 0, size)
	bombPlaced := false
	for i := 0; i < size; i++ {
		x := s.screenWidth * (0.15 + s.rng.Float64()*0.7)
		vx := (s.screenWidth/2-x)*0.35 + (s.rng.Float64()-0.5)*80
		vy := -(s.gameplay.LaunchSpeedMin + s.rng.Float64()*(s.gameplay.LaunchSpeedMax-s.gameplay.LaunchSpeedMin))
		spin := (s.rng.Float64() - 0.5) * 6

		if !bombPlaced && s.rng.Float64() < s.gameplay.BombChance {
			bombPlaced = true
			ids = append(ids, entities.NewBomb(s.entityManager, x, s.screenHeight+entities.BombRadius, vx, vy, spin))
			continue
		}

		kind := s.fruits[s.rng.IntN(len(s.fruits))]
		ids = append(ids, entities.NewFruit(s.entityManager, kind, x, s.screenHeight+kind.Radius, vx, vy, spin))
	}

	playSound(s.sound, game.SoundThrow)
	log.Printf("[FruitSpawnSystem] Wave %d: %d objects (bomb: %v)", s.waves, size, bombPlaced)
	return ids
}

package systems

import (
	"math/rand/v2"

	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/ecs"
)

// recordingSound 记录播放过的音效
type recordingSound struct {
	played []string
}

func (r *recordingSound) PlaySound(soundID string) bool {
	r.played = append(r.played, soundID)
	return true
}

func (r *recordingSound) count(soundID string) int {
	n := 0
	for _, id := range r.played {
		if id == soundID {
			n++
		}
	}
	return n
}

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func testFruitKind() config.FruitKind {
	return config.FruitKind{Name: "apple", Radius: 30, Color: "#d7263d", JuiceColor: "#f7c4a5", Score: 1}
}

// flush 清理本帧标记删除的实体
func flush(em *ecs.EntityManager) {
	em.RemoveMarkedEntities()
}

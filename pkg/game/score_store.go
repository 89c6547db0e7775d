package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
// 最高分是唯一跨会话持久化的计分数据，使用一个命名整数键
const (
	prefsObject       = "game_prefs"
	bestScoreProperty = "best_score"
)

// bestScoreRecord 最高分存档格式
type bestScoreRecord struct {
	BestScore int `yaml:"bestScore"`
}

// ScoreStore 最高分存储
//
// 启动时读取一次（不存在时默认为 0），进程退出时写回。
// gdataManager 为 nil 时退化为内存存储。
type ScoreStore struct {
	gdataManager *gdata.Manager
	memory       int // 降级模式下的内存值
}

// NewScoreStore 创建最高分存储
func NewScoreStore(gdataManager *gdata.Manager) *ScoreStore {
	return &ScoreStore{gdataManager: gdataManager}
}

// LoadBestScore 读取最高分
//
// 返回：
//   - int: 最高分，未保存过时为 0
//   - error: 读取或反序列化失败
func (s *ScoreStore) LoadBestScore() (int, error) {
	if s.gdataManager == nil {
		return s.memory, nil
	}

	if !s.gdataManager.ObjectPropExists(prefsObject, bestScoreProperty) {
		return 0, nil
	}

	data, err := s.gdataManager.LoadObjectProp(prefsObject, bestScoreProperty)
	if err != nil {
		return 0, fmt.Errorf("failed to load best score: %w", err)
	}

	var record bestScoreRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return 0, fmt.Errorf("failed to unmarshal best score: %w", err)
	}
	if record.BestScore < 0 {
		return 0, nil
	}
	return record.BestScore, nil
}

// SaveBestScore 写入最高分
func (s *ScoreStore) SaveBestScore(score int) error {
	if s.gdataManager == nil {
		s.memory = score
		return nil
	}

	data, err := yaml.Marshal(bestScoreRecord{BestScore: score})
	if err != nil {
		return fmt.Errorf("failed to marshal best score: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(prefsObject, bestScoreProperty, data); err != nil {
		return fmt.Errorf("failed to save best score: %w", err)
	}

	log.Printf("[ScoreStore] Best score saved: %d", score)
	return nil
}

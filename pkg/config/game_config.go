package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/ninjafruit/pkg/embedded"
)

// DefaultGameConfigPath 内置游戏配置路径（embed.FS 内）
const DefaultGameConfigPath = "data/config/game.yaml"

// GameConfig 游戏配置根结构
// 对应 data/config/game.yaml
type GameConfig struct {
	Gameplay    GameplayConfig      `yaml:"gameplay"`
	Countdown   CountdownConfig     `yaml:"countdown"`
	Pose        PoseConfig          `yaml:"pose"`
	Fruits      []FruitKind         `yaml:"fruits"`
	Backgrounds []BackgroundPalette `yaml:"backgrounds"`
}

// GameplayConfig 玩法调参
type GameplayConfig struct {
	Gravity             float64 `yaml:"gravity"`             // 重力加速度（像素/秒²）
	Lives               int     `yaml:"lives"`               // 可漏掉的水果数
	SpawnInterval       float64 `yaml:"spawnInterval"`       // 初始出果间隔（秒）
	MinSpawnInterval    float64 `yaml:"minSpawnInterval"`    // 最小出果间隔（秒）
	SpawnAcceleration   float64 `yaml:"spawnAcceleration"`   // 每波缩短的间隔（秒）
	MaxWaveSize         int     `yaml:"maxWaveSize"`         // 单波最多抛出的物体数
	BombChance          float64 `yaml:"bombChance"`          // 每个物体是炸弹的概率 0.0 ~ 1.0
	LaunchSpeedMin      float64 `yaml:"launchSpeedMin"`      // 最小上抛速度（像素/秒）
	LaunchSpeedMax      float64 `yaml:"launchSpeedMax"`      // 最大上抛速度（像素/秒）
	GameOverBannerDelay float64 `yaml:"gameOverBannerDelay"` // 游戏结束横幅弹出延迟（秒）
	GameOverDelay       float64 `yaml:"gameOverDelay"`       // 游戏结束后返回开始界面的延迟（秒）
	TrailLifetime       float64 `yaml:"trailLifetime"`       // 刀光轨迹点存活时间（秒）
	MinSliceDistance    float64 `yaml:"minSliceDistance"`    // 产生刀光线段的最小移动距离（像素）
}

// CountdownConfig 恢复游戏前的倒计时
type CountdownConfig struct {
	Seconds      int     `yaml:"seconds"`      // 倒计时起始数字
	TickInterval float64 `yaml:"tickInterval"` // 每个数字停留时间（秒）
}

// PoseConfig 手部关键点输入源配置
type PoseConfig struct {
	ListenAddr        string  `yaml:"listenAddr"`        // WebSocket 监听地址
	Path              string  `yaml:"path"`              // WebSocket 路径
	MovementThreshold float64 `yaml:"movementThreshold"` // 手部移动阈值（像素）
	EventBuffer       int     `yaml:"eventBuffer"`       // 网络线程到游戏循环的事件缓冲
}

// FruitKind 水果种类
type FruitKind struct {
	Name       string  `yaml:"name"`
	Radius     float64 `yaml:"radius"`
	Color      string  `yaml:"color"`
	JuiceColor string  `yaml:"juiceColor"`
	Score      int     `yaml:"score"`
}

// BackgroundPalette 背景渐变色
type BackgroundPalette struct {
	Name   string `yaml:"name"`
	Top    string `yaml:"top"`
	Bottom string `yaml:"bottom"`
}

// DefaultGameConfig 返回内置默认配置
// 配置文件缺失字段时以此为基础
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Gameplay: GameplayConfig{
			Gravity:             900,
			Lives:               3,
			SpawnInterval:       1.6,
			MinSpawnInterval:    0.7,
			SpawnAcceleration:   0.03,
			MaxWaveSize:         4,
			BombChance:          0.12,
			LaunchSpeedMin:      780,
			LaunchSpeedMax:      980,
			GameOverBannerDelay: 2.0,
			GameOverDelay:       4.0,
			TrailLifetime:       0.18,
			MinSliceDistance:    6,
		},
		Countdown: CountdownConfig{
			Seconds:      3,
			TickInterval: 1.0,
		},
		Pose: PoseConfig{
			ListenAddr:        "127.0.0.1:8765",
			Path:              "/pose",
			MovementThreshold: 3,
			EventBuffer:       8,
		},
		Fruits: []FruitKind{
			{Name: "apple", Radius: 34, Color: "#d7263d", JuiceColor: "#f7c4a5", Score: 1},
			{Name: "watermelon", Radius: 48, Color: "#2a9d3f", JuiceColor: "#ef476f", Score: 1},
		},
		Backgrounds: []BackgroundPalette{
			{Name: "dojo", Top: "#3d2b1f", Bottom: "#7f5539"},
		},
	}
}

// LoadGameConfig 加载游戏配置
//
// 路径以 "data/" 开头且 embedded 包已初始化时从 embed.FS 读取，
// 否则从磁盘读取（用于 -config 参数指定外部配置文件）。
func LoadGameConfig(path string) (*GameConfig, error) {
	var (
		data []byte
		err  error
	)
	if embedded.IsInitialized() && strings.HasPrefix(path, "data/") {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("game config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseGameConfig 解析 YAML 配置并校验
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置的合法性
func (c *GameConfig) Validate() error {
	g := c.Gameplay
	switch {
	case g.Gravity <= 0:
		return fmt.Errorf("gameplay.gravity must be > 0, got %v", g.Gravity)
	case g.Lives <= 0:
		return fmt.Errorf("gameplay.lives must be > 0, got %d", g.Lives)
	case g.SpawnInterval <= 0 || g.MinSpawnInterval <= 0:
		return fmt.Errorf("gameplay spawn intervals must be > 0")
	case g.MinSpawnInterval > g.SpawnInterval:
		return fmt.Errorf("gameplay.minSpawnInterval (%v) > spawnInterval (%v)", g.MinSpawnInterval, g.SpawnInterval)
	case g.MaxWaveSize <= 0:
		return fmt.Errorf("gameplay.maxWaveSize must be > 0, got %d", g.MaxWaveSize)
	case g.BombChance < 0 || g.BombChance > 1:
		return fmt.Errorf("gameplay.bombChance must be within [0, 1], got %v", g.BombChance)
	case g.LaunchSpeedMin <= 0 || g.LaunchSpeedMax < g.LaunchSpeedMin:
		return fmt.Errorf("gameplay launch speed range invalid: [%v, %v]", g.LaunchSpeedMin, g.LaunchSpeedMax)
	case g.GameOverDelay < 0 || g.GameOverBannerDelay < 0:
		return fmt.Errorf("gameplay game over delays must be >= 0")
	}

	if c.Countdown.Seconds <= 0 {
		return fmt.Errorf("countdown.seconds must be > 0, got %d", c.Countdown.Seconds)
	}
	if c.Countdown.TickInterval <= 0 {
		return fmt.Errorf("countdown.tickInterval must be > 0, got %v", c.Countdown.TickInterval)
	}
	if c.Pose.MovementThreshold < 0 {
		return fmt.Errorf("pose.movementThreshold must be >= 0, got %v", c.Pose.MovementThreshold)
	}
	if c.Pose.EventBuffer <= 0 {
		return fmt.Errorf("pose.eventBuffer must be > 0, got %d", c.Pose.EventBuffer)
	}

	if len(c.Fruits) == 0 {
		return fmt.Errorf("at least one fruit kind is required")
	}
	for _, f := range c.Fruits {
		if f.Radius <= 0 {
			return fmt.Errorf("fruit %q: radius must be > 0", f.Name)
		}
		if _, err := ParseHexColor(f.Color); err != nil {
			return fmt.Errorf("fruit %q: %w", f.Name, err)
		}
		if _, err := ParseHexColor(f.JuiceColor); err != nil {
			return fmt.Errorf("fruit %q: %w", f.Name, err)
		}
	}

	if len(c.Backgrounds) == 0 {
		return fmt.Errorf("at least one background is required")
	}
	for _, b := range c.Backgrounds {
		if _, err := ParseHexColor(b.Top); err != nil {
			return fmt.Errorf("background %q: %w", b.Name, err)
		}
		if _, err := ParseHexColor(b.Bottom); err != nil {
			return fmt.Errorf("background %q: %w", b.Name, err)
		}
	}
	return nil
}

// Background 按 1-based 序号返回背景
// 超出范围的序号一律回退到第 1 张背景
func (c *GameConfig) Background(index int) BackgroundPalette {
	if index < 1 || index > len(c.Backgrounds) {
		return c.Backgrounds[0]
	}
	return c.Backgrounds[index-1]
}

// BackgroundCount 返回可选背景数量
func (c *GameConfig) BackgroundCount() int {
	return len(c.Backgrounds)
}

// ParseHexColor 解析 "#RRGGBB" 或 "#RRGGBBAA" 格式颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// MustColor 解析已通过 Validate 校验的颜色
func MustColor(s string) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}

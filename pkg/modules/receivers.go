package modules

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/game"
)

// 手腕输入源 ID
// 触点 ID 由 ebiten 分配（非负），鼠标为 utils.MousePointerID (-1)
const (
	HandSourceLeft  = -100
	HandSourceRight = -101
)

// SliceEffectReceiver 接收刀光输入的界面
//
// 同一时间只有一个界面是活动接收者（见 InputRouter）。
// source 区分不同的输入源，每个输入源有独立的刀光轨迹。
type SliceEffectReceiver interface {
	// OnSliceAt 输入源移动到 (x, y)
	OnSliceAt(source int, x, y float64)
	// OnSliceEnd 输入源的笔画结束
	OnSliceEnd(source int)
	// OnTap 输入源在 (x, y) 按下
	OnTap(source int, x, y float64)
}

// HandPositionReceiver 接收手腕位置（用于绘制光标）
type HandPositionReceiver interface {
	UpdateLeftHandPosition(x, y float64)
	UpdateRightHandPosition(x, y float64)
}

// Fonts 界面使用的字体
// 字段可以为 nil（测试中），此时文字不绘制
type Fonts struct {
	Title     *text.GoTextFace
	Countdown *text.GoTextFace
	Large     *text.GoTextFace
	Normal    *text.GoTextFace
	Small     *text.GoTextFace
}

// LoadFonts 从资源管理器加载所有字体
func LoadFonts(rm *game.ResourceManager) Fonts {
	return Fonts{
		Title:     rm.MustFont(game.FontBold, 72),
		Countdown: rm.MustFont(game.FontBold, config.CountdownFontSize),
		Large:     rm.MustFont(game.FontBold, 36),
		Normal:    rm.MustFont(game.FontRegular, 26),
		Small:     rm.MustFont(game.FontRegular, 20),
	}
}

// Audio 界面和控制器使用的音频接口，由 game.AudioManager 实现
type Audio interface {
	PlaySound(soundID string) bool
	PlayMusic(musicID string) bool
	PauseMusic()
	ResumeMusic()
	SetMusicEnabled(enabled bool)
	SetSoundEnabled(enabled bool)
}

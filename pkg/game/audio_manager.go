package game

import (
	"bytes"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	synth "github.com/decker502/ninjafruit/internal/audio"
)

// 音频资源ID
const (
	SoundCountdown = "countdown" // 倒计时每个数字
	SoundStart     = "start"     // 倒计时结束 / 开局
	SoundSlice     = "slice"     // 刀光切中
	SoundSplatter  = "splatter"  // 果汁飞溅
	SoundThrow     = "throw"     // 抛出水果
	SoundBomb      = "boom"      // 切中炸弹
	SoundOver      = "over"      // 游戏结束
	SoundButton    = "button"    // 菜单按钮
	MusicTheme     = "theme_song"
)

// clip 一段已合成的 PCM 数据
type clip struct {
	pcm  []byte
	loop bool
}

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有音效和背景音乐的播放
//   - 读取 SettingsManager 中的开关和音量
//   - 焦点丢失 / 暂停菜单时暂停音乐，恢复时仅在音乐开启时继续
//
// audioContext 为 nil 时进入静音模式：所有开关和状态照常维护，但不创建播放器。
// 测试和无音频设备的环境使用这种模式。
type AudioManager struct {
	audioContext    *audio.Context
	settingsManager *SettingsManager
	clips           map[string]clip
	players         map[string]*audio.Player // 播放器缓存（资源ID -> 播放器）
	currentMusic    *audio.Player
	currentMusicID  string
	musicPlaying    bool
}

// NewAudioManager 创建新的音频管理器并注册内置音频
//
// 参数：
//   - audioContext: 全局音频上下文，可为 nil（静音模式）
//   - sm: SettingsManager 实例（用于读取开关和音量，可为 nil）
func NewAudioManager(audioContext *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		audioContext:    audioContext,
		settingsManager: sm,
		clips:           make(map[string]clip),
		players:         make(map[string]*audio.Player),
	}
	am.registerBuiltinClips()
	return am
}

// registerBuiltinClips 合成所有内置音效
func (am *AudioManager) registerBuiltinClips() {
	am.RegisterClip(SoundCountdown, synth.CountdownTick().PCM16Stereo(), false)
	am.RegisterClip(SoundStart, synth.StartGong().PCM16Stereo(), false)
	am.RegisterClip(SoundSlice, synth.Slice().PCM16Stereo(), false)
	am.RegisterClip(SoundSplatter, synth.Splatter().PCM16Stereo(), false)
	am.RegisterClip(SoundThrow, synth.Throw().PCM16Stereo(), false)
	am.RegisterClip(SoundBomb, synth.Bomb().PCM16Stereo(), false)
	am.RegisterClip(SoundOver, synth.GameOver().PCM16Stereo(), false)
	am.RegisterClip(SoundButton, synth.Button().PCM16Stereo(), false)
	am.RegisterClip(MusicTheme, synth.Theme().PCM16Stereo(), true)
}

// RegisterClip 注册一段 16-bit 小端立体声 PCM 数据
// 已存在的同名播放器会被丢弃，下次播放时重新创建
func (am *AudioManager) RegisterClip(id string, pcm []byte, loop bool) {
	am.clips[id] = clip{pcm: pcm, loop: loop}
	delete(am.players, id)
}

// HasClip 检查音频是否已注册
func (am *AudioManager) HasClip(id string) bool {
	_, ok := am.clips[id]
	return ok
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 音效是否被接受（已注册且音效开关开启）
func (am *AudioManager) PlaySound(soundID string) bool {
	if !am.soundEnabled() {
		return false
	}
	if !am.HasClip(soundID) {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return false
	}

	player := am.getPlayer(soundID)
	if player == nil {
		return true
	}
	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// PlayMusic 播放背景音乐（循环）
// 同一时间只能播放一首背景音乐；音乐关闭时只记录曲目，开启后由 ResumeMusic 播放
func (am *AudioManager) PlayMusic(musicID string) bool {
	if !am.HasClip(musicID) {
		log.Printf("[AudioManager] Warning: Music not found: %s", musicID)
		return false
	}
	if am.currentMusicID == musicID && am.musicPlaying {
		return true
	}

	am.StopMusic()
	am.currentMusicID = musicID
	am.currentMusic = am.getPlayer(musicID)

	if !am.musicEnabled() {
		return false
	}
	am.startCurrentMusic()
	log.Printf("[AudioManager] Playing music: %s (volume: %.2f)", musicID, am.getMusicVolume())
	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
	}
	am.currentMusic = nil
	am.currentMusicID = ""
	am.musicPlaying = false
}

// PauseMusic 暂停当前背景音乐，保留播放位置
func (am *AudioManager) PauseMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
	}
	am.musicPlaying = false
}

// ResumeMusic 恢复当前背景音乐（仅在音乐开关开启时）
func (am *AudioManager) ResumeMusic() {
	if am.currentMusicID == "" || am.musicPlaying || !am.musicEnabled() {
		return
	}
	am.startCurrentMusic()
}

// IsMusicPlaying 返回背景音乐是否处于播放状态
func (am *AudioManager) IsMusicPlaying() bool {
	return am.musicPlaying
}

// CurrentMusicID 返回当前曲目ID（未设置时为空）
func (am *AudioManager) CurrentMusicID() string {
	return am.currentMusicID
}

// SetMusicEnabled 切换音乐开关并立即生效
func (am *AudioManager) SetMusicEnabled(enabled bool) {
	if am.settingsManager != nil {
		am.settingsManager.SetMusicEnabled(enabled)
	}
	if enabled {
		am.ResumeMusic()
	} else {
		am.PauseMusic()
	}
}

// SetSoundEnabled 切换音效开关
func (am *AudioManager) SetSoundEnabled(enabled bool) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundEnabled(enabled)
	}
}

func (am *AudioManager) startCurrentMusic() {
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(am.getMusicVolume())
		am.currentMusic.Play()
	}
	am.musicPlaying = true
}

// getPlayer 获取或创建播放器，静音模式下返回 nil
func (am *AudioManager) getPlayer(id string) *audio.Player {
	if am.audioContext == nil {
		return nil
	}
	if player, exists := am.players[id]; exists {
		return player
	}

	c := am.clips[id]
	var (
		player *audio.Player
		err    error
	)
	if c.loop {
		loop := audio.NewInfiniteLoop(bytes.NewReader(c.pcm), int64(len(c.pcm)))
		player, err = am.audioContext.NewPlayer(loop)
	} else {
		player = am.audioContext.NewPlayerFromBytes(c.pcm)
	}
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create player %s: %v", id, err)
		return nil
	}
	am.players[id] = player
	return player
}

func (am *AudioManager) soundEnabled() bool {
	return am.settingsManager == nil || am.settingsManager.GetSettings().SoundEnabled
}

func (am *AudioManager) musicEnabled() bool {
	return am.settingsManager == nil || am.settingsManager.GetSettings().MusicEnabled
}

// getMusicVolume 获取音乐音量设置
func (am *AudioManager) getMusicVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().MusicVolume
	}
	return 0.7 // 默认值
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}

package systems

// SoundPlayer 播放音效的接口
// game.AudioManager 实现了该接口；测试中使用记录调用的假实现
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// playSound 在 player 为 nil 时静默忽略
func playSound(player SoundPlayer, soundID string) {
	if player != nil {
		player.PlaySound(soundID)
	}
}

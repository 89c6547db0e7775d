//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.ninjafruit -o build/android/ninjafruit.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/NinjaFruit.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/ninjafruit/pkg/app"
	"github.com/decker502/ninjafruit/pkg/embedded"
)

var gameApp *app.App

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	var err error
	gameApp, err = app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// SaveOnExit 由宿主 Activity 的 onPause/onDestroy 调用，保存最高分和设置
func SaveOnExit() bool {
	if gameApp == nil {
		return true
	}
	return gameApp.GetSceneManager().SaveOnExit()
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}

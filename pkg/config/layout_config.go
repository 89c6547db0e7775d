package config

// 布局配置常量
// 本文件定义了游戏画面的逻辑尺寸和 UI 元素位置
// 所有坐标均为逻辑像素，Ebitengine 负责缩放到实际窗口

// 窗口尺寸
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 1280
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 720
)

// 开始界面布局（原版以黄金分割点放置"新游戏"圆环）
const (
	// StartRingX 新游戏圆环中心X
	StartRingX = GameWindowWidth * 0.618
	// StartRingY 新游戏圆环中心Y
	StartRingY = GameWindowHeight * 0.618
	// StartRingRadius 新游戏圆环半径
	StartRingRadius = 96.0
	// StartTitleY 标题最终停留的Y坐标
	StartTitleY = 120.0
)

// 菜单按钮
const (
	// MenuButtonWidth 菜单按钮宽度
	MenuButtonWidth = 300.0
	// MenuButtonHeight 菜单按钮高度
	MenuButtonHeight = 56.0
	// MenuButtonSpacing 菜单按钮垂直间距
	MenuButtonSpacing = 14.0
	// MenuOverlayAlpha 暂停菜单遮罩透明度 (0-255)
	MenuOverlayAlpha = 178 // rgba(0, 0, 0, 0.7)
)

// 游戏内 HUD
const (
	// PauseButtonX 暂停按钮左上角X
	PauseButtonX = GameWindowWidth - 76.0
	// PauseButtonY 暂停按钮左上角Y
	PauseButtonY = 16.0
	// PauseButtonSize 暂停按钮边长
	PauseButtonSize = 56.0
	// ScoreTextX 分数文字X
	ScoreTextX = 50.0
	// ScoreTextY 分数文字Y
	ScoreTextY = 10.0
	// BestTextX 最高分文字X
	BestTextX = 10.0
	// BestTextY 最高分文字Y
	BestTextY = 55.0
	// LivesRightMargin 生命标记距离右边缘的距离
	LivesRightMargin = 150.0
)

// 其他界面
const (
	// CountdownFontSize 倒计时数字字号
	CountdownFontSize = 120.0
	// ToastY Toast 提示的中心Y
	ToastY = GameWindowHeight - 90.0
	// ToastShortDuration 短 Toast 时长（秒）
	ToastShortDuration = 2.0
	// ToastLongDuration 长 Toast 时长（秒）
	ToastLongDuration = 3.5
	// HandCursorRadius 手部光标半径
	HandCursorRadius = 14.0
)

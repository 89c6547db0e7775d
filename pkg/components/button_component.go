package components

// ButtonComponent 按钮组件（ECS 架构）
// 位置来自 PositionComponent（左上角），外观由 RenderSystem 根据状态绘制
//
// 按钮既可以点击触发，也可以被刀光/手部划过触发：
// 一个输入源进入按钮区域时触发一次，离开后才能再次触发。
type ButtonComponent struct {
	Label  string
	Width  float64
	Height float64

	// Toggle 按钮显示开/关状态
	IsToggle bool
	Checked  bool

	State   UIState
	Enabled bool

	// Inside 各输入源当前是否在按钮内（由 ButtonSystem 维护）
	Inside map[int]bool

	OnClick func()
}

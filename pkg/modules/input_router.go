package modules

import (
	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/pose"
	"github.com/decker502/ninjafruit/pkg/utils"
)

// RoutedView 可以成为活动接收者的界面
type RoutedView interface {
	SliceEffectReceiver
	IsVisible() bool
}

// InputRouter 把触摸、鼠标和手腕输入分发给活动界面
//
// 活动接收者按固定优先级选择：
// 退出确认框 > 暂停菜单 > 开始界面 > 倒计时（只响应暂停按钮）> 游戏界面（仅在未暂停时）。
// 没有活动接收者时输入被丢弃。
type InputRouter struct {
	gameState *game.GameState

	quitDialog  RoutedView
	pauseMenu   RoutedView
	startScreen RoutedView
	countdown   RoutedView
	gameView    RoutedView

	views         []RoutedView
	handReceivers []HandPositionReceiver
}

// InputRouterViews 参与分发的界面，任意字段可为 nil
type InputRouterViews struct {
	QuitDialog  RoutedView
	PauseMenu   RoutedView
	StartScreen RoutedView
	Countdown   RoutedView
	GameView    RoutedView
}

// NewInputRouter 创建输入分发器
func NewInputRouter(gs *game.GameState, views InputRouterViews) *InputRouter {
	r := &InputRouter{
		gameState:   gs,
		quitDialog:  views.QuitDialog,
		pauseMenu:   views.PauseMenu,
		startScreen: views.StartScreen,
		countdown:   views.Countdown,
		gameView:    views.GameView,
	}
	for _, v := range []RoutedView{r.quitDialog, r.pauseMenu, r.startScreen, r.countdown, r.gameView} {
		if v != nil {
			r.views = append(r.views, v)
		}
	}
	return r
}

// AddHandReceiver 注册手腕位置接收者（光标、骨架叠加层）
func (r *InputRouter) AddHandReceiver(receiver HandPositionReceiver) {
	r.handReceivers = append(r.handReceivers, receiver)
}

// ActiveReceiver 返回当前的活动接收者，没有时返回 nil
func (r *InputRouter) ActiveReceiver() SliceEffectReceiver {
	switch {
	case visible(r.quitDialog):
		return r.quitDialog
	case visible(r.pauseMenu):
		return r.pauseMenu
	case visible(r.startScreen):
		return r.startScreen
	case visible(r.countdown):
		return r.countdown
	case r.gameView != nil && r.gameState.IsGameStarted() && !r.gameState.IsPaused():
		return r.gameView
	}
	return nil
}

// DispatchPointer 分发一个触点/鼠标笔画事件
// 笔画结束事件发给所有界面，保证各自的刀光都能正确收尾
func (r *InputRouter) DispatchPointer(ev utils.StrokeEvent) {
	if ev.State == utils.StrokeEnded {
		for _, v := range r.views {
			v.OnSliceEnd(ev.ID)
		}
		return
	}

	receiver := r.ActiveReceiver()
	if receiver == nil {
		return
	}
	if ev.State == utils.StrokeStarted {
		receiver.OnTap(ev.ID, ev.X, ev.Y)
	}
	receiver.OnSliceAt(ev.ID, ev.X, ev.Y)
}

// DispatchHands 分发一帧手腕关键点
//
// 缺失坐标的手不产生任何事件。
// 光标总是更新；游戏结束动画期间不分发手腕刀光。
func (r *InputRouter) DispatchHands(left, right pose.Keypoint) {
	lx, ly, leftOK := left.Point()
	rx, ry, rightOK := right.Point()

	for _, hr := range r.handReceivers {
		if leftOK {
			hr.UpdateLeftHandPosition(lx, ly)
		}
		if rightOK {
			hr.UpdateRightHandPosition(rx, ry)
		}
	}

	if r.gameState.IsGameOver() {
		return
	}
	receiver := r.ActiveReceiver()
	if receiver == nil {
		return
	}
	if leftOK {
		receiver.OnSliceAt(HandSourceLeft, lx, ly)
	}
	if rightOK {
		receiver.OnSliceAt(HandSourceRight, rx, ry)
	}
}

// OnHandLandmarks 实现 pose.HandLandmarkListener
func (r *InputRouter) OnHandLandmarks(left, right pose.Keypoint) {
	r.DispatchHands(left, right)
}

// visible 判断可能为 nil 的界面是否可见
func visible(v RoutedView) bool {
	return v != nil && v.IsVisible()
}

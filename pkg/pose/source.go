package pose

import (
	"context"
	"errors"
)

// 检测源启动失败的两类错误，对本次会话的摄像头功能都是终止性的
var (
	ErrCameraUnavailable = errors.New("camera unavailable")
	ErrPermissionDenied  = errors.New("camera permission denied")
)

// EventKind 事件类型
type EventKind int

const (
	EventConnected EventKind = iota
	EventHands
	EventPreview
	EventDisconnected
)

func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventHands:
		return "hands"
	case EventPreview:
		return "preview"
	case EventDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Event 检测源投递给游戏主循环的事件
type Event struct {
	Kind    EventKind
	Session string
	Hands   HandFrame // EventHands
	Preview []byte    // EventPreview
}

// Source 手部关键点来源
//
// Events 返回的通道在 Stop 之后仍然有效，Start 可以再次调用。
// 事件在网络 goroutine 中产生，必须在游戏主循环中消费。
type Source interface {
	Start(ctx context.Context) error
	Stop()
	Running() bool
	Events() <-chan Event
}

package pose

import (
	"encoding/json"
	"fmt"
)

// ProtocolVersion 当前协议版本
const ProtocolVersion = 1

// 消息类型
const (
	MsgHello   = "hello"   // 检测端 -> 游戏：握手
	MsgHands   = "hands"   // 检测端 -> 游戏：一帧手部关键点
	MsgPreview = "preview" // 检测端 -> 游戏：摄像头预览帧（JPEG/PNG）
	MsgWelcome = "welcome" // 游戏 -> 检测端：握手应答
	MsgError   = "error"   // 游戏 -> 检测端：协议错误
)

// Envelope 所有消息的外层结构
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// Hello 握手
type Hello struct {
	V    int    `json:"v"`
	Name string `json:"name,omitempty"`
}

// Welcome 握手应答，告诉检测端会话ID和屏幕尺寸（关键点使用该坐标系）
type Welcome struct {
	Session string `json:"session"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// Hands 一帧手部关键点
type Hands struct {
	Seq   uint64   `json:"seq,omitempty"`
	Left  Keypoint `json:"left"`
	Right Keypoint `json:"right"`
}

// Preview 摄像头预览帧，Image 为编码后的图片（JSON 中为 base64）
type Preview struct {
	Image []byte `json:"image"`
}

// ErrorMessage 协议错误
type ErrorMessage struct {
	Message string `json:"message"`
}

// Encode 编码一条消息
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encode: empty message type")
	}
	if payload == nil {
		return nil, fmt.Errorf("encode %s: nil payload", t)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

// DecodeEnvelope 解码外层结构
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode: empty message")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if e.T == "" {
		return Envelope{}, fmt.Errorf("decode: missing message type")
	}
	return e, nil
}

// DecodePayload 按类型解码消息体
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	if err := json.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", env.T, err)
	}
	return out, nil
}

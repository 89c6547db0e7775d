package pose

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client 检测端连接（cmd/pose_feeder 和测试使用）
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	seq     uint64

	Session string // 服务器分配的会话ID
	Width   int    // 关键点坐标系宽度
	Height  int    // 关键点坐标系高度
}

// Dial 连接游戏并完成握手
func Dial(ctx context.Context, url, name string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	c := &Client{conn: conn}
	if err := c.write(MsgHello, Hello{V: ProtocolVersion, Name: name}); err != nil {
		conn.Close()
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	} else {
		_ = conn.SetReadDeadline(time.Now().Add(helloWait))
	}
	env, err := c.ReadEnvelope()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("read welcome: %w", err)
	}
	_ = conn.SetReadDeadline(time.Time{})

	switch env.T {
	case MsgWelcome:
		welcome, err := DecodePayload[Welcome](env)
		if err != nil {
			conn.Close()
			return nil, err
		}
		c.Session = welcome.Session
		c.Width = welcome.Width
		c.Height = welcome.Height
		return c, nil
	case MsgError:
		msg, _ := DecodePayload[ErrorMessage](env)
		conn.Close()
		return nil, fmt.Errorf("server rejected hello: %s", msg.Message)
	default:
		conn.Close()
		return nil, fmt.Errorf("expected %q, got %q", MsgWelcome, env.T)
	}
}

// SendHands 发送一帧手部关键点
func (c *Client) SendHands(left, right Keypoint) error {
	c.writeMu.Lock()
	c.seq++
	seq := c.seq
	c.writeMu.Unlock()
	return c.write(MsgHands, Hands{Seq: seq, Left: left, Right: right})
}

// SendPreview 发送一帧编码后的摄像头画面
func (c *Client) SendPreview(image []byte) error {
	return c.write(MsgPreview, Preview{Image: image})
}

// ReadEnvelope 读取服务器发来的下一条消息（错误消息等）
func (c *Client) ReadEnvelope() (Envelope, error) {
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return Envelope{}, err
	}
	return DecodeEnvelope(msg)
}

// Close 正常关闭连接
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()
	return c.conn.Close()
}

func (c *Client) write(t string, payload any) error {
	b, err := Encode(t, payload)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return fmt.Errorf("write %s: %w", t, err)
	}
	return nil
}

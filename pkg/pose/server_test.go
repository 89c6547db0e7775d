package pose

import (
	"context"
	"errors"
	"net"
	"net/http/httptest"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T, buffer int) (*Server, string) {
	t.Helper()
	s := NewServer(ServerConfig{Path: "/pose", EventBuffer: buffer, ScreenWidth: 1280, ScreenHeight: 720})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, "ws" + strings.TrimPrefix(ts.URL, "http") + "/pose"
}

func dialTest(t *testing.T, url string) *Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c, err := Dial(ctx, url, "test-detector")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	return c
}

func nextEvent(t *testing.T, s *Server) Event {
	t.Helper()
	select {
	case ev := <-s.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestServerSessionLifecycle(t *testing.T) {
	s, url := newTestServer(t, 8)
	c := dialTest(t, url)

	if c.Session == "" {
		t.Error("client should receive a session id")
	}
	if c.Width != 1280 || c.Height != 720 {
		t.Errorf("screen size: got %dx%d, want 1280x720", c.Width, c.Height)
	}

	ev := nextEvent(t, s)
	if ev.Kind != EventConnected || ev.Session != c.Session {
		t.Fatalf("first event = %+v, want connected for %s", ev, c.Session)
	}

	y := 50.0
	if err := c.SendHands(At(10, 20), Keypoint{Y: &y}); err != nil {
		t.Fatalf("SendHands: %v", err)
	}
	ev = nextEvent(t, s)
	if ev.Kind != EventHands {
		t.Fatalf("event kind = %v, want hands", ev.Kind)
	}
	if x, y, ok := ev.Hands.Left.Point(); !ok || x != 10 || y != 20 {
		t.Errorf("left = (%v, %v, %v), want (10, 20, true)", x, y, ok)
	}
	if ev.Hands.Right.Present() {
		t.Error("right hand without x must stay absent")
	}

	if err := c.SendPreview([]byte{1, 2, 3}); err != nil {
		t.Fatalf("SendPreview: %v", err)
	}
	ev = nextEvent(t, s)
	if ev.Kind != EventPreview || len(ev.Preview) != 3 {
		t.Errorf("preview event = %+v", ev)
	}

	c.Close()
	ev = nextEvent(t, s)
	if ev.Kind != EventDisconnected || ev.Session != c.Session {
		t.Errorf("last event = %+v, want disconnected", ev)
	}
}

func TestServerRejectsWrongVersion(t *testing.T) {
	_, url := newTestServer(t, 8)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	b, _ := Encode(MsgHello, Hello{V: ProtocolVersion + 1})
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		t.Fatalf("write hello: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	env, _ := DecodeEnvelope(msg)
	if env.T != MsgError {
		t.Errorf("reply type = %q, want %q", env.T, MsgError)
	}
}

func TestServerReportsUnknownMessage(t *testing.T) {
	s, url := newTestServer(t, 8)
	c := dialTest(t, url)
	defer c.Close()
	nextEvent(t, s) // connected

	if err := c.write("jump", Hello{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	env, err := c.ReadEnvelope()
	if err != nil {
		t.Fatalf("ReadEnvelope: %v", err)
	}
	msg, _ := DecodePayload[ErrorMessage](env)
	if env.T != MsgError || !strings.Contains(msg.Message, "jump") {
		t.Errorf("reply = %s %+v", env.T, msg)
	}
}

// TestServerDropsOldestEvent 主循环来不及消费时保留最新的事件
func TestServerDropsOldestEvent(t *testing.T) {
	s := NewServer(ServerConfig{EventBuffer: 2})

	for i := 0; i < 5; i++ {
		s.emit(Event{Kind: EventHands, Session: string(rune('a' + i))})
	}

	if s.Dropped() != 3 {
		t.Errorf("Dropped() = %d, want 3", s.Dropped())
	}
	first := <-s.Events()
	second := <-s.Events()
	if first.Session != "d" || second.Session != "e" {
		t.Errorf("kept events %q, %q; want d, e", first.Session, second.Session)
	}
}

func TestServerStartStop(t *testing.T) {
	s := NewServer(ServerConfig{Addr: "127.0.0.1:0", Path: "/pose"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.Running() || s.Addr() == "" {
		t.Fatal("server should be running with an address")
	}
	if err := s.Start(ctx); err != nil {
		t.Errorf("second Start should be a no-op, got %v", err)
	}

	c := dialTest(t, "ws://"+s.Addr()+"/pose")
	nextEvent(t, s) // connected

	s.Stop()
	if s.Running() {
		t.Error("server should not be running after Stop")
	}
	ev := nextEvent(t, s)
	if ev.Kind != EventDisconnected || ev.Session != c.Session {
		t.Errorf("event after Stop = %+v, want disconnected", ev)
	}
}

// TestServerStartAddressInUse 端口被占用时报告摄像头不可用
func TestServerStartAddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	s := NewServer(ServerConfig{Addr: ln.Addr().String()})
	err = s.Start(context.Background())
	if !errors.Is(err, ErrCameraUnavailable) {
		t.Fatalf("Start error = %v, want ErrCameraUnavailable", err)
	}
	if s.Running() {
		t.Error("failed Start must leave the server stopped")
	}
}

func TestServerContextCancelStops(t *testing.T) {
	s := NewServer(ServerConfig{Addr: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for s.Running() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.Running() {
		t.Error("server should stop when the context is cancelled")
	}
}

func TestClassifyListenError(t *testing.T) {
	if err := classifyListenError(errors.New("boom")); !errors.Is(err, ErrCameraUnavailable) {
		t.Errorf("generic error: got %v", err)
	}

	denied := &net.OpError{Op: "listen", Net: "tcp", Err: os.NewSyscallError("bind", syscall.EACCES)}
	if err := classifyListenError(denied); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("EACCES: got %v, want ErrPermissionDenied", err)
	}
}

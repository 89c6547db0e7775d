package pose

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	readLimit    = 4 << 20 // 预览帧可能较大
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
	helloWait    = 5 * time.Second
)

// ServerConfig WebSocket 检测源配置
type ServerConfig struct {
	Addr         string // 监听地址，如 127.0.0.1:8765
	Path         string // WebSocket 路径，如 /pose
	EventBuffer  int    // 事件缓冲，满时丢弃最旧的事件
	ScreenWidth  int    // 通过 welcome 告诉检测端的坐标系
	ScreenHeight int
}

// Server 在本机监听 WebSocket，把检测端推送的关键点转成 Event
type Server struct {
	cfg      ServerConfig
	upgrader websocket.Upgrader
	events   chan Event
	dropped  atomic.Int64

	mu       sync.Mutex
	httpSrv  *http.Server
	listener net.Listener
	stopCh   chan struct{}
	conns    map[string]*websocket.Conn
}

// NewServer 创建检测源服务器（尚未监听）
func NewServer(cfg ServerConfig) *Server {
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = 8
	}
	if cfg.Path == "" {
		cfg.Path = "/pose"
	}
	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			// 只监听本机地址，检测端可能是浏览器页面
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		events: make(chan Event, cfg.EventBuffer),
		conns:  make(map[string]*websocket.Conn),
	}
}

// Events 实现 Source
func (s *Server) Events() <-chan Event {
	return s.events
}

// Dropped 返回因主循环来不及消费而丢弃的事件数
func (s *Server) Dropped() int64 {
	return s.dropped.Load()
}

// Running 是否正在监听
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.httpSrv != nil
}

// Addr 返回实际监听地址（未启动时为空）
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler 返回 WebSocket 处理器（测试中配合 httptest 使用）
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Path, s.handleWS)
	return mux
}

// Start 开始监听
//
// 监听失败按原因归类：权限不足返回 ErrPermissionDenied，
// 其余（端口占用、地址不可用）返回 ErrCameraUnavailable。
// 已在运行时直接返回 nil。ctx 取消时自动停止。
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.httpSrv != nil {
		s.mu.Unlock()
		return nil
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.mu.Unlock()
		return classifyListenError(err)
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	stopCh := make(chan struct{})
	s.httpSrv = srv
	s.listener = ln
	s.stopCh = stopCh
	s.mu.Unlock()

	log.Printf("[PoseServer] Listening on ws://%s%s", ln.Addr(), s.cfg.Path)

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[PoseServer] Serve error: %v", err)
		}
	}()
	go func() {
		select {
		case <-ctx.Done():
			s.stopServer(srv)
		case <-stopCh:
		}
	}()
	return nil
}

// Stop 停止监听并断开所有检测端
func (s *Server) Stop() {
	s.mu.Lock()
	srv := s.httpSrv
	s.mu.Unlock()
	if srv != nil {
		s.stopServer(srv)
	}
}

func (s *Server) stopServer(srv *http.Server) {
	s.mu.Lock()
	if s.httpSrv != srv {
		s.mu.Unlock()
		return
	}
	s.httpSrv = nil
	s.listener = nil
	close(s.stopCh)
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	// 被劫持的 WebSocket 连接不受 Shutdown 管理，需要单独关闭
	for _, c := range conns {
		_ = c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "game stopped hand detection"),
			time.Now().Add(time.Second))
		_ = c.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[PoseServer] Shutdown error: %v", err)
	}
	log.Printf("[PoseServer] Stopped")
}

// classifyListenError 把监听错误映射为检测源错误
func classifyListenError(err error) error {
	if errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM) {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
}

// emit 非阻塞投递事件，缓冲满时丢弃最旧的事件
func (s *Server) emit(ev Event) {
	for {
		select {
		case s.events <- ev:
			return
		default:
		}
		select {
		case <-s.events:
			s.dropped.Add(1)
		default:
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[PoseServer] Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(readLimit)

	session, err := s.handshake(conn)
	if err != nil {
		log.Printf("[PoseServer] Handshake failed: %v", err)
		s.writeError(conn, &sync.Mutex{}, err.Error())
		return
	}

	s.mu.Lock()
	s.conns[session] = conn
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.conns, session)
		s.mu.Unlock()
		s.emit(Event{Kind: EventDisconnected, Session: session})
		log.Printf("[PoseServer] Session %s disconnected", session)
	}()

	s.emit(Event{Kind: EventConnected, Session: session})
	log.Printf("[PoseServer] Session %s connected from %s", session, r.RemoteAddr)

	var writeMu sync.Mutex
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go s.pingLoop(conn, &writeMu, done)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[PoseServer] Read error (%s): %v", session, err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		env, err := DecodeEnvelope(msg)
		if err != nil {
			s.writeError(conn, &writeMu, err.Error())
			continue
		}
		switch env.T {
		case MsgHands:
			hands, err := DecodePayload[Hands](env)
			if err != nil {
				s.writeError(conn, &writeMu, err.Error())
				continue
			}
			s.emit(Event{Kind: EventHands, Session: session, Hands: HandFrame{Left: hands.Left, Right: hands.Right}})
		case MsgPreview:
			preview, err := DecodePayload[Preview](env)
			if err != nil || len(preview.Image) == 0 {
				s.writeError(conn, &writeMu, "invalid preview frame")
				continue
			}
			s.emit(Event{Kind: EventPreview, Session: session, Preview: preview.Image})
		default:
			s.writeError(conn, &writeMu, fmt.Sprintf("unexpected message type %q", env.T))
		}
	}
}

// handshake 读取 hello 并回复 welcome
func (s *Server) handshake(conn *websocket.Conn) (string, error) {
	_ = conn.SetReadDeadline(time.Now().Add(helloWait))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("read hello: %w", err)
	}
	env, err := DecodeEnvelope(msg)
	if err != nil {
		return "", err
	}
	if env.T != MsgHello {
		return "", fmt.Errorf("expected %q, got %q", MsgHello, env.T)
	}
	hello, err := DecodePayload[Hello](env)
	if err != nil {
		return "", err
	}
	if hello.V != ProtocolVersion {
		return "", fmt.Errorf("unsupported protocol version %d (want %d)", hello.V, ProtocolVersion)
	}

	session := uuid.NewString()
	b, err := Encode(MsgWelcome, Welcome{
		Session: session,
		Width:   s.cfg.ScreenWidth,
		Height:  s.cfg.ScreenHeight,
	})
	if err != nil {
		return "", err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return "", fmt.Errorf("write welcome: %w", err)
	}
	if hello.Name != "" {
		log.Printf("[PoseServer] Detector %q joined as %s", hello.Name, session)
	}
	return session, nil
}

func (s *Server) pingLoop(conn *websocket.Conn, writeMu *sync.Mutex, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			writeMu.Lock()
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			writeMu.Unlock()
			if err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) writeError(conn *websocket.Conn, writeMu *sync.Mutex, message string) {
	b, err := Encode(MsgError, ErrorMessage{Message: message})
	if err != nil {
		return
	}
	writeMu.Lock()
	defer writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

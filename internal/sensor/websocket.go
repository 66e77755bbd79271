package sensor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocketServer accepts JSON samples streamed by a phone or browser on
// /sensors. Each text frame carries one Sample.
type WebSocketServer struct {
	addr     string
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	handlers map[Kind]Handler
	closed   bool
	// per-kind locks keep delivery single-threaded across connections
	deliver map[Kind]*sync.Mutex
}

func NewWebSocketServer(addr string, logger *zap.Logger) *WebSocketServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &WebSocketServer{
		addr:   addr,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		handlers: make(map[Kind]Handler),
		deliver:  make(map[Kind]*sync.Mutex),
	}
	for _, k := range Kinds {
		s.deliver[k] = &sync.Mutex{}
	}
	return s
}

func (s *WebSocketServer) Subscribe(kind Kind, h Handler) (Subscription, error) {
	if _, ok := s.deliver[kind]; !ok {
		return nil, ErrUnavailable
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.handlers[kind] = h
	s.mu.Unlock()

	var once sync.Once
	return subscriptionFunc(func() error {
		once.Do(func() {
			s.mu.Lock()
			delete(s.handlers, kind)
			s.mu.Unlock()
		})
		return nil
	}), nil
}

func (s *WebSocketServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/sensors", s.serveSensors)
	return mux
}

// ListenAndServe runs the HTTP server until ctx is canceled. The server
// accepts no subscriptions afterwards.
func (s *WebSocketServer) ListenAndServe(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.closed = true
		s.handlers = make(map[Kind]Handler)
		s.mu.Unlock()
	}()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("sensor websocket listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *WebSocketServer) serveSensors(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	s.logger.Info("sensor client connected", zap.String("remote", r.RemoteAddr))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("sensor client read failed", zap.Error(err))
			}
			return
		}
		var sample Sample
		if err := json.Unmarshal(data, &sample); err != nil {
			s.logger.Debug("dropping malformed sample", zap.Error(err))
			continue
		}
		s.dispatch(sample)
	}
}

func (s *WebSocketServer) dispatch(sample Sample) {
	kind, err := ParseKind(string(sample.Kind))
	if err != nil {
		s.logger.Debug("dropping sample of unknown kind", zap.String("kind", string(sample.Kind)))
		return
	}
	sample.Kind = kind
	if sample.TimestampMs == 0 {
		sample.TimestampMs = time.Now().UnixMilli()
	}

	lock := s.deliver[kind]
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	h := s.handlers[kind]
	s.mu.Unlock()
	if h != nil {
		h(sample)
	}
}

package web

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"markestedt/clipbridge/commands"
	"markestedt/clipbridge/config"
)

// Server exposes the command dispatcher to the GUI shell over HTTP and WebSocket
type Server struct {
	dispatcher *commands.Dispatcher
	cfg        config.ServerConfig
	injector   string
	upgrader   websocket.Upgrader
	httpServer *http.Server
}

// NewServer creates a new command server. injector names the active keystroke strategy.
func NewServer(dispatcher *commands.Dispatcher, cfg config.ServerConfig, injector string) *Server {
	s := &Server{
		dispatcher: dispatcher,
		cfg:        cfg,
		injector:   injector,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.allowOrigin,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the routing table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/invoke/", s.handleInvoke)
	mux.HandleFunc("/api/commands", s.handleCommands)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Serve accepts connections on ln until Shutdown is called
func (s *Server) Serve(ln net.Listener) error {
	slog.Info("Starting command server", "addr", ln.Addr().String(), "injector", s.injector, "platform", runtime.GOOS)

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address and serves
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// allowOrigin accepts requests without an Origin header (CLI, native shells),
// the configured origins, and same-origin requests. Any other browser page is refused.
func (s *Server) allowOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if slices.Contains(s.cfg.AllowedOrigins, origin) {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host != "" && strings.EqualFold(u.Host, r.Host)
}

// invokeContext detaches from the request so a dropped client does not
// interrupt a helper process midway through delivering keystrokes
func invokeContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

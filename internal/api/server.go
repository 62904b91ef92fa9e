// Package api provides the HTTP control surface and the WebSocket event stream.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"inputhook/internal/event"
	"inputhook/internal/hook"
	"inputhook/internal/hookerr"
	"inputhook/internal/input"
	"inputhook/internal/logging"
	"inputhook/internal/screen"
	"inputhook/internal/settings"
)

// Version is reported by /api/status and the stream hello message.
var Version = "dev"

// Capture starts and stops the capture engine. hook.Runner satisfies it.
type Capture interface {
	Start() error
	Stop() error
	State() hook.State
}

// Options wires the server to its collaborators. Nil query functions and a nil
// Injector fall back to the platform implementations.
type Options struct {
	Token    string
	Capture  Capture
	Stream   *Stream
	Injector input.Injector
	Screens  func() ([]screen.ScreenInfo, error)
	Settings func() (settings.Snapshot, map[string]error)
}

// Server provides HTTP API for local control
type Server struct {
	opts    Options
	handler http.Handler
}

// NewServer creates a new API server
func NewServer(opts Options) *Server {
	if opts.Injector == nil {
		opts.Injector = input.Default()
	}
	if opts.Screens == nil {
		opts.Screens = screen.ListScreens
	}
	if opts.Settings == nil {
		opts.Settings = settings.Read
	}
	s := &Server{opts: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/capture", s.handleCapture)
	mux.HandleFunc("/api/screens", s.handleScreens)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/api/post", s.handlePost)
	if opts.Stream != nil {
		mux.Handle("/ws", opts.Stream)
	}
	s.handler = s.authMiddleware(s.recoverMiddleware(mux))
	return s
}

// Handler returns the routed, authenticated handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	logging.Infof("api: listening on %s", ln.Addr())

	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logging.Warnf("api: shutdown: %v", err)
		}
	}()

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// recoverMiddleware prevents panics from crashing the whole server
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logging.Errorf("api: panic serving %s: %v", r.URL.Path, err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// authMiddleware checks API token if configured
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.Debugf("api: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

		// Skip auth for health check
		if r.URL.Path == "/health" || s.opts.Token == "" {
			next.ServeHTTP(w, r)
			return
		}

		authorized := r.Header.Get("Authorization") == "Bearer "+s.opts.Token
		// Browsers cannot set headers on a WebSocket handshake.
		if !authorized && r.URL.Path == "/ws" {
			authorized = r.URL.Query().Get("token") == s.opts.Token
		}
		if !authorized {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Debugf("api: write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{
		"error": err.Error(),
		"code":  uint8(hookerr.CodeOf(err)),
	})
}

// handleHealth handles GET /health (for monitoring)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatus handles GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := map[string]any{"version": Version}
	if s.opts.Capture != nil {
		status["state"] = s.opts.Capture.State().String()
	}
	if s.opts.Stream != nil {
		status["dropped"] = s.opts.Stream.Dropped()
		status["subscribed"] = s.opts.Stream.Subscribed()
	}
	writeJSON(w, http.StatusOK, status)
}

// handleCapture handles POST /api/capture?action=start|stop
func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.opts.Capture == nil {
		http.Error(w, "Capture control not available", http.StatusNotImplemented)
		return
	}

	var err error
	switch action := r.URL.Query().Get("action"); action {
	case "start":
		err = s.opts.Capture.Start()
	case "stop":
		err = s.opts.Capture.Stop()
	default:
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}

	switch {
	case errors.Is(err, hookerr.ErrAlreadyRunning):
		writeError(w, http.StatusConflict, err)
	case err != nil:
		logging.Errorf("api: capture %s failed: %v", r.URL.Query().Get("action"), err)
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, map[string]string{"state": s.opts.Capture.State().String()})
	}
}

// handleScreens handles GET /api/screens
func (s *Server) handleScreens(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	screens, err := s.opts.Screens()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, screens)
}

// handleSettings handles GET /api/settings
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap, errs := s.opts.Settings()
	messages := make(map[string]string, len(errs))
	for name, err := range errs {
		messages[name] = err.Error()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"settings": snap,
		"errors":   messages,
	})
}

// handlePost handles POST /api/post with a JSON InputEvent body
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var ev event.InputEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if ev.Kind().IsHook() {
		writeError(w, http.StatusBadRequest, errors.New("hook events cannot be posted"))
		return
	}

	if err := s.opts.Injector.Post(ev); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, hookerr.ErrUnsupportedPlatform) {
			status = http.StatusNotImplemented
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

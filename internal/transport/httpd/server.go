package httpd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sandevgo/finbot/internal/config"
	"github.com/sandevgo/finbot/internal/core"
	"github.com/sandevgo/finbot/internal/providers/plot"
	"github.com/sandevgo/finbot/pkg/log"
)

// ChatEngine is the one contract the web layer consumes.
type ChatEngine interface {
	HandleTurn(ctx context.Context, sessionID, message string) core.Reply
}

// Server exposes the engine over JSON: POST /api/chat plus static
// serving of rendered charts. It implements srv.Service.
type Server struct {
	cfg     *config.AppConfig
	engine  ChatEngine
	srv     *http.Server
	baseCtx context.Context
}

func NewServer(cfg *config.AppConfig, engine ChatEngine) *Server {
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start(ctx context.Context) error {
	s.baseCtx = ctx

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.Handle(plot.PublicPrefix+"/",
		http.StripPrefix(plot.PublicPrefix+"/", http.FileServer(http.Dir(s.cfg.PlotsDir))))

	s.srv = &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      corsMiddleware(s.loggingMiddleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.FromCtx(ctx).Info().Str("addr", s.cfg.ListenAddr).Msg("starting http transport")

	if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Use the service context so turn logs keep the process logger even
	// if the client went away mid-turn.
	reply := s.engine.HandleTurn(s.requestCtx(r), req.SessionID, req.Message)
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) requestCtx(r *http.Request) context.Context {
	if s.baseCtx != nil {
		return s.baseCtx
	}
	return r.Context()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.FromCtx(s.requestCtx(r)).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}

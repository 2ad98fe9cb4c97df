package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"promptgen.arpa/app/session"
	"promptgen.arpa/app/share"
)

type Config struct {
	ServerURL string
	// RateLimit is the sustained generate requests per second. Zero disables
	// limiting.
	RateLimit float64
	RateBurst int
}

type Server struct {
	log            *zap.Logger
	config         Config
	server         *http.Server
	serveMux       *http.ServeMux
	sessions       *session.Manager
	sharer         *share.Sharer
	limiter        *rate.Limiter
	isShuttingDown atomic.Bool
	isReady        atomic.Bool
}

// NewServer builds the server. sharer may be nil, in which case share
// requests report the "none" method.
func NewServer(log *zap.Logger, config Config, sessions *session.Manager, sharer *share.Sharer) *Server {
	h := &Server{
		log:      log,
		serveMux: http.NewServeMux(),
		config:   config,
		sessions: sessions,
		sharer:   sharer,
		limiter:  newLimiter(config.RateLimit, config.RateBurst),
	}
	h.registerEndpoints()
	return h
}

func newLimiter(limit float64, burst int) *rate.Limiter {
	if limit <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(limit), burst)
}

func (h *Server) Run(ctx context.Context) error {
	su, err := url.ParseRequestURI(h.config.ServerURL)
	if err != nil || su == nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	h.server = &http.Server{
		Addr:    su.Host,
		Handler: h.serveMux,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", su.Host)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", su.Host, err)
	}

	h.log.Info("Starting http server", zap.String("addr", ln.Addr().String()))
	h.isReady.Store(true)
	if err := h.server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (h *Server) BeginShutdown(ctx context.Context) error {
	h.isShuttingDown.Store(true)
	return nil
}

func (h *Server) Shutdown(ctx context.Context) error {
	if h.server == nil {
		return nil
	}
	return h.server.Shutdown(ctx)
}

func (h *Server) Handler() http.Handler {
	return h.serveMux
}

func (h *Server) registerEndpoints() {
	h.serveMux.HandleFunc("/health", h.health)
	h.serveMux.HandleFunc("/healthz", h.healthz)
	h.serveMux.HandleFunc("/ready", h.ready)

	h.serveMux.HandleFunc("GET /api/categories", h.listCategories)
	h.serveMux.Handle("POST /api/categories/{category}/generate", h.rateLimited(http.HandlerFunc(h.generate)))
	h.serveMux.HandleFunc("GET /api/categories/{category}/current", h.current)
	h.serveMux.HandleFunc("GET /api/categories/{category}/history", h.history)
	h.serveMux.HandleFunc("DELETE /api/categories/{category}/history", h.clearHistory)
	h.serveMux.HandleFunc("GET /api/categories/{category}/saved", h.saved)
	h.serveMux.HandleFunc("POST /api/categories/{category}/saved/{id}", h.save)
	h.serveMux.HandleFunc("DELETE /api/categories/{category}/saved/{id}", h.unsave)
	h.serveMux.HandleFunc("GET /api/categories/{category}/favorites", h.favorites)
	h.serveMux.HandleFunc("POST /api/categories/{category}/favorites/{id}", h.toggleFavorite)
	h.serveMux.HandleFunc("POST /api/categories/{category}/share/{id}", h.share)
	h.serveMux.HandleFunc("GET /api/categories/{category}/export", h.export)
}

func (h *Server) rateLimited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.Allow() {
			h.log.Debug("Rate limit exceeded", zap.String("remoteAddr", r.RemoteAddr))
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

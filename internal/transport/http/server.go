package signalhttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ai-trader/internal/interfaces"
	"ai-trader/internal/logger"
	"ai-trader/internal/metrics"
)

// Version is reported by / and /health.
const Version = "1.0.0"

// ServerConfig describes the HTTP server and its dependencies.
type ServerConfig struct {
	Addr    string
	Mode    string
	Service interfaces.SignalService
	Metrics *metrics.Recorder
}

// Server exposes the signal pipeline over HTTP.
type Server struct {
	addr   string
	router *gin.Engine
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Service == nil {
		return nil, errors.New("http server requires a signal service")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), cors(), requestLogger())

	h := &handlers{
		service:  cfg.Service,
		validate: validator.New(),
		started:  time.Now(),
	}
	h.register(router)
	router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	return &Server{addr: cfg.Addr, router: router}, nil
}

func (s *Server) Addr() string {
	return s.addr
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Info(ctx, "HTTP server listening", "addr", s.addr)

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info(ctx, "HTTP server shutting down")
		return srv.Shutdown(shCtx)
	case err := <-errCh:
		return err
	}
}

package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cafe-preorder-bot/internal/common/logger"
	"cafe-preorder-bot/internal/common/middleware"
)

// Check is a named dependency probe used by /ready.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// OpsServer exposes liveness and readiness endpoints for one bot process.
type OpsServer struct {
	bot     string
	checks  []Check
	started time.Time
	srv     *http.Server
}

func NewOpsServer(bot, addr string, debug bool, checks ...Check) *OpsServer {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &OpsServer{bot: bot, checks: checks, started: time.Now()}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Recovery(), middleware.Logger("/live", "/ready", "/health"))
	router.GET("/health", s.health)
	router.GET("/live", s.live)
	router.GET("/ready", s.ready)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *OpsServer) Handler() http.Handler { return s.srv.Handler }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *OpsServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.srv.Addr).Str("bot", s.bot).Msg("Ops server listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

func (s *OpsServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"bot":    s.bot,
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *OpsServer) live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *OpsServer) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := gin.H{}
	for _, check := range s.checks {
		if err := check.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[check.Name] = err.Error()
			logger.Warn().Err(err).Str("check", check.Name).Msg("Readiness check failed")
			continue
		}
		results[check.Name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "unavailable"
	}
	c.JSON(status, gin.H{"status": state, "checks": results})
}

// Package spectate runs a match headless and serves read-only views of it
// over HTTP.
package spectate

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Garsondee/Soccer-Sense/internal/game"
	"github.com/Garsondee/Soccer-Sense/internal/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 5 * time.Second
	defaultLogLimit = 50
)

// Server owns a match, steps it at the configured tick rate and serves
// snapshots. Match access is serialised by mu.
type Server struct {
	mu     sync.RWMutex
	match  *game.Match
	rec    *metrics.Recorder
	logger *zap.Logger
	engine *gin.Engine
}

// New wraps m. The match must have been built with rec as its event sink for
// /metrics to report anything.
func New(m *game.Match, rec *metrics.Recorder, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{match: m, rec: rec, logger: logger}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/match", s.handleSnapshot)
	r.GET("/match/report", s.handleReport)
	r.GET("/match/log", s.handleLog)
	r.GET("/match/players/:label/report", s.handlePlayerReport)
	if s.rec != nil {
		r.GET("/metrics", gin.WrapH(s.rec.Handler()))
	}
	return r
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Step advances the match n ticks under the write lock.
func (s *Server) Step(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.match.Update()
	}
}

func (s *Server) handleSnapshot(c *gin.Context) {
	s.mu.RLock()
	snap := s.match.Snapshot()
	s.mu.RUnlock()
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleReport(c *gin.Context) {
	s.mu.RLock()
	report := game.BuildReport(s.match)
	s.mu.RUnlock()
	if c.Query("format") == "text" {
		c.String(http.StatusOK, report.Format())
		return
	}
	c.JSON(http.StatusOK, report)
}

// handleLog returns the newest SimLog entries, optionally filtered by
// category and key.
func (s *Server) handleLog(c *gin.Context) {
	limit := defaultLogLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	category, key := c.Query("category"), c.Query("key")

	s.mu.RLock()
	entries := s.match.SimLog().Entries()
	out := make([]game.SimLogEntry, 0, limit)
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := entries[i]
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	s.mu.RUnlock()

	// Oldest first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	c.JSON(http.StatusOK, out)
}

// handlePlayerReport returns a plain-text debug report for one player over
// the last ?ticks= ticks.
func (s *Server) handlePlayerReport(c *gin.Context) {
	ticks := 0
	if raw := c.Query("ticks"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ticks must be a positive integer"})
			return
		}
		ticks = n
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.match.PlayerByLabel(c.Param("label"))
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such player"})
		return
	}
	c.String(http.StatusOK, game.PlayerDebugReport(s.match, p, ticks))
}

// Run steps the match every tick and serves HTTP on addr until ctx is
// cancelled. It returns nil on a clean shutdown.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("spectator listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		s.loop(ctx)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) loop(ctx context.Context) {
	dt := time.Duration(s.match.Config().TickDuration() * float64(time.Second))
	ticker := time.NewTicker(dt)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step(1)
		}
	}
}

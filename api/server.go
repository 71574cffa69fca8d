// Package api exposes draw generation, the analyses and the draw
// archive over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"lotto645/domain/interfaces"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Server wires the domain services into a gin router.
type Server struct {
	router *gin.Engine

	generator  interfaces.DrawGenerator
	overlap    interfaces.OverlapAnalyzer
	firstPlace interfaces.FirstPlaceOverlapAnalyzer
	frequency  interfaces.FrequencyAnalyzer
	repo       interfaces.LottoResultRepository
	publisher  interfaces.EventPublisher
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(
	generator interfaces.DrawGenerator,
	overlap interfaces.OverlapAnalyzer,
	firstPlace interfaces.FirstPlaceOverlapAnalyzer,
	frequency interfaces.FrequencyAnalyzer,
	repo interfaces.LottoResultRepository,
	publisher interfaces.EventPublisher,
) *Server {
	router := gin.New()
	router.Use(requestLogger(), gin.Recovery())

	s := &Server{
		router:     router,
		generator:  generator,
		overlap:    overlap,
		firstPlace: firstPlace,
		frequency:  frequency,
		repo:       repo,
		publisher:  publisher,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	v1.POST("/draw", s.handleDraw)
	v1.GET("/analysis/overlap", s.handleOverlap)
	v1.GET("/analysis/first-place-overlap", s.handleFirstPlaceOverlap)
	v1.GET("/analysis/frequency", s.handleFrequency)
	v1.GET("/lotto-results", s.handleListResults)
	v1.GET("/lotto-results/latest", s.handleLatestResult)
	v1.POST("/lotto-results", s.handleIngestResult)
}

// Handler returns the router as an http.Handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(started),
		}).Info("Handled request")
	}
}

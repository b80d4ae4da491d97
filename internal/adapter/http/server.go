package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/disaster-atlas/internal/atlas"
	"github.com/couchcryptid/disaster-atlas/internal/cache"
	"github.com/couchcryptid/disaster-atlas/internal/domain"
	"github.com/couchcryptid/disaster-atlas/internal/observability"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Views is the read-only view surface the API exposes.
type Views interface {
	ReadinessChecker
	Meta() atlas.Meta
	PivotThreshold() int
	DefaultLocationType() string
	Preview(n int) []domain.DisasterRecord
	Locations(c domain.Criteria) []domain.DisasterRecord
	CumulativeDeaths(c domain.Criteria) []domain.Series
	DamageOverTime(c domain.Criteria) []domain.Series
	DeathsByTypeAndCountry(c domain.Criteria) []domain.TypeCountryDeaths
	DamageVsDeaths(c domain.Criteria) []domain.DamagePoint
	MagnitudeDeaths(disasterType string) (domain.Comparison, error)
	Heatmap(threshold int) domain.Pivot
}

// Options configures the middleware stack.
type Options struct {
	RateLimitRPS   int
	ChartCacheSize int
}

// Server exposes health, readiness, metrics and the dashboard API.
type Server struct {
	httpServer *http.Server
	views      Views
	charts     *cache.LRU[string, []byte]
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with probes, /metrics and the /api/v1 and /charts routes.
func NewServer(addr string, views Views, opts Options, metrics *observability.Metrics, logger *slog.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
	}))
	router.Use(requestLogger(logger))

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		views:   views,
		charts:  cache.NewLRU[string, []byte](opts.ChartCacheSize),
		metrics: metrics,
		logger:  logger,
	}

	router.GET("/healthz", s.handleHealth)
	router.GET("/readyz", handleReady(views))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limited := router.Group("/", RateLimitMiddleware(opts.RateLimitRPS))
	s.registerAPI(limited.Group("/api/v1"))
	limited.GET("/charts/:name", s.handleChart)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

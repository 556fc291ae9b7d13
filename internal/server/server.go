// Package server exposes the scoring pipeline over HTTP (serve mode).
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dnishkina/trustscore/internal/cache"
	apperrors "github.com/dnishkina/trustscore/internal/errors"
	"github.com/dnishkina/trustscore/internal/monitoring"
	"github.com/dnishkina/trustscore/internal/output"
)

const scoreTimeout = 60 * time.Second

// Scorer runs the metric pipeline for one repository URL.
// *pipeline.Runner satisfies it.
type Scorer interface {
	ScoreURL(ctx context.Context, rawURL string) (output.Report, error)
}

// Server wires the scoring pipeline into a gin router.
type Server struct {
	scorer  Scorer
	cache   *cache.Cache
	metrics *monitoring.Metrics
	log     *monitoring.Logger
}

// New creates a Server. cache may be nil to disable response caching.
func New(scorer Scorer, responseCache *cache.Cache, metrics *monitoring.Metrics, logger *monitoring.Logger) *Server {
	return &Server{
		scorer:  scorer,
		cache:   responseCache,
		metrics: metrics,
		log:     logger,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(apperrors.ErrorHandler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		if s.metrics == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, s.metrics.GetStats())
	})

	r.POST("/score", s.handleScore)

	return r
}

type scoreRequest struct {
	URL string `json:"url" binding:"required"`
}

func (s *Server) handleScore(c *gin.Context) {
	var req scoreRequest
	if err := c.BindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("request body must contain a url field")
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Error()})
		return
	}

	if s.cache != nil {
		if data, ok := s.cache.Get(req.URL); ok {
			if s.metrics != nil {
				s.metrics.IncrementCacheHits()
			}
			c.Data(http.StatusOK, "application/json", data)
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), scoreTimeout)
	defer cancel()

	report, err := s.scorer.ScoreURL(ctx, req.URL)
	if err != nil {
		appErr := apperrors.ToAppError(err)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Error()})
		return
	}

	data, err := json.Marshal(report.Rounded())
	if err != nil {
		appErr := apperrors.NewInternalError("failed to encode report", err)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Error()})
		return
	}

	if s.cache != nil {
		s.cache.Set(req.URL, data)
	}

	c.Data(http.StatusOK, "application/json", data)
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"log/slog"

	"aiVisibilityGO/internal/config"
	"aiVisibilityGO/internal/engine"
	"aiVisibilityGO/internal/fetch"
	"aiVisibilityGO/internal/middleware"
	"aiVisibilityGO/internal/models"
	"aiVisibilityGO/internal/repository"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	repo       repository.Repository
	engine     *engine.Engine
	fetcher    *fetch.Fetcher
	auth       *middleware.APIKeyAuth
	logger     *slog.Logger
	config     *config.Config
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, repo repository.Repository, eng *engine.Engine, fetcher *fetch.Fetcher, logger *slog.Logger) *Server {
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BucketSize)
	router.Use(limiter.RateLimit())

	auth := middleware.NewAPIKeyAuth(cfg.Auth.APIKeys, logger)

	s := &Server{
		router: router,
		httpServer: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		repo:    repo,
		engine:  eng,
		fetcher: fetcher,
		auth:    auth,
		logger:  logger,
		config:  cfg,
	}

	s.registerRoutes()

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// registerRoutes sets up all the routes for the server
func (s *Server) registerRoutes() {
	s.router.GET("/health", s.healthHandler)

	api := s.router.Group("/api")
	api.Use(s.auth.Authenticate())
	{
		api.POST("/analyze", s.analyzeHandler)
		api.GET("/reports/:id", s.getReportHandler)
		api.GET("/reports", s.getRecentReportsHandler)
	}

	admin := s.router.Group("/api/admin")
	admin.Use(s.auth.Authenticate())
	{
		admin.GET("/stats", s.getStatsHandler)
	}
}

// healthHandler handles health check requests
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// analyzeRequest accepts either just a URL, in which case the page is
// fetched, or a full inline content payload.
type analyzeRequest struct {
	URL             string                      `json:"url" binding:"required"`
	Title           string                      `json:"title"`
	Text            string                      `json:"text"`
	HTML            string                      `json:"html"`
	MetaDescription string                      `json:"meta_description"`
	Headings        []models.Heading            `json:"headings"`
	PublishedAt     *time.Time                  `json:"published_at"`
	LastModified    *time.Time                  `json:"last_modified"`
	Platforms       []models.Platform           `json:"platforms"`
	Weights         map[models.Platform]float64 `json:"weights"`
}

// analyzeHandler runs a visibility analysis and persists the report
func (s *Server) analyzeHandler(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status_code": http.StatusBadRequest,
			"message":     "Invalid request",
			"error":       err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.config.Server.WriteTimeout)
	defer cancel()

	input, err := s.buildInput(ctx, &req)
	if err != nil {
		s.logger.Error("Failed to build content input", "url", req.URL, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"status_code": http.StatusBadRequest,
			"message":     fmt.Sprintf("Failed to fetch content for: %s", req.URL),
			"error":       err.Error(),
		})
		return
	}

	s.logger.Info("Analyzing content", "url", input.URL, "word_count", input.WordCount)
	report := s.engine.Analyze(ctx, input, engine.Options{
		Platforms: req.Platforms,
		Weights:   req.Weights,
	})

	if key, exists := c.Get(middleware.ContextAPIKey); exists {
		if k, ok := key.(string); ok {
			report.APIKey = k
		}
	}

	if err := s.repo.SaveReport(ctx, report); err != nil {
		s.logger.Error("Failed to save report", "url", input.URL, "error", err)
		// Continue anyway, just log the error
	}

	c.JSON(http.StatusOK, report)
}

// buildInput resolves the request into a ContentInput, fetching the page
// when no inline text was supplied.
func (s *Server) buildInput(ctx context.Context, req *analyzeRequest) (*models.ContentInput, error) {
	if req.Text == "" {
		return s.fetcher.Fetch(ctx, req.URL)
	}
	return &models.ContentInput{
		URL:             req.URL,
		Title:           req.Title,
		RawText:         req.Text,
		RawHTML:         req.HTML,
		MetaDescription: req.MetaDescription,
		Headings:        req.Headings,
		PublishedAt:     req.PublishedAt,
		LastModified:    req.LastModified,
	}, nil
}

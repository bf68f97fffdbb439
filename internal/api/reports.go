package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aiVisibilityGO/internal/middleware"
	"aiVisibilityGO/internal/models"
)

// getReportHandler handles requests to get a report by ID
func (s *Server) getReportHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status_code": http.StatusBadRequest,
			"message":     "Missing report ID",
		})
		return
	}

	ctx := c.Request.Context()
	report, err := s.repo.GetReport(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get report", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status_code": http.StatusInternalServerError,
			"message":     "Failed to get report",
			"error":       err.Error(),
		})
		return
	}

	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status_code": http.StatusNotFound,
			"message":     "Report not found",
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

// getRecentReportsHandler handles requests to list recent reports. When
// auth is enabled the listing is scoped to the caller's API key.
func (s *Server) getRecentReportsHandler(c *gin.Context) {
	limit := 10
	if limitParam := c.Query("limit"); limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil {
			limit = n
		}
	}
	// Zero means "no limit" to the Mongo driver, so non-positive values
	// fall back to the default instead of dumping the collection.
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	ctx := c.Request.Context()
	var reports []*models.VisibilityReport
	var err error

	if key, exists := c.Get(middleware.ContextAPIKey); exists {
		reports, err = s.repo.GetReportsByAPIKey(ctx, key.(string), limit)
	} else {
		reports, err = s.repo.GetRecentReports(ctx, limit)
	}

	if err != nil {
		s.logger.Error("Failed to get recent reports", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status_code": http.StatusInternalServerError,
			"message":     "Failed to get recent reports",
			"error":       err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(reports),
		"reports": reports,
	})
}

// getStatsHandler handles requests to get stored-report statistics
func (s *Server) getStatsHandler(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		s.logger.Error("Failed to get stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status_code": http.StatusInternalServerError,
			"message":     "Failed to get stats",
			"error":       err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextAPIKey is the gin context key under which the authenticated API
// key is stored for handlers downstream.
const ContextAPIKey = "api_key"

// APIKeyAuth gates endpoints behind subscription API keys sent in the
// X-API-Key header.
type APIKeyAuth struct {
	keys   map[string]bool
	logger *slog.Logger
}

func NewAPIKeyAuth(keys []string, logger *slog.Logger) *APIKeyAuth {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k != "" {
			set[k] = true
		}
	}
	return &APIKeyAuth{keys: set, logger: logger}
}

// Enabled reports whether any keys are configured. With no keys the
// middleware passes everything through, which keeps local development
// friction-free.
func (a *APIKeyAuth) Enabled() bool {
	return len(a.keys) > 0
}

// Authenticate rejects requests without a configured API key.
func (a *APIKeyAuth) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" || !a.keys[key] {
			a.logger.Warn("rejected unauthenticated request",
				"path", c.Request.URL.Path, "client_ip", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{
				"status_code": http.StatusUnauthorized,
				"message":     "Unauthorized",
				"error":       "Invalid or missing API key",
			})
			c.Abort()
			return
		}

		c.Set(ContextAPIKey, key)
		c.Next()
	}
}

package demo

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware blocks write operations when the demo library is served
// publicly. GET, HEAD and OPTIONS always pass.
type Middleware struct {
	enabled bool
	allowed []string
}

// NewMiddleware creates a read-only guard. Score previews only compute and
// are allowed through.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{
		enabled: enabled,
		allowed: []string{"/api/books/preview-score"},
	}
}

// IsEnabled returns whether demo mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that rejects writes with 403.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if m.isAllowedPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "This action is disabled in demo mode",
			"code":      "demo_mode",
			"demo_mode": true,
		})
	}
}

func (m *Middleware) isAllowedPath(path string) bool {
	for _, allowed := range m.allowed {
		if strings.HasPrefix(path, allowed) {
			return true
		}
	}
	return false
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds the settings for the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists origins permitted to make cross-origin requests.
	// ["*"] allows any origin; an empty list disables CORS headers entirely.
	AllowOrigins []string

	// AllowMethods lists HTTP methods permitted on cross-origin requests.
	AllowMethods []string

	// AllowHeaders lists request headers permitted on cross-origin requests.
	AllowHeaders []string

	// AllowCredentials permits cookies and Authorization headers.
	AllowCredentials bool

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge string
}

// DefaultCORSConfig returns a permissive development configuration. The
// header allowlist covers the htmx request headers and the CSRF token header
// the admin screens send.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With",
			"X-CSRF-Token", "HX-Request", "HX-Current-URL", "HX-Target", "HX-Trigger",
		},
		AllowCredentials: false,
		MaxAge:           "86400",
	}
}

// CORS handles cross-origin requests with DefaultCORSConfig.
func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// CORSWithConfig handles cross-origin requests with the given configuration.
// Requests from origins outside the allowlist pass through without CORS
// headers, which makes the browser reject the response.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	wildcard := len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*"

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		// Caches must key on Origin once CORS processing is in play.
		c.Writer.Header().Add("Vary", "Origin")

		switch {
		case wildcard && !cfg.AllowCredentials:
			c.Header("Access-Control-Allow-Origin", "*")
		case wildcard || originAllowed(cfg.AllowOrigins, origin):
			// Credentialed responses must echo the concrete origin.
			c.Header("Access-Control-Allow-Origin", origin)
		default:
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Methods", allowMethods)
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		c.Header("Access-Control-Max-Age", cfg.MaxAge)

		if cfg.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

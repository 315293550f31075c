package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
)

// Recovery returns a middleware that recovers from panics, logs the panic
// value and stack via slog, and answers the client according to what it
// accepts: the errors/500.html page for HTML clients, otherwise the JSON
// envelope {"code": 500, "message": "internal server error", "data": null}.
//
// Replaces gin.Recovery so panics end up in the structured log.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			logger.ErrorContext(c.Request.Context(), "panic recovered",
				slog.Any("panic", r),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("client_ip", c.ClientIP()),
				slog.String("stack", string(debug.Stack())),
			)

			c.Abort()

			if acceptsHTML(c) {
				render500Page(c)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"message": "internal server error",
				"data":    nil,
			})
		}()
		c.Next()
	}
}

// render500Page renders errors/500.html, falling back to plain text when no
// HTML renderer is configured (rendering a missing template panics in gin).
func render500Page(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("500 Internal Server Error"))
		}
	}()
	c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{})
}

func acceptsHTML(c *gin.Context) bool {
	return strings.Contains(strings.ToLower(c.GetHeader("Accept")), "text/html")
}

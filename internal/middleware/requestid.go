package middleware

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
)

const (
	requestIDHeader     = "X-Request-ID"
	requestIDContextKey = "request_id"
	requestIDBytes      = 16
)

var validRequestID = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// Counter for the unlikely case that crypto/rand fails.
var requestIDSeq atomic.Uint64

// RequestIDConfig controls whether an upstream X-Request-ID is reused.
type RequestIDConfig struct {
	TrustUpstream bool
}

// RequestID assigns a fresh random ID to every request. Upstream
// X-Request-ID values are ignored.
func RequestID() gin.HandlerFunc {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig assigns a request ID per the given config. The ID is
// stored in gin.Context under "request_id", echoed in the X-Request-ID
// response header, and attached to the request context via
// logger.WithContextAttrs so every log line carries it.
//
// With TrustUpstream set, a well-formed incoming X-Request-ID is kept;
// anything else is replaced.
func RequestIDWithConfig(cfg RequestIDConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id string
		if cfg.TrustUpstream {
			if upstream := c.GetHeader(requestIDHeader); validRequestID.MatchString(upstream) {
				id = upstream
			}
		}
		if id == "" {
			id = newRequestID()
		}

		c.Set(requestIDContextKey, id)
		c.Header(requestIDHeader, id)

		ctx := logger.WithContextAttrs(c.Request.Context(), slog.String("request_id", id))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetRequestID returns the request ID set by the middleware, or "".
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDContextKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func newRequestID() string {
	b := make([]byte, requestIDBytes)
	if _, err := rand.Read(b); err != nil {
		binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint64(b[8:], requestIDSeq.Add(1))
	}
	return hex.EncodeToString(b)
}

package middleware

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/jwt"

	"github.com/soletrade/admin/internal/domain"
)

const (
	// SessionCookieName is the HttpOnly cookie carrying the page session token.
	SessionCookieName = "admin_session"

	sessionContextKey = "AdminSession"
)

// Session is the per-request operator session. It replaces any notion of a
// process-wide current user: handlers and templates read it from the request
// context, and nothing else holds authentication state.
type Session struct {
	OperatorID uint
	Name       string
	Email      string
	ExpiresAt  time.Time
}

// ResolveSession returns a middleware that resolves the operator session from
// the Authorization bearer token (API clients) or the session cookie (pages)
// and stores it in the gin context. It never rejects a request; enforcement
// is RequireSession's job, so the navigation shell can reflect session state
// even on routes where the guard is disabled.
func ResolveSession(jwtSvc jwt.Service, users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				token = cookie
			}
		}
		if token == "" {
			c.Next()
			return
		}

		parsed, err := jwtSvc.ValidateAndParse(token)
		if err != nil {
			c.Next()
			return
		}

		id, err := strconv.ParseUint(parsed.UserID, 10, 64)
		if err != nil {
			c.Next()
			return
		}

		operator, err := users.GetByID(c.Request.Context(), uint(id))
		if err != nil || operator.Blocked() {
			c.Next()
			return
		}

		c.Set(sessionContextKey, &Session{
			OperatorID: operator.ID,
			Name:       operator.Name,
			Email:      operator.Email,
			ExpiresAt:  parsed.ExpiresAt,
		})
		c.Next()
	}
}

// RequireSession enforces authentication on the routes it is mounted on.
// Unauthenticated API requests receive 401 JSON; unauthenticated page
// requests are redirected to loginPath with the original path preserved in
// the "next" query parameter.
func RequireSession(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if SessionFromContext(c) != nil {
			c.Next()
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "unauthorized",
				"data":    nil,
			})
			return
		}

		target := loginPath + "?next=" + url.QueryEscape(c.Request.URL.Path)
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

// SessionFromContext returns the resolved session, or nil when the request is
// unauthenticated.
func SessionFromContext(c *gin.Context) *Session {
	if v, exists := c.Get(sessionContextKey); exists {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}

// SetSessionCookie stores the session token in the page session cookie.
func SetSessionCookie(c *gin.Context, token string, maxAge time.Duration) {
	secure := gin.Mode() == gin.ReleaseMode
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, token, int(maxAge.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie removes the page session cookie.
func ClearSessionCookie(c *gin.Context) {
	secure := gin.Mode() == gin.ReleaseMode
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

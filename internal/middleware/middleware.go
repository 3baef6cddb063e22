package middleware

import (
	"strings"
	"time"

	"sos-srv/pkg/log"
	"sos-srv/pkg/response"
	"sos-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// Auth verifies the caller's token from the auth cookie or the
// Authorization bearer header and stores the scope in the request context.
func (m Middleware) Auth() gin.HandlerFunc {
	return m.auth(false)
}

// AuthSocket is Auth that also accepts the token as a query parameter.
func (m Middleware) AuthSocket() gin.HandlerFunc {
	return m.auth(true)
}

func (m Middleware) auth(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token := m.extractToken(c, allowQuery)
		if token == "" {
			m.l.Warnf(ctx, "Missing auth token | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		payload, err := m.scopeManager.Verify(token)
		if err != nil {
			m.l.Warnf(ctx, "Token verification failed: %v | Path: %s", err, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		sc := scope.NewScope(payload)
		ctx = scope.SetPayloadToContext(ctx, payload)
		ctx = scope.SetScopeToContext(ctx, sc)
		ctx = log.WithFields(ctx, "user_id", sc.UserID, "role", sc.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func (m Middleware) extractToken(c *gin.Context, allowQuery bool) string {
	const bearerPrefix = "Bearer "
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		if token := strings.TrimSpace(h[len(bearerPrefix):]); token != "" {
			return token
		}
	}
	if token, err := c.Cookie(m.cookieName); err == nil && token != "" {
		return token
	}
	if allowQuery {
		return c.Query(TokenQueryParam)
	}
	return ""
}

// RequireRole rejects callers whose verified role is not one of roles. It
// must run after Auth.
func (m Middleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, ok := scope.GetScopeFromContext(c.Request.Context())
		if !ok || !sc.IsAuthenticated() {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if !sc.HasRole(roles...) {
			m.l.Warnf(c.Request.Context(), "Role %q not allowed | Path: %s", sc.Role, c.Request.URL.Path)
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Metrics records request count and latency per route template.
func (m Middleware) Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.metrics.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

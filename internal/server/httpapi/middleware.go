package httpapi

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/server/models"
)

const (
	requestIDHeader = "X-Request-Id"
	identityKey     = "identity"
)

// requestID assigns every request an id, reusing the client's if present.
func (s *HTTPServer) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs one line per request with method, path, status and latency.
func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		s.logger.Debug(c.Request.Context(), "request started",
			"request_id", c.GetString(requestIDHeader),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.Next()
		s.logger.Info(c.Request.Context(), "request handled",
			"request_id", c.GetString(requestIDHeader),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// authRequired extracts the bearer token, resolves it to a user, and aborts
// with 401 when the token is missing or fails verification.
func (s *HTTPServer) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			s.writeError(c, common.ErrorAuthFailed)
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, common.BearerPrefix)
		user, err := s.users.Authenticate(token)
		if err != nil {
			s.writeError(c, err)
			c.Abort()
			return
		}

		c.Set(identityKey, user)
		c.Next()
	}
}

// identityFromContext returns the authenticated user stored by authRequired.
func identityFromContext(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

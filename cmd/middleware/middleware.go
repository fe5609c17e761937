package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wb-go/wbf/zlog"

	"eventhub/internal/auth"
	"eventhub/internal/dto"
)

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		zlog.Logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}

// AuthMiddleware verifies the bearer token and stores the resolved identity
// on the request context for the handlers.
func AuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			dto.UnauthorizedError(c)
			c.Abort()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			dto.UnauthorizedError(c)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

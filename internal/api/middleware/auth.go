package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/espinosa98/rifa-backend/config"
	"github.com/espinosa98/rifa-backend/pkg/jwt"
	"github.com/espinosa98/rifa-backend/pkg/redis"
	"github.com/espinosa98/rifa-backend/pkg/response"
)

// JWTAuth authenticates admin requests. The token comes from the
// Authorization: Bearer header or, for browser sessions, from the session
// cookie. Revoked tokens are rejected via the Redis blacklist; without Redis
// the expiry alone bounds a stolen token.
func JWTAuth(cfg *config.AuthConfig, jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString, _ = c.Cookie(cfg.Cookie.Name)
		}
		if tokenString == "" {
			response.Unauthorized(c, 10002, "authentication required")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(tokenString)
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			// A Redis outage degrades to expiry-only validation.
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
		}

		c.Set("account_id", claims.AccountID)
		c.Set("username", claims.Username)
		c.Set("token_id", claims.ID)
		c.Set("token_expires_at", claims.ExpiresAt.Time)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

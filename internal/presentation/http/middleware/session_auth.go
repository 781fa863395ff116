package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/infrastructure/repository"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/presentation/http/dto/response"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/utils"
)

// SessionAuthMiddleware validates the builder session token and binds the
// session and store to the request context. When the route carries an :id
// parameter it must match the token's session.
func SessionAuthMiddleware(tokenManager *utils.SessionTokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := tokenManager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired session token")
			c.Abort()
			return
		}

		if idParam := c.Param("id"); idParam != "" {
			id, err := uuid.Parse(idParam)
			if err != nil {
				response.BadRequest(c, "Invalid session ID")
				c.Abort()
				return
			}
			if id != claims.SessionID {
				response.Forbidden(c, "Token does not match this session")
				c.Abort()
				return
			}
		}

		c.Set("session_id", claims.SessionID)
		c.Set("store_id", claims.StoreID)

		ctx := repository.WithStore(c.Request.Context(), claims.StoreID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetSessionID retrieves the authenticated session ID from gin context
func GetSessionID(c *gin.Context) *uuid.UUID {
	sessionVal, exists := c.Get("session_id")
	if !exists {
		return nil
	}
	sessionID, ok := sessionVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &sessionID
}

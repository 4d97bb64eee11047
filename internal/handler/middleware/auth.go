package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	pkgjwt "viewing-scheduler/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxAgentIDKey = "agent_id"

type AuthMiddleware struct {
	tokens *pkgjwt.Service
}

func NewAuthMiddleware(tokens *pkgjwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxAgentIDKey, claims.AgentID)
		c.Set("jwt_claims", map[string]any{
			"agent_id": claims.AgentID.String(),
		})
		c.Next()
	}
}

func GetAgentID(c *gin.Context) (uuid.UUID, bool) {
	agentID, exists := c.Get(ctxAgentIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := agentID.(uuid.UUID)
	return id, ok
}

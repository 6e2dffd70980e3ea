package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"carebook/utils"
)

// Context keys set by JWTAuth.
const (
	CtxActorID = "actorID"
	CtxRole    = "role"
)

// JWTAuth authenticates the request and binds the actor's id and role into
// the gin context. When requiredRole is non-empty the token must carry that
// role. Handlers read the actor from context only; ids arriving in request
// bodies are never trusted for identity.
func JWTAuth(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		actorID, role, err := utils.ExtractActorFromToken(tokenString)
		if err != nil || actorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if requiredRole != "" && role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Wrong role for this endpoint"})
			return
		}

		c.Set(CtxActorID, actorID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// ActorID returns the authenticated actor id bound by JWTAuth.
func ActorID(c *gin.Context) string {
	v, _ := c.Get(CtxActorID)
	id, _ := v.(string)
	return id
}

// Role returns the authenticated actor role bound by JWTAuth.
func Role(c *gin.Context) string {
	v, _ := c.Get(CtxRole)
	role, _ := v.(string)
	return role
}

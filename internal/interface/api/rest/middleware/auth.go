package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotel-users-api/internal/infrastructure/jwt"
)

const (
	CtxUserEmail = "userEmail"
	CtxUserID    = "userID"
)

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		gin.H{"success": false, "message": msg, "code": "UNAUTHORIZED"},
	)
}

// authenticate validates the bearer token and stores the caller in the
// context. It aborts the request on a malformed or invalid token.
func authenticate(c *gin.Context, jwtService *jwt.Service, authHeader string) bool {
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenStr == authHeader {
		unauthorized(c, "invalid token format")
		return false
	}

	claims, err := jwtService.ValidateToken(tokenStr)
	if err != nil {
		unauthorized(c, "invalid token")
		return false
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		unauthorized(c, "invalid token")
		return false
	}

	c.Set(CtxUserEmail, claims.Email)
	c.Set(CtxUserID, id)

	return true
}

func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing Authorization header")
			return
		}
		if !authenticate(c, jwtService, authHeader) {
			return
		}

		c.Next()
	}
}

// OptionalAuth lets anonymous requests through but rejects a token that
// is present and invalid.
func OptionalAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && !authenticate(c, jwtService, authHeader) {
			return
		}

		c.Next()
	}
}

// CallerID returns the authenticated caller, if any.
func CallerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/accountd/accountd/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (userID, email string, err error)
}

// BearerAuth rejects requests without a valid "Authorization: Bearer <token>"
// header before any use case runs, and injects the token's user id and email
// into the Gin context.
func BearerAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err("unauthorized"))
			return
		}
		bearer, token, ok := strings.Cut(header, " ")
		if !ok || bearer != "Bearer" || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err("unauthorized"))
			return
		}
		userID, email, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err("unauthorized"))
			return
		}
		c.Set(CtxUserIDKey, userID)
		c.Set(CtxUserEmailKey, email)
		c.Next()
	}
}

package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxClaimsKey = "auth_claims"

// AuthMiddleware requires a bearer access token. With a non-nil repo the
// token's user must still exist and be active.
func AuthMiddleware(tokens TokenService, repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}

		raw := strings.TrimSpace(h[len("Bearer "):])
		claims, err := tokens.Verify(raw, TypeAccess)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": ErrorMessage(err)})
			c.Abort()
			return
		}
		if repo != nil {
			u, err := repo.GetByUsername(c.Request.Context(), claims.Subject)
			if err != nil || u == nil || !u.IsActive {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or inactive"})
				c.Abort()
				return
			}
		}

		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}

package security

import (
	"net/http"
	"strings"

	"github.com/it407/it-assets/pkg/roles"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// JWTMiddleware validates the bearer token and stores the principal in the context.
func JWTMiddleware(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		principal, err := issuer.Parse(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

// Authorize lets the request through only for the listed roles.
func Authorize(allowed ...roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := PrincipalFromContext(c)
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}

		if !principal.Role.In(allowed...) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
	c.Set("userID", p.UserID)
	c.Set("role", p.Role.String())
}

func PrincipalFromContext(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

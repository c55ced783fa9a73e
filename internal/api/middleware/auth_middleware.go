package middleware

import (
	"net/http"
	"strings"

	"parking_billing/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"

	// PrincipalKey is the gin context key for the authenticated caller
	// identity (the JWT subject). Handlers read it to scope pickups and to
	// feed the owner authorization gate.
	PrincipalKey = "principal"
	UsernameKey  = "username"
)

type AuthMiddleware struct {
	authService *service.AuthService
}

func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate validates the bearer token and stores the caller principal
// in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeaderKey)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 || !strings.EqualFold(fields[0], AuthorizationTypeBearer) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		accessToken := fields[1]
		_, claims, err := m.authService.ValidateToken(accessToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is invalid or expired", "details": err.Error()})
			return
		}

		principal, okPrincipal := claims["sub"].(string)
		username, okUsername := claims["username"].(string)
		if !okPrincipal || !okUsername {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user information in token"})
			return
		}

		c.Set(PrincipalKey, principal)
		c.Set(UsernameKey, username)
		c.Next()
	}
}

// Principal returns the authenticated caller identity set by Authenticate.
func Principal(c *gin.Context) string {
	principal, _ := c.Get(PrincipalKey)
	s, _ := principal.(string)
	return s
}

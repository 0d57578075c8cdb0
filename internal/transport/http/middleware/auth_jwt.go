package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-portfolio/internal/core/auth"
	resp "go-gin-portfolio/internal/transport/http/response"
)

const KeyPrincipal = "principal"

type TokenVerifier interface {
	Verify(token string) (auth.Principal, error)
}

// PrincipalLoader re-reads the account behind a verified token.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, p auth.Principal) (auth.Principal, error)
}

// Authenticate requires a valid bearer token for an active account. loader may be nil,
// in which case the token claims are trusted as is.
func Authenticate(v TokenVerifier, loader PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(ah, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			unauthorized(c, "No token, authorization denied")
			return
		}
		p, err := v.Verify(strings.TrimSpace(token))
		if errors.Is(err, auth.ErrTokenExpired) {
			unauthorized(c, "Token has expired")
			return
		}
		if err != nil {
			unauthorized(c, "Token is not valid")
			return
		}
		if loader != nil {
			p, err = loader.LoadPrincipal(c, p)
			if errors.Is(err, auth.ErrInvalidToken) {
				unauthorized(c, "Token is not valid")
				return
			}
			if err != nil {
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, ""))
				return
			}
		}
		c.Set(KeyPrincipal, p)
		c.Next()
	}
}

// RequireRole must run after Authenticate.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			unauthorized(c, "No token, authorization denied")
			return
		}
		if p.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Error(resp.CodeForbidden, "Access denied. Admin only."))
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(KeyPrincipal)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, msg))
}

package middleware

import (
	"context"
	"log/slog"
	"strings"

	"gradely/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextPrincipal = "principal"
	ContextUserID    = "user_id"
	ContextUsername  = "username"
	ContextAuthority = "authority"
)

// Principal is the request-scoped identity established by the
// authenticator. It carries exactly one authority, derived from the
// token's role claim.
type Principal struct {
	UserID    string
	Username  string
	Email     string
	FullName  string
	Role      string
	Authority string
}

// Authenticator validates an inbound access token and resolves it to a
// principal. Implemented by the auth service.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Principal, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Any other scheme or shape is treated as no token.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Authenticate runs once per request, before any route decision. A
// missing or invalid token never aborts the request: the request simply
// proceeds unauthenticated and the authorization guard decides whether
// that is acceptable for the route.
func Authenticate(authn Authenticator, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.Next()
			return
		}

		principal, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.LogAuthFailure(c.Request.Context(), err.Error(), c.ClientIP())
			c.Next()
			return
		}

		c.Set(ContextPrincipal, principal)
		c.Set(ContextUserID, principal.UserID)
		c.Set(ContextUsername, principal.Username)
		c.Set(ContextAuthority, principal.Authority)

		log.Debug("request authenticated",
			slog.String("username", principal.Username),
			slog.String("authority", principal.Authority),
		)
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated principal for the request,
// or nil when the request is anonymous.
func CurrentPrincipal(c *gin.Context) *Principal {
	value, exists := c.Get(ContextPrincipal)
	if !exists {
		return nil
	}
	principal, ok := value.(*Principal)
	if !ok {
		return nil
	}
	return principal
}

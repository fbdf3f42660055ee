package middleware

import (
	"errors"
	"net/http"
	"strings"

	"gradely/internal/shared/utils/response"
	"gradely/pkg/logger"

	"github.com/gin-gonic/gin"
)

var (
	ErrMissingToken     = errors.New("authentication required")
	ErrInsufficientRole = errors.New("insufficient role")
)

// Policy is the access requirement attached to a route prefix.
type Policy int

const (
	// PolicyPublic lets the request through regardless of identity.
	PolicyPublic Policy = iota
	// PolicyAnyAuthenticated requires a principal, any authority.
	PolicyAnyAuthenticated
	// PolicyRoleSet requires a principal whose authority is in the rule's
	// set.
	PolicyRoleSet
)

// AccessRule maps a route prefix to a policy. Rules are evaluated in
// declaration order and the first matching prefix wins, so more specific
// prefixes must be declared before broader ones.
type AccessRule struct {
	Prefix      string
	Policy      Policy
	Authorities []string
}

// Guard evaluates the rule table after authentication. Routes not matched
// by any rule default to PolicyAnyAuthenticated. Missing identity on a
// non-public route fail-closes to 401; an identity whose authority is
// outside the required set fail-closes to 403.
func Guard(rules []AccessRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		policy, authorities := matchRule(rules, c.Request.URL.Path)
		if policy == PolicyPublic {
			c.Next()
			return
		}

		principal := CurrentPrincipal(c)
		if principal == nil {
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		if policy == PolicyRoleSet && !containsAuthority(authorities, principal.Authority) {
			logger.GetDefault().LogAccessDenied(c.Request.Context(), principal.UserID, c.Request.URL.Path, principal.Authority)
			response.Error(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

func matchRule(rules []AccessRule, path string) (Policy, []string) {
	for _, rule := range rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule.Policy, rule.Authorities
		}
	}
	return PolicyAnyAuthenticated, nil
}

// RequireAnyAuthority is the method-level OR check: the principal's
// authority must be one of those given.
func RequireAnyAuthority(authorities ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal == nil {
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		if !containsAuthority(authorities, principal.Authority) {
			logger.GetDefault().LogAccessDenied(c.Request.Context(), principal.UserID, c.Request.URL.Path, principal.Authority)
			response.Error(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAllAuthorities is the method-level AND check. Principals carry a
// single authority, so this only passes when every required authority
// collapses to that one; it exists for rule expressions that combine
// both operators.
func RequireAllAuthorities(authorities ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal == nil {
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		for _, authority := range authorities {
			if authority != principal.Authority {
				logger.GetDefault().LogAccessDenied(c.Request.Context(), principal.UserID, c.Request.URL.Path, principal.Authority)
				response.Error(c, http.StatusForbidden, "Insufficient permissions")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

func containsAuthority(authorities []string, authority string) bool {
	for _, a := range authorities {
		if a == authority {
			return true
		}
	}
	return false
}

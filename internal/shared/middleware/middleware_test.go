package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradely/pkg/logger"
)

type stubAuthenticator struct {
	principal *Principal
	err       error
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, token string) (*Principal, error) {
	return s.principal, s.err
}

func studentPrincipal() *Principal {
	return &Principal{
		UserID:    "u-1",
		Username:  "ana.silva",
		Role:      "STUDENT",
		Authority: "ROLE_STUDENT",
	}
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{"no header", "", "", false},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", false},
		{"scheme only", "Bearer", "", false},
		{"empty token", "Bearer ", "", false},
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			token, ok := BearerToken(c)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func serveWithAuthenticate(t *testing.T, authn Authenticator, header string) (*httptest.ResponseRecorder, *Principal) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var captured *Principal
	engine := gin.New()
	engine.Use(Authenticate(authn, logger.GetDefault()))
	engine.GET("/probe", func(c *gin.Context) {
		captured = CurrentPrincipal(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec, captured
}

func TestAuthenticateSetsPrincipal(t *testing.T) {
	authn := &stubAuthenticator{principal: studentPrincipal()}

	rec, principal := serveWithAuthenticate(t, authn, "Bearer good-token")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, principal)
	assert.Equal(t, "ana.silva", principal.Username)
	assert.Equal(t, "ROLE_STUDENT", principal.Authority)
}

func TestAuthenticateFailsOpen(t *testing.T) {
	// an invalid token never aborts; the request proceeds anonymous
	authn := &stubAuthenticator{err: errors.New("token revoked")}

	rec, principal := serveWithAuthenticate(t, authn, "Bearer revoked-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, principal)
}

func TestAuthenticateSkipsWithoutToken(t *testing.T) {
	authn := &stubAuthenticator{principal: studentPrincipal()}

	rec, principal := serveWithAuthenticate(t, authn, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, principal)
}

func guardEngine(rules []AccessRule, principal *Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	if principal != nil {
		engine.Use(func(c *gin.Context) {
			c.Set(ContextPrincipal, principal)
		})
	}
	engine.Use(Guard(rules))
	handler := func(c *gin.Context) { c.Status(http.StatusOK) }
	engine.GET("/api/v1/auth/login", handler)
	engine.GET("/api/v1/admin/users", handler)
	engine.GET("/api/v1/grades", handler)
	engine.GET("/api/v1/unlisted", handler)
	return engine
}

func guardRules() []AccessRule {
	return []AccessRule{
		{Prefix: "/api/v1/auth", Policy: PolicyPublic},
		{Prefix: "/api/v1/admin", Policy: PolicyRoleSet, Authorities: []string{"ROLE_ADMIN"}},
		{Prefix: "/api/v1/grades", Policy: PolicyAnyAuthenticated},
	}
}

func TestGuard(t *testing.T) {
	admin := &Principal{UserID: "u-0", Username: "admin", Authority: "ROLE_ADMIN"}

	tests := []struct {
		name      string
		path      string
		principal *Principal
		wantCode  int
	}{
		{"public path anonymous", "/api/v1/auth/login", nil, http.StatusOK},
		{"protected path anonymous", "/api/v1/grades", nil, http.StatusUnauthorized},
		{"protected path authenticated", "/api/v1/grades", studentPrincipal(), http.StatusOK},
		{"role set wrong authority", "/api/v1/admin/users", studentPrincipal(), http.StatusForbidden},
		{"role set matching authority", "/api/v1/admin/users", admin, http.StatusOK},
		{"unmatched path defaults to authenticated", "/api/v1/unlisted", nil, http.StatusUnauthorized},
		{"unmatched path passes with principal", "/api/v1/unlisted", studentPrincipal(), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := guardEngine(guardRules(), tt.principal)
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestGuardLogsAccessDenied(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.GetDefault()
	logger.SetDefault(&logger.Logger{Logger: slog.New(slog.NewTextHandler(&buf, nil))})
	t.Cleanup(func() { logger.SetDefault(prev) })

	engine := guardEngine(guardRules(), studentPrincipal())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, buf.String(), "Access Denied")
	assert.Contains(t, buf.String(), "ROLE_STUDENT")
}

func serveWithRequirement(requirement gin.HandlerFunc, principal *Principal) int {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	if principal != nil {
		engine.Use(func(c *gin.Context) {
			c.Set(ContextPrincipal, principal)
		})
	}
	engine.GET("/probe", requirement, func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec.Code
}

func TestRequireAnyAuthority(t *testing.T) {
	requirement := RequireAnyAuthority("ROLE_ADMIN", "ROLE_TEACHER")

	assert.Equal(t, http.StatusUnauthorized, serveWithRequirement(requirement, nil))
	assert.Equal(t, http.StatusForbidden, serveWithRequirement(requirement, studentPrincipal()))
	assert.Equal(t, http.StatusOK, serveWithRequirement(requirement,
		&Principal{Authority: "ROLE_TEACHER"}))
}

func TestRequireAllAuthorities(t *testing.T) {
	// principals carry a single authority, so ALL passes only when the
	// required set collapses to that one authority
	single := RequireAllAuthorities("ROLE_STUDENT")
	pair := RequireAllAuthorities("ROLE_STUDENT", "ROLE_TEACHER")

	assert.Equal(t, http.StatusUnauthorized, serveWithRequirement(single, nil))
	assert.Equal(t, http.StatusOK, serveWithRequirement(single, studentPrincipal()))
	assert.Equal(t, http.StatusForbidden, serveWithRequirement(pair, studentPrincipal()))
}

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradely/internal/shared/middleware"
)

// stubService scripts the Service behavior per test.
type stubService struct {
	login    func(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	refresh  func(ctx context.Context, refreshToken string) (*RefreshResponse, error)
	logout   func(ctx context.Context, token string) error
	validate func(tokenString string) bool
	info     func(tokenString string) (*TokenInfoResponse, error)
}

func (s *stubService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	return s.login(ctx, req)
}

func (s *stubService) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	return s.refresh(ctx, refreshToken)
}

func (s *stubService) Logout(ctx context.Context, token string) error {
	return s.logout(ctx, token)
}

func (s *stubService) ValidateToken(tokenString string) bool {
	return s.validate(tokenString)
}

func (s *stubService) TokenInfo(tokenString string) (*TokenInfoResponse, error) {
	return s.info(tokenString)
}

func (s *stubService) Authenticate(ctx context.Context, tokenString string) (*middleware.Principal, error) {
	return nil, ErrTokenMalformed
}

func newTestRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")
	SetupAuthRoutes(api, NewController(service))
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpointSuccess(t *testing.T) {
	service := &stubService{
		login: func(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
			return &LoginResponse{
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
				TokenType:    BearerScheme,
				ExpiresIn:    900,
				UserInfo: UserInfo{
					ID:          "u-1",
					Username:    req.Username,
					Email:       "ana.silva@school.edu",
					FullName:    "Ana Silva",
					Roles:       []string{"STUDENT"},
					Permissions: []string{"records:read"},
				},
			}, nil
		},
	}
	engine := newTestRouter(service)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Username: "ana.silva",
		Password: "correct-horse",
	}, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "access-token", body.AccessToken)
	assert.Equal(t, "refresh-token", body.RefreshToken)
	assert.Equal(t, "Bearer", body.TokenType)
	assert.Equal(t, int64(900), body.ExpiresIn)
	assert.Equal(t, "ana.silva", body.UserInfo.Username)
	assert.Equal(t, []string{"STUDENT"}, body.UserInfo.Roles)
}

func TestLoginEndpointRejectsBadCredentials(t *testing.T) {
	service := &stubService{
		login: func(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
			return nil, ErrInvalidCredentials
		},
	}
	engine := newTestRouter(service)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Username: "ana.silva",
		Password: "wrong-password",
	}, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestLoginEndpointValidation(t *testing.T) {
	service := &stubService{
		login: func(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
			t.Fatal("service must not be reached on invalid input")
			return nil, nil
		},
	}
	engine := newTestRouter(service)

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing password", map[string]string{"username": "ana.silva"}},
		{"short username", map[string]string{"username": "ab", "password": "correct-horse"}},
		{"short password", map[string]string{"username": "ana.silva", "password": "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRefreshEndpoint(t *testing.T) {
	service := &stubService{
		refresh: func(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
			if refreshToken == "good-refresh" {
				return &RefreshResponse{
					AccessToken:  "new-access",
					RefreshToken: refreshToken,
					ExpiresIn:    900,
				}, nil
			}
			return nil, ErrTokenWrongType
		},
	}
	engine := newTestRouter(service)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/refresh",
		RefreshTokenRequest{RefreshToken: "good-refresh"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body RefreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "new-access", body.AccessToken)
	assert.Equal(t, "good-refresh", body.RefreshToken)

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/auth/refresh",
		RefreshTokenRequest{RefreshToken: "some-access-token"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndpointAlwaysSucceeds(t *testing.T) {
	var seen string
	service := &stubService{
		logout: func(ctx context.Context, token string) error {
			seen = token
			return nil
		},
	}
	engine := newTestRouter(service)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/logout", nil, map[string]string{
		"Authorization": "Bearer some-token",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "some-token", seen)

	// no token at all is still a successful logout
	rec = doJSON(t, engine, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateEndpoint(t *testing.T) {
	service := &stubService{
		validate: func(tokenString string) bool {
			return tokenString == "good-token"
		},
	}
	engine := newTestRouter(service)

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/auth/validate", nil, map[string]string{
		"Authorization": "Bearer good-token",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Valid)

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/auth/validate", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Valid)
}

func TestTokenInfoEndpoint(t *testing.T) {
	expiration := time.Now().Add(10 * time.Minute).UTC().Truncate(time.Second)
	service := &stubService{
		info: func(tokenString string) (*TokenInfoResponse, error) {
			if tokenString != "good-token" {
				return nil, ErrTokenMalformed
			}
			return &TokenInfoResponse{
				Username:   "ana.silva",
				UserID:     "u-1",
				Role:       "STUDENT",
				TokenType:  TokenTypeAccess,
				Expiration: expiration,
				IsExpired:  false,
			}, nil
		},
	}
	engine := newTestRouter(service)

	// missing header is a client error
	rec := doJSON(t, engine, http.MethodGet, "/api/v1/token/info", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// undecodable token is a client error
	rec = doJSON(t, engine, http.MethodGet, "/api/v1/token/info", nil, map[string]string{
		"Authorization": "Bearer junk",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/token/info", nil, map[string]string{
		"Authorization": "Bearer good-token",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body TokenInfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ana.silva", body.Username)
	assert.Equal(t, "STUDENT", body.Role)
	assert.False(t, body.IsExpired)
}

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gradely/internal/audit"
	"gradely/internal/shared/config"
	"gradely/internal/users"
)

// fakeRepo is an in-memory Repository.
type fakeRepo struct {
	byUsername map[string]*users.User
	byID       map[string]*users.User
	roles      map[uuid.UUID][]string
	perms      map[uuid.UUID][]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byUsername: make(map[string]*users.User),
		byID:       make(map[string]*users.User),
		roles:      make(map[uuid.UUID][]string),
		perms:      make(map[uuid.UUID][]string),
	}
}

func (f *fakeRepo) addUser(user *users.User, roles, perms []string) {
	f.byUsername[user.Username] = user
	f.byID[user.ID.String()] = user
	f.roles[user.ID] = roles
	f.perms[user.ID] = perms
}

func (f *fakeRepo) GetUserByUsername(ctx context.Context, username string) (*users.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepo) RolesOf(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return f.roles[userID], nil
}

func (f *fakeRepo) PermissionsOf(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return f.perms[userID], nil
}

// fakeDenyList is an in-memory DenyList.
type fakeDenyList struct {
	revoked map[string]bool
}

func newFakeDenyList() *fakeDenyList {
	return &fakeDenyList{revoked: make(map[string]bool)}
}

func (f *fakeDenyList) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl > 0 {
		f.revoked[token] = true
	}
	return nil
}

func (f *fakeDenyList) IsRevoked(ctx context.Context, token string) bool {
	return f.revoked[token]
}

// captureRecorder keeps recorded audit events for assertions.
type captureRecorder struct {
	events []audit.Event
}

func (c *captureRecorder) Record(ctx context.Context, event audit.Event) error {
	c.events = append(c.events, event)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret-key",
			Issuer:           "gradely",
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: 7 * 24 * time.Hour,
		},
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

type serviceFixture struct {
	service  Service
	repo     *fakeRepo
	denyList *fakeDenyList
	recorder *captureRecorder
	codec    *TokenCodec
	user     *users.User
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	repo := newFakeRepo()
	denyList := newFakeDenyList()
	recorder := &captureRecorder{}
	cfg := testConfig()
	codec := NewTokenCodec([]byte(cfg.JWT.Secret), cfg.JWT.Issuer)

	user := &users.User{
		ID:       uuid.New(),
		Username: "ana.silva",
		Email:    "ana.silva@school.edu",
		FullName: "Ana Silva",
		Phone:    "555-0101",
		Password: mustHash(t, "correct-horse"),
		Active:   true,
	}
	repo.addUser(user, []string{"STUDENT"}, []string{"records:read"})

	return &serviceFixture{
		service:  NewService(repo, codec, denyList, recorder, cfg),
		repo:     repo,
		denyList: denyList,
		recorder: recorder,
		codec:    codec,
		user:     user,
	}
}

func TestLoginSuccess(t *testing.T) {
	fx := newServiceFixture(t)

	resp, err := fx.service.Login(context.Background(), &LoginRequest{
		Username: "ana.silva",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, BearerScheme, resp.TokenType)
	assert.Equal(t, int64(900), resp.ExpiresIn)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)

	assert.Equal(t, fx.user.ID.String(), resp.UserInfo.ID)
	assert.Equal(t, "ana.silva", resp.UserInfo.Username)
	assert.Equal(t, []string{"STUDENT"}, resp.UserInfo.Roles)
	assert.Equal(t, []string{"records:read"}, resp.UserInfo.Permissions)

	// access token carries the full identity and the primary role
	claims, err := fx.codec.Decode(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "STUDENT", claims.Role)
	assert.Equal(t, "ana.silva", claims.Username)

	// refresh token carries only the subject and discriminant
	refreshClaims, err := fx.codec.Decode(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
	assert.Empty(t, refreshClaims.Username)
	assert.Empty(t, refreshClaims.Role)

	require.NotEmpty(t, fx.recorder.events)
	assert.Equal(t, audit.EventLoginSucceeded, fx.recorder.events[len(fx.recorder.events)-1].Type)
}

func TestLoginFailures(t *testing.T) {
	fx := newServiceFixture(t)

	disabled := &users.User{
		ID:       uuid.New(),
		Username: "old.account",
		Email:    "old@school.edu",
		FullName: "Old Account",
		Password: mustHash(t, "correct-horse"),
		Active:   false,
	}
	fx.repo.addUser(disabled, []string{"USER"}, nil)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"unknown user", "nobody", "correct-horse", ErrInvalidCredentials},
		{"wrong password", "ana.silva", "wrong", ErrInvalidCredentials},
		{"disabled account", "old.account", "correct-horse", ErrAccountDisabled},
		// password is checked before the active flag, so a bad password
		// on a disabled account stays indistinguishable
		{"disabled account wrong password", "old.account", "wrong", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := fx.service.Login(context.Background(), &LoginRequest{
				Username: tt.username,
				Password: tt.password,
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
		})
	}

	last := fx.recorder.events[len(fx.recorder.events)-1]
	assert.Equal(t, audit.EventLoginFailed, last.Type)
}

func TestLoginWithoutRolesDefaultsToUser(t *testing.T) {
	fx := newServiceFixture(t)

	roleless := &users.User{
		ID:       uuid.New(),
		Username: "fresh",
		Email:    "fresh@school.edu",
		FullName: "Fresh Account",
		Password: mustHash(t, "correct-horse"),
		Active:   true,
	}
	fx.repo.addUser(roleless, nil, nil)

	resp, err := fx.service.Login(context.Background(), &LoginRequest{
		Username: "fresh",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.NotNil(t, resp.UserInfo.Roles)
	assert.Empty(t, resp.UserInfo.Roles)

	claims, err := fx.codec.Decode(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "USER", claims.Role)
}

func TestRefreshMintsNewAccessToken(t *testing.T) {
	fx := newServiceFixture(t)

	login, err := fx.service.Login(context.Background(), &LoginRequest{
		Username: "ana.silva",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	resp, err := fx.service.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	// no rotation: the refresh token is echoed back unchanged
	assert.Equal(t, login.RefreshToken, resp.RefreshToken)
	assert.Equal(t, int64(900), resp.ExpiresIn)

	claims, err := fx.codec.Decode(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "ana.silva", claims.Username)
}

func TestSequentialRefreshesMintDistinctAccessTokens(t *testing.T) {
	fx := newServiceFixture(t)

	login, err := fx.service.Login(context.Background(), &LoginRequest{
		Username: "ana.silva",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// back-to-back refreshes land within the same second, so distinctness
	// must not depend on iat/exp advancing
	first, err := fx.service.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	second, err := fx.service.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)

	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.Equal(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, login.RefreshToken, second.RefreshToken)
}

func TestRefreshReResolvesRoles(t *testing.T) {
	fx := newServiceFixture(t)

	login, err := fx.service.Login(context.Background(), &LoginRequest{
		Username: "ana.silva",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// promote the user after login; the next refresh must pick it up
	fx.repo.roles[fx.user.ID] = []string{"TEACHER"}

	resp, err := fx.service.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)

	claims, err := fx.codec.Decode(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "TEACHER", claims.Role)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	fx := newServiceFixture(t)

	login, err := fx.service.Login(context.Background(), &LoginRequest{
		Username: "ana.silva",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	resp, err := fx.service.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, ErrTokenWrongType)
	assert.Nil(t, resp)
}

func TestRefreshFailsForDisabledOrMissingUser(t *testing.T) {
	fx := newServiceFixture(t)

	login, err := fx.service.Login(context.Background(), &LoginRequest{
		Username: "ana.silva",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	fx.user.Active = false
	_, err = fx.service.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrAccountDisabled)

	delete(fx.repo.byID, fx.user.ID.String())
	_, err = fx.service.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}

func TestLogoutRevokesToken(t *testing.T) {
	fx := newServiceFixture(t)

	login, err := fx.service.Login(context.Background(), &LoginRequest{
		Username: "ana.silva",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// before logout the access token authenticates
	_, err = fx.service.Authenticate(context.Background(), login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, fx.service.Logout(context.Background(), login.AccessToken))

	_, err = fx.service.Authenticate(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutToleratesBadTokens(t *testing.T) {
	fx := newServiceFixture(t)

	assert.NoError(t, fx.service.Logout(context.Background(), ""))
	assert.NoError(t, fx.service.Logout(context.Background(), "junk"))
	assert.Empty(t, fx.denyList.revoked)
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	fx := newServiceFixture(t)

	login, err := fx.service.Login(context.Background(), &LoginRequest{
		Username: "ana.silva",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, fx.service.Logout(context.Background(), login.RefreshToken))

	_, err = fx.service.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthenticateBuildsPrincipal(t *testing.T) {
	fx := newServiceFixture(t)

	login, err := fx.service.Login(context.Background(), &LoginRequest{
		Username: "ana.silva",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	principal, err := fx.service.Authenticate(context.Background(), login.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, fx.user.ID.String(), principal.UserID)
	assert.Equal(t, "ana.silva", principal.Username)
	assert.Equal(t, "STUDENT", principal.Role)
	assert.Equal(t, "ROLE_STUDENT", principal.Authority)
}

func TestAuthenticateRejections(t *testing.T) {
	fx := newServiceFixture(t)

	login, err := fx.service.Login(context.Background(), &LoginRequest{
		Username: "ana.silva",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// refresh tokens never authenticate requests
	_, err = fx.service.Authenticate(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenWrongType)

	_, err = fx.service.Authenticate(context.Background(), "junk")
	assert.ErrorIs(t, err, ErrTokenMalformed)

	fx.user.Active = false
	_, err = fx.service.Authenticate(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestValidateTokenAndTokenInfo(t *testing.T) {
	fx := newServiceFixture(t)

	login, err := fx.service.Login(context.Background(), &LoginRequest{
		Username: "ana.silva",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.True(t, fx.service.ValidateToken(login.AccessToken))
	assert.False(t, fx.service.ValidateToken("junk"))

	info, err := fx.service.TokenInfo(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ana.silva", info.Username)
	assert.Equal(t, "STUDENT", info.Role)
	assert.Equal(t, TokenTypeAccess, info.TokenType)
	assert.False(t, info.IsExpired)

	// expired tokens still project for diagnostics
	expired, err := fx.codec.Encode(&Claims{
		UserID:    fx.user.ID.String(),
		Username:  "ana.silva",
		Role:      "STUDENT",
		TokenType: TokenTypeAccess,
	}, -time.Minute)
	require.NoError(t, err)

	info, err = fx.service.TokenInfo(expired)
	require.NoError(t, err)
	assert.True(t, info.IsExpired)
	assert.Equal(t, "ana.silva", info.Username)

	// structurally invalid input has nothing to project
	_, err = fx.service.TokenInfo("junk")
	assert.Error(t, err)
}

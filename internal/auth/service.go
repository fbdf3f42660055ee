package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gradely/internal/audit"
	"gradely/internal/shared/config"
	"gradely/internal/shared/middleware"
	"gradely/internal/users"
	"gradely/pkg/logger"
)

type Service interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(tokenString string) bool
	TokenInfo(tokenString string) (*TokenInfoResponse, error)
	Authenticate(ctx context.Context, tokenString string) (*middleware.Principal, error)
}

type service struct {
	repo       Repository
	codec      *TokenCodec
	denyList   DenyList
	recorder   audit.Recorder
	logger     *logger.Logger
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(repo Repository, codec *TokenCodec, denyList DenyList, recorder audit.Recorder, cfg *config.Config) Service {
	if denyList == nil {
		denyList = NopDenyList{}
	}
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &service{
		repo:       repo,
		codec:      codec,
		denyList:   denyList,
		recorder:   recorder,
		logger:     logger.GetDefault(),
		accessTTL:  cfg.JWT.AccessExpiresIn,
		refreshTTL: cfg.JWT.RefreshExpiresIn,
	}
}

// verifyCredentials checks the username/password pair against the stored
// bcrypt hash. Unknown usernames and wrong passwords both surface as
// ErrInvalidCredentials; the active flag is only consulted once the
// password matched, so disabled accounts are not probeable.
func (s *service) verifyCredentials(ctx context.Context, username, password string) (*users.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.verifyCredentials(ctx, req.Username, req.Password)
	if err != nil {
		s.record(ctx, audit.EventLoginFailed, req.Username, "", err.Error())
		return nil, err
	}

	roles, err := s.repo.RolesOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	permissions, err := s.repo.PermissionsOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	primary := primaryRole(roles)

	accessToken, err := s.codec.Encode(&Claims{
		UserID:           user.ID.String(),
		Username:         user.Username,
		Role:             primary.String(),
		Email:            user.Email,
		FullName:         user.FullName,
		TokenType:        TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.Username},
	}, s.accessTTL)
	if err != nil {
		return nil, err
	}

	// refresh tokens carry only the subject, user id and discriminant
	refreshToken, err := s.codec.Encode(&Claims{
		UserID:           user.ID.String(),
		TokenType:        TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.Username},
	}, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	s.record(ctx, audit.EventLoginSucceeded, user.Username, user.ID.String(), "")
	s.logger.LogAuthSuccess(ctx, user.ID.String(), "password")

	if roles == nil {
		roles = []string{}
	}
	if permissions == nil {
		permissions = []string{}
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    BearerScheme,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		UserInfo: UserInfo{
			ID:          user.ID.String(),
			Username:    user.Username,
			Email:       user.Email,
			FullName:    user.FullName,
			Phone:       user.Phone,
			StudentID:   uuidString(user.StudentID),
			TeacherID:   uuidString(user.TeacherID),
			Roles:       roles,
			Permissions: permissions,
		},
	}, nil
}

// Refresh mints a new access token from a valid refresh token. The
// primary role is re-resolved from the role store, not read back from the
// token, so role changes apply immediately. The refresh token itself is
// returned unchanged: there is no rotation.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, ErrTokenWrongType
	}
	if s.denyList.IsRevoked(ctx, refreshToken) {
		return nil, ErrTokenRevoked
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, ErrAccountDisabled
	}

	roles, err := s.repo.RolesOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	primary := primaryRole(roles)

	accessToken, err := s.codec.Encode(&Claims{
		UserID:           user.ID.String(),
		Username:         user.Username,
		Role:             primary.String(),
		Email:            user.Email,
		FullName:         user.FullName,
		TokenType:        TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.Username},
	}, s.accessTTL)
	if err != nil {
		return nil, err
	}

	s.record(ctx, audit.EventTokenRefreshed, user.Username, user.ID.String(), "")

	return &RefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// Logout deny-lists the presented token for its remaining lifetime.
// Undecodable or already-expired tokens are silently ignored: logout
// never fails because the caller had nothing revocable.
func (s *service) Logout(ctx context.Context, tokenString string) error {
	if tokenString == "" {
		return nil
	}
	claims, _ := s.codec.Decode(tokenString)
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if err := s.denyList.Revoke(ctx, tokenString, remaining); err != nil {
		return err
	}
	s.record(ctx, audit.EventLoggedOut, claims.Username, claims.UserID, "")
	return nil
}

func (s *service) ValidateToken(tokenString string) bool {
	return s.codec.Validate(tokenString)
}

// TokenInfo returns the decoded claim projection for diagnostics. Expired
// tokens still project; only structurally invalid input errors out.
func (s *service) TokenInfo(tokenString string) (*TokenInfoResponse, error) {
	claims, err := s.codec.Decode(tokenString)
	if claims == nil {
		return nil, err
	}

	var expiration time.Time
	if claims.ExpiresAt != nil {
		expiration = claims.ExpiresAt.Time
	}

	return &TokenInfoResponse{
		Username:   claims.Username,
		UserID:     claims.UserID,
		Role:       claims.Role,
		Email:      claims.Email,
		FullName:   claims.FullName,
		TokenType:  claims.TokenType,
		Expiration: expiration,
		IsExpired:  errors.Is(err, ErrTokenExpired),
	}, nil
}

// Authenticate validates an inbound access token and builds the
// request-scoped principal with exactly one authority, derived from the
// token's role claim. Callers treat any error as "unauthenticated".
func (s *service) Authenticate(ctx context.Context, tokenString string) (*middleware.Principal, error) {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, ErrTokenWrongType
	}
	if s.denyList.IsRevoked(ctx, tokenString) {
		return nil, ErrTokenRevoked
	}

	user, err := s.repo.GetUserByUsername(ctx, claims.Username)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, ErrAccountDisabled
	}

	role := users.ParseRoleName(claims.Role)
	return &middleware.Principal{
		UserID:    user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      role.String(),
		Authority: role.Authority().String(),
	}, nil
}

func (s *service) record(ctx context.Context, eventType audit.EventType, username, userID, detail string) {
	if err := s.recorder.Record(ctx, audit.Event{
		Type:     eventType,
		Username: username,
		UserID:   userID,
		Detail:   detail,
	}); err != nil {
		s.logger.Warn("failed to record audit event",
			slog.String("event", string(eventType)),
			slog.Any("error", err),
		)
	}
}

// primaryRole is the first-assigned role; users without roles default to
// RoleUser.
func primaryRole(roles []string) users.RoleName {
	if len(roles) == 0 {
		return users.RoleUser
	}
	return users.ParseRoleName(roles[0])
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

package auth

import (
	"github.com/golang-jwt/jwt/v4"
)

// Token type discriminant values. Every minted token carries exactly one.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// BearerScheme is the token type reported in login responses.
const BearerScheme = "Bearer"

// Claims is the signed payload carried by both token kinds. Access tokens
// fill the full identity set; refresh tokens carry only the subject, user
// id and discriminant.
type Claims struct {
	UserID    string `json:"userId,omitempty"`
	Username  string `json:"username,omitempty"`
	Role      string `json:"role,omitempty"`
	Email     string `json:"email,omitempty"`
	FullName  string `json:"fullName,omitempty"`
	TokenType string `json:"tokenType"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenPair is the result of a successful login: a short-lived access
// token and a long-lived refresh token. Neither is persisted server-side.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

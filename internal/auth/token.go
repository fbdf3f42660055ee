package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenCodec encodes and decodes signed claim sets. It is a pure function
// of its inputs, the signing secret and the clock, so a single instance is
// safe under unbounded parallel use. The secret is injected once at
// construction and never read from ambient state.
type TokenCodec struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewTokenCodec(secret []byte, issuer string) *TokenCodec {
	return &TokenCodec{
		secret: secret,
		issuer: issuer,
		now:    time.Now,
	}
}

// Encode serializes the claims, computes issued-at/expiry from ttl and
// signs the result with HS256.
func (tc *TokenCodec) Encode(claims *Claims, ttl time.Duration) (string, error) {
	now := tc.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if claims.Issuer == "" {
		claims.Issuer = tc.issuer
	}
	// iat/exp carry second precision only; the jti keeps tokens minted
	// within the same second distinct.
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tc.secret)
}

// Decode verifies the signature and returns the embedded claims. The
// signature is checked independently of expiry: a structurally-expired
// token still yields its claims, paired with ErrTokenExpired. Every other
// failure returns nil claims and one of ErrTokenEmpty, ErrTokenMalformed,
// ErrTokenBadSignature or ErrTokenUnsupportedAlg.
func (tc *TokenCodec) Decode(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrTokenEmpty
	}

	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, err := parser.ParseWithClaims(tokenString, claims, tc.keyFunc); err != nil {
		return nil, classifyParseError(err)
	}

	if tc.expired(claims) {
		return claims, ErrTokenExpired
	}
	return claims, nil
}

// Validate reports whether the token decodes and is not expired. Decode
// failures of any kind collapse to false.
func (tc *TokenCodec) Validate(tokenString string) bool {
	_, err := tc.Decode(tokenString)
	return err == nil
}

// IsExpired reports whether the embedded expiry has passed. Tokens that
// fail to decode at all count as expired.
func (tc *TokenCodec) IsExpired(tokenString string) bool {
	claims, _ := tc.Decode(tokenString)
	if claims == nil {
		return true
	}
	return tc.expired(claims)
}

// IsRefreshToken reports whether the token decodes validly and carries the
// refresh discriminant. Any failure collapses to false.
func (tc *TokenCodec) IsRefreshToken(tokenString string) bool {
	claims, err := tc.Decode(tokenString)
	return err == nil && claims.TokenType == TokenTypeRefresh
}

func (tc *TokenCodec) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrTokenUnsupportedAlg
	}
	return tc.secret, nil
}

// expiry comparison is exact: no skew tolerance
func (tc *TokenCodec) expired(claims *Claims) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return !tc.now().Before(claims.ExpiresAt.Time)
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, ErrTokenUnsupportedAlg):
		return ErrTokenUnsupportedAlg
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenBadSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return ErrTokenMalformed
	}
}

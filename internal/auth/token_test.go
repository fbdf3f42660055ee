package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-key")

func newTestCodec() *TokenCodec {
	return NewTokenCodec(testSecret, "gradely")
}

func accessClaims() *Claims {
	return &Claims{
		UserID:    "4c7b0c6e-1111-2222-3333-444444444444",
		Username:  "ana.silva",
		Role:      "STUDENT",
		Email:     "ana.silva@school.edu",
		FullName:  "Ana Silva",
		TokenType: TokenTypeAccess,
	}
}

func TestTokenCodecRoundTrip(t *testing.T) {
	codec := newTestCodec()

	token, err := codec.Encode(accessClaims(), 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "ana.silva", claims.Username)
	assert.Equal(t, "STUDENT", claims.Role)
	assert.Equal(t, "ana.silva@school.edu", claims.Email)
	assert.Equal(t, "Ana Silva", claims.FullName)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "gradely", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestEncodeMintsUniqueTokens(t *testing.T) {
	// iat/exp only have second precision, so uniqueness must come from
	// the jti even when two tokens are minted at the same instant
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec()
	codec.now = func() time.Time { return base }

	first, err := codec.Encode(accessClaims(), 15*time.Minute)
	require.NoError(t, err)
	second, err := codec.Encode(accessClaims(), 15*time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	firstClaims, err := codec.Decode(first)
	require.NoError(t, err)
	secondClaims, err := codec.Decode(second)
	require.NoError(t, err)

	assert.NotEmpty(t, firstClaims.ID)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestDecodeExpiredTokenStillYieldsClaims(t *testing.T) {
	codec := newTestCodec()

	token, err := codec.Encode(accessClaims(), -time.Minute)
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	require.NotNil(t, claims, "expired tokens keep their claims readable")
	assert.Equal(t, "ana.silva", claims.Username)
}

func TestDecodeFailures(t *testing.T) {
	codec := newTestCodec()

	valid, err := codec.Encode(accessClaims(), 15*time.Minute)
	require.NoError(t, err)

	otherCodec := NewTokenCodec([]byte("a-different-secret"), "gradely")
	foreign, err := otherCodec.Encode(accessClaims(), 15*time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty", "", ErrTokenEmpty},
		{"whitespace", "   ", ErrTokenEmpty},
		{"garbage", "not-a-token", ErrTokenMalformed},
		{"two segments", "abc.def", ErrTokenMalformed},
		{"wrong secret", foreign, ErrTokenBadSignature},
		{"truncated", valid[:len(valid)-4] + "xxxx", ErrTokenBadSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := codec.Decode(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestDecodeRejectsNonHMACAlgorithm(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	claims := accessClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(15 * time.Minute))
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)

	codec := newTestCodec()
	decoded, err := codec.Decode(token)
	assert.ErrorIs(t, err, ErrTokenUnsupportedAlg)
	assert.Nil(t, decoded)
}

func TestValidate(t *testing.T) {
	codec := newTestCodec()

	valid, err := codec.Encode(accessClaims(), 15*time.Minute)
	require.NoError(t, err)
	expired, err := codec.Encode(accessClaims(), -time.Minute)
	require.NoError(t, err)

	assert.True(t, codec.Validate(valid))
	assert.False(t, codec.Validate(expired))
	assert.False(t, codec.Validate(""))
	assert.False(t, codec.Validate("junk"))
}

func TestExpiryComparisonIsExact(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	codec := newTestCodec()
	codec.now = func() time.Time { return base }

	token, err := codec.Encode(accessClaims(), 15*time.Minute)
	require.NoError(t, err)

	// one instant before expiry the token is still good
	codec.now = func() time.Time { return base.Add(15*time.Minute - time.Second) }
	assert.True(t, codec.Validate(token))
	assert.False(t, codec.IsExpired(token))

	// at the exact expiry instant it is already expired, no skew allowed
	codec.now = func() time.Time { return base.Add(15 * time.Minute) }
	assert.False(t, codec.Validate(token))
	assert.True(t, codec.IsExpired(token))
}

func TestIsRefreshToken(t *testing.T) {
	codec := newTestCodec()

	refresh, err := codec.Encode(&Claims{
		UserID:    "4c7b0c6e-1111-2222-3333-444444444444",
		TokenType: TokenTypeRefresh,
	}, 7*24*time.Hour)
	require.NoError(t, err)

	access, err := codec.Encode(accessClaims(), 15*time.Minute)
	require.NoError(t, err)

	assert.True(t, codec.IsRefreshToken(refresh))
	assert.False(t, codec.IsRefreshToken(access))
	assert.False(t, codec.IsRefreshToken("junk"))
}

func TestIsExpiredOnUndecodableToken(t *testing.T) {
	codec := newTestCodec()
	assert.True(t, codec.IsExpired("junk"))
	assert.True(t, codec.IsExpired(""))
}

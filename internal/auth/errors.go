package auth

import "errors"

var (
	// Credential verification failures. Unknown username and wrong
	// password are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")

	// Token decode failures, one per failure kind. The boolean helpers on
	// TokenCodec collapse these, but the typed boundary never loses them.
	ErrTokenEmpty          = errors.New("token is empty")
	ErrTokenMalformed      = errors.New("token is malformed")
	ErrTokenExpired        = errors.New("token is expired")
	ErrTokenBadSignature   = errors.New("token signature is invalid")
	ErrTokenUnsupportedAlg = errors.New("token signing algorithm is not supported")

	// Session issuer failures.
	ErrTokenWrongType = errors.New("token is not of the expected type")
	ErrTokenRevoked   = errors.New("token has been revoked")
)

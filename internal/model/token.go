package model

// TokenManager mints and verifies self-describing bearer tokens. Parse
// methods return ErrInvalidToken (wrapped) for malformed, expired, or
// wrongly-typed input; callers decide whether that is fatal.
type TokenManager interface {
	GenerateAccessToken(username string) (string, error)
	GenerateRefreshToken(username string) (string, error)
	ParseAccessToken(token string) (username string, err error)
	ParseRefreshToken(token string) (username string, err error)
}

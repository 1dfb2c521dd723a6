package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tronghn/taskhub/internal/model"
)

// Claims represents JWT claims with a token type marker. The subject is
// the account username.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC. The signing secret
// and lifetimes are fixed at construction and never mutated.
type JWT struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWT creates a new JWT token manager with the provided secret key and
// per-class lifetimes.
func NewJWT(secretKey string, accessTTL, refreshTTL time.Duration) model.TokenManager {
	return &JWT{secretKey: secretKey, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// GenerateAccessToken creates a short-lived access token for the username.
func (j *JWT) GenerateAccessToken(username string) (string, error) {
	return j.generate(username, typeAccess, j.accessTTL)
}

// GenerateRefreshToken creates a long-lived refresh token for the username.
func (j *JWT) GenerateRefreshToken(username string) (string, error) {
	return j.generate(username, typeRefresh, j.refreshTTL)
}

func (j *JWT) generate(username, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, nil
}

// ParseAccessToken validates an access token and extracts its username.
func (j *JWT) ParseAccessToken(tokenString string) (string, error) {
	return j.parse(tokenString, typeAccess)
}

// ParseRefreshToken validates a refresh token and extracts its username.
func (j *JWT) ParseRefreshToken(tokenString string) (string, error) {
	return j.parse(tokenString, typeRefresh)
}

func (j *JWT) parse(tokenString, wantType string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", model.ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return "", fmt.Errorf("%w: token type mismatch: %s", model.ErrInvalidToken, claims.TokenType)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", model.ErrInvalidToken)
	}
	return claims.Subject, nil
}

package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken covers every decode failure: bad signature, malformed
// input, expiry, and type mismatch. Callers must not learn which one it was.
var ErrInvalidToken = errors.New("token is invalid")

// Claims is the payload carried by every issued token. TokenType
// discriminates access from refresh tokens and is verified on every decode;
// it is the only thing preventing cross-use of the two kinds.
type Claims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies self-contained expiring tokens. It is
// immutable after construction and safe for concurrent use.
type TokenCodec struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenCodec(secret string, algorithm string, accessTTL time.Duration, refreshTTL time.Duration) *TokenCodec {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		method = jwt.SigningMethodHS256
	}

	return &TokenCodec{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Encode mints a signed token of the given type for subject. The expiration
// is now plus the configured lifetime for that token type.
func (c *TokenCodec) Encode(subject string, tokenType string) (string, error) {
	ttl := c.accessTTL
	if tokenType == TokenTypeRefresh {
		ttl = c.refreshTTL
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(c.method, Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			// A fresh jti per token makes every mint unique, so rotation
			// always returns strings distinct from the presented token.
			ID: uuid.NewString(),
		},
	})

	return token.SignedString(c.secret)
}

// DecodeAs verifies the token signature and expiry and checks that the
// embedded type claim equals expectedType. All failures collapse to
// ErrInvalidToken.
func (c *TokenCodec) DecodeAs(tokenString string, expectedType string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != expectedType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every session token failure: malformed input, a bad
// signature and an expired token all collapse into this one error so callers
// cannot distinguish why verification failed.
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims are the claims carried by a session token. The token proves
// identity only; account state is always re-read from the store.
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTIssuer mints and verifies HS256 session tokens.
type JWTIssuer struct {
	secret    []byte
	issuer    string
	expiresIn time.Duration
}

// NewJWTIssuer creates a JWTIssuer signing with the given secret. Tokens
// expire after expiresIn and are never revoked server-side.
func NewJWTIssuer(secret, issuer string, expiresIn time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret:    []byte(secret),
		issuer:    issuer,
		expiresIn: expiresIn,
	}
}

// Issue signs a session token identifying the given user.
func (i *JWTIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    i.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(i.secret)
}

// Verify validates a session token and returns the user ID it was issued
// for. Any failure is reported as ErrInvalidToken.
func (i *JWTIssuer) Verify(tokenStr string) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return i.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(i.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}

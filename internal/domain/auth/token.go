package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims binds a bearer token at the HTTP edge to a core session. The
// session token is the registry key; username and role are carried for
// logging only and re-read from the live session on every request.
type Claims struct {
	SessionToken string `json:"sid"`
	Username     string `json:"sub"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs a bearer token for the session with the given TTL.
func GenerateToken(secret string, session *Session, ttl time.Duration) (string, error) {
	claims := Claims{
		SessionToken: session.Token(),
		Username:     session.Username(),
		Role:         string(session.Role()),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the bearer token and returns its claims.
func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

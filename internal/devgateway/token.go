package devgateway

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid token")

// sessionClaims binds a signed token to a revocable session.
type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
	AccountID string `json:"acc"`
}

func newSessionToken(sessionID, accountID string, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		SessionID: sessionID,
		AccountID: accountID,
	})
	return token.SignedString(secret)
}

func parseSessionToken(tokenString string, secret []byte) (*sessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}

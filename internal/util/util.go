package util

import (
	"errors"
	"fmt"

	jwt "github.com/dgrijalva/jwt-go"
)

// Claims carried by access tokens. The subject is the user ID.
type Claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// ValidateJWT checks an HMAC-signed bearer token and returns its claims.
func ValidateJWT(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject claim")
	}
	return claims, nil
}

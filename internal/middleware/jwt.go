package middleware

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the access token payload: sub is the user id.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ValidateToken checks the HS256 signature, expiry and issuer of tokenString.
// An expired token yields an error wrapping jwt.ErrTokenExpired.
func ValidateToken(tokenString string, secret []byte, issuer string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("missing subject claim")
	}
	return claims, nil
}

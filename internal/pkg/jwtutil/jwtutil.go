package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken is a convenience wrapper over GenerateTokenAt for a token
// issued now. The session service goes through GenerateTokenAt so its clock
// can be replaced.
func GenerateToken(secret string, ttl time.Duration, userID uint, username string) (string, error) {
	return GenerateTokenAt(secret, time.Now(), ttl, userID, username)
}

// GenerateTokenAt signs a token as if it had been issued at issuedAt.
func GenerateTokenAt(secret string, issuedAt time.Time, ttl time.Duration, userID uint, username string) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token failed: %w", err)
	}
	return signed, nil
}

// ParseToken verifies the signature and expiry of tokenString. Tokens without
// an expiry, signed with anything but HS256, or missing the user identity
// are rejected.
func ParseToken(secret, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 || claims.Username == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

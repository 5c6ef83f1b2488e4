package utils

import (
	"errors"
	"time"

	"roombooking/models"

	"github.com/golang-jwt/jwt"
)

// GenerateIdentityToken signs a host identity with the given secret.
// The host environment issues these; the service only verifies them.
func GenerateIdentityToken(secret []byte, identity models.Identity, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  identity.UserID,
		"name": identity.DisplayName,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(secret []byte, tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
}

// IdentityFromToken extracts the host identity (sub and name claims) from a valid token.
func IdentityFromToken(secret []byte, tokenString string) (*models.Identity, error) {
	token, err := ValidateToken(secret, tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	name, _ := claims["name"].(string)

	return &models.Identity{UserID: sub, DisplayName: name}, nil
}

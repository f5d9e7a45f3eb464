package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"dreamhi/config"

	"github.com/golang-jwt/jwt"
)

// secretKey prefers the configured secret, then the environment.
func secretKey() []byte {
	if config.AppConfig.JWTSecret != "" {
		return []byte(config.AppConfig.JWTSecret)
	}
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken creates a signed JWT token for subject that expires after
// duration.
func GenerateToken(subject string, duration time.Duration) (string, error) {
	key := secretKey()
	if len(key) == 0 {
		return "", errors.New("jwt secret is not configured")
	}
	now := time.Now()
	claims := jwt.StandardClaims{
		Subject:   subject,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	key := secretKey()
	if len(key) == 0 {
		return nil, errors.New("jwt secret is not configured")
	}
	return jwt.ParseWithClaims(tokenString, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
}

// validClaims returns the claims of a valid token. Tokens without an expiry
// are rejected since they could never be revoked for a bounded time.
func validClaims(tokenString string) (*jwt.StandardClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*jwt.StandardClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ExpiresAt == 0 {
		return nil, errors.New("token does not contain an 'exp' claim")
	}
	return claims, nil
}

// ExtractIDFromToken returns the subject of a valid token.
func ExtractIDFromToken(tokenString string) (string, error) {
	claims, err := validClaims(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return claims.Subject, nil
}

// TokenExpiry returns when a valid token expires.
func TokenExpiry(tokenString string) (time.Time, error) {
	claims, err := validClaims(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(claims.ExpiresAt, 0), nil
}

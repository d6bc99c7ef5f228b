package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
	"github.com/meridian-labs/scanwatch-core/internal/core/ports/driven"
)

// Ensure Adapter implements TokenVerifier
var _ driven.TokenVerifier = (*Adapter)(nil)

// StaticSubject identifies callers holding the shared ingest token.
const StaticSubject = "ingest"

// jwtClaims carries the subject for JWT compatibility
type jwtClaims struct {
	jwt.RegisteredClaims
}

// Adapter verifies bearer tokens. Two forms are accepted: the static
// ingest token (checked against a bcrypt hash) and HS256 JWTs signed with
// the shared secret.
type Adapter struct {
	jwtSecret       []byte
	staticTokenHash string
}

// NewAdapter creates a new auth adapter. Either argument may be empty,
// which disables that token form.
func NewAdapter(jwtSecret, staticTokenHash string) *Adapter {
	return &Adapter{
		jwtSecret:       []byte(jwtSecret),
		staticTokenHash: staticTokenHash,
	}
}

// HashToken generates a bcrypt hash for a static token
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyToken checks a bearer token and returns its subject
func (a *Adapter) VerifyToken(token string) (string, error) {
	if token == "" {
		return "", domain.ErrTokenInvalid
	}

	if a.staticTokenHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(a.staticTokenHash), []byte(token)); err == nil {
			return StaticSubject, nil
		}
	}

	if len(a.jwtSecret) > 0 {
		return a.verifyJWT(token)
	}
	return "", domain.ErrTokenInvalid
}

// GenerateToken issues an HS256 JWT for a subject, valid for ttl
func (a *Adapter) GenerateToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

func (a *Adapter) verifyJWT(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*jwtClaims); ok && token.Valid {
		return claims.Subject, nil
	}
	return "", domain.ErrTokenInvalid
}

package utils

import (
	"errors"
	"time"

	"github.com/SscSPs/rate_ledger/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// ActorClaims are the JWT claims the identity provider issues for a caller.
type ActorClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// Actor converts the claims into the domain identity of the caller.
func (c *ActorClaims) Actor() domain.Actor {
	return domain.Actor{ID: c.Subject, Name: c.Name, Role: c.Role}
}

// GenerateActorToken signs an HS256 token carrying the actor's id, name and role.
func GenerateActorToken(actor domain.Actor, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	if actor.ID == "" {
		return "", errors.New("actor id is required")
	}
	now := time.Now()
	claims := ActorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actor.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		Name: actor.Name,
		Role: actor.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseActorToken parses a token string, validates its signature and standard claims.
// It returns the claims if the token is valid, or an error otherwise.
func ParseActorToken(tokenString string, secretKey string) (*ActorClaims, error) {
	claims := &ActorClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}

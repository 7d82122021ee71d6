// Package auth resolves callers from bearer tokens and decides who may change a post.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bloglist/app/models"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUnauthenticated is returned when a token is missing, malformed, badly signed,
// expired, or carries no user id.
var ErrUnauthenticated = errors.New("token missing or invalid")

// Claims is the payload of a session token.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 tokens with a shared secret.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens creates a Tokens. A zero ttl issues tokens that never expire.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token identifying user.
func (t *Tokens) Issue(user *models.User) (string, error) {
	now := t.now()
	claims := Claims{
		ID:       user.ID.Hex(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ResolveCaller verifies raw and returns the user id it carries. The id is not checked
// against the store.
func (t *Tokens) ResolveCaller(raw string) (primitive.ObjectID, error) {
	if raw == "" {
		return primitive.NilObjectID, ErrUnauthenticated
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if claims.ID == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: no user id claim", ErrUnauthenticated)
	}

	id, err := models.ParseID(claims.ID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return id, nil
}

// TokenFromHeader extracts the token from an Authorization header value.
// The scheme match is case-insensitive; anything else yields "".
func TokenFromHeader(header string) string {
	const scheme = "bearer "
	if len(header) < len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return ""
	}
	return strings.TrimSpace(header[len(scheme):])
}

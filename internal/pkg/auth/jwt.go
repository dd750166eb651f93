// Package auth reads the caller's identity from the backend-issued token.
// Tokens are verified by the backend; this service only reads their claims.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenHeader is the header the commerce backend reads its token from
const TokenHeader = "x-auth-token"

var (
	// ErrNoToken means the request carried no token
	ErrNoToken = errors.New("authentication required")
	// ErrTokenExpired means the token's exp claim is in the past
	ErrTokenExpired = errors.New("session expired, please log in again")
)

// Identity is the signed-in shopper
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Token  string `json:"-"`
}

// ParseToken reads identity claims from a token without verifying its signature.
// The user id comes from id, userId, user_id, user.id or sub, in that order.
func ParseToken(token string, now time.Time) (*Identity, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && now.After(exp.Time) {
		return nil, ErrTokenExpired
	}

	id := &Identity{
		UserID: firstString(claims, "id", "userId", "user_id"),
		Name:   firstString(claims, "name"),
		Email:  firstString(claims, "email"),
		Token:  token,
	}

	if user, ok := claims["user"].(map[string]interface{}); ok {
		if id.UserID == "" {
			id.UserID = firstString(user, "id", "_id")
		}
		if id.Name == "" {
			id.Name = firstString(user, "name")
		}
		if id.Email == "" {
			id.Email = firstString(user, "email")
		}
	}

	if id.UserID == "" {
		if sub, err := claims.GetSubject(); err == nil {
			id.UserID = sub
		}
	}
	if id.UserID == "" {
		return nil, fmt.Errorf("token carries no user id")
	}

	return id, nil
}

// ExtractToken picks the token from the backend header or a bearer Authorization header
func ExtractToken(tokenHeader, authHeader string) string {
	if t := strings.TrimSpace(tokenHeader); t != "" {
		return t
	}
	return ExtractTokenFromHeader(authHeader)
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) string {
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}

type identityKey struct{}

// WithIdentity stores the identity on the context
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by WithIdentity
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

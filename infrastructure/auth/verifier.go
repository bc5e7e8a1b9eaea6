// Package auth validates session tokens against the hosted auth backend.
// Tokens are HS256 JWTs signed with the project secret; when no secret is
// configured the verifier falls back to asking the auth API directly.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/RodCacioli/Authos-v2/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

var (
	ErrMissingToken = errors.New("missing authentication token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// sessionClaims is the subset of the auth backend's JWT claims we care about.
type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier implements ports.SessionVerifier.
type Verifier struct {
	secret []byte
	client *supa.Client
	logger *zap.Logger
}

// NewVerifier builds a verifier. secret may be empty, in which case every
// token is checked against the auth API instead of locally.
func NewVerifier(secret string, client *supa.Client, logger *zap.Logger) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		client: client,
		logger: logger,
	}
}

// Verify validates the bearer token and returns the owning user id.
func (v *Verifier) Verify(ctx context.Context, token string) (string, error) {
	token = strings.TrimPrefix(token, "Bearer ")
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.NewUnauthorized(ErrMissingToken.Error())
	}

	if len(v.secret) > 0 {
		return v.verifyLocal(token)
	}
	return v.verifyRemote(token)
}

func (v *Verifier) verifyLocal(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.NewUnauthorized(ErrExpiredToken.Error())
		}
		v.logger.Debug("token validation failed", zap.Error(err))
		return "", apperrors.NewUnauthorized(ErrInvalidToken.Error())
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", apperrors.NewUnauthorized(ErrInvalidToken.Error())
	}
	return claims.Subject, nil
}

func (v *Verifier) verifyRemote(tokenString string) (string, error) {
	if v.client == nil {
		return "", apperrors.NewUnauthorized(ErrInvalidToken.Error())
	}
	// GetUser chained with WithToken carries the token in the request itself;
	// it does not take a context argument.
	user, err := v.client.Auth.WithToken(tokenString).GetUser()
	if err != nil {
		v.logger.Debug("auth api rejected token", zap.Error(err))
		return "", apperrors.NewUnauthorized(ErrInvalidToken.Error())
	}
	return user.ID.String(), nil
}

// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sapcc/go-bits/logg"

	"github.com/sapcc/jobly/internal/config"
)

var ErrNoSecret = errors.New("auth.secret_key is required for auth_strategy 'jwt'")

// Claims are carried by the tokens jobly issues.
type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

func (c *Claims) Subject() string  { return c.Username }
func (c *Claims) Privileged() bool { return c.IsAdmin }

type JWT struct {
	secret   []byte
	lifetime time.Duration
}

func InitializeJWT() (*JWT, error) {
	if config.Global.Auth.SecretKey == "" {
		return nil, ErrNoSecret
	}
	return &JWT{
		secret:   []byte(config.Global.Auth.SecretKey),
		lifetime: config.Global.Auth.TokenLifetime,
	}, nil
}

// GenerateToken signs a HS256 token for username. A zero lifetime issues
// tokens without expiry.
func (j *JWT) GenerateToken(username string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if j.lifetime > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.lifetime))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (j *JWT) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

type claimsKey struct{}

// ClaimsFrom returns the claims stored by AuthenticateJWT, nil for anonymous
// requests.
func ClaimsFrom(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey{}).(*Claims)
	return claims
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// AuthenticateJWT stores the claims of a valid bearer token in the request
// context. Requests without or with an invalid token pass on anonymously.
func (j *JWT) AuthenticateJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := j.ValidateToken(strings.TrimSpace(tokenStr))
		if err != nil {
			logg.Debug("ignoring bearer token: %s", err.Error())
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

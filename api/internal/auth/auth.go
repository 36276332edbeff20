package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"classroom-diag/api/internal/apperr"
)

// ErrNoCredential is returned when a provider finds nothing to read.
var ErrNoCredential = fmt.Errorf("%w: no credential", apperr.ErrUnauthorized)

// CredentialProvider extracts the caller's Google access token from a request.
type CredentialProvider interface {
	AccessToken(r *http.Request) (string, error)
}

// Bearer reads "Authorization: Bearer <token>".
type Bearer struct{}

func (Bearer) AccessToken(r *http.Request) (string, error) {
	if tok := bearerToken(r.Header.Get("Authorization")); tok != "" {
		return tok, nil
	}
	return "", ErrNoCredential
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

type Claims struct {
	AccessToken string `json:"accessToken"`
	jwt.RegisteredClaims
}

// Session reads an HS256-signed session cookie issued by the sign-in flow.
type Session struct {
	Secret string
	Cookie string
}

func (s Session) AccessToken(r *http.Request) (string, error) {
	if s.Secret == "" {
		return "", ErrNoCredential
	}
	c, err := r.Cookie(s.Cookie)
	if err != nil || strings.TrimSpace(c.Value) == "" {
		return "", ErrNoCredential
	}
	claims, err := ParseSessionToken(s.Secret, c.Value)
	if err != nil {
		return "", fmt.Errorf("%w: session: %v", apperr.ErrUnauthorized, err)
	}
	return claims.AccessToken, nil
}

func ParseSessionToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || strings.TrimSpace(claims.AccessToken) == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Chain tries each provider in order and returns the first token found.
// A provider that finds a credential but rejects it stops the chain.
type Chain []CredentialProvider

func (c Chain) AccessToken(r *http.Request) (string, error) {
	for _, p := range c {
		tok, err := p.AccessToken(r)
		if err == nil {
			return tok, nil
		}
		if !errors.Is(err, ErrNoCredential) {
			return "", err
		}
	}
	return "", ErrNoCredential
}

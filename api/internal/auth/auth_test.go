package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"classroom-diag/api/internal/apperr"
)

// signSession issues a cookie value the way the sign-in flow does.
func signSession(secret, subject, accessToken string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		AccessToken: accessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func TestBearer(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "bearer ya29.token")
	tok, err := Bearer{}.AccessToken(r)
	if err != nil || tok != "ya29.token" {
		t.Fatalf("unexpected token %q err %v", tok, err)
	}

	r.Header.Set("Authorization", "Basic abc")
	if _, err := (Bearer{}).AccessToken(r); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected no credential, got %v", err)
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := signSession("secret", "teacher-1", "ya29.abc", time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	claims, err := ParseSessionToken("secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.AccessToken != "ya29.abc" || claims.Subject != "teacher-1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if _, err := ParseSessionToken("other", token); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestSessionExpired(t *testing.T) {
	token, err := signSession("secret", "teacher-1", "ya29.abc", -time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "session-token", Value: token})
	_, err = Session{Secret: "secret", Cookie: "session-token"}.AccessToken(r)
	if !errors.Is(err, apperr.ErrUnauthorized) || errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected rejected session, got %v", err)
	}
}

func TestChain(t *testing.T) {
	token, _ := signSession("secret", "teacher-1", "from-cookie", time.Minute)
	chain := Chain{Bearer{}, Session{Secret: "secret", Cookie: "session-token"}}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "session-token", Value: token})
	if tok, err := chain.AccessToken(r); err != nil || tok != "from-cookie" {
		t.Fatalf("expected cookie token, got %q %v", tok, err)
	}

	r.Header.Set("Authorization", "Bearer from-header")
	if tok, _ := chain.AccessToken(r); tok != "from-header" {
		t.Fatalf("expected header token first, got %q", tok)
	}

	empty := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := chain.AccessToken(empty)
	if !errors.Is(err, ErrNoCredential) || apperr.Status(err) != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

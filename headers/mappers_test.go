package headers

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestDefault_KeepsExisting(t *testing.T) {
	m := Default("Accept", "application/json")

	if got := m(Headers{}); got["Accept"] != "application/json" {
		t.Errorf("expected default, got %v", got)
	}
	if got := m(Headers{"accept": "text/html"}); got["accept"] != "text/html" || len(got) != 1 {
		t.Errorf("expected caller value kept, got %v", got)
	}
}

func TestStatic_MergesDefaults(t *testing.T) {
	defaults := map[string]string{"X-Client": "forms", "Accept": "application/json"}
	m := Static(defaults)
	defaults["X-Client"] = "mutated"

	got := m(Headers{"Accept": "text/plain"})
	if got["X-Client"] != "forms" {
		t.Errorf("expected snapshot of defaults, got %q", got["X-Client"])
	}
	if got["Accept"] != "text/plain" {
		t.Errorf("expected caller Accept kept, got %q", got["Accept"])
	}
}

func TestRequestID(t *testing.T) {
	got := RequestID("")(Headers{})
	id, ok := got[HeaderRequestID]
	if !ok {
		t.Fatal("expected request id header")
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected UUID, got %q: %v", id, err)
	}

	kept := RequestID("X-Correlation")(Headers{"x-correlation": "abc"})
	if kept["x-correlation"] != "abc" || len(kept) != 1 {
		t.Errorf("expected caller id kept, got %v", kept)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name string
		in   Headers
		src  TokenFunc
		want string
	}{
		{"adds token", Headers{}, func() (string, error) { return "tok", nil }, "Bearer tok"},
		{"keeps caller auth", Headers{HeaderAuthorization: "Basic x"}, func() (string, error) { return "tok", nil }, "Basic x"},
		{"source error", Headers{}, func() (string, error) { return "", errors.New("no session") }, ""},
		{"empty token", Headers{}, func() (string, error) { return "", nil }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BearerToken(tt.src)(tt.in)
			if got[HeaderAuthorization] != tt.want {
				t.Errorf("Authorization = %q, want %q", got[HeaderAuthorization], tt.want)
			}
		})
	}
}

func TestSignedJWT(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	src, err := NewJWTSource(JWTConfig{
		Secret:   "s3cret",
		Issuer:   "forms",
		Subject:  "user-1",
		Audience: []string{"api"},
		TTL:      time.Minute,
		now:      func() time.Time { return fixed },
	})
	if err != nil {
		t.Fatalf("NewJWTSource: %v", err)
	}

	raw, err := src.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}

	claims := &gojwt.RegisteredClaims{}
	_, err = gojwt.ParseWithClaims(raw, claims, func(*gojwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	}, gojwt.WithTimeFunc(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Issuer != "forms" || claims.Subject != "user-1" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.Time.Equal(fixed.Add(time.Minute)) {
		t.Errorf("unexpected expiry %v", claims.ExpiresAt)
	}
}

func TestSignedJWT_Mapper(t *testing.T) {
	m, err := SignedJWT(JWTConfig{Secret: "k"})
	if err != nil {
		t.Fatalf("SignedJWT: %v", err)
	}
	got := m(Headers{})
	if v := got[HeaderAuthorization]; len(v) < len("Bearer ")+1 || v[:7] != "Bearer " {
		t.Errorf("expected bearer token, got %q", v)
	}
}

func TestSignedJWT_InvalidConfig(t *testing.T) {
	if _, err := SignedJWT(JWTConfig{}); err == nil {
		t.Error("expected error for missing secret")
	}
	if _, err := SignedJWT(JWTConfig{Secret: "k", Method: "RS256"}); err == nil {
		t.Error("expected error for unsupported method")
	}
}

package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kp4ws/FlowSpace/internal/errs"
)

type staticKeys struct {
	set *KeySet
	ok  bool
}

func (s staticKeys) Get(context.Context) (*KeySet, bool) { return s.set, s.ok }

func signRS256(t *testing.T, priv *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	signed, err := tok.SignedString(priv)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestStrictVerifier_ValidCredential(t *testing.T) {
	t.Parallel()
	priv, jwk := testKey(t, "kid-1")
	v := NewStrictVerifier(staticKeys{set: &KeySet{Keys: []Key{jwk}}, ok: true})

	cred := signRS256(t, priv, "kid-1", jwt.MapClaims{
		"sub":   "user-42",
		"email": "person@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	ident, err := v.Verify(context.Background(), cred)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ident.UserID != "user-42" || ident.Email != "person@example.com" {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestStrictVerifier_MissingEmailStillResolves(t *testing.T) {
	t.Parallel()
	priv, jwk := testKey(t, "kid-1")
	v := NewStrictVerifier(staticKeys{set: &KeySet{Keys: []Key{jwk}}, ok: true})

	cred := signRS256(t, priv, "kid-1", jwt.MapClaims{"sub": "user-42"})

	ident, err := v.Verify(context.Background(), cred)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ident.UserID != "user-42" || ident.Email != "" {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestStrictVerifier_Unauthorized(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	priv, jwk := testKey(t, "kid-1")
	otherPriv, _ := testKey(t, "kid-other")
	v := NewStrictVerifier(staticKeys{set: &KeySet{Keys: []Key{jwk}}, ok: true})

	cases := []struct {
		name string
		cred string
	}{
		{"empty credential", ""},
		{"malformed token", "not-a-jwt"},
		{"unknown kid", signRS256(t, priv, "kid-unknown", jwt.MapClaims{"sub": "u"})},
		{"wrong signing key", signRS256(t, otherPriv, "kid-1", jwt.MapClaims{"sub": "u"})},
		{"expired", signRS256(t, priv, "kid-1", jwt.MapClaims{"sub": "u", "exp": time.Now().Add(-time.Hour).Unix()})},
		{"missing sub", signRS256(t, priv, "kid-1", jwt.MapClaims{"email": "x@y.z"})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := v.Verify(ctx, tc.cred); !errors.Is(err, errs.ErrUnauthorized) {
				t.Fatalf("want unauthorized, got %v", err)
			}
		})
	}
}

func TestStrictVerifier_RejectsNonRS256(t *testing.T) {
	t.Parallel()
	_, jwk := testKey(t, "kid-1")
	v := NewStrictVerifier(staticKeys{set: &KeySet{Keys: []Key{jwk}}, ok: true})

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u"})
	tok.Header["kid"] = "kid-1"
	cred, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := v.Verify(context.Background(), cred); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("want unauthorized for HS256, got %v", err)
	}
}

func TestStrictVerifier_KeysUnavailable(t *testing.T) {
	t.Parallel()
	priv, _ := testKey(t, "kid-1")
	v := NewStrictVerifier(staticKeys{ok: false})

	cred := signRS256(t, priv, "kid-1", jwt.MapClaims{"sub": "u"})
	if _, err := v.Verify(context.Background(), cred); !errors.Is(err, errs.ErrUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestPermissiveVerifier_FallsBackToMock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	v := NewPermissiveVerifier(NewStrictVerifier(staticKeys{ok: false}))

	for _, cred := range []string{"", "garbage", "a.b.c"} {
		ident, err := v.Verify(ctx, cred)
		if err != nil {
			t.Fatalf("permissive must not fail: %v", err)
		}
		if ident != MockIdentity {
			t.Fatalf("want mock identity, got %+v", ident)
		}
	}
}

func TestPermissiveVerifier_ValidCredentialPassesThrough(t *testing.T) {
	t.Parallel()
	priv, jwk := testKey(t, "kid-1")
	v := NewPermissiveVerifier(NewStrictVerifier(staticKeys{set: &KeySet{Keys: []Key{jwk}}, ok: true}))

	cred := signRS256(t, priv, "kid-1", jwt.MapClaims{"sub": "real-user"})
	ident, err := v.Verify(context.Background(), cred)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ident.UserID != "real-user" {
		t.Fatalf("valid credential must resolve to its real identity, got %+v", ident)
	}
}

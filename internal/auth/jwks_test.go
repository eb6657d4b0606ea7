package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

// testKey generates an RSA key pair and its JWK form under the given kid.
func testKey(t *testing.T, kid string) (*rsa.PrivateKey, Key) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return priv, Key{
		Kid: kid,
		Kty: "RSA",
		Alg: "RS256",
		Use: "sig",
		N:   base64.RawURLEncoding.EncodeToString(priv.PublicKey.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(priv.PublicKey.E)).Bytes()),
	}
}

func TestKey_RSAPublicKey_RoundTrip(t *testing.T) {
	t.Parallel()
	priv, jwk := testKey(t, "kid-1")

	pub, err := jwk.RSAPublicKey()
	if err != nil {
		t.Fatalf("RSAPublicKey: %v", err)
	}
	if pub.N.Cmp(priv.PublicKey.N) != 0 || pub.E != priv.PublicKey.E {
		t.Fatalf("decoded key does not match original")
	}
}

func TestKey_RSAPublicKey_Rejections(t *testing.T) {
	t.Parallel()

	if _, err := (&Key{Kty: "EC", N: "AQAB", E: "AQAB"}).RSAPublicKey(); err == nil {
		t.Fatalf("want error on non-RSA key type")
	}
	if _, err := (&Key{Kty: "RSA", N: "!!!", E: "AQAB"}).RSAPublicKey(); err == nil {
		t.Fatalf("want error on invalid modulus encoding")
	}
	if _, err := (&Key{Kty: "RSA", N: "", E: "AQAB"}).RSAPublicKey(); err == nil {
		t.Fatalf("want error on empty modulus")
	}
}

func TestKeySet_ByID(t *testing.T) {
	t.Parallel()
	ks := KeySet{Keys: []Key{{Kid: "a"}, {Kid: "b"}}}

	if got := ks.ByID("b"); got == nil || got.Kid != "b" {
		t.Fatalf("ByID(b) = %+v", got)
	}
	if got := ks.ByID("missing"); got != nil {
		t.Fatalf("ByID(missing) = %+v, want nil", got)
	}
}

func TestJWKSClient_EmptyURLAlwaysAbsent(t *testing.T) {
	t.Parallel()
	c := NewJWKSClient("", zap.NewNop())

	if _, ok := c.Get(context.Background()); ok {
		t.Fatalf("empty URL must report the key set as absent")
	}
}

func TestJWKSClient_FetchesAndCaches(t *testing.T) {
	t.Parallel()
	_, jwk := testKey(t, "kid-1")

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(KeySet{Keys: []Key{jwk}})
	}))
	defer srv.Close()

	c := NewJWKSClient(srv.URL, zap.NewNop())
	ctx := context.Background()

	ks, ok := c.Get(ctx)
	if !ok || ks.ByID("kid-1") == nil {
		t.Fatalf("first Get: ok=%v ks=%+v", ok, ks)
	}
	if _, ok := c.Get(ctx); !ok {
		t.Fatalf("second Get must hit the cache")
	}
	if hits.Load() != 1 {
		t.Fatalf("want exactly one fetch, got %d", hits.Load())
	}
}

func TestJWKSClient_RefetchesAfterTTL(t *testing.T) {
	t.Parallel()
	_, jwk := testKey(t, "kid-1")

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(KeySet{Keys: []Key{jwk}})
	}))
	defer srv.Close()

	c := NewJWKSClient(srv.URL, zap.NewNop())
	c.ttl = time.Nanosecond
	ctx := context.Background()

	if _, ok := c.Get(ctx); !ok {
		t.Fatalf("first Get failed")
	}
	time.Sleep(time.Millisecond)
	if _, ok := c.Get(ctx); !ok {
		t.Fatalf("second Get failed")
	}
	if hits.Load() != 2 {
		t.Fatalf("want refetch after ttl, got %d fetches", hits.Load())
	}
}

func TestJWKSClient_FetchFailureIsAbsentNotError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewJWKSClient(srv.URL, zap.NewNop())
	if _, ok := c.Get(context.Background()); ok {
		t.Fatalf("failed fetch must report the key set as absent")
	}
}

package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	fetchTimeout = 5 * time.Second
	cacheTTL     = 5 * time.Minute
)

// KeySet is the identity provider's published signing keys.
type KeySet struct {
	Keys []Key `json:"keys"`
}

// ByID returns the key whose kid matches, or nil.
func (ks *KeySet) ByID(kid string) *Key {
	for i := range ks.Keys {
		if ks.Keys[i].Kid == kid {
			return &ks.Keys[i]
		}
	}
	return nil
}

// Key is a single JWK entry. Only RSA keys are usable for verification.
type Key struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// RSAPublicKey decodes the base64url modulus and exponent into a public key.
func (k *Key) RSAPublicKey() (*rsa.PublicKey, error) {
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("unsupported key type %q", k.Kty)
	}
	nb, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}
	if len(nb) == 0 || len(eb) == 0 {
		return nil, errors.New("empty modulus or exponent")
	}
	e := 0
	for _, b := range eb {
		e = e<<8 | int(b)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}, nil
}

// KeySource provides the current signing-key set. The second return is
// false when the set cannot be retrieved right now; that means "cannot
// validate signatures", not "no user exists".
type KeySource interface {
	Get(ctx context.Context) (*KeySet, bool)
}

// JWKSClient fetches the key set from the provider's discovery URL and
// caches it for a short TTL so an unreachable provider does not take
// down every request. Network and decode failures never escape as
// errors past this boundary.
type JWKSClient struct {
	url    string
	client *http.Client
	log    *zap.Logger

	mu        sync.Mutex
	cached    *KeySet
	fetchedAt time.Time
	ttl       time.Duration
}

// NewJWKSClient constructs a client for the given discovery URL. An
// empty URL yields a client that always reports the set as absent.
func NewJWKSClient(url string, log *zap.Logger) *JWKSClient {
	return &JWKSClient{
		url:    url,
		client: &http.Client{Timeout: fetchTimeout},
		log:    log,
		ttl:    cacheTTL,
	}
}

// Get returns the cached key set when fresh, otherwise fetches it once.
func (c *JWKSClient) Get(ctx context.Context) (*KeySet, bool) {
	if c.url == "" {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.cached, true
	}
	ks, err := c.fetch(ctx)
	if err != nil {
		c.log.Warn("jwks fetch failed", zap.String("url", c.url), zap.Error(err))
		return nil, false
	}
	c.cached, c.fetchedAt = ks, time.Now()
	return ks, true
}

func (c *JWKSClient) fetch(ctx context.Context) (*KeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("jwks: unexpected status %d", resp.StatusCode)
	}
	var ks KeySet
	if err := json.NewDecoder(resp.Body).Decode(&ks); err != nil {
		return nil, fmt.Errorf("jwks: decode: %w", err)
	}
	return &ks, nil
}

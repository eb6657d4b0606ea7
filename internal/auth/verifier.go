// Package auth resolves caller identities from bearer credentials.
package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
)

// MockIdentity is the fixed development identity returned by the
// permissive verifier when a request cannot be verified.
var MockIdentity = model.Identity{UserID: "mock-user-123", Email: "mock@example.com"}

// Verifier resolves a bearer credential to a caller identity.
// The credential may be empty when the Authorization header is absent.
type Verifier interface {
	Verify(ctx context.Context, credential string) (model.Identity, error)
}

// StrictVerifier requires an RS256 credential signed by a key in the
// provider's published key set. Audience is intentionally not verified:
// the provider issues project-scoped audiences this API does not track.
type StrictVerifier struct {
	keys KeySource
}

// NewStrictVerifier constructs a verifier over the given key source.
func NewStrictVerifier(keys KeySource) *StrictVerifier {
	return &StrictVerifier{keys: keys}
}

// Verify validates the credential and extracts the subject and email claims.
func (v *StrictVerifier) Verify(ctx context.Context, credential string) (model.Identity, error) {
	if credential == "" {
		return model.Identity{}, errs.ErrUnauthorized
	}

	kid, err := unverifiedKeyID(credential)
	if err != nil {
		return model.Identity{}, errs.ErrUnauthorized
	}

	ks, ok := v.keys.Get(ctx)
	if !ok {
		return model.Identity{}, errs.ErrUnavailable
	}
	key := ks.ByID(kid)
	if key == nil {
		return model.Identity{}, errs.ErrUnauthorized
	}
	pub, err := key.RSAPublicKey()
	if err != nil {
		return model.Identity{}, errs.ErrUnauthorized
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(credential, claims, func(*jwt.Token) (any, error) {
		return pub, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil || !parsed.Valid {
		return model.Identity{}, errs.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return model.Identity{}, errs.ErrUnauthorized
	}
	email, _ := claims["email"].(string)
	return model.Identity{UserID: sub, Email: email}, nil
}

// unverifiedKeyID extracts the kid header without checking the signature.
func unverifiedKeyID(credential string) (string, error) {
	tok, _, err := jwt.NewParser().ParseUnverified(credential, jwt.MapClaims{})
	if err != nil {
		return "", err
	}
	kid, ok := tok.Header["kid"].(string)
	if !ok || kid == "" {
		return "", errors.New("missing kid header")
	}
	return kid, nil
}

// PermissiveVerifier maps every verification failure to MockIdentity,
// including a missing credential and an unreachable key set. A valid
// credential still resolves to its real identity. Selected once at
// startup when no production identity provider is configured; never
// use it outside local development.
type PermissiveVerifier struct {
	strict *StrictVerifier
}

// NewPermissiveVerifier wraps a strict verifier with the development fallback.
func NewPermissiveVerifier(strict *StrictVerifier) *PermissiveVerifier {
	return &PermissiveVerifier{strict: strict}
}

// Verify resolves the credential, falling back to MockIdentity on any failure.
func (v *PermissiveVerifier) Verify(ctx context.Context, credential string) (model.Identity, error) {
	ident, err := v.strict.Verify(ctx, credential)
	if err != nil {
		return MockIdentity, nil
	}
	return ident, nil
}

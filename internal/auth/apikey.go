// Package auth authenticates admin API requests via HMAC-SHA256 hashed keys.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/go-faster/errors"
)

// ErrUnauthorized is returned for any failed key verification. The cause is
// deliberately not distinguished to callers.
var ErrUnauthorized = errors.New("unauthorized")

// KeyInfo holds the identity data for a stored API key.
type KeyInfo struct {
	ID      string
	KeyHash string
	Name    string
}

// Repository provides lookup of API keys by their HMAC-SHA256 hash.
type Repository interface {
	FindByHash(ctx context.Context, hash string) (*KeyInfo, error)
}

// HashKey computes the hex HMAC-SHA256 of key under pepper. The seeder and
// the verifier must agree on this exact derivation.
func HashKey(pepper []byte, key string) string {
	mac := hmac.New(sha256.New, pepper)
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verifier checks presented API keys against the repository.
type Verifier struct {
	keys   Repository
	pepper []byte
}

// NewVerifier creates a Verifier with the given repository and HMAC pepper.
func NewVerifier(keys Repository, pepper []byte) *Verifier {
	return &Verifier{keys: keys, pepper: pepper}
}

// Verify authenticates a presented key. It computes the peppered hash, looks
// it up, and compares in constant time; the stored hash could differ from the
// computed one if the repository returns a stale or wrong row.
func (v *Verifier) Verify(ctx context.Context, key string) (*KeyInfo, error) {
	mac := hmac.New(sha256.New, v.pepper)
	mac.Write([]byte(key))
	computed := mac.Sum(nil)

	info, err := v.keys.FindByHash(ctx, hex.EncodeToString(computed))
	if err != nil {
		return nil, ErrUnauthorized
	}

	stored, err := hex.DecodeString(info.KeyHash)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if subtle.ConstantTimeCompare(computed, stored) != 1 {
		return nil, ErrUnauthorized
	}
	return info, nil
}

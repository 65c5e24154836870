package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockKeyRepo struct {
	byHash map[string]*KeyInfo
}

func (m *mockKeyRepo) FindByHash(_ context.Context, hash string) (*KeyInfo, error) {
	info, ok := m.byHash[hash]
	if !ok {
		return nil, ErrUnauthorized
	}
	return info, nil
}

func TestVerify(t *testing.T) {
	pepper := []byte("test-pepper")
	hash := HashKey(pepper, "secret-key")
	repo := &mockKeyRepo{byHash: map[string]*KeyInfo{
		hash: {ID: "k1", KeyHash: hash, Name: "admin"},
	}}
	v := NewVerifier(repo, pepper)

	info, err := v.Verify(context.Background(), "secret-key")
	require.NoError(t, err)
	assert.Equal(t, "admin", info.Name)
}

func TestVerify_WrongKey(t *testing.T) {
	pepper := []byte("test-pepper")
	hash := HashKey(pepper, "secret-key")
	repo := &mockKeyRepo{byHash: map[string]*KeyInfo{
		hash: {ID: "k1", KeyHash: hash, Name: "admin"},
	}}
	v := NewVerifier(repo, pepper)

	_, err := v.Verify(context.Background(), "not-the-key")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerify_WrongPepper(t *testing.T) {
	hash := HashKey([]byte("pepper-a"), "secret-key")
	repo := &mockKeyRepo{byHash: map[string]*KeyInfo{
		hash: {ID: "k1", KeyHash: hash, Name: "admin"},
	}}
	v := NewVerifier(repo, []byte("pepper-b"))

	_, err := v.Verify(context.Background(), "secret-key")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerify_CorruptStoredHash(t *testing.T) {
	pepper := []byte("test-pepper")
	hash := HashKey(pepper, "secret-key")
	repo := &mockKeyRepo{byHash: map[string]*KeyInfo{
		hash: {ID: "k1", KeyHash: "zz-not-hex", Name: "admin"},
	}}
	v := NewVerifier(repo, pepper)

	_, err := v.Verify(context.Background(), "secret-key")
	require.ErrorIs(t, err, ErrUnauthorized)
}

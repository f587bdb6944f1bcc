package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "profilehub/internal/errors"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("never stores the plaintext", func(t *testing.T) {
		hash, err := hasher.Hash("Secr3t!")
		require.NoError(t, err)
		assert.NotEqual(t, "Secr3t!", hash)
		assert.NotContains(t, hash, "Secr3t!")
		assert.True(t, strings.HasPrefix(hash, "$2a$"))
	})

	t.Run("same password produces different hashes", func(t *testing.T) {
		hash1, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		hash2, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("rejects passwords past the bcrypt limit", func(t *testing.T) {
		_, err := hasher.Hash(strings.Repeat("x", 73))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestBcryptHasher_Verify(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correctpassword")
	require.NoError(t, err)

	t.Run("correct password verifies", func(t *testing.T) {
		ok, err := hasher.Verify("correctpassword", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("other passwords fail without error", func(t *testing.T) {
		for _, candidate := range []string{"wrongpassword", "Correctpassword", "", "correctpassword "} {
			ok, err := hasher.Verify(candidate, hash)
			require.NoError(t, err)
			assert.False(t, ok, candidate)
		}
	})

	t.Run("malformed hash is an error", func(t *testing.T) {
		ok, err := hasher.Verify("correctpassword", "not-a-bcrypt-hash")
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(0).cost)
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(99).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}

package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(4)

	t.Run("hash and verify", func(t *testing.T) {
		hash, err := hasher.Hash("s3cret")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret", hash)

		assert.NoError(t, hasher.Verify(hash, "s3cret"))
		assert.ErrorIs(t, hasher.Verify(hash, "wrong"), ErrMismatch)
	})

	t.Run("legacy plaintext rows", func(t *testing.T) {
		assert.NoError(t, hasher.Verify("x", "x"))
		assert.ErrorIs(t, hasher.Verify("x", "y"), ErrMismatch)
	})

	t.Run("empty stored value never matches", func(t *testing.T) {
		assert.ErrorIs(t, hasher.Verify("", ""), ErrMismatch)
	})

	t.Run("empty password not hashable", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.Error(t, err)
	})
}

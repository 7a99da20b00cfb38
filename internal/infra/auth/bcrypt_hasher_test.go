package auth

import (
	"testing"

	"lunchorder/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher(t *testing.T) *bcryptHasher {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4, PasswordMinLength: 8}}

	hasher, ok := NewBcryptHasher(cfg).(*bcryptHasher)
	require.True(t, ok)

	return hasher
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher(t)

	hash, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, hasher.Check("correct horse battery", hash))
	assert.False(t, hasher.Check("wrong password", hash))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := newTestHasher(t)

	assert.Error(t, hasher.ValidatePasswordStrength("short"))
	assert.NoError(t, hasher.ValidatePasswordStrength("long enough password"))

	tooLong := make([]byte, 80)
	for i := range tooLong {
		tooLong[i] = 'a'
	}
	assert.Error(t, hasher.ValidatePasswordStrength(string(tooLong)))
}

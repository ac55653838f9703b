package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("dog")
	require.NoError(t, err)
	assert.NotEqual(t, "dog", hash)

	assert.True(t, CheckPassword(hash, "dog"))
	assert.False(t, CheckPassword(hash, "cat"))
	assert.False(t, CheckPassword("", "dog"))
}

func TestHashPasswordEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

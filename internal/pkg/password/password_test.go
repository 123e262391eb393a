package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "password", hash)

	assert.True(t, Verify("password", hash))
	assert.False(t, Verify("Password", hash))
	assert.False(t, Verify("", hash))
}

func TestHashesAreSalted(t *testing.T) {
	a, err := Hash("password")
	require.NoError(t, err)
	b, err := Hash("password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

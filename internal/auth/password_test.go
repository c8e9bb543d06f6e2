package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("Pw12345A")
	require.NoError(t, err)

	assert.True(t, hasher.Verify("Pw12345A", hash))
	assert.False(t, hasher.Verify("Pw12345B", hash))
}

func TestPasswordHashesAreSalted(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("Pw12345A")
	require.NoError(t, err)
	second, err := hasher.Hash("Pw12345A")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPasswordHasherCostFallback(t *testing.T) {
	hasher := NewPasswordHasher(99)

	hash, err := hasher.Hash("Pw12345A")
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

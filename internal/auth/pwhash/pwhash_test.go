package pwhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndValidate(t *testing.T) {
	ph, err := New(16, 10000)
	require.NoError(t, err)

	hash, err := ph.HashPassword("s3cret")
	require.NoError(t, err)

	assert.NoError(t, ph.Validate("s3cret", hash))
	assert.Error(t, ph.Validate("wrong", hash))
	assert.Error(t, ph.Validate("s3cret", "garbage"))
}

func TestHashesAreSalted(t *testing.T) {
	ph, err := New(16, 10000)
	require.NoError(t, err)

	h1, err := ph.HashPassword("same")
	require.NoError(t, err)
	h2, err := ph.HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestNewRejectsWeakParams(t *testing.T) {
	_, err := New(4, 10000)
	assert.Error(t, err)

	_, err = New(16, 10)
	assert.Error(t, err)
}

package util

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 66.67, Round(200.0/3.0, 2))
	assert.Equal(t, 33.3, Round(100.0/3.0, 1))
	assert.Equal(t, 50.0, Round(50, 2))
	assert.Equal(t, 3.0, Round(2.5, 0))
	assert.Equal(t, 2.0, Round(2.4, -1))
}

func TestNewULID(t *testing.T) {
	first := NewULID()
	second := NewULID()

	_, err := ulid.Parse(first)
	require.NoError(t, err)
	assert.Len(t, first, 26)
	assert.NotEqual(t, first, second)
	assert.Less(t, first, second, "monotonic within the same process")
}

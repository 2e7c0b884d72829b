package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCache_Evicts(t *testing.T) {
	c, err := New[int](2)
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("b", 2)
	_, _ = c.Get("a")
	c.Put("c", 3)

	assert.Equal(t, 2, c.Len())
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestNew_RejectsZeroSize(t *testing.T) {
	_, err := New[string](0)
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	assert.NotEqual(t, Key("a"), Key("a", ""))
	assert.Len(t, Key(), 64)
}

package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientAddr(t *testing.T) {
	c, err := NewClient("localhost:6379")
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, "localhost:6379", c.Options().Addr)
}

func TestNewClientURL(t *testing.T) {
	c, err := NewClient("redis://:secret@cache.internal:6380/2")
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "cache.internal:6380", c.Options().Addr)
	assert.Equal(t, "secret", c.Options().Password)
	assert.Equal(t, 2, c.Options().DB)
}

func TestNewClientBadURL(t *testing.T) {
	_, err := NewClient("redis://localhost:6379/notanumber")
	assert.Error(t, err)
}

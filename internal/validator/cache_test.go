package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salaryengine/internal/domain"
	"salaryengine/internal/validator"
)

func TestCache_GetSet(t *testing.T) {
	c := validator.NewCache(10)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", nil)
	res, ok := c.Get("a")
	assert.True(t, ok)
	assert.Nil(t, res)

	e := &domain.ValidationError{Field: "f", Message: "bad"}
	c.Set("b", e)
	e.Message = "mutated"
	res, ok = c.Get("b")
	require.True(t, ok)
	assert.Equal(t, "bad", res.Message)

	stats := c.Stats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, 2, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
}

func TestCache_ClearsWhenFull(t *testing.T) {
	c := validator.NewCache(2)
	c.Set("a", nil)
	c.Set("b", nil)
	c.Set("a", nil)
	assert.Equal(t, 2, c.Stats().Size)

	c.Set("c", nil)
	assert.Equal(t, 1, c.Stats().Size)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	c := validator.NewCache(0)
	c.Set("a", nil)
	c.Clear()
	assert.Equal(t, 0, c.Stats().Size)
}

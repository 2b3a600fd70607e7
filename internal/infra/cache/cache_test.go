package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop_AlwaysMisses(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "countries", []string{"India"}))

	var dest []string
	found, err := c.Get(ctx, "countries", &dest)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, dest)

	assert.NoError(t, c.InvalidatePrefix(ctx, "geo"))
}

func TestRedis_KeyNamespace(t *testing.T) {
	c := &Redis{namespace: "servemee"}
	assert.Equal(t, "servemee:geo:countries", c.key("geo:countries"))
}

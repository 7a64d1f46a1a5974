package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func takenSet(taken ...string) func(context.Context, string) (bool, error) {
	set := map[string]bool{}
	for _, t := range taken {
		set[t] = true
	}
	return func(_ context.Context, candidate string) (bool, error) {
		return set[candidate], nil
	}
}

func TestUniqueSlug(t *testing.T) {
	got, err := UniqueSlug(context.Background(), "Pottery Wheel Throwing", takenSet())
	require.NoError(t, err)
	assert.Equal(t, "pottery-wheel-throwing", got)
}

func TestUniqueSlugAppendsSuffix(t *testing.T) {
	got, err := UniqueSlug(context.Background(), "Pottery", takenSet("pottery"))
	require.NoError(t, err)
	assert.Equal(t, "pottery-2", got)

	got, err = UniqueSlug(context.Background(), "Pottery", takenSet("pottery", "pottery-2", "pottery-3"))
	require.NoError(t, err)
	assert.Equal(t, "pottery-4", got)
}

func TestUniqueSlugEmptyName(t *testing.T) {
	got, err := UniqueSlug(context.Background(), "!!!", takenSet())
	require.NoError(t, err)
	assert.Equal(t, "category", got)
}

func TestUniqueSlugExhausted(t *testing.T) {
	_, err := UniqueSlug(context.Background(), "Pottery", func(context.Context, string) (bool, error) {
		return true, nil
	})
	assert.ErrorIs(t, err, ErrSlugExhausted)
}

func TestUniqueSlugPropagatesProbeError(t *testing.T) {
	boom := errors.New("db down")
	_, err := UniqueSlug(context.Background(), "Pottery", func(context.Context, string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}

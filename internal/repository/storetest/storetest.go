// Package storetest holds the behaviour every repository.Store must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackmap/internal/domain"
	"stackmap/internal/repository"
)

// Run exercises a store created fresh for every subtest
func Run(t *testing.T, newStore func(t *testing.T) repository.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing key returns ErrNotFound", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("put then get round-trips", func(t *testing.T) {
		s := newStore(t)
		value := []byte(`{"shop":{"x":1.5,"y":-2}}`)

		require.NoError(t, s.Put(ctx, repository.PositionsKey(domain.LayoutCube), value))

		got, err := s.Get(ctx, repository.PositionsKey(domain.LayoutCube))
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("put overwrites", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Put(ctx, "k", []byte("first")))
		require.NoError(t, s.Put(ctx, "k", []byte("second")))

		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)
		cube := repository.PositionsKey(domain.LayoutCube)
		lanes := repository.PositionsKey(domain.LayoutLanes)

		require.NoError(t, s.Put(ctx, cube, []byte("cube")))
		require.NoError(t, s.Put(ctx, lanes, []byte("lanes")))
		require.NoError(t, s.Delete(ctx, cube))

		_, err := s.Get(ctx, cube)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		got, err := s.Get(ctx, lanes)
		require.NoError(t, err)
		assert.Equal(t, "lanes", string(got))
	})

	t.Run("delete missing key is not an error", func(t *testing.T) {
		s := newStore(t)

		assert.NoError(t, s.Delete(ctx, "missing"))
	})

	t.Run("stores arbitrary bytes", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Put(ctx, repository.ThemeKey, []byte("not json {")))

		got, err := s.Get(ctx, repository.ThemeKey)
		require.NoError(t, err)
		assert.Equal(t, "not json {", string(got))
	})
}

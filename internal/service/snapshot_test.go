package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tusshar172004/Code-Pod/internal/service"
)

func TestSnapshotStore(t *testing.T) {
	t.Run("absent until first write", func(t *testing.T) {
		store := service.NewSnapshotStore()

		_, ok := store.Get("r1")
		assert.False(t, ok)
	})

	t.Run("last writer wins", func(t *testing.T) {
		store := service.NewSnapshotStore()
		store.Set("r1", "X")
		store.Set("r1", "Y")

		code, ok := store.Get("r1")
		assert.True(t, ok)
		assert.Equal(t, "Y", code)
	})

	t.Run("idempotent under repeated identical writes", func(t *testing.T) {
		store := service.NewSnapshotStore()
		store.Set("r1", "Y")
		store.Set("r1", "Y")

		code, _ := store.Get("r1")
		assert.Equal(t, "Y", code)
	})

	t.Run("empty string is a valid snapshot", func(t *testing.T) {
		store := service.NewSnapshotStore()
		store.Set("r1", "")

		code, ok := store.Get("r1")
		assert.True(t, ok)
		assert.Empty(t, code)
	})

	t.Run("evict removes the snapshot", func(t *testing.T) {
		store := service.NewSnapshotStore()
		store.Set("r1", "X")
		store.Evict("r1")

		_, ok := store.Get("r1")
		assert.False(t, ok)
	})

	t.Run("rooms are independent", func(t *testing.T) {
		store := service.NewSnapshotStore()
		store.Set("r1", "X")
		store.Set("r2", "Y")

		c1, _ := store.Get("r1")
		c2, _ := store.Get("r2")
		assert.Equal(t, "X", c1)
		assert.Equal(t, "Y", c2)
	})
}

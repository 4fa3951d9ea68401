package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tusshar172004/Code-Pod/internal/service"
)

func TestMembershipIndex(t *testing.T) {
	t.Run("membership is order independent", func(t *testing.T) {
		orders := [][]string{
			{"a", "b", "c"},
			{"c", "a", "b"},
			{"b", "c", "a"},
		}
		for _, order := range orders {
			idx := service.NewMembershipIndex()
			for _, id := range order {
				idx.Join("r1", id)
			}
			assert.ElementsMatch(t, []string{"a", "b", "c"}, idx.Members("r1"))
		}
	})

	t.Run("join is idempotent", func(t *testing.T) {
		idx := service.NewMembershipIndex()
		idx.Join("r1", "a")
		idx.Join("r1", "a")

		assert.Equal(t, []string{"a"}, idx.Members("r1"))
	})

	t.Run("members returns join order", func(t *testing.T) {
		idx := service.NewMembershipIndex()
		idx.Join("r1", "a")
		idx.Join("r1", "b")
		idx.Join("r1", "c")

		assert.Equal(t, []string{"a", "b", "c"}, idx.Members("r1"))
	})

	t.Run("members returns a copy", func(t *testing.T) {
		idx := service.NewMembershipIndex()
		idx.Join("r1", "a")
		idx.Join("r1", "b")

		snapshot := idx.Members("r1")
		idx.Leave("r1", "a")

		assert.Equal(t, []string{"a", "b"}, snapshot)
	})

	t.Run("leave evicts empty room", func(t *testing.T) {
		idx := service.NewMembershipIndex()
		idx.Join("r1", "a")
		idx.Join("r1", "b")

		assert.False(t, idx.Leave("r1", "a"))
		assert.True(t, idx.Leave("r1", "b"))
		assert.Empty(t, idx.Members("r1"))
		assert.Empty(t, idx.Rooms())
	})

	t.Run("leave unknown room or member is a no-op", func(t *testing.T) {
		idx := service.NewMembershipIndex()
		idx.Join("r1", "a")

		assert.False(t, idx.Leave("r2", "a"))
		assert.False(t, idx.Leave("r1", "b"))
		assert.Equal(t, []string{"a"}, idx.Members("r1"))
	})

	t.Run("rooms lists only occupied rooms", func(t *testing.T) {
		idx := service.NewMembershipIndex()
		idx.Join("r1", "a")
		idx.Join("r2", "b")
		idx.Leave("r2", "b")

		assert.Equal(t, []string{"r1"}, idx.Rooms())
	})
}

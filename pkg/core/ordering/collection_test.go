package ordering

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
)

func links(specs ...domain.Link) Collection[domain.Link] {
	return New(specs)
}

func ids(c Collection[domain.Link]) []int64 {
	out := make([]int64, 0, c.Len())
	for _, l := range c.Items() {
		out = append(out, l.ID)
	}
	return out
}

func positions(c Collection[domain.Link]) []int {
	out := make([]int, 0, c.Len())
	for _, l := range c.Items() {
		out = append(out, l.Position)
	}
	return out
}

func TestAppend(t *testing.T) {
	t.Run("empty collection starts at zero", func(t *testing.T) {
		c, placed := New[domain.Link](nil).Append(domain.Link{ID: 1})
		assert.Equal(t, 0, placed.Position)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("freed positions are not reused", func(t *testing.T) {
		c := links(
			domain.Link{ID: 1, Position: 0},
			domain.Link{ID: 2, Position: 4},
		)
		_, placed := c.Append(domain.Link{ID: 3})
		assert.Equal(t, 5, placed.Position)
	})

	t.Run("receiver is unchanged", func(t *testing.T) {
		c := links(domain.Link{ID: 1, Position: 0})
		_, _ = c.Append(domain.Link{ID: 2})
		assert.Equal(t, 1, c.Len())
	})
}

func TestMove(t *testing.T) {
	base := links(
		domain.Link{ID: 10, Position: 0},
		domain.Link{ID: 11, Position: 1},
		domain.Link{ID: 12, Position: 2},
		domain.Link{ID: 13, Position: 3},
	)

	tests := []struct {
		name     string
		id       int64
		from, to int
		want     []int64
	}{
		{name: "first to last", id: 10, from: 0, to: 3, want: []int64{11, 12, 13, 10}},
		{name: "last to first", id: 13, from: 3, to: 0, want: []int64{13, 10, 11, 12}},
		{name: "middle down", id: 11, from: 1, to: 2, want: []int64{10, 12, 11, 13}},
		{name: "same index", id: 12, from: 2, to: 2, want: []int64{10, 11, 12, 13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moved, err := base.Move(tt.id, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(moved))
			assert.Equal(t, []int{0, 1, 2, 3}, positions(moved))
			assert.True(t, moved.Contiguous())
		})
	}
}

func TestMoveIsIdempotent(t *testing.T) {
	base := links(
		domain.Link{ID: 1, Position: 0},
		domain.Link{ID: 2, Position: 1},
		domain.Link{ID: 3, Position: 2},
	)

	once, err := base.Move(1, 0, 2)
	require.NoError(t, err)
	twice, err := once.Move(1, 0, 2)
	require.NoError(t, err)

	assert.Equal(t, ids(once), ids(twice))
	assert.Equal(t, once.Positions(), twice.Positions())
}

func TestMoveInvalidIndex(t *testing.T) {
	base := links(
		domain.Link{ID: 1, Position: 0},
		domain.Link{ID: 2, Position: 5},
	)

	for _, tc := range []struct{ from, to int }{{-1, 0}, {0, 2}, {2, 0}, {0, -3}} {
		moved, err := base.Move(1, tc.from, tc.to)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidIndex))

		var idxErr *domain.IndexError
		require.ErrorAs(t, err, &idxErr)
		assert.Equal(t, 2, idxErr.Len)

		// no partial reindex
		assert.Equal(t, []int{0, 5}, positions(moved))
	}

	_, err := base.Move(99, 0, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidIndex)
}

func TestContiguityAfterMixedOperations(t *testing.T) {
	c := New[domain.Link](nil)
	for id := int64(1); id <= 5; id++ {
		c, _ = c.Append(domain.Link{ID: id})
	}
	var err error
	for _, step := range []struct {
		id       int64
		from, to int
	}{{3, 2, 0}, {5, 4, 1}, {1, 2, 4}} {
		c, err = c.Move(step.id, step.from, step.to)
		require.NoError(t, err)
	}
	c, _ = c.Append(domain.Link{ID: 6})

	got := positions(c)
	slices.Sort(got)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, got)
}

func TestActiveInOrder(t *testing.T) {
	c := links(
		domain.Link{ID: 1, Position: 2, Active: true},
		domain.Link{ID: 2, Position: 0, Active: false},
		domain.Link{ID: 3, Position: 1, Active: true},
		domain.Link{ID: 4, Position: 1, Active: true},
	)

	var first []int64
	for l := range c.ActiveInOrder() {
		assert.True(t, l.Active)
		first = append(first, l.ID)
	}
	assert.Equal(t, []int64{3, 4, 1}, first)

	// restartable
	var second []int64
	for l := range c.ActiveInOrder() {
		second = append(second, l.ID)
	}
	assert.Equal(t, first, second)

	// early stop
	for l := range c.ActiveInOrder() {
		assert.Equal(t, int64(3), l.ID)
		break
	}
}

func TestConsistentAndReindex(t *testing.T) {
	c := links(
		domain.Link{ID: 1, Position: 0},
		domain.Link{ID: 2, Position: 0},
		domain.Link{ID: 3, Position: 7},
	)
	assert.False(t, c.Consistent())

	fixed := c.Reindex()
	assert.True(t, fixed.Consistent())
	assert.Equal(t, map[int64]int{1: 0, 2: 1, 3: 2}, fixed.Positions())
}

func TestBlocksShareTheOrderer(t *testing.T) {
	c := New([]domain.ContentBlock{
		{ID: 1, Position: 1, Active: true},
		{ID: 2, Position: 0, Active: true},
	})
	moved, err := c.Move(1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 0, 2: 1}, moved.Positions())
}

// Package ordering keeps per-owner collections of links and content blocks in a
// dense total order. Positions are always recomputed from slice indexes, never
// incremented in place, so every mutation leaves positions equal to 0..n-1.
package ordering

import (
	"iter"
	"slices"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
)

// Item is anything that can live in a Collection. Repositioned returns a copy
// of the item carrying the new position.
type Item[T any] interface {
	ItemID() int64
	Ordinal() int
	Enabled() bool
	Repositioned(position int) T
}

// Collection is an immutable ordered view over items. Mutating methods return
// a new Collection and leave the receiver untouched.
type Collection[T Item[T]] struct {
	items []T
}

// New sorts items by position. Items with equal positions keep their input order.
func New[T Item[T]](items []T) Collection[T] {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return a.Ordinal() - b.Ordinal()
	})
	return Collection[T]{items: sorted}
}

func (c Collection[T]) Len() int { return len(c.items) }

// Items returns a copy of the items in order.
func (c Collection[T]) Items() []T { return slices.Clone(c.items) }

// IndexOf returns the index of the item with the given id, or -1.
func (c Collection[T]) IndexOf(id int64) int {
	return slices.IndexFunc(c.items, func(item T) bool { return item.ItemID() == id })
}

// NextPosition is one past the highest position in use, or 0 when empty.
// Freed positions are never reused.
func (c Collection[T]) NextPosition() int {
	if len(c.items) == 0 {
		return 0
	}
	highest := c.items[0].Ordinal()
	for _, item := range c.items[1:] {
		highest = max(highest, item.Ordinal())
	}
	return highest + 1
}

// Append places item after every existing item and returns it with its assigned position.
func (c Collection[T]) Append(item T) (Collection[T], T) {
	placed := item.Repositioned(c.NextPosition())
	items := append(slices.Clone(c.items), placed)
	return Collection[T]{items: items}, placed
}

// Move relocates the item identified by id so that it ends up at index to, then
// reindexes the whole collection. from is the index the caller saw the item at.
// Moving an item that already sits at to only reindexes, so repeating a move is a no-op.
// Out-of-range indexes return an *domain.IndexError and leave c unchanged.
func (c Collection[T]) Move(id int64, from, to int) (Collection[T], error) {
	n := len(c.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return c, &domain.IndexError{From: from, To: to, Len: n}
	}
	current := c.IndexOf(id)
	if current < 0 {
		return c, &domain.IndexError{From: from, To: to, Len: n}
	}

	items := slices.Clone(c.items)
	if current != to {
		item := items[current]
		items = slices.Delete(items, current, current+1)
		items = slices.Insert(items, to, item)
	}
	return Collection[T]{items: items}.Reindex(), nil
}

// Remove drops the item with the given id. Remaining positions are left as they are.
func (c Collection[T]) Remove(id int64) (Collection[T], bool) {
	idx := c.IndexOf(id)
	if idx < 0 {
		return c, false
	}
	return Collection[T]{items: slices.Delete(slices.Clone(c.items), idx, idx+1)}, true
}

// Reindex assigns every item its index as position.
func (c Collection[T]) Reindex() Collection[T] {
	items := make([]T, len(c.items))
	for i, item := range c.items {
		items[i] = item.Repositioned(i)
	}
	return Collection[T]{items: items}
}

// Consistent reports whether no two items share a position.
func (c Collection[T]) Consistent() bool {
	for i := 1; i < len(c.items); i++ {
		if c.items[i].Ordinal() == c.items[i-1].Ordinal() {
			return false
		}
	}
	return true
}

// Contiguous reports whether positions are exactly 0..n-1.
func (c Collection[T]) Contiguous() bool {
	for i, item := range c.items {
		if item.Ordinal() != i {
			return false
		}
	}
	return true
}

// Positions maps item id to position, ready for a batched write.
func (c Collection[T]) Positions() map[int64]int {
	out := make(map[int64]int, len(c.items))
	for _, item := range c.items {
		out[item.ItemID()] = item.Ordinal()
	}
	return out
}

// ActiveInOrder yields enabled items by ascending position. The sequence is
// lazy and can be ranged over any number of times.
func (c Collection[T]) ActiveInOrder() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range c.items {
			if !item.Enabled() {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

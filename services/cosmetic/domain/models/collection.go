package models

import "iter"

// Collection is the ordered result of one successful catalog fetch.
// It is replaced wholesale on refresh and never mutated in place.
type Collection struct {
	items []Cosmetic
	index map[string]int
}

// NewCollection copies items into a new Collection. When ids repeat, the
// first occurrence wins the id index; order is preserved as given.
func NewCollection(items []Cosmetic) *Collection {
	c := &Collection{
		items: make([]Cosmetic, len(items)),
		index: make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i, item := range c.items {
		if _, dup := c.index[item.ID]; !dup {
			c.index[item.ID] = i
		}
	}
	return c
}

// Len returns the number of cosmetics. A nil Collection is empty.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// At returns the i-th cosmetic.
func (c *Collection) At(i int) Cosmetic {
	return c.items[i]
}

// Items returns a copy of the cosmetics in fetch order.
func (c *Collection) Items() []Cosmetic {
	if c == nil {
		return nil
	}
	out := make([]Cosmetic, len(c.items))
	copy(out, c.items)
	return out
}

// All iterates the cosmetics in fetch order without copying the slice.
func (c *Collection) All() iter.Seq2[int, Cosmetic] {
	return func(yield func(int, Cosmetic) bool) {
		if c == nil {
			return
		}
		for i, item := range c.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Find looks a cosmetic up by id.
func (c *Collection) Find(id string) (Cosmetic, bool) {
	if c == nil {
		return Cosmetic{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Cosmetic{}, false
	}
	return c.items[i], true
}

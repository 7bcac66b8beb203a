package session

import "sort"

// Cart maps a menu item id to its quantity.
type Cart map[int64]int

// Add increments the quantity of id by one.
func (c Cart) Add(id int64) {
	c[id]++
}

func (c Cart) Clear() {
	for id := range c {
		delete(c, id)
	}
}

func (c Cart) IsEmpty() bool { return len(c) == 0 }

func (c Cart) Len() int { return len(c) }

// IDs returns item ids in ascending order.
func (c Cart) IDs() []int64 {
	ids := make([]int64, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

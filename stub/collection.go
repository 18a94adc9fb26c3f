package stub

import (
	"encoding/json"
	"sort"
	"sync"
)

// collection is an in-memory, id-keyed resource table backing one stub
// endpoint.
type collection[T any] struct {
	mu     sync.Mutex
	items  map[int]T
	nextID int
	setID  func(item *T, id int)
	getID  func(item T) int
}

func newCollection[T any](getID func(T) int, setID func(*T, int)) *collection[T] {
	return &collection[T]{
		items:  map[int]T{},
		nextID: 1,
		setID:  setID,
		getID:  getID,
	}
}

func (c *collection[T]) list() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return c.getID(out[i]) < c.getID(out[j]) })
	return out
}

func (c *collection[T]) get(id int) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	return item, ok
}

func (c *collection[T]) add(item T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.setID(&item, id)
	c.items[id] = item
	return item
}

func (c *collection[T]) replace(id int, item T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		var zero T
		return zero, false
	}
	c.setID(&item, id)
	c.items[id] = item
	return item, true
}

// merge applies a JSON patch document over the stored item, DRF
// partial-update style.
func (c *collection[T]) merge(id int, patch []byte) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false, nil
	}
	if err := json.Unmarshal(patch, &item); err != nil {
		var zero T
		return zero, true, err
	}
	c.setID(&item, id)
	c.items[id] = item
	return item, true, nil
}

func (c *collection[T]) remove(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}

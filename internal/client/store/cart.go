package store

import (
	"sync"

	"github.com/kpfoody/foody/internal/client/models"
)

// CartStore owns the in-progress order: an insertion-ordered sequence of
// cart lines. It is purely local — no operation here ever calls a gateway —
// and every operation runs synchronously. The cart survives session changes;
// it empties only on an explicit Clear.
type CartStore struct {
	mu    sync.Mutex
	lines []models.CartLine
	subs  []func([]models.CartLine)
}

// NewCartStore returns an empty cart.
func NewCartStore() *CartStore {
	return &CartStore{}
}

// Subscribe registers fn to be called with a snapshot after every mutation.
// Callbacks run synchronously and must not call back into the store.
func (c *CartStore) Subscribe(fn func([]models.CartLine)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// AddItem merges the product into the cart. If a line with the same product
// and customization set already exists its quantity grows by one and the
// existing line is otherwise untouched; a new combination appends a new line
// with quantity 1, preserving first-seen order.
func (c *CartStore) AddItem(productID, name string, unitPrice float64, imageURL string, customizations []models.Customization) {
	key := models.LineKey(productID, customizations)

	c.mu.Lock()
	found := false
	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		c.lines = append(c.lines, models.CartLine{
			Key:            key,
			ProductID:      productID,
			Name:           name,
			UnitPrice:      unitPrice,
			ImageURL:       imageURL,
			Customizations: append([]models.Customization(nil), customizations...),
			Quantity:       1,
		})
	}
	c.notifyLocked()
}

// RemoveItem deletes the line with the given key. Removing an absent key is
// a no-op, not an error.
func (c *CartStore) RemoveItem(key string) {
	c.mu.Lock()
	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
	c.notifyLocked()
}

// UpdateQuantity sets the quantity of the line with the given key. A
// quantity of zero or less removes the line. Unknown keys are ignored.
func (c *CartStore) UpdateQuantity(key string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(key)
		return
	}
	c.mu.Lock()
	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines[i].Quantity = quantity
			break
		}
	}
	c.notifyLocked()
}

// Clear empties the cart unconditionally.
func (c *CartStore) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.notifyLocked()
}

// Items returns a snapshot copy of the cart lines in display order.
func (c *CartStore) Items() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshotLines(c.lines)
}

// TotalItems is the summed quantity across all lines (an item count, not a
// line count).
func (c *CartStore) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the billable total: quantity times unit price plus
// customization prices, summed over all lines.
func (c *CartStore) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, l := range c.lines {
		total += l.Total()
	}
	return total
}

// notifyLocked publishes a snapshot to subscribers and releases the lock.
// Callbacks run outside the lock so they can read totals.
func (c *CartStore) notifyLocked() {
	snapshot := snapshotLines(c.lines)
	subs := make([]func([]models.CartLine), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

func snapshotLines(lines []models.CartLine) []models.CartLine {
	out := make([]models.CartLine, len(lines))
	copy(out, lines)
	for i := range out {
		out[i].Customizations = append([]models.Customization(nil), out[i].Customizations...)
	}
	return out
}

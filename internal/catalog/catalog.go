// Package catalog holds the machine's item slots and their price/amount
// invariants.
package catalog

import (
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/fairyhunter13/vending-machine-service/internal/model"
)

var (
	// ErrItemNotFound is returned when no item with the given name exists.
	ErrItemNotFound = errors.New("item not found")
	// ErrDuplicateItem is returned when creating an item whose name is taken.
	ErrDuplicateItem = errors.New("item already exists")
	// ErrOutOfStock is returned when buying an item whose amount is zero.
	ErrOutOfStock = errors.New("item out of stock")
)

// Catalog maps item names to items, preserving insertion order. Like the coin
// inventory it carries no lock; the dispatcher's aggregate lock covers it.
type Catalog struct {
	items map[string]*model.Item
	order []string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{items: make(map[string]*model.Item)}
}

// Create adds a new item with a generated id.
func (c *Catalog) Create(name string, price model.Cents, amount int) (model.Item, error) {
	if err := model.ValidatePrice(price); err != nil {
		return model.Item{}, err
	}
	if err := model.ValidateAmount(amount); err != nil {
		return model.Item{}, err
	}
	if _, ok := c.items[name]; ok {
		return model.Item{}, fmt.Errorf("%w: %s", ErrDuplicateItem, name)
	}
	it := &model.Item{ID: uuid.NewString(), Name: name, Price: price, Amount: amount}
	c.items[name] = it
	c.order = append(c.order, name)
	return *it, nil
}

// FindByName returns the item with the given name.
func (c *Catalog) FindByName(name string) (model.Item, error) {
	it, ok := c.items[name]
	if !ok {
		return model.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, name)
	}
	return *it, nil
}

// DecrementAmount takes one unit of stock. A zero amount is rejected, never
// clamped.
func (c *Catalog) DecrementAmount(name string) error {
	it, ok := c.items[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, name)
	}
	if it.Amount == 0 {
		return fmt.Errorf("%w: %s", ErrOutOfStock, name)
	}
	it.Amount--
	return nil
}

// UpdatePrice sets the item's price.
func (c *Catalog) UpdatePrice(name string, price model.Cents) (model.Item, error) {
	it, ok := c.items[name]
	if !ok {
		return model.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, name)
	}
	if err := model.ValidatePrice(price); err != nil {
		return model.Item{}, err
	}
	it.Price = price
	return *it, nil
}

// UpdateAmount sets the item's stock count.
func (c *Catalog) UpdateAmount(name string, amount int) (model.Item, error) {
	it, ok := c.items[name]
	if !ok {
		return model.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, name)
	}
	if err := model.ValidateAmount(amount); err != nil {
		return model.Item{}, err
	}
	it.Amount = amount
	return *it, nil
}

// All iterates items in insertion order. The sequence is restartable; callers
// must consume it under the same lock that guards mutation.
func (c *Catalog) All() iter.Seq[model.Item] {
	return func(yield func(model.Item) bool) {
		for _, name := range c.order {
			if !yield(*c.items[name]) {
				return
			}
		}
	}
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.order) }

// Restore replaces the catalog contents with items loaded from a snapshot,
// keeping the given order and ids.
func (c *Catalog) Restore(items []model.Item) error {
	next := New()
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
		if _, ok := next.items[it.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateItem, it.Name)
		}
		cp := it
		next.items[it.Name] = &cp
		next.order = append(next.order, it.Name)
	}
	*c = *next
	return nil
}

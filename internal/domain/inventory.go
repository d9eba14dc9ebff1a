package domain

import (
	"fmt"
	"strings"
)

// InventoryItem represents a single stocked item and its restocking threshold
type InventoryItem struct {
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	ReorderLevel int    `json:"reorder_level"`
}

// NeedsRestock checks if the item is at or below its reorder level
func (i InventoryItem) NeedsRestock() bool {
	return i.Quantity <= i.ReorderLevel
}

// Matches reports whether name refers to this item, ignoring case
func (i InventoryItem) Matches(name string) bool {
	return strings.EqualFold(i.Name, name)
}

// Inventory is the ordered list of items; order is storage order
type Inventory []InventoryItem

// Find returns the index of the item matching name, or -1
func (inv Inventory) Find(name string) int {
	for idx, item := range inv {
		if item.Matches(name) {
			return idx
		}
	}
	return -1
}

// Names returns item names in storage order
func (inv Inventory) Names() []string {
	names := make([]string, 0, len(inv))
	for _, item := range inv {
		names = append(names, item.Name)
	}
	return names
}

// BelowThreshold returns the names of items that need restocking, in storage order
func (inv Inventory) BelowThreshold() []string {
	names := []string{}
	for _, item := range inv {
		if item.NeedsRestock() {
			names = append(names, item.Name)
		}
	}
	return names
}

// Clone returns a copy that can be mutated without touching inv
func (inv Inventory) Clone() Inventory {
	if inv == nil {
		return Inventory{}
	}
	out := make(Inventory, len(inv))
	copy(out, inv)
	return out
}

// DuplicateItemError is returned when an item name is already present
type DuplicateItemError struct {
	Name string
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("item '%s' already exists in the inventory", e.Name)
}

// ItemNotFoundError represents an error when an item is not found
type ItemNotFoundError struct {
	Name string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item '%s' not found in inventory", e.Name)
}

// InsufficientQuantityError is returned when a withdrawal exceeds the stock on hand
type InsufficientQuantityError struct {
	Name      string
	Available int
	Requested int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("insufficient quantity of '%s': have %d, requested %d", e.Name, e.Available, e.Requested)
}

// ParseError describes a malformed row in persisted inventory data
type ParseError struct {
	Line   int
	Row    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed inventory row at line %d (%q): %s", e.Line, e.Row, e.Reason)
}

package repository

import (
	"context"
	"sync"

	"github.com/DaDevFox/task-systems/restock-core/internal/domain"
)

// MemoryInventoryRepository keeps the inventory in memory. Useful for tests
// and dry runs; nothing survives the process.
type MemoryInventoryRepository struct {
	mu        sync.RWMutex
	inventory domain.Inventory
	saves     int
}

// NewMemoryInventoryRepository creates a repository seeded with a copy of initial
func NewMemoryInventoryRepository(initial domain.Inventory) *MemoryInventoryRepository {
	return &MemoryInventoryRepository{inventory: initial.Clone()}
}

// Load returns a copy of the stored inventory
func (r *MemoryInventoryRepository) Load(ctx context.Context) (domain.Inventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inventory.Clone(), nil
}

// Save replaces the stored inventory with a copy of inventory
func (r *MemoryInventoryRepository) Save(ctx context.Context, inventory domain.Inventory) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inventory = inventory.Clone()
	r.saves++
	return nil
}

// SaveCount returns how many times Save succeeded
func (r *MemoryInventoryRepository) SaveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

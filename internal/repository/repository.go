package repository

import (
	"context"

	"github.com/DaDevFox/task-systems/restock-core/internal/domain"
)

// InventoryRepository defines the interface for inventory persistence.
// Load always reads the full list and Save always replaces it.
type InventoryRepository interface {
	Load(ctx context.Context) (domain.Inventory, error)
	Save(ctx context.Context, inventory domain.Inventory) error
}

package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DaDevFox/task-systems/restock-core/internal/domain"
	"github.com/DaDevFox/task-systems/restock-core/internal/events"
	"github.com/DaDevFox/task-systems/restock-core/internal/repository"
)

const (
	testItemName = "Coffee"
	otherItem    = "Paper Towels"
)

// MockRepository implements repository.InventoryRepository for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Load(ctx context.Context) (domain.Inventory, error) {
	args := m.Called(ctx)
	inventory, _ := args.Get(0).(domain.Inventory)
	return inventory, args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, inventory domain.Inventory) error {
	args := m.Called(ctx, inventory)
	return args.Error(0)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel) // Reduce noise in tests
	return logger
}

func seedInventory() domain.Inventory {
	return domain.Inventory{
		{Name: testItemName, Quantity: 5, ReorderLevel: 2},
		{Name: otherItem, Quantity: 1, ReorderLevel: 3},
	}
}

// setupMemoryService creates a service over an in-memory repository seeded with initial
func setupMemoryService(initial domain.Inventory) (*InventoryService, *repository.MemoryInventoryRepository) {
	repo := repository.NewMemoryInventoryRepository(initial)
	logger := testLogger()
	return NewInventoryService(repo, events.NewPubSub(logger), logger), repo
}

// setupFileService creates a service over a real inventory file in a temp dir
func setupFileService(t *testing.T) (*InventoryService, *repository.FileInventoryRepository) {
	t.Helper()
	logger := testLogger()

	repo, err := repository.NewFileInventoryRepository(filepath.Join(t.TempDir(), "inventory.txt"), logger)
	require.NoError(t, err)

	return NewInventoryService(repo, events.NewPubSub(logger), logger), repo
}

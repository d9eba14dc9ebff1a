package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/DaDevFox/task-systems/restock-core/internal/domain"
	"github.com/DaDevFox/task-systems/restock-core/internal/events"
	"github.com/DaDevFox/task-systems/restock-core/internal/repository"
)

const (
	errLoadInventory = "failed to load inventory"
	errSaveInventory = "failed to save inventory"
)

// InventoryService implements the inventory operations. Every call loads the
// inventory fresh, mutates it in memory, and saves it back on success.
type InventoryService struct {
	repo     repository.InventoryRepository
	eventBus *events.PubSub
	logger   *logrus.Logger
}

// NewInventoryService creates a new inventory service instance
func NewInventoryService(
	repo repository.InventoryRepository,
	eventBus *events.PubSub,
	logger *logrus.Logger,
) *InventoryService {
	if logger == nil {
		logger = logrus.New()
	}
	if eventBus == nil {
		eventBus = events.NewPubSub(logger)
	}

	return &InventoryService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Events returns the bus the service publishes on
func (s *InventoryService) Events() *events.PubSub {
	return s.eventBus
}

// ListItems returns all items in storage order
func (s *InventoryService) ListItems(ctx context.Context) (domain.Inventory, error) {
	inventory, err := s.repo.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errLoadInventory)
	}
	return inventory, nil
}

// GetItem returns the item matching name, ignoring case
func (s *InventoryService) GetItem(ctx context.Context, name string) (domain.InventoryItem, error) {
	inventory, err := s.repo.Load(ctx)
	if err != nil {
		return domain.InventoryItem{}, errors.Wrap(err, errLoadInventory)
	}

	idx := inventory.Find(name)
	if idx < 0 {
		return domain.InventoryItem{}, &domain.ItemNotFoundError{Name: name}
	}
	return inventory[idx], nil
}

// AddItem appends a new item. Names are unique ignoring case.
func (s *InventoryService) AddItem(ctx context.Context, name string, qty, reorderLevel int) (domain.InventoryItem, error) {
	if err := domain.ValidateItemName(name); err != nil {
		return domain.InventoryItem{}, err
	}
	if err := domain.ValidateQuantity(qty); err != nil {
		return domain.InventoryItem{}, err
	}

	inventory, err := s.repo.Load(ctx)
	if err != nil {
		return domain.InventoryItem{}, errors.Wrap(err, errLoadInventory)
	}

	if idx := inventory.Find(name); idx >= 0 {
		s.logger.WithFields(logrus.Fields{
			"item":     name,
			"existing": inventory[idx].Name,
		}).Info("rejected duplicate item")
		return domain.InventoryItem{}, &domain.DuplicateItemError{Name: name}
	}

	item := domain.InventoryItem{Name: name, Quantity: qty, ReorderLevel: reorderLevel}
	inventory = append(inventory, item)

	if err := s.repo.Save(ctx, inventory); err != nil {
		s.logger.WithError(err).WithField("item", name).Error("failed to persist new item")
		return domain.InventoryItem{}, errors.Wrap(err, errSaveInventory)
	}

	s.logger.WithFields(logrus.Fields{
		"item":          item.Name,
		"quantity":      item.Quantity,
		"reorder_level": item.ReorderLevel,
	}).Info("item added")

	s.eventBus.Publish(ctx, events.Event{
		Type:         events.EventItemAdded,
		ItemName:     item.Name,
		Quantity:     item.Quantity,
		ReorderLevel: item.ReorderLevel,
	})

	return item, nil
}

// AdjustQuantity adds delta to the item's quantity. The result may not be negative.
func (s *InventoryService) AdjustQuantity(ctx context.Context, name string, delta int) (domain.InventoryItem, error) {
	inventory, err := s.repo.Load(ctx)
	if err != nil {
		return domain.InventoryItem{}, errors.Wrap(err, errLoadInventory)
	}

	idx := inventory.Find(name)
	if idx < 0 {
		s.logger.WithField("item", name).Info("item not found for adjustment")
		return domain.InventoryItem{}, &domain.ItemNotFoundError{Name: name}
	}

	item := inventory[idx]
	if item.Quantity+delta < 0 {
		s.logger.WithFields(logrus.Fields{
			"item":      item.Name,
			"quantity":  item.Quantity,
			"requested": -delta,
		}).Info("rejected withdrawal exceeding stock")
		return domain.InventoryItem{}, &domain.InsufficientQuantityError{
			Name:      item.Name,
			Available: item.Quantity,
			Requested: -delta,
		}
	}

	item.Quantity += delta
	inventory[idx] = item

	if err := s.repo.Save(ctx, inventory); err != nil {
		s.logger.WithError(err).WithField("item", item.Name).Error("failed to persist quantity change")
		return domain.InventoryItem{}, errors.Wrap(err, errSaveInventory)
	}

	s.logger.WithFields(logrus.Fields{
		"item":     item.Name,
		"delta":    delta,
		"quantity": item.Quantity,
	}).Info("item quantity updated")

	event := events.Event{
		ItemName:     item.Name,
		Quantity:     item.Quantity,
		ReorderLevel: item.ReorderLevel,
		Delta:        delta,
	}
	event.Type = events.EventItemQuantityChanged
	s.eventBus.Publish(ctx, event)

	if item.NeedsRestock() {
		event.Type = events.EventItemRestockNeeded
		s.eventBus.Publish(ctx, event)
	}

	return item, nil
}

// Purchase records newly bought stock
func (s *InventoryService) Purchase(ctx context.Context, name string, amount int) (domain.InventoryItem, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return domain.InventoryItem{}, err
	}
	return s.AdjustQuantity(ctx, name, amount)
}

// Use records consumed stock
func (s *InventoryService) Use(ctx context.Context, name string, amount int) (domain.InventoryItem, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return domain.InventoryItem{}, err
	}
	return s.AdjustQuantity(ctx, name, -amount)
}

// ItemsBelowThreshold returns names of items at or below their reorder level, in storage order
func (s *InventoryService) ItemsBelowThreshold(ctx context.Context) ([]string, error) {
	inventory, err := s.repo.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errLoadInventory)
	}
	return inventory.BelowThreshold(), nil
}

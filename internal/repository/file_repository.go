package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/DaDevFox/task-systems/restock-core/internal/domain"
)

// FileInventoryRepository implements InventoryRepository on a single delimited text file
type FileInventoryRepository struct {
	path   string
	logger *logrus.Logger
}

// NewFileInventoryRepository creates a repository backed by the file at path.
// The file does not need to exist yet.
func NewFileInventoryRepository(path string, logger *logrus.Logger) (*FileInventoryRepository, error) {
	if path == "" {
		return nil, errors.New("inventory file path cannot be empty")
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &FileInventoryRepository{path: path, logger: logger}, nil
}

// Path returns the inventory file location
func (r *FileInventoryRepository) Path() string {
	return r.path
}

// Load reads every item from the file. A missing file is an empty inventory.
func (r *FileInventoryRepository) Load(ctx context.Context) (domain.Inventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.WithField("path", r.path).Debug("inventory file does not exist, starting empty")
			return domain.Inventory{}, nil
		}
		return nil, errors.Wrapf(err, "failed to open inventory file %s", r.path)
	}
	defer f.Close()

	inventory, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load inventory from %s", r.path)
	}

	r.logger.WithFields(logrus.Fields{
		"path":  r.path,
		"items": len(inventory),
	}).Debug("inventory loaded")

	return inventory, nil
}

// Save replaces the file contents with the header and all items. Data is
// written to a temporary file first and renamed into place.
func (r *FileInventoryRepository) Save(ctx context.Context, inventory domain.Inventory) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create parent directory for inventory file")
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(r.path), uuid.NewString()))
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return errors.Wrap(err, "failed to create temporary inventory file")
	}

	if err := Encode(f, inventory); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to write inventory")
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to sync inventory file")
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to close inventory file")
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to replace inventory file %s", r.path)
	}

	r.logger.WithFields(logrus.Fields{
		"path":  r.path,
		"items": len(inventory),
	}).Debug("inventory saved")

	return nil
}

package repository

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// StorageType represents the available inventory backends
type StorageType string

const (
	StorageTypeFile   StorageType = "file"
	StorageTypeMemory StorageType = "memory"
)

// NewInventoryRepository creates a new inventory repository with the specified storage type
//
// Storage Types:
// - file: the delimited text file at path (default)
// - memory: process-local, path is ignored
func NewInventoryRepository(path string, storageType StorageType, logger *logrus.Logger) (InventoryRepository, error) {
	switch storageType {
	case StorageTypeFile, "":
		return NewFileInventoryRepository(path, logger)

	case StorageTypeMemory:
		return NewMemoryInventoryRepository(nil), nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

package services

import (
	"fmt"

	"autoglm-helper/app/clients"
	"autoglm-helper/storage/postgres"
	"autoglm-helper/storage/sqlite"
)

// Supported storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// StorageFactory creates storage adapters
type StorageFactory struct{}

// NewStorageFactory creates a new storage factory
func NewStorageFactory() *StorageFactory {
	return &StorageFactory{}
}

// CreateStore opens the store for driver; dsn is a file path for sqlite and a connection string for postgres
func (f *StorageFactory) CreateStore(driver, dsn string) (clients.StorageAdapter, error) {
	switch driver {
	case DriverSQLite:
		return f.CreateSQLiteStore(dsn)
	case DriverPostgres:
		return f.CreatePostgresStore(dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// CreateSQLiteStore creates a SQLite store
func (f *StorageFactory) CreateSQLiteStore(dbPath string) (clients.StorageAdapter, error) {
	store, err := sqlite.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite store: %w", err)
	}
	return store, nil
}

// CreatePostgresStore creates a Postgres store
func (f *StorageFactory) CreatePostgresStore(connString string) (clients.StorageAdapter, error) {
	store, err := postgres.NewStore(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres store: %w", err)
	}
	return store, nil
}

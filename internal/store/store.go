// Package store holds the persistence layer of the contacts service.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gitlab.com/dirk.krummacker/contacts-app/internal/config"
	"gitlab.com/dirk.krummacker/contacts-app/internal/model"
)

// ErrNotFound is returned by Get when no contact has the requested id.
var ErrNotFound = errors.New("store: contact not found")

// Store is a record store for contacts keyed by an auto-incrementing id.
type Store interface {
	// List returns all contacts ordered by id. The result is never nil.
	List(ctx context.Context) ([]model.Contact, error)

	// Get returns the contact with the given id or ErrNotFound.
	Get(ctx context.Context, id int64) (model.Contact, error)

	// Insert creates a contact and returns it with its newly assigned id.
	Insert(ctx context.Context, name, email, phone string) (model.Contact, error)

	// Save writes name, email and phone of an existing contact.
	Save(ctx context.Context, c model.Contact) error

	// Delete removes a contact permanently.
	Delete(ctx context.Context, c model.Contact) error

	Ping(ctx context.Context) error
	Close() error
}

// Open creates the store selected by the configuration. For the SQL drivers the connection is
// verified with a ping before the statements are prepared.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	if cfg.DB.Driver == config.DriverMemory {
		return NewMemoryStore(), nil
	}
	sqlDB, err := sql.Open(cfg.DB.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DB.Driver, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping %s database: %w", cfg.DB.Driver, err)
	}
	s, err := NewSQLStore(ctx, sqlDB, cfg.DB.Driver)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return s, nil
}

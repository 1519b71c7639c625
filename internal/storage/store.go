package storage

import (
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Store is the data access layer over the SQLite connection pool.
type Store struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore wraps a connected database in a Store.
func NewStore(db *sqlx.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

package repository

import (
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/luxe-commerce/storefront/internal/config"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB    *sql.DB
	Order *OrderRepository
}

// New opens the Postgres connection pool, instrumented with otelsql, and
// wires the repositories over it.
func New(cfg *config.Config) (*Repository, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure the DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{
		DB:    db,
		Order: NewOrderRepository(db),
	}, nil
}

func (r *Repository) Close() error {
	return r.DB.Close()
}

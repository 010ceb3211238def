package database

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver
	"github.com/pressly/goose/v3"
	"github.com/techbay/auth-backend/internal/database/migrations"
)

// New creates a new database connection pool bounded by maxConns.
func New(databaseURL string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxConns)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

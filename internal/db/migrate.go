package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/auth/*.sql migrations/tasks/*.sql
var migrationsFS embed.FS

// Migrate applies the embedded SQL migrations for one store. store must be
// "auth" or "tasks". Running against an up-to-date schema is a no-op.
func Migrate(gdb *gorm.DB, store string) error {
	src, err := iofs.New(migrationsFS, "migrations/"+store)
	if err != nil {
		return fmt.Errorf("loading %s migrations: %w", store, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("unwrapping %s connection: %w", store, err)
	}

	driver, err := pgxmigrate.WithInstance(sqlDB, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("preparing %s migration driver: %w", store, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, store, driver)
	if err != nil {
		return fmt.Errorf("preparing %s migrations: %w", store, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying %s migrations: %w", store, err)
	}
	return nil
}

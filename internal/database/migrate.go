package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/boardhub/board-api/internal/config"
	"github.com/boardhub/board-api/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// migrationSource reads the SQL migrations compiled into the binary.
func migrationSource() (source.Driver, error) {
	return iofs.New(migrationFiles, "migrations")
}

// Direction selects which way Migrate moves the schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Migrate applies the SQL migrations for PostgreSQL. For sqlite it falls back
// to AutoMigrate, which only knows how to move up.
func Migrate(ctx context.Context, cfg config.Config, dir Direction) error {
	if cfg.Database.Driver == "sqlite" {
		if dir != Up {
			return fmt.Errorf("sqlite only supports migrating up")
		}
		db, err := Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer Close(db)
		return AutoMigrate(db)
	}

	sqlDB, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer sqlDB.Close()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("db.Ping: %w", err)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("postgres.WithInstance: %w", err)
	}
	src, err := migrationSource()
	if err != nil {
		return fmt.Errorf("iofs.New: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("init migrator failed: %w", err)
	}

	logger.Infof("applying embedded migrations (%s)", dir)
	switch dir {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", dir)
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("nothing to migrate")
			return nil
		}
		return fmt.Errorf("migrate %s failed: %w", dir, err)
	}
	logger.Info("migrated successfully")
	return nil
}

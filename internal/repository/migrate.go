package repository

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb" // registers the mongodb:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.json
var migrationsFS embed.FS

// Migrate applies the embedded index migrations to database
func Migrate(uri, database string, logger *zap.Logger) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, withDatabase(uri, database))
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	logger.Info("Database migration was run successfully",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
	return nil
}

// withDatabase puts database into the path of a MongoDB connection
// string, which is where the migrate driver reads it from. Host lists
// like "a:1,b:2" are not valid for net/url, so the string is split by hand.
func withDatabase(uri, database string) string {
	scheme, rest, found := strings.Cut(uri, "://")
	if !found {
		return uri
	}

	query := ""
	if i := strings.Index(rest, "?"); i >= 0 {
		rest, query = rest[:i], rest[i:]
	}
	hosts := rest
	if i := strings.Index(rest, "/"); i >= 0 {
		hosts = rest[:i]
	}

	return scheme + "://" + hosts + "/" + database + query
}

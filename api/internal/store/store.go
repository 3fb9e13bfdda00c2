package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"notes-backend/api/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var log = logger.New("store")

// Open connects to Postgres through pgx and applies pending migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(1 * time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	log.Info().Str("dsn", SafeDSNSummary(dsn)).Msg("db connected")

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies the embedded migrations. ErrNoChange is not an error.
func Migrate(db *sql.DB) error {
	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("create DB instance: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create source instance: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	migrateErr := m.Up()
	version, dirty, versionErr := m.Version()
	ev := log.Info()
	if versionErr == nil {
		ev = ev.Uint("version", version).Bool("dirty", dirty)
	} else if !errors.Is(versionErr, migrate.ErrNilVersion) {
		log.Warn().Err(versionErr).Msg("failed to fetch migration version")
	}

	if migrateErr != nil {
		if !errors.Is(migrateErr, migrate.ErrNoChange) {
			return fmt.Errorf("apply migrations: %w", migrateErr)
		}
		ev.Msg("no migrations to apply")
		return nil
	}
	ev.Msg("db is migrated")
	return nil
}

// SafeDSNSummary describes a DSN without its password.
func SafeDSNSummary(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return "dsn: unparsable"
	}
	return fmt.Sprintf("host=%s db=%s user=%s", u.Host, trimSlash(u.Path), u.User.Username())
}

func trimSlash(s string) string {
	if len(s) > 0 && s[0] == '/' {
		return s[1:]
	}
	return s
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

type Config struct {
	DSN             string // postgres://... for pgx, anything else is a sqlite path
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	DialTimeout     time.Duration
}

// Open connects to the vault database, picking the driver from the DSN, and
// applies migrations. Callers own Close.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("open database: empty DSN")
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 10
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = 2
	}
	if cfg.ConnMaxLifetime <= 0 {
		cfg.ConnMaxLifetime = 30 * time.Minute
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 3 * time.Second
	}

	driver := "sqlite"
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		driver = "pgx"
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("repository.open.ok", "driver", driver)
	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS records (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		record_date      TEXT NOT NULL,
		doctor           TEXT NOT NULL DEFAULT '',
		facility         TEXT NOT NULL DEFAULT '',
		category         TEXT NOT NULL DEFAULT 'Other',
		diagnosis_codes  TEXT NOT NULL DEFAULT '[]',
		medications      TEXT NOT NULL DEFAULT '[]',
		follow_up_date   TEXT NOT NULL DEFAULT '',
		recommendations  TEXT NOT NULL DEFAULT '[]',
		metrics          TEXT NOT NULL DEFAULT '{}',
		status           TEXT NOT NULL,
		created_at       TIMESTAMP NOT NULL,
		updated_at       TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id            TEXT PRIMARY KEY,
		record_id     TEXT NOT NULL REFERENCES records(id) ON DELETE CASCADE,
		name          TEXT NOT NULL,
		media_type    TEXT NOT NULL,
		file_size     INTEGER NOT NULL DEFAULT 0,
		content_hash  BYTEA,
		raw_text      TEXT NOT NULL DEFAULT '',
		uploaded_at   TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_record_date ON records(record_date)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_record_id ON documents(record_id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q...: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i > 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

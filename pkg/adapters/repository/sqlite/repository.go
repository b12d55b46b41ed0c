package sqlite

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

// timeLayout is used for columns that strftime aggregates over.
const timeLayout = "2006-01-02 15:04:05"

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if driverName == "sqlite" {
		// A single connection serializes writers and keeps shared in-memory databases alive.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(context.Background()); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE COLLATE NOCASE,
		display_name TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		template TEXT NOT NULL DEFAULT 'designer',
		primary_color TEXT NOT NULL DEFAULT '#6366F1',
		background_color TEXT NOT NULL DEFAULT '#F8FAFC',
		font_family TEXT NOT NULL DEFAULT 'Inter, sans-serif',
		font_size TEXT NOT NULL DEFAULT 'medium',
		page_width TEXT NOT NULL DEFAULT 'normal',
		is_rtl TEXT NOT NULL DEFAULT '1' CHECK (is_rtl IN ('0', '1')),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS links (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		icon TEXT NOT NULL DEFAULT 'default',
		icon_style TEXT NOT NULL DEFAULT 'filled',
		custom_icon_url TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		is_active TEXT NOT NULL DEFAULT '1' CHECK (is_active IN ('0', '1')),
		position INTEGER NOT NULL DEFAULT 0,
		clicks INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_links_user_position ON links(user_id, position);

	CREATE TABLE IF NOT EXISTS content_blocks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('image', 'text', 'gallery')),
		title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		is_active TEXT NOT NULL DEFAULT '1' CHECK (is_active IN ('0', '1')),
		position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_blocks_user_position ON content_blocks(user_id, position);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		profile_id INTEGER NOT NULL DEFAULT 0,
		link_id INTEGER NOT NULL DEFAULT 0,
		attributes JSON,
		occurred_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_events_profile ON events(profile_id, name, occurred_at);
	`
	_, err := db.Exec(query)
	return err
}

// Flags are stored as '0'/'1' text. Anything other than '1' reads as false.
func encodeFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func decodeFlag(s string) bool {
	return s == "1"
}

func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}

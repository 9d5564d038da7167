// Package sqlstore implements storage.Store over a relational database.
// It runs against embedded SQLite (the default, one file under the data
// directory) or PostgreSQL, selected by the configured backend.
package sqlstore

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"prima-photo-backend/internal/apperr"
	"prima-photo-backend/internal/models"
	"prima-photo-backend/internal/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// schemaStatements are run one by one at open; the pgx stdlib driver does
// not accept multi-statement Exec.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS photos (
		id INTEGER PRIMARY KEY %s,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		image_data TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS content (
		section TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admins (
		username TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL
	)`,
}

// Store provides a SQL-backed store implementing storage.Store.
type Store struct {
	db *sqlx.DB
}

var _ storage.Store = (*Store)(nil)

// OpenSQLite opens (creating if needed) a SQLite store under dataDir and
// seeds the admin credential.
func OpenSQLite(dataDir string, admin models.Admin) (*Store, error) {
	path := filepath.Join(filepath.Clean(dataDir), "portfolio.db")
	dsn := path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	return open("sqlite", dsn, admin)
}

// OpenPostgres opens a PostgreSQL store with the given DSN and seeds the
// admin credential.
func OpenPostgres(dsn string, admin models.Admin) (*Store, error) {
	return open("pgx", dsn, admin)
}

func open(driver, dsn string, admin models.Admin) (*Store, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	s := &Store{db: db}
	if err := s.initSchema(driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	if err := s.seedAdmin(admin); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to seed admin: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(driver string) error {
	// SQLite assigns rowid-aliased ids itself; Postgres needs an identity.
	identity := ""
	if driver == "pgx" {
		identity = "GENERATED BY DEFAULT AS IDENTITY"
	}
	for _, stmt := range schemaStatements {
		if strings.Contains(stmt, "%s") {
			stmt = fmt.Sprintf(stmt, identity)
		}
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// seedAdmin inserts the configured credential when no admin row exists yet.
func (s *Store) seedAdmin(admin models.Admin) error {
	var count int
	if err := s.db.Get(&count, "SELECT COUNT(*) FROM admins"); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err := s.db.Exec(s.db.Rebind("INSERT INTO admins (username, password_hash) VALUES (?, ?)"),
		admin.Username, admin.PasswordHash)
	return err
}

// GetAdmin returns the stored admin credential.
func (s *Store) GetAdmin(ctx context.Context) (models.Admin, error) {
	var admin models.Admin
	err := s.db.GetContext(ctx, &admin,
		"SELECT username, password_hash FROM admins LIMIT 1")
	if err != nil {
		return models.Admin{}, apperr.Persistencef("get admin: %v", err)
	}
	return admin, nil
}

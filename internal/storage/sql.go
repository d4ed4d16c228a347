package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLStore is the durable document store. SQLite is the default backend;
// set DB_TYPE=postgres and DATABASE_URL to use PostgreSQL instead.
type SQLStore struct {
	db     *sqlx.DB
	dbType string
}

// OpenSQL connects to the configured database and initializes the schema
func OpenSQL() (*SQLStore, error) {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var db *sqlx.DB
	var err error

	if dbType == "sqlite" {
		dataDir := "data"
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %v", err)
		}

		dbPath := filepath.Join(dataDir, "wordquest.db")
		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %v", err)
		}

		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			return nil, fmt.Errorf("failed to set journal mode: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db, err = sqlx.Connect("postgres", os.Getenv("DATABASE_URL"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %v", err)
		}
	}

	s := &SQLStore{db: db, dbType: dbType}
	if err := s.initializeSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS progress (
			key TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			data TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create progress table: %v", err)
	}
	return nil
}

// Load returns the document stored under key, or ErrNotFound
func (s *SQLStore) Load(key string) (*Document, error) {
	var row struct {
		Version int    `db:"version"`
		Data    string `db:"data"`
	}
	err := s.db.Get(&row, "SELECT version, data FROM progress WHERE key = $1", key)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %v", err)
	}
	return &Document{Version: row.Version, Data: []byte(row.Data)}, nil
}

// Save stores the document under key, replacing any previous document
func (s *SQLStore) Save(key string, doc *Document) error {
	var query string
	if s.dbType == "sqlite" {
		query = `
			INSERT INTO progress (key, version, data, updated_at)
			VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE SET
				version = excluded.version,
				data = excluded.data,
				updated_at = CURRENT_TIMESTAMP
		`
	} else {
		query = `
			INSERT INTO progress (key, version, data, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (key) DO UPDATE SET
				version = EXCLUDED.version,
				data = EXCLUDED.data,
				updated_at = NOW()
		`
	}

	if _, err := s.db.Exec(query, key, doc.Version, string(doc.Data)); err != nil {
		return fmt.Errorf("failed to save progress: %v", err)
	}
	return nil
}

// Delete removes the document stored under key
func (s *SQLStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM progress WHERE key = $1", key); err != nil {
		return fmt.Errorf("failed to delete progress: %v", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

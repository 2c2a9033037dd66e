package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/LabelWise-io/labelwise/internal/config"
	_ "github.com/lib/pq" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"
)

var (
	db     *sql.DB
	dbType string
)

// Init opens the configured database and creates the schema.
func Init(cfg *config.Config) error {
	if db != nil {
		return nil
	}

	var conn *sql.DB
	var err error

	switch cfg.Database.Type {
	case "postgres":
		conn, err = initPostgres(cfg)
	case "sqlite", "":
		conn, err = initSQLite(cfg)
	default:
		return fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
	if err != nil {
		return err
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %v", err)
	}

	if err := CreateSchema(conn, cfg.Database.Type); err != nil {
		conn.Close()
		return fmt.Errorf("failed to initialize schema: %v", err)
	}

	db = conn
	dbType = cfg.Database.Type
	log.Printf("Database initialized (type: %s)", cfg.Database.Type)
	return nil
}

func initPostgres(cfg *config.Config) (*sql.DB, error) {
	log.Printf("Initializing PostgreSQL connection...")
	conn, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %v", err)
	}
	return conn, nil
}

func initSQLite(cfg *config.Config) (*sql.DB, error) {
	log.Printf("Initializing SQLite connection at path: %s", cfg.Database.Path)

	dataDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	dsn := cfg.Database.Path
	if cfg.Database.WALMode {
		dsn += "?_journal_mode=WAL&_foreign_keys=on"
	}

	// The file can be locked briefly by another process, retry before
	// giving up.
	var conn *sql.DB
	var lastErr error
	for i := 0; i < cfg.Database.MaxRetries; i++ {
		conn, lastErr = sql.Open("sqlite3", dsn)
		if lastErr == nil {
			if lastErr = conn.Ping(); lastErr == nil {
				break
			}
			conn.Close()
		}
		log.Printf("Attempt %d/%d failed: %v", i+1, cfg.Database.MaxRetries, lastErr)
		time.Sleep(time.Duration(cfg.Database.RetryDelay) * time.Second)
	}
	if lastErr != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %v", cfg.Database.MaxRetries, lastErr)
	}

	// SQLite only supports one writer.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	return conn, nil
}

// GetDB returns the database connection.
func GetDB() *sql.DB {
	return db
}

// Type returns the configured database type.
func Type() string {
	return dbType
}

// Close closes the database connection.
func Close() error {
	if db != nil {
		err := db.Close()
		db = nil
		return err
	}
	return nil
}

// CreateSchema creates the tables and indexes if they don't exist. It is
// exported so tests can build a schema over an in-memory database.
func CreateSchema(conn *sql.DB, dbType string) error {
	var queries []string

	if dbType == "postgres" {
		queries = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id BIGSERIAL PRIMARY KEY,
				email VARCHAR(255) UNIQUE NOT NULL,
				password_hash VARCHAR(255) NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS analyses (
				id UUID PRIMARY KEY,
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				file_name VARCHAR(255) NOT NULL,
				mime_type VARCHAR(100) NOT NULL,
				size_bytes BIGINT NOT NULL,
				result TEXT NOT NULL,
				archive_key TEXT,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
			`CREATE INDEX IF NOT EXISTS idx_analyses_user_id ON analyses(user_id)`,
			`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at)`,
		}
	} else {
		queries = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				email TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS analyses (
				id TEXT PRIMARY KEY,
				user_id INTEGER NOT NULL,
				file_name TEXT NOT NULL,
				mime_type TEXT NOT NULL,
				size_bytes INTEGER NOT NULL,
				result TEXT NOT NULL,
				archive_key TEXT,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
			`CREATE INDEX IF NOT EXISTS idx_analyses_user_id ON analyses(user_id)`,
			`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at)`,
		}
	}

	for _, query := range queries {
		if _, err := conn.Exec(query); err != nil {
			return fmt.Errorf("failed to execute schema query: %v", err)
		}
	}
	return nil
}

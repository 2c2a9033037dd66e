package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/LabelWise-io/labelwise/internal/models"
	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// Store handles all database operations
type Store struct {
	db     *sql.DB
	dbType string
}

// New creates a new store instance
func New(db *sql.DB, dbType string) *Store {
	return &Store{db: db, dbType: dbType}
}

// CreateUser creates a new user with an already-hashed password. Returns
// ErrEmailTaken if the email is registered.
func (s *Store) CreateUser(email, passwordHash string) (*models.User, error) {
	var exists bool
	var err error
	if s.dbType == "postgres" {
		err = s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	} else {
		err = s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email).Scan(&exists)
	}
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	now := time.Now().UTC()
	user := &models.User{
		Email:     email,
		Password:  passwordHash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if s.dbType == "postgres" {
		err = s.db.QueryRow(
			"INSERT INTO users (email, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id",
			user.Email, user.Password, user.CreatedAt, user.UpdatedAt,
		).Scan(&user.ID)
		if err != nil {
			return nil, err
		}
		return user, nil
	}

	result, err := s.db.Exec(
		"INSERT INTO users (email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?)",
		user.Email, user.Password, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	user.ID = id

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = ?"
	if s.dbType == "postgres" {
		query = "SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = $1"
	}

	user := &models.User{}
	err := s.db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by id
func (s *Store) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = ?"
	if s.dbType == "postgres" {
		query = "SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = $1"
	}

	user := &models.User{}
	err := s.db.QueryRow(query, id).Scan(
		&user.ID, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// RecordAnalysis persists one completed analysis. A missing ID is filled in.
func (s *Store) RecordAnalysis(a *models.Analysis) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	query := "INSERT INTO analyses (id, user_id, file_name, mime_type, size_bytes, result, archive_key, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
	if s.dbType == "postgres" {
		query = "INSERT INTO analyses (id, user_id, file_name, mime_type, size_bytes, result, archive_key, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)"
	}

	_, err := s.db.Exec(query,
		a.ID, a.UserID, a.FileName, a.MimeType, a.SizeBytes, a.Result, a.ArchiveKey, a.CreatedAt,
	)
	return err
}

// ListAnalysesByUser retrieves a user's analyses, newest first.
func (s *Store) ListAnalysesByUser(userID int64) ([]*models.Analysis, error) {
	query := "SELECT id, user_id, file_name, mime_type, size_bytes, result, archive_key, created_at FROM analyses WHERE user_id = ? ORDER BY created_at DESC"
	if s.dbType == "postgres" {
		query = "SELECT id, user_id, file_name, mime_type, size_bytes, result, archive_key, created_at FROM analyses WHERE user_id = $1 ORDER BY created_at DESC"
	}

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []*models.Analysis
	for rows.Next() {
		a := &models.Analysis{}
		var archiveKey sql.NullString
		err := rows.Scan(&a.ID, &a.UserID, &a.FileName, &a.MimeType, &a.SizeBytes, &a.Result, &archiveKey, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		a.ArchiveKey = archiveKey.String
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

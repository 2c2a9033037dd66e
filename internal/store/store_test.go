package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/LabelWise-io/labelwise/internal/database"
	"github.com/LabelWise-io/labelwise/internal/models"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1) // each connection would get its own in-memory db
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.CreateSchema(db, "sqlite"))
	return New(db, "sqlite")
}

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)

	user, err := s.CreateUser("a@x.com", "hashed-pw")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "hashed-pw", user.Password)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateUser("a@x.com", "hash-one")
	require.NoError(t, err)

	_, err = s.CreateUser("a@x.com", "hash-two")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// The existing record must be untouched
	got, err := s.GetUserByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "hash-one", got.Password)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUserByEmail("nobody@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByID(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateUser("a@x.com", "hash")
	require.NoError(t, err)

	got, err := s.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	_, err = s.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRecordAndListAnalyses(t *testing.T) {
	s := newTestStore(t)

	user, err := s.CreateUser("a@x.com", "hash")
	require.NoError(t, err)

	older := &models.Analysis{
		UserID:    user.ID,
		FileName:  "label1.jpg",
		MimeType:  "image/jpeg",
		SizeBytes: 1024,
		Result:    "Score: 40",
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, s.RecordAnalysis(older))
	assert.NotEmpty(t, older.ID, "RecordAnalysis should fill in a missing id")

	newer := &models.Analysis{
		UserID:     user.ID,
		FileName:   "label2.png",
		MimeType:   "image/png",
		SizeBytes:  2048,
		Result:     "Score: 80",
		ArchiveKey: "users/1/labels/abc",
	}
	require.NoError(t, s.RecordAnalysis(newer))

	analyses, err := s.ListAnalysesByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, analyses, 2)

	// Newest first
	assert.Equal(t, "label2.png", analyses[0].FileName)
	assert.Equal(t, "users/1/labels/abc", analyses[0].ArchiveKey)
	assert.Equal(t, "label1.jpg", analyses[1].FileName)
	assert.Empty(t, analyses[1].ArchiveKey)
}

func TestListAnalyses_OtherUserInvisible(t *testing.T) {
	s := newTestStore(t)

	alice, err := s.CreateUser("alice@x.com", "hash")
	require.NoError(t, err)
	bob, err := s.CreateUser("bob@x.com", "hash")
	require.NoError(t, err)

	require.NoError(t, s.RecordAnalysis(&models.Analysis{
		UserID: alice.ID, FileName: "a.jpg", MimeType: "image/jpeg", SizeBytes: 1, Result: "ok",
	}))

	analyses, err := s.ListAnalysesByUser(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, analyses)
}

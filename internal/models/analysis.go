package models

import (
	"time"
)

// Analysis records one label-analysis request and the text the model
// returned for it.
type Analysis struct {
	ID         string    `json:"id" db:"id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	FileName   string    `json:"file_name" db:"file_name"`
	MimeType   string    `json:"mime_type" db:"mime_type"`
	SizeBytes  int64     `json:"size_bytes" db:"size_bytes"`
	Result     string    `json:"result" db:"result"`
	ArchiveKey string    `json:"archive_key,omitempty" db:"archive_key"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

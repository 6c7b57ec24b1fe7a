package model

import "time"

// Asset is the metadata record for a stored file. Records are created and
// mutated by the upload service; this service only ever reads them.
type Asset struct {
	ID          string    `json:"id"`
	Bucket      string    `json:"bucket"`
	ContentType string    `json:"content_type"`
	Deleted     bool      `json:"deleted"`
	SizeBytes   int64     `json:"size_bytes"`
	Metadata    Metadata  `json:"metadata"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

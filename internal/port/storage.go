package port

import (
	"context"
	"io"
)

// FileInfo represents metadata about a stored file.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// Tier is one storage backend in the retrieval fallback chain. Retrieval
// only ever needs reads; the retriever walks an ordered list of these.
type Tier interface {
	GetFile(ctx context.Context, bucket, fileKey string) (io.ReadCloser, error)
}

// Storage defines the full set of file storage operations. The object-store
// and local filesystem backends both implement it; the local backend also
// doubles as the variant store for the warming worker.
type Storage interface {
	Tier
	InitBucket(bucket string) error
	FileExists(ctx context.Context, bucket, fileKey string) (bool, error)
	StatFile(ctx context.Context, bucket, fileKey string) (FileInfo, error)
	SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error
}

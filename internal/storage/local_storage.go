package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/fhuszti/assets-cdn-go/internal/port"
	"github.com/fhuszti/assets-cdn-go/internal/usecase/asset"
	"github.com/google/uuid"
)

// LocalStorage is the filesystem tier, rooted at a configured directory with
// one subdirectory per bucket. It is both the fallback tier when the object
// store is unreachable and the store for warmed variants.
type LocalStorage struct {
	root string
}

// compile-time check: *LocalStorage must satisfy port.Storage
var _ port.Storage = (*LocalStorage)(nil)

func NewLocalStorage(root string) *LocalStorage {
	log.Printf("initialising local storage at %q...", root)
	return &LocalStorage{root: root}
}

func (s *LocalStorage) resolve(bucket, fileKey string) (string, error) {
	// keys come from request paths; never let them climb out of the root
	if strings.Contains(fileKey, "..") || strings.Contains(bucket, "..") {
		return "", asset.ErrObjectNotFound
	}
	return filepath.Join(s.root, bucket, filepath.FromSlash(fileKey)), nil
}

func (s *LocalStorage) InitBucket(bucket string) error {
	return os.MkdirAll(filepath.Join(s.root, bucket), 0o755)
}

func (s *LocalStorage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadCloser, error) {
	log.Printf("reading file %q from local bucket %q...", fileKey, bucket)

	p, err := s.resolve(bucket, fileKey)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, asset.ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", asset.ErrInternal, err)
	}
	return f, nil
}

func (s *LocalStorage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	p, err := s.resolve(bucket, fileKey)
	if err != nil {
		return false, nil
	}
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("%w: %v", asset.ErrInternal, err)
	}
	return true, nil
}

func (s *LocalStorage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	p, err := s.resolve(bucket, fileKey)
	if err != nil {
		return port.FileInfo{}, err
	}
	fi, err := os.Stat(p)
	if os.IsNotExist(err) {
		return port.FileInfo{}, asset.ErrObjectNotFound
	}
	if err != nil {
		return port.FileInfo{}, fmt.Errorf("%w: %v", asset.ErrInternal, err)
	}
	// the filesystem keeps no object metadata, so the content type is
	// derived from the key's extension
	return port.FileInfo{
		SizeBytes:   fi.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(fileKey)),
	}, nil
}

// SaveFile writes atomically: the bytes land in a temp file next to the
// destination and get renamed into place, so a concurrent reader never sees
// a half-written variant.
func (s *LocalStorage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	log.Printf("saving file %q into local bucket %q...", fileKey, bucket)

	p, err := s.resolve(bucket, fileKey)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("%w: %v", asset.ErrInternal, err)
	}

	tmp := p + ".tmp-" + uuid.NewString()
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", asset.ErrInternal, err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", asset.ErrInternal, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", asset.ErrInternal, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", asset.ErrInternal, err)
	}
	return nil
}

package port

import (
	"context"

	"github.com/fhuszti/assets-cdn-go/internal/model"
)

// Cache provides caching capabilities for asset record lookups.
type Cache interface {
	// GetAssetRecord returns the cached record, or nil on a miss.
	GetAssetRecord(ctx context.Context, bucket, id string) (*model.Asset, error)
	SetAssetRecord(ctx context.Context, bucket, id string, asset *model.Asset)
	DeleteAssetRecord(ctx context.Context, bucket, id string) error
}

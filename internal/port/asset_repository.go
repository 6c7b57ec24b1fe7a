package port

import (
	"context"

	"github.com/fhuszti/assets-cdn-go/internal/model"
)

// AssetRepository reads asset records from the metadata store. The store is
// owned by the upload side; nothing here writes to it.
type AssetRepository interface {
	GetByID(ctx context.Context, bucket, id string) (*model.Asset, error)
}

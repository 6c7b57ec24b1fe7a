package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/fhuszti/assets-cdn-go/internal/model"
	"github.com/fhuszti/assets-cdn-go/internal/port"
)

// AssetRepository reads asset records from the metadata database. The table
// is populated by the upload service; serving never writes to it.
type AssetRepository struct {
	db *sql.DB
}

// compile-time check: *AssetRepository must satisfy port.AssetRepository
var _ port.AssetRepository = (*AssetRepository)(nil)

func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) GetByID(ctx context.Context, bucket, id string) (*model.Asset, error) {
	log.Printf("fetching asset #%s from the database...", id)

	const query = `
      SELECT id, bucket, content_type, deleted, size_bytes, metadata, created_at, updated_at
      FROM assets
      WHERE id = ? AND bucket = ?
    `
	row := r.db.QueryRowContext(ctx, query, id, bucket)

	var a model.Asset
	if err := row.Scan(
		&a.ID,
		&a.Bucket,
		&a.ContentType,
		&a.Deleted,
		&a.SizeBytes,
		&a.Metadata,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &a, nil
}

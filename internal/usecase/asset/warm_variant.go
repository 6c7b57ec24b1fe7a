package asset

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/fhuszti/assets-cdn-go/internal/port"
)

type variantWarmerSrv struct {
	repo      port.AssetRepository
	retriever *TieredRetriever
	trans     port.Transcoder
	variants  port.Storage
	codec     port.Codec
}

// compile-time check: *variantWarmerSrv must satisfy port.VariantWarmer
var _ port.VariantWarmer = (*variantWarmerSrv)(nil)

// NewVariantWarmer constructs a VariantWarmer implementation.
func NewVariantWarmer(
	repo port.AssetRepository,
	retriever *TieredRetriever,
	trans port.Transcoder,
	variants port.Storage,
	codec port.Codec,
) port.VariantWarmer {
	return &variantWarmerSrv{repo, retriever, trans, variants, codec}
}

// WarmVariant re-runs the transcode for an exact target and persists the
// output to the local tier, so later requests for the same target are served
// straight from disk. Unlike the serve path, transcode errors surface here:
// the worker is allowed to retry.
func (s *variantWarmerSrv) WarmVariant(ctx context.Context, in port.WarmVariantInput) error {
	a, err := s.repo.GetByID(ctx, in.Bucket, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAssetNotFound
		}
		return err
	}
	if a.Deleted {
		return ErrAssetNotFound
	}
	if !a.Metadata.IsImage() {
		return fmt.Errorf("asset %q is not an image", in.ID)
	}

	key := VariantKey(in.ID, Dimensions{Width: in.Width, Height: in.Height}, in.Fit, s.codec.Ext())
	exists, err := s.variants.FileExists(ctx, in.Bucket, key)
	if err != nil {
		return fmt.Errorf("error checking if variant %q already exists: %w", key, err)
	}
	if exists {
		log.Printf("variant %q already warmed, skipping", key)
		return nil
	}

	data, err := s.retriever.Retrieve(ctx, in.Bucket, in.ID)
	if err != nil {
		return err
	}

	out, err := s.trans.Transcode(ctx, data, in.Width, in.Height, in.Fit)
	if err != nil {
		return fmt.Errorf("failed transcoding asset %q: %w", in.ID, err)
	}

	opts := map[string]string{"Content-Type": out.ContentType}
	if err := s.variants.SaveFile(ctx, in.Bucket, key, bytes.NewReader(out.Data), int64(len(out.Data)), opts); err != nil {
		return fmt.Errorf("failed to save variant %q: %w", key, err)
	}
	return nil
}

package asset

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log"

	"github.com/fhuszti/assets-cdn-go/internal/model"
	"github.com/fhuszti/assets-cdn-go/internal/port"
)

type assetServerSrv struct {
	repo       port.AssetRepository
	cache      port.Cache
	retriever  *TieredRetriever
	variants   port.Storage
	trans      port.Transcoder
	dispatcher port.TaskDispatcher
	codec      port.Codec
	denylist   []string
}

// compile-time check: *assetServerSrv must satisfy port.AssetServer
var _ port.AssetServer = (*assetServerSrv)(nil)

// NewAssetServer constructs the full serve pipeline. The variant store is
// the local tier, reused as a cache for pre-transcoded outputs.
func NewAssetServer(
	repo port.AssetRepository,
	cache port.Cache,
	retriever *TieredRetriever,
	variants port.Storage,
	trans port.Transcoder,
	dispatcher port.TaskDispatcher,
	codec port.Codec,
	denylist []string,
) port.AssetServer {
	return &assetServerSrv{repo, cache, retriever, variants, trans, dispatcher, codec, denylist}
}

// ServeAsset looks up the record, applies the content policy, retrieves the
// stored bytes through the tier chain and, for image resize requests,
// transcodes them to the resolved target. A failed transcode degrades to the
// original bytes; it never fails the request.
func (s *assetServerSrv) ServeAsset(ctx context.Context, in port.ServeAssetInput) (*port.ServeAssetOutput, error) {
	a, err := s.lookup(ctx, in.Bucket, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	if err := Admit(a, s.denylist); err != nil {
		return nil, err
	}

	var target *Dimensions
	if in.Resize.Requested() && a.Metadata.IsImage() {
		target = ResolveTarget(in.Resize, a.Metadata.Width, a.Metadata.Height)
	}

	// a previously warmed variant short-circuits both retrieval and transcode
	if target != nil {
		if data, contentType, ok := s.warmedVariant(ctx, in.Bucket, in.ID, *target, in.Resize.Fit); ok {
			return s.respond(data, contentType), nil
		}
	}

	data, err := s.retriever.Retrieve(ctx, in.Bucket, in.ID)
	if err != nil {
		return nil, err
	}

	if target == nil {
		return s.respond(data, a.ContentType), nil
	}

	out, err := s.trans.Transcode(ctx, data, target.Width, target.Height, in.Resize.Fit)
	if err != nil {
		// Never turn a resize failure into an error for an otherwise valid
		// asset: serve the original bytes with the original content type.
		log.Printf("transcode failed for asset %q, serving original: %v", in.ID, err)
		return s.respond(data, a.ContentType), nil
	}

	warm := port.WarmVariantInput{
		ID:     in.ID,
		Bucket: in.Bucket,
		Width:  target.Width,
		Height: target.Height,
		Fit:    in.Resize.Fit,
	}
	if err := s.dispatcher.EnqueueWarmVariant(ctx, warm); err != nil {
		log.Printf("failed enqueueing warm-variant task for asset %q: %v", in.ID, err)
	}

	return s.respond(out.Data, out.ContentType), nil
}

func (s *assetServerSrv) lookup(ctx context.Context, bucket, id string) (*model.Asset, error) {
	if a, err := s.cache.GetAssetRecord(ctx, bucket, id); err == nil && a != nil {
		return a, nil
	}

	a, err := s.repo.GetByID(ctx, bucket, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetAssetRecord(ctx, bucket, id, a)
	return a, nil
}

func (s *assetServerSrv) warmedVariant(ctx context.Context, bucket, id string, d Dimensions, fit string) ([]byte, string, bool) {
	key := VariantKey(id, d, fit, s.codec.Ext())
	rc, err := s.variants.GetFile(ctx, bucket, key)
	if err != nil {
		return nil, "", false
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		log.Printf("failed reading warmed variant %q: %v", key, err)
		return nil, "", false
	}

	// trust the stored variant's own content type over the configured codec;
	// the variant may predate a codec change
	contentType := s.codec.ContentType()
	if info, err := s.variants.StatFile(ctx, bucket, key); err == nil && info.ContentType != "" {
		contentType = info.ContentType
	}
	return data, contentType, true
}

func (s *assetServerSrv) respond(data []byte, contentType string) *port.ServeAssetOutput {
	return &port.ServeAssetOutput{
		Data:        data,
		ContentType: contentType,
		Disposition: DispositionFor(contentType),
	}
}

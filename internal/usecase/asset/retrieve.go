package asset

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/fhuszti/assets-cdn-go/internal/port"
)

// TieredRetriever fetches raw asset bytes by walking an ordered list of
// storage tiers. A transport error or missing object on one tier falls
// through to the next; adding a tier never touches this control flow.
type TieredRetriever struct {
	tiers []port.Tier
}

func NewTieredRetriever(tiers ...port.Tier) *TieredRetriever {
	return &TieredRetriever{tiers: tiers}
}

// Retrieve returns the stored bytes for the asset. It fails with
// ErrStorageUnavailable, wrapping the last tier's error, only when every
// tier failed. A single pass per tier, no retries.
func (r *TieredRetriever) Retrieve(ctx context.Context, bucket, id string) ([]byte, error) {
	var lastErr error
	for i, tier := range r.tiers {
		rc, err := tier.GetFile(ctx, bucket, id)
		if err != nil {
			log.Printf("tier %d failed for asset %q in bucket %q: %v", i, id, bucket, err)
			lastErr = err
			continue
		}

		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			log.Printf("tier %d read failed for asset %q in bucket %q: %v", i, id, bucket, err)
			lastErr = err
			continue
		}
		return data, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, lastErr)
}

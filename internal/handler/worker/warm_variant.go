package worker

import (
	"context"
	"log"

	"github.com/fhuszti/assets-cdn-go/internal/port"
	"github.com/fhuszti/assets-cdn-go/internal/validation"
)

// WarmVariantHandler handles a warm-variant task.
// It validates the incoming payload and delegates the call to the service.
func WarmVariantHandler(ctx context.Context, in port.WarmVariantInput, svc port.VariantWarmer) error {
	if err := validation.ValidateStruct(in); err != nil {
		log.Printf("❌  Payload validation failed: %v", err)
		return err
	}

	if err := svc.WarmVariant(ctx, in); err != nil {
		log.Printf("❌  Failed to warm %dx%d variant of asset #%s: %v", in.Width, in.Height, in.ID, err)
		return err
	}

	log.Printf("✅  Successfully warmed %dx%d variant of asset #%s", in.Width, in.Height, in.ID)
	return nil
}

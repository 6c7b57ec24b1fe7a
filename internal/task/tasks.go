package task

import (
	"encoding/json"
	"fmt"

	"github.com/fhuszti/assets-cdn-go/internal/port"
	"github.com/hibiken/asynq"
)

const TypeWarmVariant = "asset:warm_variant"

// NewWarmVariantTask creates an Asynq task that pre-renders one variant of an asset.
func NewWarmVariantTask(in port.WarmVariantInput) (*asynq.Task, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("could not marshal warm-variant payload: %w", err)
	}
	return asynq.NewTask(TypeWarmVariant, data), nil
}

// ParseWarmVariantPayload parses the task payload back into a WarmVariantInput.
func ParseWarmVariantPayload(t *asynq.Task) (port.WarmVariantInput, error) {
	var in port.WarmVariantInput
	if err := json.Unmarshal(t.Payload(), &in); err != nil {
		return port.WarmVariantInput{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return in, nil
}

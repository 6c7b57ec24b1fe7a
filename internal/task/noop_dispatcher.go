package task

import (
	"context"

	"github.com/fhuszti/assets-cdn-go/internal/port"
)

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueWarmVariant(ctx context.Context, in port.WarmVariantInput) error {
	return nil
}

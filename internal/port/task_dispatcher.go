package port

import "context"

// TaskDispatcher enqueues asynchronous tasks related to asset serving.
type TaskDispatcher interface {
	EnqueueWarmVariant(ctx context.Context, in WarmVariantInput) error
}

package api_context

import "context"

type ctxKey string

const (
	IDKey     ctxKey = "id"
	BucketKey ctxKey = "bucket"
)

func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(IDKey).(string)
	return id, ok
}

func BucketFromContext(ctx context.Context) (string, bool) {
	bucket, ok := ctx.Value(BucketKey).(string)
	return bucket, ok
}

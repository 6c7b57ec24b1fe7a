package asset

import "errors"

var (
	// ErrAssetNotFound covers unknown ids and logically-deleted records;
	// the two are indistinguishable to the client.
	ErrAssetNotFound         = errors.New("asset: not found")
	ErrContentTypeNotAllowed = errors.New("asset: content type not allowed")
	// ErrStorageUnavailable means every tier in the fallback chain failed.
	ErrStorageUnavailable = errors.New("asset: storage unavailable")

	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")
)

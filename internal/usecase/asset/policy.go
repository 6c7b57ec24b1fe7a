package asset

import (
	"slices"

	"github.com/fhuszti/assets-cdn-go/internal/model"
)

// Admit applies the content policy to a record before any bytes move.
// A deleted record is indistinguishable from an absent one.
func Admit(a *model.Asset, denylist []string) error {
	if a.Deleted {
		return ErrAssetNotFound
	}
	if slices.Contains(denylist, a.ContentType) {
		return ErrContentTypeNotAllowed
	}
	return nil
}

// DispositionFor decides whether the client may render the content type
// inline or should be prompted to download. This list must match the types
// accepted as images / videos / audio by upload-side validation.
func DispositionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp",
		"video/mp4", "video/webm", "video/webp",
		"audio/quicktime", "audio/mpeg":
		return "inline"
	default:
		return "attachment"
	}
}

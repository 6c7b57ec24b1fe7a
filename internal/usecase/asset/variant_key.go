package asset

import (
	"fmt"
	"path"

	"github.com/fhuszti/assets-cdn-go/internal/port"
)

// VariantKey is the local-tier object key under which a pre-transcoded
// variant of the asset is stored.
func VariantKey(id string, d Dimensions, fit, ext string) string {
	if fit != port.FitCover {
		fit = "default"
	}
	return path.Join("variants", fmt.Sprintf("%s_%dx%d_%s.%s", id, d.Width, d.Height, fit, ext))
}

package port

import "context"

// ResizeParams carries the raw, mutually overlapping resize query
// parameters. Zero means absent; the resolver applies the precedence rules.
type ResizeParams struct {
	Size    int     `json:"size" validate:"omitempty,gt=0"`
	Width   int     `json:"width" validate:"omitempty,gt=0"`
	Height  int     `json:"height" validate:"omitempty,gt=0"`
	MaxSide int     `json:"max_side" validate:"omitempty,gt=0"`
	Fit     string  `json:"fit" validate:"omitempty,printascii"`
	DPR     float64 `json:"dpr" validate:"omitempty,gt=0"`
}

// Requested reports whether any dimension parameter was supplied at all.
func (p ResizeParams) Requested() bool {
	return p.Size > 0 || p.Width > 0 || p.Height > 0 || p.MaxSide > 0
}

type ServeAssetInput struct {
	ID     string
	Bucket string
	Resize ResizeParams
}

type ServeAssetOutput struct {
	Data        []byte
	ContentType string
	Disposition string
}

// AssetServer runs the full retrieval-and-transform pipeline for one asset.
type AssetServer interface {
	ServeAsset(ctx context.Context, in ServeAssetInput) (*ServeAssetOutput, error)
}

type WarmVariantInput struct {
	ID     string `json:"id" validate:"required"`
	Bucket string `json:"bucket" validate:"required"`
	Width  int    `json:"width" validate:"required,gt=0"`
	Height int    `json:"height" validate:"required,gt=0"`
	Fit    string `json:"fit" validate:"omitempty,printascii"`
}

// VariantWarmer persists a pre-transcoded variant so later requests for the
// same target skip the CPU work.
type VariantWarmer interface {
	WarmVariant(ctx context.Context, in WarmVariantInput) error
}

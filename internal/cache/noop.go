package cache

import (
	"context"

	"github.com/fhuszti/assets-cdn-go/internal/model"
	"github.com/fhuszti/assets-cdn-go/internal/port"
)

// Noop stands in when redis is not configured: every lookup is a miss.
type Noop struct{}

var _ port.Cache = (*Noop)(nil)

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) GetAssetRecord(ctx context.Context, bucket, id string) (*model.Asset, error) {
	return nil, nil
}
func (n *Noop) SetAssetRecord(ctx context.Context, bucket, id string, a *model.Asset) {}
func (n *Noop) DeleteAssetRecord(ctx context.Context, bucket, id string) error        { return nil }

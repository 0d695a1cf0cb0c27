package outbound

import (
	"context"
	"errors"
)

var ErrAssetNotFound = errors.New("asset not found")

// AssetStore is a thin byte-addressable store. Identifiers are generated by
// the caller with a collision-resistant random scheme; the store performs no
// uniqueness check and overwrites on a colliding identifier.
type AssetStore interface {
	Store(ctx context.Context, id string, data []byte) error
	Resolve(ctx context.Context, id string) ([]byte, error)
}

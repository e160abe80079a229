package mock

import (
	"context"

	"github.com/fwojciec/pinpoint"
)

var _ pinpoint.GeocodeCache = (*GeocodeCache)(nil)

// GeocodeCache is a mock implementation of pinpoint.GeocodeCache.
type GeocodeCache struct {
	LookupFn func(ctx context.Context, name string, hint pinpoint.LocationType) (*pinpoint.Coordinates, error)
	StoreFn  func(ctx context.Context, name string, hint pinpoint.LocationType, coords *pinpoint.Coordinates) error
}

func (c *GeocodeCache) Lookup(ctx context.Context, name string, hint pinpoint.LocationType) (*pinpoint.Coordinates, error) {
	return c.LookupFn(ctx, name, hint)
}

func (c *GeocodeCache) Store(ctx context.Context, name string, hint pinpoint.LocationType, coords *pinpoint.Coordinates) error {
	return c.StoreFn(ctx, name, hint, coords)
}

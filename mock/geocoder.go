package mock

import (
	"context"

	"github.com/fwojciec/pinpoint"
)

var _ pinpoint.Geocoder = (*Geocoder)(nil)

// Geocoder is a mock implementation of pinpoint.Geocoder.
type Geocoder struct {
	GeocodeFn func(ctx context.Context, name string, hint pinpoint.LocationType) (*pinpoint.Coordinates, error)
}

func (g *Geocoder) Geocode(ctx context.Context, name string, hint pinpoint.LocationType) (*pinpoint.Coordinates, error) {
	return g.GeocodeFn(ctx, name, hint)
}

package pinpoint

import "context"

// Coordinates is a resolved geographic position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Address is the provider's display address for the match, if any.
	Address string `json:"address,omitempty"`
}

// Geocoder resolves place names to coordinates.
type Geocoder interface {
	// Geocode looks up a place name, optionally qualified by a type hint
	// for disambiguation. Returns ENOTFOUND when the provider has no match,
	// ETIMEOUT or EUNAVAILABLE on provider failures.
	Geocode(ctx context.Context, name string, hint LocationType) (*Coordinates, error)
}

// GeocodeCache stores resolved lookups so repeat names skip the provider.
type GeocodeCache interface {
	// Lookup returns cached coordinates for a name and type.
	// Returns ENOTFOUND on a cache miss.
	Lookup(ctx context.Context, name string, hint LocationType) (*Coordinates, error)

	// Store records a resolved lookup.
	Store(ctx context.Context, name string, hint LocationType, coords *Coordinates) error
}

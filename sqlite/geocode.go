package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/pinpoint"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pinpoint.GeocodeCache = (*GeocodeCacheService)(nil)

// GeocodeCacheService implements pinpoint.GeocodeCache using SQLite.
// Entries are keyed by lowercased name and location type, matching the
// dedup key used in normalization.
type GeocodeCacheService struct {
	db *DB
}

// NewGeocodeCacheService creates a new GeocodeCacheService.
func NewGeocodeCacheService(db *DB) *GeocodeCacheService {
	return &GeocodeCacheService{db: db}
}

// Lookup returns cached coordinates for a name, or ENOTFOUND.
func (s *GeocodeCacheService) Lookup(ctx context.Context, name string, hint pinpoint.LocationType) (*pinpoint.Coordinates, error) {
	var coords pinpoint.Coordinates

	err := s.db.QueryRowContext(ctx, `
		SELECT latitude, longitude, address
		FROM geocode_cache
		WHERE name = ? AND location_type = ?
	`, cacheKey(name), string(hint)).Scan(&coords.Latitude, &coords.Longitude, &coords.Address)

	if err == sql.ErrNoRows {
		return nil, pinpoint.Errorf(pinpoint.ENOTFOUND, "no cached coordinates for %q", name)
	}
	if err != nil {
		return nil, err
	}

	return &coords, nil
}

// Store saves resolved coordinates, replacing any previous entry for the
// same name and type.
func (s *GeocodeCacheService) Store(ctx context.Context, name string, hint pinpoint.LocationType, coords *pinpoint.Coordinates) error {
	if coords == nil {
		return pinpoint.Errorf(pinpoint.EINVALID, "coordinates required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO geocode_cache (id, name, location_type, latitude, longitude, address, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name, location_type) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			address = excluded.address,
			resolved_at = excluded.resolved_at
	`, uuid.New().String(), cacheKey(name), string(hint),
		coords.Latitude, coords.Longitude, coords.Address,
		time.Now().UTC().Format(time.RFC3339))

	return err
}

// cacheKey lowercases the name so "Paris" and "paris" share an entry.
func cacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

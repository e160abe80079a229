// Package nominatim implements pinpoint.Geocoder against the OpenStreetMap
// Nominatim API. Requests are rate limited to one per second per the
// service's usage policy, and positive results can be stored in a cache to
// avoid re-querying names that recur across articles.
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fwojciec/pinpoint"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// DefaultTimeout bounds a single geocoding request.
const DefaultTimeout = 10 * time.Second

// userAgent identifies the application per Nominatim's usage policy.
const userAgent = "pinpoint/1.0 (news article location mapper)"

// Ensure Geocoder implements pinpoint.Geocoder at compile time.
var _ pinpoint.Geocoder = (*Geocoder)(nil)

// Geocoder resolves location names to coordinates via Nominatim.
type Geocoder struct {
	client  *http.Client
	limiter *rate.Limiter
	cache   pinpoint.GeocodeCache
	baseURL string
	timeout time.Duration
}

// Option configures a Geocoder.
type Option func(*Geocoder)

// WithBaseURL points the geocoder at a different Nominatim instance.
// Self-hosted instances have no public rate limit.
func WithBaseURL(u string) Option {
	return func(g *Geocoder) {
		g.baseURL = u
	}
}

// WithCache stores positive results in the given cache and consults it
// before calling the API.
func WithCache(cache pinpoint.GeocodeCache) Option {
	return func(g *Geocoder) {
		g.cache = cache
	}
}

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Geocoder) {
		g.timeout = d
	}
}

// WithRateLimit overrides the requests-per-second limit. The public
// instance requires at most 1 rps.
func WithRateLimit(rps float64) Option {
	return func(g *Geocoder) {
		g.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewGeocoder creates a Geocoder for the public Nominatim instance.
func NewGeocoder(opts ...Option) *Geocoder {
	g := &Geocoder{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.client = &http.Client{Timeout: g.timeout}
	return g
}

// searchResult is the subset of the Nominatim response we read.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a location name to coordinates. The type hint narrows
// the search for cities, regions, and countries. Returns ENOTFOUND when
// Nominatim has no match.
func (g *Geocoder) Geocode(ctx context.Context, name string, hint pinpoint.LocationType) (*pinpoint.Coordinates, error) {
	if name == "" {
		return nil, pinpoint.Errorf(pinpoint.EINVALID, "location name required")
	}

	if g.cache != nil {
		if coords, err := g.cache.Lookup(ctx, name, hint); err == nil && coords != nil {
			return coords, nil
		}
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, pinpoint.Errorf(pinpoint.ETIMEOUT, "geocoding %q: %v", name, err)
	}

	coords, err := g.search(ctx, name, hint)
	if err != nil {
		return nil, err
	}

	if g.cache != nil {
		// A cache write failure must not fail the geocode.
		_ = g.cache.Store(ctx, name, hint, coords)
	}

	return coords, nil
}

func (g *Geocoder) search(ctx context.Context, name string, hint pinpoint.LocationType) (*pinpoint.Coordinates, error) {
	params := url.Values{}
	params.Set("q", name)
	params.Set("format", "json")
	params.Set("limit", "1")
	if ft := featureType(hint); ft != "" {
		params.Set("featureType", ft)
	}

	reqURL := fmt.Sprintf("%s/search?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, pinpoint.Errorf(pinpoint.EINTERNAL, "building geocode request: %v", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pinpoint.Errorf(pinpoint.EUNAVAILABLE, "geocoding service returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(name, err)
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, pinpoint.Errorf(pinpoint.EUNAVAILABLE, "unexpected geocoding response: %v", err)
	}
	if len(results) == 0 {
		return nil, pinpoint.Errorf(pinpoint.ENOTFOUND, "no coordinates found for %q", name)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, pinpoint.Errorf(pinpoint.EUNAVAILABLE, "unexpected latitude %q for %q", results[0].Lat, name)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, pinpoint.Errorf(pinpoint.EUNAVAILABLE, "unexpected longitude %q for %q", results[0].Lon, name)
	}

	return &pinpoint.Coordinates{
		Latitude:  lat,
		Longitude: lng,
		Address:   results[0].DisplayName,
	}, nil
}

// featureType maps location types to Nominatim's featureType parameter.
// Landmarks and unclassified names search unrestricted.
func featureType(hint pinpoint.LocationType) string {
	switch hint {
	case pinpoint.TypeCity:
		return "city"
	case pinpoint.TypeCountry:
		return "country"
	case pinpoint.TypeRegion:
		return "state"
	default:
		return ""
	}
}

func classifyTransportError(name string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return pinpoint.Errorf(pinpoint.ETIMEOUT, "timed out geocoding %q", name)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return pinpoint.Errorf(pinpoint.ETIMEOUT, "timed out geocoding %q", name)
	}
	return pinpoint.Errorf(pinpoint.EUNAVAILABLE, "geocoding service unreachable: %v", err)
}

package pinpoint

import (
	"context"
	"strings"
)

// LocationType classifies a location mention.
type LocationType string

// LocationType values. The extraction boundary may return finer-grained
// labels (state, province, neighborhood, venue); ParseLocationType folds
// them into these buckets.
const (
	TypeCity     LocationType = "city"
	TypeCountry  LocationType = "country"
	TypeRegion   LocationType = "region"
	TypeLandmark LocationType = "landmark"
	TypeOther    LocationType = "other"
)

// ParseLocationType maps a free-form type label from the extraction
// boundary to a LocationType. Unknown labels map to TypeOther.
func ParseLocationType(s string) LocationType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "city", "town", "village":
		return TypeCity
	case "country", "territory", "nation":
		return TypeCountry
	case "region", "state", "province", "county", "district", "neighborhood":
		return TypeRegion
	case "landmark", "building", "venue", "monument", "park":
		return TypeLandmark
	default:
		return TypeOther
	}
}

// Confidence label thresholds. Scores are in [0, 1]; a score at or above
// ConfidenceHigh is "high", at or above ConfidenceMedium is "medium",
// anything below is "low".
const (
	ConfidenceHigh   = 0.8
	ConfidenceMedium = 0.5
)

// ConfidenceScore maps a qualitative confidence label from the extraction
// boundary to a numeric score. Unknown labels map to the medium score.
func ConfidenceScore(label string) float64 {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "high":
		return 0.9
	case "medium":
		return 0.6
	case "low":
		return 0.3
	default:
		return 0.6
	}
}

// Location is a geographic mention extracted from an article. Before
// normalization it is a raw candidate; after geocoding it may carry
// coordinates.
type Location struct {
	// Name as mentioned in the article, trimmed, case preserved for display.
	Name string `json:"name"`

	Type LocationType `json:"type"`

	// Confidence score in [0, 1]. See ConfidenceHigh/ConfidenceMedium for
	// the label thresholds.
	Confidence float64 `json:"confidence"`

	// Context is the sentence or clause where the mention appears.
	Context string `json:"context"`

	// Latitude and Longitude are nil until geocoding resolves the name,
	// and stay nil when the geocoder has no match (fail soft).
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	// Address is the resolved display address from the geocoder, if any.
	Address string `json:"address,omitempty"`

	// Ambiguous marks names shared by many real places. The pipeline does
	// not invent disambiguation; it passes Context through to the caller.
	Ambiguous bool `json:"ambiguous,omitempty"`
}

// Key returns the deduplication key: name lowered, paired with type.
func (l *Location) Key() string {
	return strings.ToLower(l.Name) + "|" + string(l.Type)
}

// ConfidenceLabel returns the qualitative bucket for the numeric score.
func (l *Location) ConfidenceLabel() string {
	switch {
	case l.Confidence >= ConfidenceHigh:
		return "high"
	case l.Confidence >= ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// Geocoded reports whether the location has resolved coordinates.
func (l *Location) Geocoded() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// LocationSet is the deduplicated, filtered, ranked output of one analysis
// run. Entries are unique by (lower(name), type) and sorted by descending
// confidence with ties kept in first-appearance order.
type LocationSet []Location

// GeocodedCount returns how many entries have resolved coordinates.
func (s LocationSet) GeocodedCount() int {
	n := 0
	for i := range s {
		if s[i].Geocoded() {
			n++
		}
	}
	return n
}

// EntityExtractor proposes raw location candidates from article text.
// This is the AI service boundary: implementations send the text plus a
// task description and parse the structured response. Malformed or partial
// responses must surface as EAISERVICE, never as an empty result.
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, articleText string) ([]Location, error)
}

// Role is one step of the extraction pipeline. Roles transform the
// candidate list deterministically; they must not drop candidates or call
// external services.
type Role interface {
	// Name identifies the role in logs.
	Name() string

	// Apply returns the transformed candidate list. The input slice must
	// not be mutated.
	Apply(articleText string, candidates []Location) []Location
}

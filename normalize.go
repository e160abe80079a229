package pinpoint

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// MaxLocations caps the size of a normalized set. Articles that mention
// more places than this keep only the highest-confidence entries.
const MaxLocations = 50

//go:embed filters.yaml
var filtersYAML []byte

// filterLists holds the embedded word lists used during normalization.
type filterLists struct {
	Fictional    []string `yaml:"fictional"`
	NonLocations []string `yaml:"nonlocations"`
	Ambiguous    []string `yaml:"ambiguous"`
}

var (
	fictionalSet   map[string]bool
	nonLocationSet map[string]bool
	ambiguousSet   map[string]bool
)

func init() {
	var lists filterLists
	if err := yaml.Unmarshal(filtersYAML, &lists); err != nil {
		panic(fmt.Sprintf("pinpoint: invalid embedded filters.yaml: %v", err))
	}
	fictionalSet = toSet(lists.Fictional)
	nonLocationSet = toSet(lists.NonLocations)
	ambiguousSet = toSet(lists.Ambiguous)
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(strings.TrimSpace(w))] = true
	}
	return set
}

// Fictional reports whether a name is on the known-fictional-places list.
func Fictional(name string) bool {
	return fictionalSet[strings.ToLower(strings.TrimSpace(name))]
}

// Ambiguous reports whether a name is known to be shared by many places.
func Ambiguous(name string) bool {
	return ambiguousSet[strings.ToLower(strings.TrimSpace(name))]
}

// Normalize turns raw candidates into a LocationSet: names are trimmed,
// fictional and non-geographic mentions are dropped, duplicates are
// collapsed by (lower(name), type) keeping the first occurrence, ambiguous
// names are flagged, and the result is stably sorted by descending
// confidence so ties keep extraction order. The cap at MaxLocations applies
// after sorting.
//
// Normalize is deterministic and idempotent: running it on its own output
// yields the identical set.
func Normalize(candidates []Location) LocationSet {
	seen := make(map[string]bool, len(candidates))
	kept := make(LocationSet, 0, len(candidates))

	for _, c := range candidates {
		c.Name = strings.TrimSpace(c.Name)
		if len(c.Name) < 2 {
			continue
		}
		lower := strings.ToLower(c.Name)
		if nonLocationSet[lower] || fictionalSet[lower] {
			continue
		}
		if looksNumeric(c.Name) {
			continue
		}
		if c.Type == "" {
			c.Type = TypeOther
		}
		key := c.Key()
		if seen[key] {
			// First occurrence wins; duplicate context is discarded.
			continue
		}
		seen[key] = true
		c.Ambiguous = c.Ambiguous || ambiguousSet[lower]
		kept = append(kept, c)
	}

	// Stable so equal-confidence entries keep first-appearance order.
	// UI ordering must be deterministic for the same input.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Confidence > kept[j].Confidence
	})

	if len(kept) > MaxLocations {
		kept = kept[:MaxLocations]
	}
	return kept
}

// looksNumeric reports whether a name is a number or a short digit-laden
// token (dates, scores) rather than a place name.
func looksNumeric(name string) bool {
	hasDigit := false
	allDigit := true
	for _, r := range name {
		if unicode.IsDigit(r) {
			hasDigit = true
		} else if !unicode.IsSpace(r) && r != '.' && r != ',' && r != '-' {
			allDigit = false
		}
	}
	if allDigit && hasDigit {
		return true
	}
	return hasDigit && len(name) < 5
}

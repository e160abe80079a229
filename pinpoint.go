// Package pinpoint extracts geographic locations from news articles and
// resolves them to coordinates for map rendering and conversational
// follow-up. It fetches article content from arbitrary HTML, runs an
// AI-assisted extraction pipeline over the text, filters fictional and
// non-geographic mentions, and enriches surviving candidates with
// coordinates from a geocoding provider.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, nominatim/, sqlite/).
package pinpoint

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pinpoint"
)

// Ensure LoggingGeocoder implements pinpoint.Geocoder.
var _ pinpoint.Geocoder = (*LoggingGeocoder)(nil)

// LoggingGeocoder wraps a Geocoder with debug logging.
type LoggingGeocoder struct {
	next   pinpoint.Geocoder
	logger *slog.Logger
}

// NewLoggingGeocoder creates a new LoggingGeocoder.
func NewLoggingGeocoder(next pinpoint.Geocoder, logger *slog.Logger) *LoggingGeocoder {
	return &LoggingGeocoder{next: next, logger: logger}
}

// Geocode delegates to the wrapped geocoder and logs the operation.
func (g *LoggingGeocoder) Geocode(ctx context.Context, name string, hint pinpoint.LocationType) (coords *pinpoint.Coordinates, err error) {
	defer func(begin time.Time) {
		g.logger.Info("geocode lookup",
			"name", name,
			"type", hint,
			"resolved", coords != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Geocode(ctx, name, hint)
}

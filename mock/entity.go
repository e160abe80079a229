package mock

import (
	"context"

	"github.com/fwojciec/pinpoint"
)

var _ pinpoint.EntityExtractor = (*EntityExtractor)(nil)

// EntityExtractor is a mock implementation of pinpoint.EntityExtractor.
type EntityExtractor struct {
	ExtractEntitiesFn func(ctx context.Context, articleText string) ([]pinpoint.Location, error)
}

func (e *EntityExtractor) ExtractEntities(ctx context.Context, articleText string) ([]pinpoint.Location, error) {
	return e.ExtractEntitiesFn(ctx, articleText)
}

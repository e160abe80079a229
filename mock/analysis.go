package mock

import (
	"context"

	"github.com/fwojciec/pinpoint"
)

var _ pinpoint.AnalysisService = (*AnalysisService)(nil)

// AnalysisService is a mock implementation of pinpoint.AnalysisService.
type AnalysisService struct {
	AnalyzeURLFn  func(ctx context.Context, url string) (*pinpoint.Analysis, error)
	AnalyzeTextFn func(ctx context.Context, text string) (*pinpoint.Analysis, error)
}

func (s *AnalysisService) AnalyzeURL(ctx context.Context, url string) (*pinpoint.Analysis, error) {
	return s.AnalyzeURLFn(ctx, url)
}

func (s *AnalysisService) AnalyzeText(ctx context.Context, text string) (*pinpoint.Analysis, error) {
	return s.AnalyzeTextFn(ctx, text)
}

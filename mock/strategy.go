package mock

import "github.com/fwojciec/pinpoint"

var _ pinpoint.ContentStrategy = (*ContentStrategy)(nil)

// ContentStrategy is a mock implementation of pinpoint.ContentStrategy.
type ContentStrategy struct {
	NameFn    func() string
	ExtractFn func(html string) (*pinpoint.ExtractResult, error)
}

func (s *ContentStrategy) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}

func (s *ContentStrategy) Extract(html string) (*pinpoint.ExtractResult, error) {
	return s.ExtractFn(html)
}

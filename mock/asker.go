package mock

import (
	"context"

	"github.com/fwojciec/pinpoint"
)

var _ pinpoint.Asker = (*Asker)(nil)

// Asker is a mock implementation of pinpoint.Asker.
type Asker struct {
	AnswerFn func(ctx context.Context, question string, locations pinpoint.LocationSet, history []pinpoint.ConversationTurn) (string, error)
}

func (a *Asker) Answer(ctx context.Context, question string, locations pinpoint.LocationSet, history []pinpoint.ConversationTurn) (string, error) {
	return a.AnswerFn(ctx, question, locations, history)
}

package pinpoint

import "sync"

// TurnRole identifies the author of a conversation turn.
type TurnRole string

// TurnRole values.
const (
	TurnUser      TurnRole = "user"
	TurnAssistant TurnRole = "assistant"
)

// ConversationTurn is one message in a session's conversation. Turns are
// append-only; they are never mutated after being added.
type ConversationTurn struct {
	Role TurnRole `json:"role"`
	Text string   `json:"text"`
}

// SessionState describes the conversational state machine.
type SessionState string

// SessionState values.
const (
	StateIdle  SessionState = "idle"  // no location set produced yet
	StateReady SessionState = "ready" // location set populated, questions answerable
)

// Session holds one user's current location set and conversation history.
// The location set is replaced wholesale on each new submission; turns are
// only appended. A Session is safe for concurrent use, but at most one
// analysis run may be in flight at a time (see BeginAnalysis).
type Session struct {
	// ID is assigned at session start and never changes.
	ID string

	mu         sync.Mutex
	locations  LocationSet
	turns      []ConversationTurn
	populated  bool
	lastHash   string
	generation uint64
	applied    uint64

	// analysisMu is the per-session advisory lock: at most one pipeline
	// run in flight.
	analysisMu sync.Mutex
}

// NewSession creates an empty session with the given ID.
func NewSession(id string) *Session {
	return &Session{ID: id}
}

// State returns Idle until the first analysis run completes, Ready after.
// An empty-but-successful location set still counts as populated.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.populated {
		return StateIdle
	}
	return StateReady
}

// Locations returns a copy of the current location set.
func (s *Session) Locations() LocationSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(LocationSet, len(s.locations))
	copy(out, s.locations)
	return out
}

// History returns a copy of the conversation turns in order.
func (s *Session) History() []ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// AppendExchange appends one user turn and one assistant turn, in that
// order, atomically. Callers must only invoke it once the assistant answer
// is known so a failure never leaves a partial append.
func (s *Session) AppendExchange(user, assistant string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns,
		ConversationTurn{Role: TurnUser, Text: user},
		ConversationTurn{Role: TurnAssistant, Text: assistant},
	)
}

// LastHash returns the content hash of the most recent analyzed article.
func (s *Session) LastHash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHash
}

// BeginAnalysis acquires the advisory analysis lock and returns a
// generation token for the run. Returns ok=false when another run is
// already in flight; the caller should report the session as busy rather
// than queue.
func (s *Session) BeginAnalysis() (gen uint64, ok bool) {
	if !s.analysisMu.TryLock() {
		return 0, false
	}
	s.mu.Lock()
	s.generation++
	gen = s.generation
	s.mu.Unlock()
	return gen, true
}

// EndAnalysis releases the advisory analysis lock. Must be called exactly
// once per successful BeginAnalysis, whether or not the run completed.
func (s *Session) EndAnalysis() {
	s.analysisMu.Unlock()
}

// CompleteAnalysis installs the run's location set unless a newer run has
// already produced output, in which case the result is discarded and false
// is returned.
func (s *Session) CompleteAnalysis(gen uint64, locations LocationSet, hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.applied {
		return false
	}
	s.applied = gen
	s.locations = locations
	s.lastHash = hash
	s.populated = true
	return true
}

// Reset discards the location set and conversation history, returning the
// session to Idle. The session ID is retained.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = nil
	s.turns = nil
	s.populated = false
	s.lastHash = ""
}

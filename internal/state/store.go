package state

import (
	"sync"
	"time"

	"github.com/five82/epicview/internal/epic"
)

// Phase is the active rendering mode.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseFailed
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseFailed:
		return "error"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// View is the tagged variant the renderers consume. Record is meaningful only
// in PhaseReady and Message only in PhaseFailed.
type View struct {
	Phase     Phase
	Record    epic.Record
	Message   string
	Seq       uint64 // ticket of the load that produced this view
	UpdatedAt time.Time
}

// Policy decides what happens to a response that settles after a newer
// request was dispatched.
type Policy int

const (
	// LastWriteWins applies every response in arrival order.
	LastWriteWins Policy = iota
	// DiscardStale drops responses older than the newest dispatched request.
	DiscardStale
)

// Ticket identifies one dispatched load.
type Ticket uint64

// Store holds the view-controller state. The zero value starts in
// PhaseLoading and is ready to use.
type Store struct {
	mu         sync.RWMutex
	policy     Policy
	view       View
	dispatched uint64
	last       epic.Record
	hasLast    bool
}

// NewStore returns a Store using the given policy.
func NewStore(policy Policy) *Store {
	return &Store{policy: policy}
}

// Policy returns the store's stale-response policy.
func (s *Store) Policy() Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

// Begin enters PhaseLoading and returns the ticket for the new request. It
// never blocks on or cancels requests already in flight.
func (s *Store) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dispatched++
	s.view.Phase = PhaseLoading
	s.view.UpdatedAt = time.Now()
	return Ticket(s.dispatched)
}

// Settle records the outcome of the load identified by t. A nil err stores
// rec and clears any error; a non-nil err stores its message and keeps the
// previous record out of view. It reports whether the outcome was applied.
func (s *Store) Settle(t Ticket, rec epic.Record, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.policy == DiscardStale && uint64(t) < s.dispatched {
		return false
	}

	s.view.Seq = uint64(t)
	s.view.UpdatedAt = time.Now()
	if err != nil {
		s.view.Phase = PhaseFailed
		s.view.Message = epic.Message(err)
		s.view.Record = epic.Record{}
		return true
	}

	s.view.Phase = PhaseReady
	s.view.Record = rec
	s.view.Message = ""
	s.last = rec
	s.hasLast = true
	return true
}

// Snapshot returns a copy of the current view.
func (s *Store) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Last returns the most recent successfully fetched record, which survives
// later failures.
func (s *Store) Last() (epic.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.hasLast
}

// Dispatched returns how many loads have been started.
func (s *Store) Dispatched() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dispatched
}

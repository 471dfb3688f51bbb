// Package shell holds the search session shared by every front end: the
// zipcode input rules, the idle/loading/error/results state machine, and the
// pure render function that turns a state into a screen.
package shell

import (
	"context"
	"regexp"

	"github.com/fleveque/therapist-finder/internal/model"
)

// ZipcodeLength is the only accepted zipcode length.
const ZipcodeLength = 5

// User-facing messages.
const (
	MsgInvalidZipcode = "Please enter a valid 5-digit zipcode."
	MsgServiceFailed  = "Sorry, we couldn't fetch therapist data. Please try again later."
)

var zipcodePattern = regexp.MustCompile(`^\d{5}$`)

// Status is the single source of truth for what is on screen.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
	StatusResults
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusResults:
		return "results"
	default:
		return "unknown"
	}
}

// Finder is the query side as the shell sees it.
// *service.TherapistService satisfies it.
type Finder interface {
	FindTherapists(ctx context.Context, zipcode string) ([]model.Therapist, error)
}

// State is an immutable snapshot of a session.
type State struct {
	Zipcode      string
	Status       Status
	Results      []model.Therapist // nil unless Status is StatusResults
	ErrorMessage string            // empty unless Status is StatusError

	// searched is the zipcode of the last accepted search, so editing the
	// input afterwards does not rewrite the "no results for" line.
	searched string
}

// SearchedZipcode returns the zipcode the current results or error belong to.
func (s State) SearchedZipcode() string {
	return s.searched
}

// Session is one user's search session. It is not safe for concurrent use:
// every front end drives it from a single loop (the bubbletea Update loop or
// one HTTP request).
type Session struct {
	state State
}

// NewSession returns a session in the idle state with an empty zipcode.
func NewSession() *Session {
	return &Session{}
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	st := s.state
	if st.Results != nil {
		st.Results = append([]model.Therapist(nil), st.Results...)
	}
	return st
}

// Zipcode returns the current input value.
func (s *Session) Zipcode() string { return s.state.Zipcode }

// Loading reports whether a search is in flight.
func (s *Session) Loading() bool { return s.state.Status == StatusLoading }

// SetZipcode applies an edit of the whole input value, the way a controlled
// text field does: non-digits are dropped, and an edit leaving more than five
// digits is rejected outright (the previous value stays). Ignored while loading.
func (s *Session) SetZipcode(value string) {
	if s.Loading() {
		return
	}
	digits := digitsOnly(value)
	if len(digits) > ZipcodeLength {
		return
	}
	s.state.Zipcode = digits
}

// Type applies a single keystroke.
func (s *Session) Type(r rune) {
	s.SetZipcode(s.state.Zipcode + string(r))
}

// Backspace deletes the last character.
func (s *Session) Backspace() {
	if n := len(s.state.Zipcode); n > 0 {
		s.SetZipcode(s.state.Zipcode[:n-1])
	}
}

// CanSearch reports whether the search button is enabled.
func (s *Session) CanSearch() bool {
	return !s.Loading() && len(s.state.Zipcode) == ZipcodeLength
}

// Submit handles a search trigger (button or Enter).
//
// While loading it does nothing and returns false. An input that is not
// exactly five digits moves to the error state without a call. Otherwise the
// session enters loading, prior results and error are cleared, and the
// zipcode to query is returned with true.
func (s *Session) Submit() (string, bool) {
	if s.Loading() {
		return "", false
	}

	zipcode := s.state.Zipcode
	if !zipcodePattern.MatchString(zipcode) {
		s.state.Status = StatusError
		s.state.ErrorMessage = MsgInvalidZipcode
		s.state.Results = nil
		s.state.searched = zipcode
		return "", false
	}

	s.state.Status = StatusLoading
	s.state.ErrorMessage = ""
	s.state.Results = nil
	s.state.searched = zipcode
	return zipcode, true
}

// Complete applies the outcome of the in-flight search. Calls outside the
// loading state are ignored. The error text is never stored.
func (s *Session) Complete(results []model.Therapist, err error) {
	if !s.Loading() {
		return
	}

	if err != nil {
		s.state.Status = StatusError
		s.state.ErrorMessage = MsgServiceFailed
		s.state.Results = nil
		return
	}

	if results == nil {
		results = []model.Therapist{}
	}
	s.state.Status = StatusResults
	s.state.Results = results
}

// Search runs Submit, the finder call and Complete back to back. It returns
// whether a call was made. Synchronous front ends (HTTP, one-shot CLI) use it;
// the TUI splits the steps across its event loop instead.
func (s *Session) Search(ctx context.Context, finder Finder) bool {
	zipcode, ok := s.Submit()
	if !ok {
		return false
	}
	results, err := finder.FindTherapists(ctx, zipcode)
	s.Complete(results, err)
	return true
}

func digitsOnly(value string) string {
	out := make([]rune, 0, len(value))
	for _, r := range value {
		// ASCII only
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return string(out)
}

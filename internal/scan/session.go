package scan

import "github.com/easyface/easyface/internal/registry"

// State is the scan session lifecycle.
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return "idle"
}

// Session is the pure scanning state: an ordered candidate list, the index
// of the highlighted entry and the paused flag. Index is always within
// [0, len) while the list is non-empty; an empty list means idle.
type Session struct {
	candidates []registry.Candidate
	index      int
	paused     bool
}

// Load replaces the candidate list, rewinds and un-pauses. It reports
// whether the session is now non-empty.
func (s *Session) Load(c []registry.Candidate) bool {
	s.candidates = append([]registry.Candidate(nil), c...)
	s.index = 0
	s.paused = false
	return len(s.candidates) > 0
}

// Clear returns the session to idle.
func (s *Session) Clear() {
	s.candidates = nil
	s.index = 0
	s.paused = false
}

// Advance moves to the next candidate, wrapping. No-op while idle.
func (s *Session) Advance() {
	if n := len(s.candidates); n > 0 {
		s.index = (s.index + 1) % n
	}
}

// Current returns the highlighted candidate.
func (s *Session) Current() (registry.Candidate, bool) {
	if len(s.candidates) == 0 {
		return registry.Candidate{}, false
	}
	return s.candidates[s.index], true
}

// Select moves the highlight to the candidate with id, if listed.
func (s *Session) Select(id string) bool {
	for i, c := range s.candidates {
		if c.ID == id {
			s.index = i
			return true
		}
	}
	return false
}

func (s *Session) Len() int      { return len(s.candidates) }
func (s *Session) Index() int    { return s.index }
func (s *Session) Paused() bool  { return s.paused }
func (s *Session) SetPaused(p bool) {
	if len(s.candidates) > 0 {
		s.paused = p
	}
}

// State derives the lifecycle state.
func (s *Session) State() State {
	switch {
	case len(s.candidates) == 0:
		return Idle
	case s.paused:
		return Paused
	}
	return Running
}

// Candidates returns a copy of the list.
func (s *Session) Candidates() []registry.Candidate {
	return append([]registry.Candidate(nil), s.candidates...)
}

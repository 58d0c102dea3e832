package focus

// Section names one region of the communication board.
type Section int

const (
	Controls Section = iota
	Categories
	Phrases
)

func (s Section) String() string {
	switch s {
	case Controls:
		return "controls"
	case Categories:
		return "categories"
	case Phrases:
		return "phrases"
	}
	return "unknown"
}

// Sectioned walks controls, categories and phrases as one ring. Phrases are
// only entered while the phrase list is non-empty.
type Sectioned struct {
	domain  string
	sources [3]Source
	lists   [3][]string
	sink    Sink
	section Section
	index   int
}

// NewSectioned returns a cursor positioned on the first control.
func NewSectioned(domain string, controls, categories, phrases Source, sink Sink) *Sectioned {
	return &Sectioned{
		domain:  domain,
		sources: [3]Source{controls, categories, phrases},
		sink:    sink,
	}
}

// Domain returns the highlight domain.
func (s *Sectioned) Domain() string { return s.domain }

// Refresh re-reads all three section lists.
func (s *Sectioned) Refresh() {
	for i, src := range s.sources {
		if src == nil {
			s.lists[i] = nil
			continue
		}
		s.lists[i] = src()
	}
}

// Position returns the current section and index.
func (s *Sectioned) Position() (Section, int) { return s.section, s.index }

// Current returns the focused id.
func (s *Sectioned) Current() (string, bool) {
	l := s.lists[s.section]
	if s.index >= 0 && s.index < len(l) {
		return l[s.index], true
	}
	return "", false
}

// Move steps by dir (+1 or -1), crossing section boundaries.
func (s *Sectioned) Move(dir int) {
	s.Refresh()
	n := len(s.lists[s.section])
	next := s.index + dir
	if next >= 0 && next < n {
		s.index = next
		s.focus()
		return
	}
	phrases := len(s.lists[Phrases])
	switch s.section {
	case Controls:
		if dir > 0 {
			s.MoveToCategories(0)
		} else if phrases > 0 {
			s.MoveToPhrases(phrases - 1)
		}
	case Categories:
		if dir > 0 && phrases > 0 {
			s.MoveToPhrases(0)
		} else if dir < 0 {
			s.MoveToControls(len(s.lists[Controls]) - 1)
		}
	case Phrases:
		if dir > 0 {
			s.MoveToControls(0)
		} else {
			s.MoveToCategories(len(s.lists[Categories]) - 1)
		}
	}
}

func (s *Sectioned) MoveNext()     { s.Move(1) }
func (s *Sectioned) MovePrevious() { s.Move(-1) }

// MoveToControls refreshes the lists and focuses controls[i].
func (s *Sectioned) MoveToControls(i int) { s.moveTo(Controls, i) }

// MoveToCategories refreshes the lists and focuses categories[i].
func (s *Sectioned) MoveToCategories(i int) { s.moveTo(Categories, i) }

// MoveToPhrases refreshes the lists and focuses phrases[i]. It is a no-op
// while no phrases are shown.
func (s *Sectioned) MoveToPhrases(i int) {
	s.Refresh()
	if len(s.lists[Phrases]) == 0 {
		return
	}
	s.moveTo(Phrases, i)
}

// Sync adopts id as the current position, searching all sections.
func (s *Sectioned) Sync(id string) bool {
	s.Refresh()
	for sec := Controls; sec <= Phrases; sec++ {
		if i := indexOf(s.lists[sec], id); i >= 0 {
			s.section, s.index = sec, i
			s.focus()
			return true
		}
	}
	return false
}

func (s *Sectioned) moveTo(sec Section, i int) {
	s.Refresh()
	s.section = sec
	s.index = max(0, min(i, len(s.lists[sec])-1))
	s.focus()
}

func (s *Sectioned) focus() {
	if id, ok := s.Current(); ok {
		apply(s.sink, s.domain, id)
	}
}

package focus

// Flat is a wrapping index over a rebuildable list.
type Flat struct {
	domain string
	source Source
	sink   Sink
	ids    []string
	index  int
}

// NewFlat returns a cursor over source; the list is re-read on every move.
func NewFlat(domain string, source Source, sink Sink) *Flat {
	return &Flat{domain: domain, source: source, sink: sink}
}

// Domain returns the highlight domain.
func (f *Flat) Domain() string { return f.domain }

// Refresh re-reads the list and clamps the index into range.
func (f *Flat) Refresh() {
	if f.source == nil {
		f.ids = nil
	} else {
		f.ids = f.source()
	}
	if len(f.ids) == 0 {
		f.index = 0
		return
	}
	if f.index >= len(f.ids) {
		f.index = len(f.ids) - 1
	}
}

// Move advances by dir with wraparound. No-op on an empty list.
func (f *Flat) Move(dir int) {
	f.Refresh()
	n := len(f.ids)
	if n == 0 {
		return
	}
	f.index = ((f.index+dir)%n + n) % n
	apply(f.sink, f.domain, f.ids[f.index])
}

func (f *Flat) MoveNext()     { f.Move(1) }
func (f *Flat) MovePrevious() { f.Move(-1) }

// MoveTo focuses position i, clamped into range.
func (f *Flat) MoveTo(i int) {
	f.Refresh()
	if len(f.ids) == 0 {
		return
	}
	f.index = max(0, min(i, len(f.ids)-1))
	apply(f.sink, f.domain, f.ids[f.index])
}

// Sync adopts id as the current position if it belongs to the list. Used
// after native tab traversal moved focus behind the cursor's back.
func (f *Flat) Sync(id string) bool {
	f.Refresh()
	i := indexOf(f.ids, id)
	if i < 0 {
		return false
	}
	f.index = i
	apply(f.sink, f.domain, id)
	return true
}

// Index returns the current position.
func (f *Flat) Index() int { return f.index }

// Current returns the focused id.
func (f *Flat) Current() (string, bool) {
	if f.index < len(f.ids) {
		return f.ids[f.index], true
	}
	return "", false
}

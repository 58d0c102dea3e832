// Package registry collects the interactive elements each screen publishes and
// turns them into ordered scan candidates.
package registry

import (
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/easyface/easyface/internal/screen"
)

// MaxLabelWidth bounds announced labels so status lines stay on one row.
const MaxLabelWidth = 40

// Visibility mirrors the ways an element can be laid out but not shown.
type Visibility int

const (
	Visible Visibility = iota
	// Hidden keeps the element's box but does not paint it.
	Hidden
	// Collapsed removes the element from layout.
	Collapsed
)

// Bounds is a cell rectangle in document coordinates.
type Bounds struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// Contains reports whether the cell (x, y) falls inside b.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.Left && x < b.Left+b.Width && y >= b.Top && y < b.Top+b.Height
}

// Element is one interactive control as currently laid out.
type Element struct {
	ID    string
	Label string
	// Domain groups elements that share a keyboard cursor.
	Domain     string
	Bounds     Bounds
	Scannable  bool
	Disabled   bool
	Visibility Visibility
	// Opacity in [0,1]; zero means fully transparent.
	Opacity float64
}

// Candidate is an element eligible for scanning on the active screen.
type Candidate struct {
	ID     string
	Label  string
	Screen screen.Screen
	Top    int
	Left   int
}

// Eligible applies the candidate filter: scannable, enabled, sized and visible.
func (e Element) Eligible() bool {
	if !e.Scannable || e.Disabled {
		return false
	}
	if e.Bounds.Width <= 0 || e.Bounds.Height <= 0 {
		return false
	}
	return e.Visibility == Visible && e.Opacity > 0
}

// Provider publishes the elements of one subtree.
type Provider interface {
	Elements() []Element
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() []Element

func (f ProviderFunc) Elements() []Element { return f() }

// Registry maps screens to their element providers.
type Registry struct {
	screens    map[screen.Screen]Provider
	navigation Provider
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{screens: make(map[screen.Screen]Provider)}
}

// Register sets the provider for a screen's own subtree.
func (r *Registry) Register(s screen.Screen, p Provider) {
	r.screens[s] = p
}

// RegisterNavigation sets the global navigation subtree (the sidebar menu).
func (r *Registry) RegisterNavigation(p Provider) {
	r.navigation = p
}

// Navigation returns the navigation subtree, which is painted on every screen.
func (r *Registry) Navigation() []Element {
	if r.navigation == nil {
		return nil
	}
	return r.navigation.Elements()
}

// Elements returns the raw element list for s in registration order,
// including the navigation subtree on the welcome screen.
func (r *Registry) Elements(s screen.Screen) []Element {
	var out []Element
	if s == screen.Welcome && r.navigation != nil {
		out = append(out, r.navigation.Elements()...)
	}
	if p, ok := r.screens[s]; ok && p != nil {
		out = append(out, p.Elements()...)
	}
	return out
}

// Collect returns the eligible candidates for s in reading order.
// It is recomputed on every call.
func (r *Registry) Collect(s screen.Screen) []Candidate {
	elems := r.Elements(s)
	out := make([]Candidate, 0, len(elems))
	for _, e := range elems {
		if !e.Eligible() {
			continue
		}
		out = append(out, Candidate{
			ID:     e.ID,
			Label:  labelOf(e),
			Screen: s,
			Top:    e.Bounds.Top,
			Left:   e.Bounds.Left,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Top != out[j].Top {
			return out[i].Top < out[j].Top
		}
		return out[i].Left < out[j].Left
	})
	return out
}

// Lookup finds an element by id on s, whether or not it is eligible.
func (r *Registry) Lookup(s screen.Screen, id string) (Element, bool) {
	for _, e := range r.Elements(s) {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}

// Present reports whether id is still an eligible candidate on s.
func (r *Registry) Present(s screen.Screen, id string) bool {
	e, ok := r.Lookup(s, id)
	return ok && e.Eligible()
}

// HitTest returns the enabled, visible element containing (x, y). The
// navigation subtree is painted on every screen, so it is always searched.
func (r *Registry) HitTest(s screen.Screen, x, y int) (Element, bool) {
	elems := r.Elements(s)
	if s != screen.Welcome && r.navigation != nil {
		elems = append(elems, r.navigation.Elements()...)
	}
	for i := len(elems) - 1; i >= 0; i-- {
		e := elems[i]
		if e.Disabled || e.Visibility != Visible {
			continue
		}
		if e.Bounds.Contains(x, y) {
			return e, true
		}
	}
	return Element{}, false
}

func labelOf(e Element) string {
	label := strings.Join(strings.Fields(e.Label), " ")
	if label == "" {
		label = e.ID
	}
	return runewidth.Truncate(label, MaxLabelWidth, "…")
}

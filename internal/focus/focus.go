// Package focus implements the keyboard cursors used by individual screens:
// a wrapping flat list, a clamped grid with column spans, and a three-section
// board cursor.
package focus

// Sink applies focus changes to the view. Highlight marks id as the single
// navigation-highlighted element of domain, clearing any previous one.
type Sink interface {
	Focus(id string)
	Highlight(domain, id string)
}

// Source returns the live element ids of a cursor's list, in order.
type Source func() []string

// Static returns a Source over a fixed list.
func Static(ids ...string) Source {
	return func() []string { return ids }
}

func apply(sink Sink, domain, id string) {
	if sink == nil || id == "" {
		return
	}
	sink.Focus(id)
	sink.Highlight(domain, id)
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

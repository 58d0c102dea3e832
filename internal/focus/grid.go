package focus

// Grid is a clamped two-dimensional cursor over slot ids. Adjacent cells
// holding the same slot form a span; the cursor always rests on a span's
// first column.
type Grid struct {
	domain string
	slots  [][]string
	sink   Sink
	row    int
	col    int
}

// NewGrid builds a cursor over slots, positioned at (0, 0).
func NewGrid(domain string, slots [][]string, sink Sink) *Grid {
	return &Grid{domain: domain, slots: slots, sink: sink}
}

// Domain returns the highlight domain.
func (g *Grid) Domain() string { return g.domain }

// Move shifts by (dr, dc), clamping to the grid, then snaps the column back
// to the start of the span it lands in. A right move from a span's first
// column therefore stays on the span.
func (g *Grid) Move(dr, dc int) {
	if len(g.slots) == 0 {
		return
	}
	row := clamp(g.row+dr, 0, len(g.slots)-1)
	cells := g.slots[row]
	if len(cells) == 0 {
		return
	}
	col := g.spanStart(row, clamp(g.col+dc, 0, len(cells)-1))
	g.row, g.col = row, col
	apply(g.sink, g.domain, g.slots[row][col])
}

func (g *Grid) MoveNext()     { g.Move(0, 1) }
func (g *Grid) MovePrevious() { g.Move(0, -1) }

// Position returns the current (row, col).
func (g *Grid) Position() (int, int) { return g.row, g.col }

// Current returns the slot under the cursor.
func (g *Grid) Current() string {
	if g.row < len(g.slots) && g.col < len(g.slots[g.row]) {
		return g.slots[g.row][g.col]
	}
	return ""
}

// Sync moves the cursor to the first cell holding id.
func (g *Grid) Sync(id string) bool {
	for r, cells := range g.slots {
		for c, slot := range cells {
			if slot == id {
				g.row, g.col = r, c
				apply(g.sink, g.domain, id)
				return true
			}
		}
	}
	return false
}

// Contains reports whether id is one of the grid's slots.
func (g *Grid) Contains(id string) bool {
	for _, cells := range g.slots {
		if indexOf(cells, id) >= 0 {
			return true
		}
	}
	return false
}

func (g *Grid) spanStart(row, col int) int {
	cells := g.slots[row]
	for col > 0 && cells[col-1] == cells[col] {
		col--
	}
	return col
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

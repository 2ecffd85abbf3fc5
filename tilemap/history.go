package tilemap

import "log"

// MaxUndo is the number of placements that can be undone.
const MaxUndo = 10

// Action records one cell's type before and after a placement. X and Y are
// array coordinates. An absent type means the cell was (or becomes) empty.
type Action struct {
	X, Y    int
	Prev    string
	HasPrev bool
	Next    string
	HasNext bool
}

// History holds the undo and redo stacks. The top of each stack is the last
// element of its slice.
type History struct {
	undo []Action
	redo []Action
}

// Record pushes a new placement and invalidates everything redoable.
func (h *History) Record(a Action) {
	h.undo = append(h.undo, a)
	if len(h.undo) > MaxUndo {
		// drop oldest
		h.undo = append(h.undo[:0:0], h.undo[len(h.undo)-MaxUndo:]...)
	}
	h.redo = h.redo[:0]
}

// Undo reverts the most recent action on g.
func (h *History) Undo(g *Grid) bool {
	n := len(h.undo)
	if n == 0 {
		return false
	}
	a := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.redo = append(h.redo, a)
	g.restore(a.X, a.Y, a.Prev, a.HasPrev)
	return true
}

// Redo reapplies the most recently undone action on g.
func (h *History) Redo(g *Grid) bool {
	n := len(h.redo)
	if n == 0 {
		return false
	}
	a := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, a)
	g.restore(a.X, a.Y, a.Next, a.HasNext)
	return true
}

func (h *History) UndoDepth() int { return len(h.undo) }

func (h *History) RedoDepth() int { return len(h.redo) }

// Reset empties both stacks.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

// restore puts typeName (or nothing) into the array cell without recording.
func (g *Grid) restore(ax, ay int, typeName string, present bool) {
	g.cells[ax][ay] = nil
	if present && typeName != "" {
		if factory, ok := g.catalog.Resolve(typeName); ok {
			t := factory()
			g.cells[ax][ay] = &t
		} else {
			log.Printf("tilemap: history references unknown tile %q, leaving cell empty", typeName)
		}
	}
	x, y := g.ToLogical(ax, ay)
	g.notify(Change{X: x, Y: y, Kind: CellChanged})
	g.RefreshNeighborhood(x, y)
}

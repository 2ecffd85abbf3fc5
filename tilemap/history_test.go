package tilemap

import "testing"

func TestUndoRedoRestoresCell(t *testing.T) {
	cases := []struct {
		name   string
		before string // "" = empty
		place  string
	}{
		{"into_empty", "", "Grass"},
		{"over_other_type", "Plank", "Grass"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := newTestGrid(t, 4, 4)
			if c.before != "" {
				g.PlaceTile(0, 0, c.before)
			}
			g.PlaceTile(0, 0, c.place)

			if !g.Undo() {
				t.Fatalf("Undo should succeed")
			}
			tl, ok := g.TileAt(0, 0)
			if c.before == "" && ok {
				t.Fatalf("expected empty cell after undo, got %s", tl.Type)
			}
			if c.before != "" && (!ok || tl.Type != c.before) {
				t.Fatalf("expected %s after undo, got %+v (ok=%v)", c.before, tl, ok)
			}

			if !g.Redo() {
				t.Fatalf("Redo should succeed")
			}
			tl, ok = g.TileAt(0, 0)
			if !ok || tl.Type != c.place {
				t.Fatalf("expected %s after redo, got %+v (ok=%v)", c.place, tl, ok)
			}
		})
	}
}

func TestUndoDepthIsBounded(t *testing.T) {
	g := newTestGrid(t, 8, 8)
	for i := 0; i < MaxUndo+1; i++ {
		x := i%8 - 4
		y := i/8 - 4
		if !g.PlaceTile(x, y, "Grass") {
			t.Fatalf("PlaceTile(%d,%d) failed", x, y)
		}
	}
	if got := g.History().UndoDepth(); got != MaxUndo {
		t.Fatalf("expected undo depth %d, got %d", MaxUndo, got)
	}
	succeeded := 0
	for i := 0; i < MaxUndo+1; i++ {
		if g.Undo() {
			succeeded++
		}
	}
	if succeeded != MaxUndo {
		t.Fatalf("expected %d successful undos, got %d", MaxUndo, succeeded)
	}
	// the first placement fell off the stack
	if !g.HasTileAt(-4, -4) {
		t.Fatalf("oldest placement should not be undoable")
	}
	if g.Len() != 1 {
		t.Fatalf("expected 1 remaining tile, got %d", g.Len())
	}
}

func TestHistoryKeepsMostRecentOrder(t *testing.T) {
	var h History
	for i := 0; i < 15; i++ {
		h.Record(Action{X: i})
	}
	if h.UndoDepth() != MaxUndo {
		t.Fatalf("expected depth %d, got %d", MaxUndo, h.UndoDepth())
	}
	for i := 0; i < MaxUndo; i++ {
		if h.undo[i].X != 5+i {
			t.Fatalf("entry %d: expected X=%d, got %d", i, 5+i, h.undo[i].X)
		}
	}
}

func TestNewPlacementClearsRedo(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	g.PlaceTile(0, 0, "Grass")
	g.Undo()
	if g.History().RedoDepth() != 1 {
		t.Fatalf("expected redo depth 1")
	}
	g.PlaceTile(1, 1, "Dirt")
	if g.Redo() {
		t.Fatalf("Redo should be a no-op after a new placement")
	}
	if g.HasTileAt(0, 0) {
		t.Fatalf("undone tile should stay undone")
	}
}

func TestUndoRedoDoNotClearEachOther(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	g.PlaceTile(0, 0, "Grass")
	g.PlaceTile(1, 0, "Grass")
	g.PlaceTile(-1, 0, "Grass")
	g.Undo()
	g.Undo()
	if g.History().UndoDepth() != 1 || g.History().RedoDepth() != 2 {
		t.Fatalf("unexpected depths %d/%d", g.History().UndoDepth(), g.History().RedoDepth())
	}
	g.Redo()
	if g.History().UndoDepth() != 2 || g.History().RedoDepth() != 1 {
		t.Fatalf("unexpected depths %d/%d", g.History().UndoDepth(), g.History().RedoDepth())
	}
	if !g.HasTileAt(1, 0) || g.HasTileAt(-1, 0) {
		t.Fatalf("redo restored the wrong cell")
	}
}

func TestEmptyHistoryIsNoop(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	if g.Undo() {
		t.Fatalf("Undo on empty history should return false")
	}
	if g.Redo() {
		t.Fatalf("Redo on empty history should return false")
	}
}

func TestUndoWithUnresolvableTypeLeavesCellEmpty(t *testing.T) {
	cat := MapCatalog{"Old": Ground, "New": Ground}
	g, err := New(4, 4, 1, cat)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.PlaceTile(0, 0, "Old")
	g.PlaceTile(0, 0, "New")
	delete(cat, "Old")
	if !g.Undo() {
		t.Fatalf("Undo should still consume the action")
	}
	if g.HasTileAt(0, 0) {
		t.Fatalf("expected empty cell when the previous type is gone")
	}
}

func TestUndoRefreshesNeighbors(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	g.PlaceTile(0, 0, "Grass")
	g.PlaceTile(0, 1, "Grass")
	if tl, _ := g.TileAt(0, 0); tl.Variant != VariantBottom {
		t.Fatalf("expected bottom variant, got %s", tl.Variant)
	}
	g.Undo()
	if tl, _ := g.TileAt(0, 0); tl.Variant != VariantDefault {
		t.Fatalf("expected default variant after undo, got %s", tl.Variant)
	}
	g.Redo()
	if tl, _ := g.TileAt(0, 0); tl.Variant != VariantBottom {
		t.Fatalf("expected bottom variant after redo, got %s", tl.Variant)
	}
}

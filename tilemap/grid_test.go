package tilemap

import "testing"

var testCatalog = MapCatalog{
	"Grass": Ground,
	"Dirt":  Ground,
	"Plank": Platform,
	"Vine":  Decoration,
	"Pool":  Water,
}

func newTestGrid(t *testing.T, width, height int) *Grid {
	t.Helper()
	g, err := New(width, height, 1, testCatalog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewRejectsInvalidArguments(t *testing.T) {
	cases := []struct {
		name     string
		w, h     int
		tileSize float64
		catalog  Catalog
	}{
		{"zero_width", 0, 4, 1, testCatalog},
		{"negative_height", 4, -1, 1, testCatalog},
		{"zero_tile_size", 4, 4, 0, testCatalog},
		{"nil_catalog", 4, 4, 1, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New(c.w, c.h, c.tileSize, c.catalog); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestOffsetAndBounds(t *testing.T) {
	cases := []struct {
		name       string
		w, h       int
		tileSize   float64
		wantOffset int
		inside     [][2]int
		outside    [][2]int
	}{
		{"even", 4, 4, 1, 2, [][2]int{{-2, -2}, {1, 1}, {0, 0}}, [][2]int{{2, 0}, {0, 2}, {-3, 0}}},
		{"odd_width_halves_down", 5, 5, 1, 2, [][2]int{{-2, -2}, {1, 1}}, [][2]int{{2, 2}}},
		{"short_height", 10, 4, 1, 5, [][2]int{{-5, -5}, {4, -2}}, [][2]int{{0, -1}, {5, -5}}},
		{"scaled", 4, 4, 0.5, 1, [][2]int{{-1, -1}, {0, 0}}, [][2]int{{1, 0}, {-2, 0}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := New(c.w, c.h, c.tileSize, testCatalog)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if g.Offset() != c.wantOffset {
				t.Fatalf("expected offset %d, got %d", c.wantOffset, g.Offset())
			}
			for _, p := range c.inside {
				if !g.InBounds(p[0], p[1]) {
					t.Fatalf("expected (%d,%d) in bounds", p[0], p[1])
				}
			}
			for _, p := range c.outside {
				if g.InBounds(p[0], p[1]) {
					t.Fatalf("expected (%d,%d) out of bounds", p[0], p[1])
				}
				if g.PlaceTile(p[0], p[1], "Grass") {
					t.Fatalf("PlaceTile(%d,%d) should fail out of bounds", p[0], p[1])
				}
			}
		})
	}
}

func TestPlaceTileThenQuery(t *testing.T) {
	g := newTestGrid(t, 6, 6)
	minX, minY, maxX, maxY := g.Bounds()
	for name, cat := range testCatalog {
		for x := minX; x <= maxX; x++ {
			for y := minY; y <= maxY; y++ {
				if !g.PlaceTile(x, y, name) {
					t.Fatalf("PlaceTile(%d,%d,%s) failed", x, y, name)
				}
				if !g.HasTileAt(x, y) {
					t.Fatalf("HasTileAt(%d,%d) false after placement", x, y)
				}
				if !g.HasTileOfType(x, y, cat) {
					t.Fatalf("HasTileOfType(%d,%d,%s) false after placing %s", x, y, cat, name)
				}
			}
		}
	}
}

func TestPlaceTileUnknownTypeIsNoop(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	if g.PlaceTile(0, 0, "Lava") {
		t.Fatalf("unknown type should not place")
	}
	if g.HasTileAt(0, 0) || g.History().UndoDepth() != 0 {
		t.Fatalf("unknown type should leave no trace")
	}
}

func TestQueriesOutOfBounds(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	if g.HasTileAt(100, 0) || g.HasTileOfType(0, -100, Ground) {
		t.Fatalf("out of bounds queries should be false")
	}
}

func TestSameTypePlacementRecordsNothing(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	g.PlaceTile(0, 0, "Grass")
	g.PlaceTile(0, 0, "Grass")
	if got := g.History().UndoDepth(); got != 1 {
		t.Fatalf("expected 1 undo entry, got %d", got)
	}
	g.PlaceTile(0, 0, "Dirt")
	if got := g.History().UndoDepth(); got != 2 {
		t.Fatalf("expected 2 undo entries, got %d", got)
	}
}

func TestDrawRectangle(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	var order [][2]int
	g.SetListener(func(c Change) {
		if c.Kind == CellChanged {
			order = append(order, [2]int{c.X, c.Y})
		}
	})
	if !g.DrawRectangle(0, 0, 2, 2, "Dirt") {
		t.Fatalf("DrawRectangle should succeed")
	}
	want := [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	if len(order) != len(want) {
		t.Fatalf("expected %d placements, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("placement %d: expected %v, got %v", i, want[i], order[i])
		}
	}
	if g.Len() != 4 {
		t.Fatalf("expected 4 tiles, got %d", g.Len())
	}
	if got := g.History().UndoDepth(); got != 4 {
		t.Fatalf("expected 4 undo entries, got %d", got)
	}
}

func TestDrawRectangleRejectsPartialOverlap(t *testing.T) {
	cases := []struct {
		name       string
		x, y, w, h int
	}{
		{"past_right_edge", 1, 0, 2, 1},
		{"past_top_edge", 0, 1, 1, 2},
		{"before_left_edge", -3, 0, 2, 1},
		{"zero_width", 0, 0, 0, 2},
		{"negative_height", 0, 0, 1, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := newTestGrid(t, 4, 4)
			if g.DrawRectangle(c.x, c.y, c.w, c.h, "Dirt") {
				t.Fatalf("expected rejection")
			}
			if g.Len() != 0 {
				t.Fatalf("rejected rectangle placed %d tiles", g.Len())
			}
		})
	}
}

func TestDrawRectangleFullGrid(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	if !g.DrawRectangle(-2, -2, 4, 4, "Dirt") {
		t.Fatalf("rectangle covering the grid should succeed")
	}
	if g.Len() != 16 {
		t.Fatalf("expected 16 tiles, got %d", g.Len())
	}
	if got := g.History().UndoDepth(); got != MaxUndo {
		t.Fatalf("expected undo depth %d, got %d", MaxUndo, got)
	}
}

func TestClearMap(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	g.PlaceTile(0, 0, "Grass")
	g.PlaceTile(1, 0, "Grass")
	g.Undo()
	cleared := 0
	g.SetListener(func(c Change) {
		if c.Kind == Cleared {
			cleared++
		}
	})
	g.ClearMap()
	g.ClearMap()
	if g.Len() != 0 {
		t.Fatalf("expected empty grid")
	}
	if g.History().UndoDepth() != 0 || g.History().RedoDepth() != 0 {
		t.Fatalf("expected empty history")
	}
	if g.Undo() || g.Redo() {
		t.Fatalf("undo/redo should be no-ops after clear")
	}
	if cleared != 2 {
		t.Fatalf("expected 2 clear notifications, got %d", cleared)
	}
}

func TestEachVisitsArrayOrder(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	g.PlaceTile(1, -2, "Grass")
	g.PlaceTile(-2, 1, "Plank")
	g.PlaceTile(-2, -1, "Vine")
	var got []string
	g.Each(func(x, y int, tl Tile) {
		got = append(got, tl.Type)
	})
	want := []string{"Vine", "Plank", "Grass"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

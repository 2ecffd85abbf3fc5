package tilemap

import (
	"errors"
	"math"
)

// ChangeKind tells a listener what happened at a cell.
type ChangeKind int

const (
	CellChanged ChangeKind = iota
	VariantChanged
	Cleared
)

// Change is sent to the grid listener after a mutation. X and Y are logical
// coordinates and are zero for Cleared.
type Change struct {
	X, Y int
	Kind ChangeKind
}

// Grid is a fixed-size tile grid addressed by logical coordinates centered
// on the origin.
type Grid struct {
	width    int
	height   int
	tileSize float64
	offset   int
	cells    [][]*Tile // [arrayX][arrayY]
	catalog  Catalog
	history  History
	listener func(Change)
}

// New allocates a width x height grid. Dimensions are fixed for the life of
// the grid.
func New(width, height int, tileSize float64, catalog Catalog) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("tilemap: grid dimensions must be positive")
	}
	if tileSize <= 0 {
		return nil, errors.New("tilemap: tile size must be positive")
	}
	if catalog == nil {
		return nil, errors.New("tilemap: nil catalog")
	}
	cells := make([][]*Tile, width)
	for x := range cells {
		cells[x] = make([]*Tile, height)
	}
	return &Grid{
		width:    width,
		height:   height,
		tileSize: tileSize,
		offset:   int(math.Floor(float64(width/2) * tileSize)),
		cells:    cells,
		catalog:  catalog,
	}, nil
}

func (g *Grid) Width() int { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) TileSize() float64 { return g.tileSize }
func (g *Grid) Offset() int { return g.offset }
func (g *Grid) Catalog() Catalog { return g.catalog }
func (g *Grid) History() *History { return &g.history }
func (g *Grid) SetListener(fn func(Change)) { g.listener = fn }

// ToArray converts logical coordinates to array coordinates.
func (g *Grid) ToArray(x, y int) (int, int) {
	return x + g.offset, y + g.offset
}

// ToLogical converts array coordinates to logical coordinates.
func (g *Grid) ToLogical(ax, ay int) (int, int) {
	return ax - g.offset, ay - g.offset
}

// InBounds reports whether the logical coordinate addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	if x < -g.offset || x >= g.offset || y < -g.offset || y >= g.offset {
		return false
	}
	ax, ay := g.ToArray(x, y)
	return ax >= 0 && ax < g.width && ay >= 0 && ay < g.height
}

// Bounds returns the inclusive logical extent of addressable cells. The
// extent is empty (min > max) when the offset is zero.
func (g *Grid) Bounds() (minX, minY, maxX, maxY int) {
	minX, minY = -g.offset, -g.offset
	maxX = min(g.offset, g.width-g.offset) - 1
	maxY = min(g.offset, g.height-g.offset) - 1
	return
}

// PlaceTile puts a new instance of typeName at (x, y). It returns false when
// the coordinate is out of bounds or the type cannot be resolved.
func (g *Grid) PlaceTile(x, y int, typeName string) bool {
	if !g.InBounds(x, y) {
		return false
	}
	factory, ok := g.catalog.Resolve(typeName)
	if !ok {
		return false
	}
	ax, ay := g.ToArray(x, y)
	prev := g.cells[ax][ay]
	if prev == nil || prev.Type != typeName {
		a := Action{X: ax, Y: ay, Next: typeName, HasNext: true}
		if prev != nil {
			a.Prev, a.HasPrev = prev.Type, true
		}
		g.history.Record(a)
	}
	t := factory()
	g.cells[ax][ay] = &t
	g.notify(Change{X: x, Y: y, Kind: CellChanged})
	g.RefreshNeighborhood(x, y)
	return true
}

// DrawRectangle fills [startX, startX+w) x [startY, startY+h) with typeName.
// The rectangle must lie entirely inside the grid; otherwise nothing is
// placed and false is returned.
func (g *Grid) DrawRectangle(startX, startY, w, h int, typeName string) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	if !g.InBounds(startX, startY) || !g.InBounds(startX+w-1, startY+h-1) {
		return false
	}
	for x := startX; x < startX+w; x++ {
		for y := startY; y < startY+h; y++ {
			g.PlaceTile(x, y, typeName)
		}
	}
	return true
}

// HasTileOfType reports whether (x, y) holds a tile of category c.
func (g *Grid) HasTileOfType(x, y int, c Category) bool {
	t, ok := g.TileAt(x, y)
	return ok && t.Category == c
}

// HasTileAt reports whether (x, y) is occupied.
func (g *Grid) HasTileAt(x, y int) bool {
	_, ok := g.TileAt(x, y)
	return ok
}

// TileAt returns a copy of the occupant of (x, y).
func (g *Grid) TileAt(x, y int) (Tile, bool) {
	if !g.InBounds(x, y) {
		return Tile{}, false
	}
	ax, ay := g.ToArray(x, y)
	if t := g.cells[ax][ay]; t != nil {
		return *t, true
	}
	return Tile{}, false
}

// Each calls fn for every occupied cell, x outer and y inner in array
// order, with logical coordinates.
func (g *Grid) Each(fn func(x, y int, t Tile)) {
	for ax := 0; ax < g.width; ax++ {
		for ay := 0; ay < g.height; ay++ {
			if t := g.cells[ax][ay]; t != nil {
				x, y := g.ToLogical(ax, ay)
				fn(x, y, *t)
			}
		}
	}
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	n := 0
	g.Each(func(int, int, Tile) { n++ })
	return n
}

func (g *Grid) Undo() bool { return g.history.Undo(g) }

func (g *Grid) Redo() bool { return g.history.Redo(g) }

// ClearMap empties every cell and both history stacks.
func (g *Grid) ClearMap() {
	for ax := range g.cells {
		clear(g.cells[ax])
	}
	g.history.Reset()
	g.notify(Change{Kind: Cleared})
}

// RefreshNeighborhood recomputes the variant of Ground tiles at (x, y) and
// its four orthogonal neighbors.
func (g *Grid) RefreshNeighborhood(x, y int) {
	g.refreshVariant(x, y)
	g.refreshVariant(x, y+1)
	g.refreshVariant(x, y-1)
	g.refreshVariant(x-1, y)
	g.refreshVariant(x+1, y)
}

func (g *Grid) refreshVariant(x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	ax, ay := g.ToArray(x, y)
	t := g.cells[ax][ay]
	if t == nil || t.Category != Ground {
		return
	}
	v := ResolveVariant(g, x, y)
	if v == t.Variant {
		return
	}
	t.Variant = v
	g.notify(Change{X: x, Y: y, Kind: VariantChanged})
}

func (g *Grid) notify(c Change) {
	if g.listener != nil {
		g.listener(c)
	}
}

// Package editor drives a tile grid the way the level editor UI does: an
// edit/play mode gate, a selected tile and single-tile or rectangle tools.
package editor

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilegrid/tilemap"
	"github.com/milk9111/tilegrid/tilemap/mapcode"
)

var (
	ErrNotEditing     = errors.New("editor: not in edit mode")
	ErrNoTileSelected = errors.New("editor: no tile selected")
	ErrUnknownTile    = errors.New("editor: unknown tile")
	ErrWrongTool      = errors.New("editor: action not available with current tool")
)

type Mode int

const (
	ModeEdit Mode = iota
	ModePlay
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "Edit"
	case ModePlay:
		return "Play"
	default:
		return "Unknown"
	}
}

type Tool int

const (
	ToolSingle Tool = iota
	ToolRectangle
)

func (t Tool) String() string {
	switch t {
	case ToolSingle:
		return "Single"
	case ToolRectangle:
		return "Rectangle"
	default:
		return "Unknown"
	}
}

// Session owns the editing state around one grid.
type Session struct {
	grid     *tilemap.Grid
	catalog  tilemap.Catalog
	mode     Mode
	tool     Tool
	selected string

	dragStart *[2]int // nil if no drag in progress
	dragEnd   [2]int

	modeListeners []func(Mode)
}

func NewSession(grid *tilemap.Grid, catalog tilemap.Catalog) *Session {
	return &Session{grid: grid, catalog: catalog}
}

func (s *Session) Grid() *tilemap.Grid { return s.grid }

func (s *Session) Mode() Mode { return s.mode }

func (s *Session) IsEditing() bool { return s.mode == ModeEdit }

// OnModeChanged registers fn to run after every mode transition.
func (s *Session) OnModeChanged(fn func(Mode)) {
	s.modeListeners = append(s.modeListeners, fn)
}

// StartPlay switches from edit to play mode. It reports whether the mode
// changed.
func (s *Session) StartPlay() bool {
	if s.mode != ModeEdit {
		return false
	}
	s.setMode(ModePlay)
	return true
}

// EndPlay switches back to edit mode.
func (s *Session) EndPlay() bool {
	if s.mode != ModePlay {
		return false
	}
	s.setMode(ModeEdit)
	return true
}

func (s *Session) setMode(m Mode) {
	s.mode = m
	s.dragStart = nil
	for _, fn := range s.modeListeners {
		fn(m)
	}
}

func (s *Session) Tool() Tool { return s.tool }

// SelectTool switches tools and abandons any drag in progress.
func (s *Session) SelectTool(t Tool) {
	s.tool = t
	s.dragStart = nil
}

func (s *Session) Selected() string { return s.selected }

// SelectTile sets the tile placed by Click and rectangle drags.
func (s *Session) SelectTile(name string) error {
	if _, ok := s.catalog.Resolve(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTile, name)
	}
	s.selected = name
	return nil
}

func (s *Session) checkPlacement(want Tool) error {
	if !s.IsEditing() {
		return ErrNotEditing
	}
	if s.selected == "" {
		return ErrNoTileSelected
	}
	if s.tool != want {
		return ErrWrongTool
	}
	return nil
}

// Click places the selected tile at (x, y) with the single-tile tool.
func (s *Session) Click(x, y int) (bool, error) {
	if err := s.checkPlacement(ToolSingle); err != nil {
		return false, err
	}
	return s.grid.PlaceTile(x, y, s.selected), nil
}

// Place puts typeName at (x, y) regardless of tool and selection.
func (s *Session) Place(x, y int, typeName string) (bool, error) {
	if !s.IsEditing() {
		return false, ErrNotEditing
	}
	return s.grid.PlaceTile(x, y, typeName), nil
}

// Rect fills a rectangle with typeName regardless of tool and selection.
func (s *Session) Rect(x, y, w, h int, typeName string) (bool, error) {
	if !s.IsEditing() {
		return false, ErrNotEditing
	}
	return s.grid.DrawRectangle(x, y, w, h, typeName), nil
}

// BeginDrag starts a rectangle at (x, y).
func (s *Session) BeginDrag(x, y int) error {
	if err := s.checkPlacement(ToolRectangle); err != nil {
		return err
	}
	s.dragStart = &[2]int{x, y}
	s.dragEnd = [2]int{x, y}
	return nil
}

// DragTo moves the free corner of the rectangle in progress.
func (s *Session) DragTo(x, y int) {
	if s.dragStart == nil {
		return
	}
	s.dragEnd = [2]int{x, y}
}

// Dragging reports the rectangle in progress, normalized to its lower-left
// corner and inclusive size.
func (s *Session) Dragging() (x, y, w, h int, ok bool) {
	if s.dragStart == nil {
		return 0, 0, 0, 0, false
	}
	x, y, w, h = normalizeRect(*s.dragStart, s.dragEnd)
	return x, y, w, h, true
}

// EndDrag finishes the rectangle at (x, y) and fills it.
func (s *Session) EndDrag(x, y int) (bool, error) {
	if s.dragStart == nil {
		return false, nil
	}
	if err := s.checkPlacement(ToolRectangle); err != nil {
		s.dragStart = nil
		return false, err
	}
	s.dragEnd = [2]int{x, y}
	rx, ry, w, h := normalizeRect(*s.dragStart, s.dragEnd)
	s.dragStart = nil
	return s.grid.DrawRectangle(rx, ry, w, h, s.selected), nil
}

func normalizeRect(a, b [2]int) (x, y, w, h int) {
	x, y = min(a[0], b[0]), min(a[1], b[1])
	w = max(a[0], b[0]) - x + 1
	h = max(a[1], b[1]) - y + 1
	return
}

func (s *Session) Undo() (bool, error) {
	if !s.IsEditing() {
		return false, ErrNotEditing
	}
	return s.grid.Undo(), nil
}

func (s *Session) Redo() (bool, error) {
	if !s.IsEditing() {
		return false, ErrNotEditing
	}
	return s.grid.Redo(), nil
}

func (s *Session) Clear() error {
	if !s.IsEditing() {
		return ErrNotEditing
	}
	s.grid.ClearMap()
	return nil
}

// Export returns the map code of the grid. It is allowed in any mode.
func (s *Session) Export() string {
	return mapcode.Export(s.grid)
}

// Import replaces the grid with a map code.
func (s *Session) Import(code string) (mapcode.Result, error) {
	if !s.IsEditing() {
		return mapcode.Result{}, ErrNotEditing
	}
	return mapcode.Import(s.grid, code)
}

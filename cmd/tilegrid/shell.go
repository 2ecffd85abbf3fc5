package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/milk9111/tilegrid/editor"
	"github.com/milk9111/tilegrid/script"
	"github.com/milk9111/tilegrid/tilemap"
	"github.com/milk9111/tilegrid/tilemap/mapcode"
	"github.com/milk9111/tilegrid/tiles"
)

const helpText = `commands:
  place X Y NAME          place a tile
  rect X Y W H NAME       fill a rectangle
  select NAME             choose the tile for click/drag
  tool single|rect        choose the placement tool
  click X Y               place the selected tile (single tool)
  drag X1 Y1 X2 Y2        drag a rectangle between two corners (rect tool)
  undo | redo | clear
  export                  print the map code
  import CODE             load a map code
  paste                   load a map code from the clipboard
  inspect CODE            list the records of a map code
  list                    list placed tiles
  tiles                   list the catalog
  run SCRIPT              run a tengo script
  play | stop             switch between play and edit mode
  quit`

var errUsage = errors.New("wrong arguments")

// shell is the line-oriented command interface over a session.
type shell struct {
	session *editor.Session
	catalog *tiles.Catalog
	clip    clipboardIO
	out     io.Writer
}

func newShell(s *editor.Session, c *tiles.Catalog, clip clipboardIO, out io.Writer) *shell {
	return &shell{session: s, catalog: c, clip: clip, out: out}
}

func (sh *shell) run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	fmt.Fprint(sh.out, "> ")
	for scanner.Scan() {
		if !sh.exec(scanner.Text()) {
			return
		}
		fmt.Fprint(sh.out, "> ")
	}
}

// exec runs one command line and reports whether the shell should continue.
func (sh *shell) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	var err error
	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		fmt.Fprintln(sh.out, helpText)
	case "place":
		err = sh.place(args)
	case "rect":
		err = sh.rect(args)
	case "select":
		err = sh.selectTile(args)
	case "tool":
		err = sh.tool(args)
	case "click":
		err = sh.click(args)
	case "drag":
		err = sh.drag(args)
	case "undo":
		var ok bool
		if ok, err = sh.session.Undo(); err == nil {
			sh.report(ok, "nothing to undo")
		}
	case "redo":
		var ok bool
		if ok, err = sh.session.Redo(); err == nil {
			sh.report(ok, "nothing to redo")
		}
	case "clear":
		err = sh.session.Clear()
	case "export":
		sh.export()
	case "import":
		if len(args) != 1 {
			err = errUsage
			break
		}
		err = sh.importCode(args[0])
	case "paste":
		code, ok := sh.clip.Read()
		if !ok {
			err = errors.New("clipboard unavailable")
			break
		}
		err = sh.importCode(code)
	case "inspect":
		err = sh.inspect(args)
	case "list":
		sh.list()
	case "tiles":
		sh.listCatalog()
	case "run":
		err = sh.runScript(args)
	case "play":
		sh.report(sh.session.StartPlay(), "already playing")
	case "stop":
		sh.report(sh.session.EndPlay(), "already editing")
	default:
		err = fmt.Errorf("unknown command %q (try help)", cmd)
	}
	if err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
	}
	return true
}

func (sh *shell) report(ok bool, failure string) {
	if ok {
		fmt.Fprintln(sh.out, "ok")
		return
	}
	fmt.Fprintln(sh.out, failure)
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", errUsage, a)
		}
		out[i] = v
	}
	return out, nil
}

func (sh *shell) place(args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	xy, err := parseInts(args[:2])
	if err != nil {
		return err
	}
	ok, err := sh.session.Place(xy[0], xy[1], args[2])
	if err != nil {
		return err
	}
	sh.report(ok, "not placed: out of bounds or unknown tile")
	return nil
}

func (sh *shell) rect(args []string) error {
	if len(args) != 5 {
		return errUsage
	}
	n, err := parseInts(args[:4])
	if err != nil {
		return err
	}
	ok, err := sh.session.Rect(n[0], n[1], n[2], n[3], args[4])
	if err != nil {
		return err
	}
	sh.report(ok, "not placed: rectangle leaves the grid or unknown tile")
	return nil
}

func (sh *shell) selectTile(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := sh.session.SelectTile(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "selected %s\n", args[0])
	return nil
}

func (sh *shell) tool(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	switch strings.ToLower(args[0]) {
	case "single":
		sh.session.SelectTool(editor.ToolSingle)
	case "rect", "rectangle":
		sh.session.SelectTool(editor.ToolRectangle)
	default:
		return fmt.Errorf("%w: unknown tool %q", errUsage, args[0])
	}
	fmt.Fprintf(sh.out, "tool %s\n", sh.session.Tool())
	return nil
}

func (sh *shell) click(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	xy, err := parseInts(args)
	if err != nil {
		return err
	}
	ok, err := sh.session.Click(xy[0], xy[1])
	if err != nil {
		return err
	}
	sh.report(ok, "not placed: out of bounds")
	return nil
}

func (sh *shell) drag(args []string) error {
	if len(args) != 4 {
		return errUsage
	}
	n, err := parseInts(args)
	if err != nil {
		return err
	}
	if err := sh.session.BeginDrag(n[0], n[1]); err != nil {
		return err
	}
	ok, err := sh.session.EndDrag(n[2], n[3])
	if err != nil {
		return err
	}
	sh.report(ok, "not placed: rectangle leaves the grid")
	return nil
}

func (sh *shell) export() {
	code := sh.session.Export()
	fmt.Fprintln(sh.out, code)
	if sh.clip.Write(code) {
		fmt.Fprintln(sh.out, "copied to clipboard")
	}
}

func (sh *shell) importCode(code string) error {
	res, err := sh.session.Import(code)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "imported %d tiles, skipped %d\n", res.Placed, res.Skipped)
	return nil
}

func (sh *shell) inspect(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	entries, res, err := mapcode.Decode(args[0])
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(sh.out, "%d,%d %s\n", e.X, e.Y, e.Type)
	}
	fmt.Fprintf(sh.out, "%d records, %d malformed\n", len(entries), res.Skipped)
	return nil
}

func (sh *shell) list() {
	n := 0
	sh.session.Grid().Each(func(x, y int, t tilemap.Tile) {
		n++
		if t.Category == tilemap.Ground {
			fmt.Fprintf(sh.out, "%d,%d %s (%s, %s)\n", x, y, t.Type, t.Category, t.Variant)
			return
		}
		fmt.Fprintf(sh.out, "%d,%d %s (%s)\n", x, y, t.Type, t.Category)
	})
	h := sh.session.Grid().History()
	fmt.Fprintf(sh.out, "%d tiles, undo %d, redo %d\n", n, h.UndoDepth(), h.RedoDepth())
}

func (sh *shell) listCatalog() {
	for _, g := range sh.catalog.Groups() {
		fmt.Fprintf(sh.out, "[%s]\n", g.Name)
		for _, d := range g.Tiles {
			fmt.Fprintf(sh.out, "  %s (%s)\n", d.Name, d.Category)
		}
	}
}

func (sh *shell) runScript(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	src, err := script.Load(args[0])
	if err != nil {
		return err
	}
	if err := script.Run(context.Background(), sh.session, src); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "ok")
	return nil
}

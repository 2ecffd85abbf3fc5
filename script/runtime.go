// Package script runs tengo level scripts against an editor session. The
// session is exposed to scripts as the immutable map `editor`.
package script

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tilegrid/editor"
	"github.com/milk9111/tilegrid/tilemap"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load reads a script from disk, falling back to the embedded scripts.
func Load(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	clean := filepath.ToSlash(name)
	clean = strings.TrimPrefix(clean, "scripts/")
	if filepath.Ext(clean) == "" {
		clean += ".tengo"
	}
	data, err := ScriptsFS.ReadFile("scripts/" + clean)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return data, nil
}

// Run compiles src and executes it once against s.
func Run(ctx context.Context, s *editor.Session, src []byte) error {
	_, err := Exec(ctx, s, src)
	return err
}

// Exec is Run but hands back the compiled script so callers can read its
// globals.
func Exec(ctx context.Context, s *editor.Session, src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("editor", buildEditorModule(s)); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("script: run: %w", err)
	}
	return compiled, nil
}

func buildEditorModule(s *editor.Session) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["place"] = &tengo.UserFunction{Name: "place", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, y, err := coords(args[0], args[1])
		if err != nil {
			return nil, err
		}
		ok, err := s.Place(x, y, objectAsString(args[2]))
		return boolResult(ok, err), nil
	}}

	values["rect"] = &tengo.UserFunction{Name: "rect", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 5 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, y, err := coords(args[0], args[1])
		if err != nil {
			return nil, err
		}
		w, h, err := coords(args[2], args[3])
		if err != nil {
			return nil, err
		}
		ok, err := s.Rect(x, y, w, h, objectAsString(args[4]))
		return boolResult(ok, err), nil
	}}

	values["select"] = &tengo.UserFunction{Name: "select", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		if err := s.SelectTile(objectAsString(args[0])); err != nil {
			return errorObject(err), nil
		}
		return tengo.TrueValue, nil
	}}

	values["undo"] = &tengo.UserFunction{Name: "undo", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ok, err := s.Undo()
		return boolResult(ok, err), nil
	}}

	values["redo"] = &tengo.UserFunction{Name: "redo", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ok, err := s.Redo()
		return boolResult(ok, err), nil
	}}

	values["clear"] = &tengo.UserFunction{Name: "clear", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if err := s.Clear(); err != nil {
			return errorObject(err), nil
		}
		return tengo.TrueValue, nil
	}}

	values["has"] = &tengo.UserFunction{Name: "has", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, y, err := coords(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return tengo.FromInterface(s.Grid().HasTileAt(x, y))
	}}

	values["has_type"] = &tengo.UserFunction{Name: "has_type", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, y, err := coords(args[0], args[1])
		if err != nil {
			return nil, err
		}
		cat, err := tilemap.ParseCategory(objectAsString(args[2]))
		if err != nil {
			return errorObject(err), nil
		}
		return tengo.FromInterface(s.Grid().HasTileOfType(x, y, cat))
	}}

	values["tile"] = &tengo.UserFunction{Name: "tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, y, err := coords(args[0], args[1])
		if err != nil {
			return nil, err
		}
		t, ok := s.Grid().TileAt(x, y)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.String{Value: t.Type}, nil
	}}

	values["variant"] = &tengo.UserFunction{Name: "variant", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, y, err := coords(args[0], args[1])
		if err != nil {
			return nil, err
		}
		t, ok := s.Grid().TileAt(x, y)
		if !ok || t.Category != tilemap.Ground {
			return tengo.UndefinedValue, nil
		}
		return &tengo.String{Value: t.Variant.String()}, nil
	}}

	values["bounds"] = &tengo.UserFunction{Name: "bounds", Value: func(args ...tengo.Object) (tengo.Object, error) {
		minX, minY, maxX, maxY := s.Grid().Bounds()
		return tengo.FromInterface([]any{minX, minY, maxX, maxY})
	}}

	values["export_map"] = &tengo.UserFunction{Name: "export_map", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: s.Export()}, nil
	}}

	values["import_map"] = &tengo.UserFunction{Name: "import_map", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		res, err := s.Import(objectAsString(args[0]))
		if err != nil {
			return errorObject(err), nil
		}
		return &tengo.Int{Value: int64(res.Placed)}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func coords(a, b tengo.Object) (int, int, error) {
	x, ok := tengo.ToInt(a)
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: "first", Expected: "int", Found: a.TypeName()}
	}
	y, ok := tengo.ToInt(b)
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: "second", Expected: "int", Found: b.TypeName()}
	}
	return x, y, nil
}

// boolResult turns session gate errors into tengo error values so scripts
// can test them with is_error.
func boolResult(ok bool, err error) tengo.Object {
	if err != nil {
		return errorObject(err)
	}
	if ok {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func errorObject(err error) tengo.Object {
	return &tengo.Error{Value: &tengo.String{Value: err.Error()}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

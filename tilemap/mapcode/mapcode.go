// Package mapcode converts a tile grid to and from its text exchange form:
// base64 of "x,y,type;" records in array order with logical coordinates.
package mapcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/milk9111/tilegrid/tilemap"
)

const (
	fieldSep  = ","
	recordSep = ";"
)

// ErrMalformed is returned when the outer encoding cannot be decoded.
var ErrMalformed = errors.New("mapcode: malformed map code")

// Entry is one occupied cell in logical coordinates.
type Entry struct {
	X, Y int
	Type string
}

// Result counts what an import did with each record.
type Result struct {
	Placed  int
	Skipped int
}

// ValidName reports whether a type name survives the record format.
func ValidName(name string) bool {
	return name != "" && !strings.ContainsAny(name, fieldSep+recordSep)
}

// Encode builds the map code for entries in the order given.
func Encode(entries []Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		if !ValidName(e.Type) {
			log.Printf("mapcode: skipping tile %q at (%d,%d): name cannot be encoded", e.Type, e.X, e.Y)
			continue
		}
		sb.WriteString(strconv.Itoa(e.X))
		sb.WriteString(fieldSep)
		sb.WriteString(strconv.Itoa(e.Y))
		sb.WriteString(fieldSep)
		sb.WriteString(e.Type)
		sb.WriteString(recordSep)
	}
	return base64.StdEncoding.EncodeToString([]byte(sb.String()))
}

// Decode parses a map code. Records with the wrong field count or
// non-integer coordinates are skipped and counted in the result.
func Decode(encoded string) ([]Entry, Result, error) {
	var res Result
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, res, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var entries []Entry
	for _, token := range strings.Split(string(raw), recordSep) {
		if token == "" {
			continue
		}
		e, err := parseRecord(token)
		if err != nil {
			log.Printf("mapcode: skipping record %q: %v", token, err)
			res.Skipped++
			continue
		}
		entries = append(entries, e)
	}
	return entries, res, nil
}

func parseRecord(token string) (Entry, error) {
	fields := strings.Split(token, fieldSep)
	if len(fields) != 3 {
		return Entry{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return Entry{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return Entry{}, fmt.Errorf("y: %w", err)
	}
	if fields[2] == "" {
		return Entry{}, errors.New("empty type name")
	}
	return Entry{X: x, Y: y, Type: fields[2]}, nil
}

// Entries lists the occupied cells of g in export order.
func Entries(g *tilemap.Grid) []Entry {
	var entries []Entry
	g.Each(func(x, y int, t tilemap.Tile) {
		entries = append(entries, Entry{X: x, Y: y, Type: t.Type})
	})
	return entries
}

// Export encodes every occupied cell of g.
func Export(g *tilemap.Grid) string {
	return Encode(Entries(g))
}

// Import replaces the contents of g with the decoded map code. Each record
// goes through PlaceTile, so the last imported tiles land on the undo stack.
// A code that cannot be decoded at all leaves g untouched.
func Import(g *tilemap.Grid, encoded string) (Result, error) {
	entries, res, err := Decode(encoded)
	if err != nil {
		return res, err
	}
	g.ClearMap()
	for _, e := range entries {
		if !g.PlaceTile(e.X, e.Y, e.Type) {
			log.Printf("mapcode: skipping %s at (%d,%d): unknown type or out of bounds", e.Type, e.X, e.Y)
			res.Skipped++
			continue
		}
		res.Placed++
	}
	return res, nil
}

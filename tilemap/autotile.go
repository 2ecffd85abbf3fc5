package tilemap

import "fmt"

// Variant is the visual form a Ground tile takes given its neighbors.
type Variant uint8

const (
	VariantDefault Variant = iota
	VariantBottom
	VariantTop
	VariantBarCenter
	VariantDefaultRight
	VariantBottomRight
	VariantTopRight
	VariantRight
	VariantDefaultLeft
	VariantBottomLeft
	VariantTopLeft
	VariantLeft
	VariantDefaultCenter
	VariantBottomCenter
	VariantTopCenter
	VariantCenter
)

var variantNames = [...]string{
	"default",
	"bottom",
	"top",
	"bar-center",
	"default-right",
	"bottom-right",
	"top-right",
	"right",
	"default-left",
	"bottom-left",
	"top-left",
	"left",
	"default-center",
	"bottom-center",
	"top-center",
	"center",
}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// ParseVariant is the inverse of Variant.String.
func ParseVariant(s string) (Variant, bool) {
	for i, name := range variantNames {
		if name == s {
			return Variant(i), true
		}
	}
	return 0, false
}

const (
	maskTop uint8 = 1 << iota
	maskBottom
	maskLeft
	maskRight
)

// The variant is named after the edge of the tile that stays exposed, so a
// tile with only a neighbor above is the bottom cap of a column.
var variantByMask = [16]Variant{
	0b0000: VariantDefault,
	0b0001: VariantBottom,
	0b0010: VariantTop,
	0b0011: VariantBarCenter,
	0b0100: VariantDefaultRight,
	0b0101: VariantBottomRight,
	0b0110: VariantTopRight,
	0b0111: VariantRight,
	0b1000: VariantDefaultLeft,
	0b1001: VariantBottomLeft,
	0b1010: VariantTopLeft,
	0b1011: VariantLeft,
	0b1100: VariantDefaultCenter,
	0b1101: VariantBottomCenter,
	0b1110: VariantTopCenter,
	0b1111: VariantCenter,
}

// Occupancy answers the only question autotiling asks of a grid.
type Occupancy interface {
	HasTileOfType(x, y int, c Category) bool
}

// NeighborMask builds the 4-bit Ground occupancy mask around (x, y).
func NeighborMask(o Occupancy, x, y int) uint8 {
	var mask uint8
	if o.HasTileOfType(x, y+1, Ground) {
		mask |= maskTop
	}
	if o.HasTileOfType(x, y-1, Ground) {
		mask |= maskBottom
	}
	if o.HasTileOfType(x-1, y, Ground) {
		mask |= maskLeft
	}
	if o.HasTileOfType(x+1, y, Ground) {
		mask |= maskRight
	}
	return mask
}

// VariantForMask maps a mask to its variant; out-of-table masks get the
// center variant.
func VariantForMask(mask uint8) Variant {
	if int(mask) >= len(variantByMask) {
		return VariantCenter
	}
	return variantByMask[mask]
}

// ResolveVariant picks the variant for a Ground tile at (x, y).
func ResolveVariant(o Occupancy, x, y int) Variant {
	return VariantForMask(NeighborMask(o, x, y))
}

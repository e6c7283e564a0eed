// Package tile provides common tile identifiers and geometry types.
package tile

// Flip flags stored in the top bits of a global tile id.
const (
	FlippedHorizontally GID = 0x80000000
	FlippedVertically   GID = 0x40000000
	FlippedDiagonally   GID = 0x20000000

	FlippedMask = FlippedHorizontally | FlippedVertically | FlippedDiagonally
)

// GID is a global tile id: it identifies a tile across all tilesets of a map.
// The top three bits carry flip flags, the rest is the tile id itself.
type GID uint32

// Bare returns the id with flip flags masked off.
func (g GID) Bare() GID {
	return g &^ FlippedMask
}

func (g GID) FlippedHorizontally() bool { return g&FlippedHorizontally != 0 }
func (g GID) FlippedVertically() bool   { return g&FlippedVertically != 0 }
func (g GID) FlippedDiagonally() bool   { return g&FlippedDiagonally != 0 }

// Empty reports whether the cell holding this id has no tile.
func (g GID) Empty() bool {
	return g.Bare() == 0
}

// Point is a position in pixel space.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair in cells or pixels, depending on the owner.
type Size struct {
	Width  int
	Height int
}

// Area returns Width*Height, or 0 when either side is negative.
func (s Size) Area() int {
	if s.Width < 0 || s.Height < 0 {
		return 0
	}
	return s.Width * s.Height
}

// Rect is a source rectangle inside a tileset image.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Cell addresses one position of a tile grid.
type Cell struct {
	Column int
	Row    int
}

type Visitor interface {
	// VisitCells visits all cells of a grid in row-major order, calling the visitor for each.
	// It stops and returns the first error returned by the visitor.
	VisitCells(visitor func(Cell, GID) error) error
}

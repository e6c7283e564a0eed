// Package tmx builds an in-memory description of a tile map from a TMX document
// (the XML format written by the Tiled map editor) and from the external tileset
// documents it references.
package tmx

import (
	"github.com/eak1mov/go-libtmx/tile"
	"github.com/eak1mov/go-libtmx/tmx/spec"
)

type Orientation uint8

const (
	OrientationOrthogonal Orientation = iota
	OrientationIsometric
	OrientationHexagonal
	OrientationStaggered
)

var orientationNames = map[string]Orientation{
	"orthogonal": OrientationOrthogonal,
	"isometric":  OrientationIsometric,
	"hexagonal":  OrientationHexagonal,
	"staggered":  OrientationStaggered,
}

func (o Orientation) String() string {
	switch o {
	case OrientationOrthogonal:
		return "orthogonal"
	case OrientationIsometric:
		return "isometric"
	case OrientationHexagonal:
		return "hexagonal"
	case OrientationStaggered:
		return "staggered"
	}
	return "unknown"
}

type StaggerAxis uint8

const (
	StaggerAxisY StaggerAxis = iota
	StaggerAxisX
)

type StaggerIndex uint8

const (
	StaggerIndexEven StaggerIndex = iota
	StaggerIndexOdd
)

// Texture is an opaque handle to a preloaded tileset image.
type Texture any

// Map is the root of a parsed document.
type Map struct {
	Version       string
	Orientation   Orientation
	StaggerAxis   StaggerAxis  // staggered and hexagonal maps only
	StaggerIndex  StaggerIndex // staggered and hexagonal maps only
	HexSideLength int
	Size          tile.Size // in cells
	TileSize      tile.Size // in pixels

	Tilesets     []*Tileset
	Layers       []*Layer
	ObjectGroups []*ObjectGroup

	// Children holds layers and object groups interleaved in document order.
	Children []Child

	Properties Properties

	// TileProperties maps a global tile id to the properties declared
	// for that tile inside its tileset.
	TileProperties map[tile.GID]Properties

	declared bool
}

func newMap() *Map {
	return &Map{
		Properties:     make(Properties),
		TileProperties: make(map[tile.GID]Properties),
	}
}

// Child is either a *Layer or an *ObjectGroup.
type Child interface {
	ChildName() string
}

// Tileset is an image sliced into a regular grid of tiles.
type Tileset struct {
	Name       string
	FirstGID   tile.GID
	TileSize   tile.Size
	Spacing    int
	Margin     int
	TileOffset tile.Point

	// Image is the tileset image path, resolved against the document that declared it.
	Image string

	// ImageSource is the source attribute as written in the document.
	ImageSource string

	ImageSize tile.Size

	// Texture is set when the image was found in the texture table.
	Texture Texture
}

// Layer is a grid of global tile ids.
type Layer struct {
	Name       string
	Size       tile.Size
	Visible    bool
	Opacity    uint8
	Offset     tile.Point
	Properties Properties

	// Tiles is row-major, len(Tiles) == Size.Width*Size.Height once decoded.
	Tiles []tile.GID

	// Format is the payload format the tiles were stored in.
	Format spec.Format
}

func (l *Layer) ChildName() string { return l.Name }

// GIDAt returns the raw id stored at the given cell, or 0 outside the grid.
func (l *Layer) GIDAt(column, row int) tile.GID {
	if column < 0 || row < 0 || column >= l.Size.Width || row >= l.Size.Height {
		return 0
	}
	index := row*l.Size.Width + column
	if index >= len(l.Tiles) {
		return 0
	}
	return l.Tiles[index]
}

// VisitCells implements tile.Visitor.
func (l *Layer) VisitCells(visitor func(tile.Cell, tile.GID) error) error {
	if l.Size.Width <= 0 {
		return nil
	}
	for i, gid := range l.Tiles {
		cell := tile.Cell{Column: i % l.Size.Width, Row: i / l.Size.Width}
		if err := visitor(cell, gid); err != nil {
			return err
		}
	}
	return nil
}

type Color struct {
	R, G, B uint8
}

// White is the default color of object groups and of colors that fail to parse.
var White = Color{R: 255, G: 255, B: 255}

// ObjectGroup is a layer of freeform objects.
type ObjectGroup struct {
	Name       string
	Color      Color
	Opacity    uint8
	Visible    bool
	Offset     tile.Point
	Properties Properties
	Objects    []*Object
}

func (g *ObjectGroup) ChildName() string { return g.Name }

type ObjectKind uint8

const (
	ObjectRectangle ObjectKind = iota
	ObjectImage
	ObjectEllipse
	ObjectPolygon
	ObjectPolyline
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectRectangle:
		return "rectangle"
	case ObjectImage:
		return "image"
	case ObjectEllipse:
		return "ellipse"
	case ObjectPolygon:
		return "polygon"
	case ObjectPolyline:
		return "polyline"
	}
	return "unknown"
}

// Object is one shape of an object group. Positions are in pixels,
// truncated to whole pixels.
type Object struct {
	ID       int
	GID      tile.GID
	Name     string
	Type     string
	Kind     ObjectKind
	X        int
	Y        int
	Width    int
	Height   int
	Rotation float64
	Visible  bool

	// Points is set for polygons, PolylinePoints for polylines.
	// Both are nil when the points attribute is empty.
	Points         []spec.Point
	PolylinePoints []spec.Point

	// Attributes holds the name, type, width, height, gid and id
	// attributes as written in the document.
	Attributes map[string]string

	Properties Properties
}

// LayerByName returns the first layer with the given name, or nil.
func (m *Map) LayerByName(name string) *Layer {
	for _, layer := range m.Layers {
		if layer.Name == name {
			return layer
		}
	}
	return nil
}

// ObjectGroupByName returns the first object group with the given name, or nil.
func (m *Map) ObjectGroupByName(name string) *ObjectGroup {
	for _, group := range m.ObjectGroups {
		if group.Name == name {
			return group
		}
	}
	return nil
}

// TilesetForGID returns the tileset owning gid: the one with the highest
// first gid not above it. It returns nil for empty cells.
func (m *Map) TilesetForGID(gid tile.GID) *Tileset {
	bare := gid.Bare()
	if bare == 0 {
		return nil
	}
	var result *Tileset
	for _, tileset := range m.Tilesets {
		if tileset.FirstGID <= bare && (result == nil || tileset.FirstGID >= result.FirstGID) {
			result = tileset
		}
	}
	return result
}

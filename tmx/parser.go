package tmx

import (
	"errors"
	"fmt"
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/eak1mov/go-libtmx/tile"
	"github.com/eak1mov/go-libtmx/tmx/spec"
)

// ErrNoMap is returned when a document ends without declaring a map.
var ErrNoMap = errors.New("libtmx: document has no map element")

// ErrNoLayer is returned for a data element that is not inside a layer.
var ErrNoLayer = errors.New("libtmx: data element outside of a layer")

// ErrNoTileset is returned for tileset children found outside a tileset.
var ErrNoTileset = errors.New("libtmx: tileset element expected")

// ErrNoObjectGroup is returned for an object outside of an object group.
var ErrNoObjectGroup = errors.New("libtmx: object element outside of an object group")

// ErrNoObject is returned for an ellipse, point, polygon or polyline outside of an object.
var ErrNoObject = errors.New("libtmx: shape element outside of an object")

// ErrTooDeep is returned when external tilesets reference each other in a cycle.
var ErrTooDeep = errors.New("libtmx: external tilesets nested too deep")

// Tilesets cannot reference other tilesets, so anything deeper is a reference cycle.
const maxExternalDepth = 4

// parentElement is the entity that property elements are attached to.
type parentElement uint8

const (
	parentNone parentElement = iota
	parentMap
	parentLayer
	parentObjectGroup
	parentObject
	parentTile
)

// firstGIDSource tells where a tileset declared in the current document takes
// its first gid from: its own firstgid attribute, or the tileset element of the
// document that referenced it.
type firstGIDSource struct {
	inherited bool
	firstGID  tile.GID
}

// Parser is the TMX state machine. It consumes the element and character data
// events of one document, in document order, and builds a Map from them.
//
// Any event source can drive a Parser; Load and Decode drive it with encoding/xml.
type Parser struct {
	config   *config
	m        *Map
	document string // resolved path of the document, empty when parsing from memory
	depth    int

	firstGID  firstGIDSource
	parent    parentElement
	parentGID tile.GID
	inTileset bool

	format    spec.Format
	cellCount int
	storing   bool
	text      strings.Builder
	tileIndex int
}

// NewParser returns a parser for a document read from memory. Relative paths are
// resolved against the resource root.
func NewParser(opts ...Option) *Parser {
	return newParser(newConfig(opts), newMap(), "")
}

func newParser(c *config, m *Map, document string) *Parser {
	return &Parser{config: c, m: m, document: document}
}

// Map returns the map built so far. It must be discarded if any event failed.
func (p *Parser) Map() *Map {
	return p.m
}

// CharData consumes character data. Only the payload of an encoded data element is kept.
func (p *Parser) CharData(data []byte) {
	if p.storing {
		p.text.Write(data)
	}
}

// StartElement consumes an element start. Unknown elements are ignored.
func (p *Parser) StartElement(name string, attrList []spec.Attr) error {
	attrs := spec.NewAttributes(attrList)

	switch name {
	case "map":
		p.startMap(attrs)
	case "tileset":
		return p.startTileset(attrs)
	case "tile":
		return p.startTile(attrs)
	case "layer":
		p.startLayer(attrs)
	case "objectgroup":
		p.startObjectGroup(attrs)
	case "tileoffset":
		tileset, err := p.lastTileset()
		if err != nil {
			return err
		}
		tileset.TileOffset = tile.Point{X: attrs.Float("x", 0), Y: attrs.Float("y", 0)}
	case "image":
		p.startImage(attrs)
	case "data":
		return p.startData(attrs)
	case "object":
		return p.startObject(attrs)
	case "property":
		p.startProperty(attrs)
	case "polygon", "polyline", "ellipse":
		return p.startShape(name, attrs)
	}
	return nil
}

// EndElement consumes an element end. Decoding errors of encoded layer data surface here.
func (p *Parser) EndElement(name string) error {
	switch name {
	case "data":
		return p.endData()
	case "map", "layer", "objectgroup", "object":
		p.parent = parentNone
	case "tileset":
		p.inTileset = false
		p.firstGID = firstGIDSource{}
	}
	return nil
}

func (p *Parser) startMap(attrs spec.Attributes) {
	if p.m.declared {
		p.config.logger.Warn("libtmx: ignoring nested map element")
		return
	}
	p.m.declared = true

	p.m.Version = attrs.String("version")
	if p.m.Version != "1.0" {
		p.config.logger.Warn("libtmx: unsupported map version", "version", p.m.Version)
	}

	orientation := attrs.String("orientation")
	if value, ok := orientationNames[orientation]; ok {
		p.m.Orientation = value
	} else {
		p.config.logger.Warn("libtmx: unsupported orientation", "orientation", orientation)
	}

	switch attrs.String("staggeraxis") {
	case "x":
		p.m.StaggerAxis = StaggerAxisX
	case "y":
		p.m.StaggerAxis = StaggerAxisY
	}
	switch attrs.String("staggerindex") {
	case "odd":
		p.m.StaggerIndex = StaggerIndexOdd
	case "even":
		p.m.StaggerIndex = StaggerIndexEven
	}

	p.m.HexSideLength = attrs.Int("hexsidelength", 0)
	p.m.Size = tile.Size{Width: attrs.Int("width", 0), Height: attrs.Int("height", 0)}
	p.m.TileSize = tile.Size{Width: attrs.Int("tilewidth", 0), Height: attrs.Int("tileheight", 0)}

	p.parent = parentMap
}

func (p *Parser) startTileset(attrs spec.Attributes) error {
	if source := attrs.String("source"); source != "" {
		return p.parseExternalTileset(p.resolvePath(source), firstGIDAttr(attrs))
	}

	tileset := &Tileset{
		Name:     attrs.String("name"),
		Spacing:  attrs.Int("spacing", 0),
		Margin:   attrs.Int("margin", 0),
		TileSize: tile.Size{Width: attrs.Int("tilewidth", 0), Height: attrs.Int("tileheight", 0)},
	}

	if p.firstGID.inherited {
		tileset.FirstGID = p.firstGID.firstGID
		// a second tileset in the same external document starts from zero
		p.firstGID.firstGID = 0
	} else {
		tileset.FirstGID = firstGIDAttr(attrs)
	}

	p.m.Tilesets = append(p.m.Tilesets, tileset)
	p.inTileset = true
	return nil
}

func firstGIDAttr(attrs spec.Attributes) tile.GID {
	return tile.GID(max(attrs.Int("firstgid", 0), 0))
}

func (p *Parser) parseExternalTileset(document string, firstGID tile.GID) error {
	if p.depth >= maxExternalDepth {
		return fmt.Errorf("%w: %v", ErrTooDeep, document)
	}

	nested := newParser(p.config, p.m, document)
	nested.depth = p.depth + 1
	nested.firstGID = firstGIDSource{inherited: true, firstGID: firstGID}

	if err := nested.parseDocument(); err != nil {
		return fmt.Errorf("tileset %v: %w", document, err)
	}
	return nil
}

func (p *Parser) startTile(attrs spec.Attributes) error {
	if p.parent == parentLayer {
		// the buffer is allocated by the data element
		layer := p.m.Layers[len(p.m.Layers)-1]
		if p.tileIndex < len(layer.Tiles) {
			layer.Tiles[p.tileIndex] = tile.GID(uint32(attrs.Int("gid", 0)))
			p.tileIndex++
		}
		return nil
	}

	tileset, err := p.lastTileset()
	if err != nil {
		return err
	}
	p.parentGID = tileset.FirstGID + tile.GID(attrs.Int("id", 0))
	p.m.TileProperties[p.parentGID] = make(Properties)
	p.parent = parentTile
	return nil
}

func (p *Parser) startLayer(attrs spec.Attributes) {
	layer := &Layer{
		Name:       attrs.String("name"),
		Size:       tile.Size{Width: attrs.Int("width", 0), Height: attrs.Int("height", 0)},
		Visible:    attrs.Bool("visible", true),
		Opacity:    opacityAttr(attrs),
		Offset:     offsetAttr(attrs),
		Properties: make(Properties),
	}

	p.m.Children = append(p.m.Children, layer)
	p.m.Layers = append(p.m.Layers, layer)
	p.parent = parentLayer
}

func (p *Parser) startObjectGroup(attrs spec.Attributes) {
	group := &ObjectGroup{
		Name:       attrs.String("name"),
		Offset:     tile.Point{X: attrs.Float("offsetx", 0), Y: attrs.Float("offsety", 0)},
		Color:      White,
		Opacity:    opacityAttr(attrs),
		Visible:    attrs.Bool("visible", true),
		Properties: make(Properties),
	}
	if attrs.Has("color") {
		group.Color = parseColor(attrs.String("color"))
	}

	p.m.Children = append(p.m.Children, group)
	p.m.ObjectGroups = append(p.m.ObjectGroups, group)
	p.parent = parentObjectGroup
}

// opacityAttr scales the 0..1 opacity attribute to 0..255, fully opaque by default.
func opacityAttr(attrs spec.Attributes) uint8 {
	fraction := attrs.Float("opacity", 1)
	if math.IsNaN(fraction) {
		fraction = 1
	}
	return uint8(math.Round(255 * min(max(fraction, 0), 1)))
}

func offsetAttr(attrs spec.Attributes) tile.Point {
	if attrs.Has("offsetx") || attrs.Has("offsety") {
		return tile.Point{X: attrs.Float("offsetx", 0), Y: attrs.Float("offsety", 0)}
	}
	return tile.Point{X: attrs.Float("x", 0), Y: attrs.Float("y", 0)}
}

// parseColor parses "#RRGGBB". With an alpha prefix ("#AARRGGBB") the alpha is dropped.
// Malformed values yield white.
func parseColor(value string) Color {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	num, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return White
	}
	return Color{R: uint8(num >> 16), G: uint8(num >> 8), B: uint8(num)}
}

func (p *Parser) startImage(attrs spec.Attributes) {
	if !p.inTileset {
		// image layers and other image owners are not part of the map description
		return
	}
	tileset := p.m.Tilesets[len(p.m.Tilesets)-1]

	source := attrs.String("source")
	tileset.ImageSource = source
	tileset.Image = p.resolvePath(source)
	tileset.ImageSize = tile.Size{Width: attrs.Int("width", 0), Height: attrs.Int("height", 0)}

	if p.config.textures == nil {
		return
	}
	if texture, ok := p.config.textures[source]; ok {
		tileset.Texture = texture
	} else if texture, ok := p.config.textures[tileset.Image]; ok {
		tileset.Texture = texture
	} else {
		p.config.logger.Warn("libtmx: texture not found", "image", source)
	}
}

func (p *Parser) startData(attrs spec.Attributes) error {
	layer, err := p.lastLayer()
	if err != nil {
		return err
	}

	cellCount, err := spec.CellCount(layer.Size)
	if err != nil {
		return fmt.Errorf("layer %q: %w", layer.Name, err)
	}

	format, err := spec.ParseFormat(attrs.String("encoding"), attrs.String("compression"))
	if err != nil {
		return fmt.Errorf("layer %q: %w", layer.Name, err)
	}
	p.format = format
	p.cellCount = cellCount
	layer.Format = format

	if format == spec.FormatXML {
		layer.Tiles = make([]tile.GID, cellCount)
		p.tileIndex = 0
		return nil
	}

	p.text.Reset()
	p.storing = true
	return nil
}

func (p *Parser) endData() error {
	if !p.storing {
		p.tileIndex = 0
		return nil
	}
	p.storing = false
	defer p.text.Reset()

	layer, err := p.lastLayer()
	if err != nil {
		return err
	}

	gids, err := spec.DecodeData(p.text.String(), p.format, spec.DataParams{
		CellCount: p.cellCount,
		StrictCSV: p.config.strictCSV,
	})
	if err != nil {
		return fmt.Errorf("layer %q: %w", layer.Name, err)
	}
	layer.Tiles = gids
	return nil
}

var objectAttributes = []string{"name", "type", "width", "height", "gid", "id"}

func (p *Parser) startObject(attrs spec.Attributes) error {
	if len(p.m.ObjectGroups) == 0 {
		return ErrNoObjectGroup
	}
	group := p.m.ObjectGroups[len(p.m.ObjectGroups)-1]

	object := &Object{
		ID:         attrs.Int("id", 0),
		GID:        tile.GID(uint32(attrs.Int("gid", 0))),
		Name:       attrs.String("name"),
		Type:       attrs.String("type"),
		Kind:       ObjectRectangle,
		X:          int(attrs.Float("x", 0)),
		Y:          int(attrs.Float("y", 0)),
		Width:      int(attrs.Float("width", 0)),
		Height:     int(attrs.Float("height", 0)),
		Rotation:   attrs.Float("rotation", 0),
		Visible:    attrs.Bool("visible", true),
		Attributes: make(map[string]string),
		Properties: make(Properties),
	}
	for _, name := range objectAttributes {
		if value, ok := attrs[name]; ok {
			object.Attributes[name] = value
		}
	}
	if attrs.Has("gid") {
		object.Kind = ObjectImage
	}

	group.Objects = append(group.Objects, object)
	p.parent = parentObject
	return nil
}

func (p *Parser) startProperty(attrs spec.Attributes) {
	name, value := attrs.String("name"), attrs.String("value")

	var properties Properties
	switch p.parent {
	case parentMap:
		properties = p.m.Properties
	case parentLayer:
		properties = p.m.Layers[len(p.m.Layers)-1].Properties
	case parentObjectGroup:
		properties = p.m.ObjectGroups[len(p.m.ObjectGroups)-1].Properties
	case parentObject:
		if object, err := p.lastObject(); err == nil {
			properties = object.Properties
		}
	case parentTile:
		properties = p.m.TileProperties[p.parentGID]
	}

	if properties == nil {
		p.config.logger.Warn("libtmx: property without a parent element", "name", name, "value", value)
		return
	}
	properties[name] = value
}

func (p *Parser) startShape(name string, attrs spec.Attributes) error {
	object, err := p.lastObject()
	if err != nil {
		return err
	}

	switch name {
	case "polygon":
		object.Kind = ObjectPolygon
		if points := spec.ParsePoints(attrs.String("points")); points != nil {
			object.Points = points
		}
	case "polyline":
		object.Kind = ObjectPolyline
		if points := spec.ParsePoints(attrs.String("points")); points != nil {
			object.PolylinePoints = points
		}
	case "ellipse":
		object.Kind = ObjectEllipse
	}
	return nil
}

func (p *Parser) lastTileset() (*Tileset, error) {
	if len(p.m.Tilesets) == 0 {
		return nil, ErrNoTileset
	}
	return p.m.Tilesets[len(p.m.Tilesets)-1], nil
}

func (p *Parser) lastLayer() (*Layer, error) {
	if len(p.m.Layers) == 0 {
		return nil, ErrNoLayer
	}
	return p.m.Layers[len(p.m.Layers)-1], nil
}

func (p *Parser) lastObject() (*Object, error) {
	if len(p.m.ObjectGroups) == 0 {
		return nil, ErrNoObject
	}
	group := p.m.ObjectGroups[len(p.m.ObjectGroups)-1]
	if len(group.Objects) == 0 {
		return nil, ErrNoObject
	}
	return group.Objects[len(group.Objects)-1], nil
}

// resolvePath resolves a path written in the current document: against the
// document's directory, or against the resource root for in-memory documents.
// The document path has been resolved already, so paths joined to it are not
// passed to the resolver again.
func (p *Parser) resolvePath(name string) string {
	if name == "" || path.IsAbs(name) {
		return p.config.resolve(name)
	}
	if strings.Contains(p.document, "/") {
		return path.Join(path.Dir(p.document), name)
	}
	return p.config.resolve(path.Join(p.config.resourceRoot, name))
}

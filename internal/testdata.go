// Package internal provides TMX test documents shared by package tests.
package internal

import (
	"fmt"
	"strings"
	"testing/fstest"

	"github.com/eak1mov/go-libtmx/tile"
	"github.com/eak1mov/go-libtmx/tmx/spec"
)

// Grid is the logical content of every fixture layer.
var Grid = []tile.GID{
	1, 2, 3, 4,
	5, 6, 7, 8,
	0, 9 | tile.FlippedHorizontally, 10, 2 | tile.FlippedVertically | tile.FlippedDiagonally,
}

const (
	GridWidth  = 4
	GridHeight = 3

	// ExternalFirstGID is the firstgid of the tileset element referencing tiles.tsx.
	ExternalFirstGID = 5
)

// Formats lists every layer payload format, in the order the fixture map declares its layers.
var Formats = []spec.Format{
	spec.FormatXML,
	spec.FormatCSV,
	spec.FormatBase64,
	spec.FormatBase64Gzip,
	spec.FormatBase64Zlib,
}

// DataElement renders a data element holding gids in the given format.
func DataElement(gids []tile.GID, format spec.Format) string {
	var builder strings.Builder
	builder.WriteString("<data")
	if encoding := format.Encoding(); encoding != "" {
		fmt.Fprintf(&builder, " encoding=%q", encoding)
	}
	if compression := format.Compression().String(); compression != "" {
		fmt.Fprintf(&builder, " compression=%q", compression)
	}
	builder.WriteString(">\n")

	if format == spec.FormatXML {
		for _, gid := range gids {
			fmt.Fprintf(&builder, "   <tile gid=\"%d\"/>\n", uint32(gid))
		}
	} else {
		text, err := spec.EncodeData(gids, format)
		if err != nil {
			panic(err)
		}
		fmt.Fprintf(&builder, "   %s\n", text)
	}

	builder.WriteString("  </data>")
	return builder.String()
}

// LayerElement renders a layer of the fixture grid size.
func LayerElement(name string, gids []tile.GID, format spec.Format) string {
	return fmt.Sprintf(`
 <layer name=%q width="%d" height="%d">
  <properties>
   <property name="format" value=%q/>
  </properties>
  %s
 </layer>`, name, GridWidth, GridHeight, format.String(), DataElement(gids, format))
}

const externalTileset = `<?xml version="1.0" encoding="UTF-8"?>
<tileset firstgid="99" name="external" tilewidth="16" tileheight="16" spacing="2" margin="1">
 <tileoffset x="3" y="-4"/>
 <image source="../images/external.png" width="70" height="52"/>
 <tile id="2">
  <properties>
   <property name="solid" value="true"/>
  </properties>
 </tile>
</tileset>
`

// MapDocument renders the fixture map: an inline tileset, an external tileset
// at ExternalFirstGID, one layer per entry of Formats and an object group.
func MapDocument() string {
	var layers strings.Builder
	for _, format := range Formats {
		layers.WriteString(LayerElement(format.String(), Grid, format))
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.0" orientation="orthogonal" width="%d" height="%d" tilewidth="16" tileheight="16">
 <properties>
  <property name="title" value="fixture"/>
 </properties>
 <tileset firstgid="1" name="inline" tilewidth="16" tileheight="16">
  <image source="inline.png" width="64" height="16"/>
  <tile id="1">
   <properties>
    <property name="kind" value="grass"/>
   </properties>
  </tile>
 </tileset>
 <tileset firstgid="%d" source="../tilesets/tiles.tsx"/>%s
 <objectgroup name="objects" color="#ff8000" opacity="0.5">
  <properties>
   <property name="spawn" value="yes"/>
  </properties>
  <object id="1" name="box" type="trigger" x="10.9" y="20.2" width="32.5" height="16">
   <properties>
    <property name="damage" value="3"/>
   </properties>
  </object>
  <object id="2" gid="6" x="0" y="16" width="16" height="16" visible="0"/>
  <object id="3" x="1" y="2" width="3" height="4" rotation="45">
   <ellipse/>
  </object>
  <object id="4" x="100" y="100">
   <polygon points="0,0 10,0 10,10"/>
  </object>
  <object id="5" x="5" y="5">
   <polyline points=""/>
  </object>
 </objectgroup>
</map>
`, GridWidth, GridHeight, ExternalFirstGID, layers.String())
}

// Fixtures returns a file system with the fixture map at maps/fixture.tmx,
// the external tileset it references at tilesets/tiles.tsx, and a map without
// external references at standalone.tmx.
func Fixtures() fstest.MapFS {
	return fstest.MapFS{
		"maps/fixture.tmx":   &fstest.MapFile{Data: []byte(MapDocument())},
		"tilesets/tiles.tsx": &fstest.MapFile{Data: []byte(externalTileset)},
		"standalone.tmx":     &fstest.MapFile{Data: []byte(StandaloneDocument())},
	}
}

// StandaloneDocument renders a map that references no other document,
// with one layer per entry of Formats.
func StandaloneDocument() string {
	var layers strings.Builder
	for _, format := range Formats {
		layers.WriteString(LayerElement(format.String(), Grid, format))
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.0" orientation="isometric" width="%d" height="%d" tilewidth="32" tileheight="16">
 <tileset firstgid="1" name="iso" tilewidth="32" tileheight="16" tilecount="16" columns="4">
  <image source="iso.png" width="128" height="64"/>
 </tileset>%s
</map>
`, GridWidth, GridHeight, layers.String())
}

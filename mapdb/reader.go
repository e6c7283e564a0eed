// Package mapdb stores parsed maps in a SQLite database and reads them back.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package mapdb

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/eak1mov/go-libtmx/tile"
	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/eak1mov/go-libtmx/tmx/spec"
)

var ErrNotFound = errors.New("libtmx: not found in database")

// Property owners, as stored in the owner column of the properties table.
const MapOwner = "map"

func LayerOwner(name string) string       { return "layer/" + name }
func ObjectGroupOwner(name string) string { return "objectgroup/" + name }
func TileOwner(gid tile.GID) string       { return "tile/" + strconv.FormatUint(uint64(gid), 10) }

type Reader struct {
	db *sql.DB
}

// NewReader opens the database at filePath read-only.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}
	return &Reader{db: db}, nil
}

func (r *Reader) Close() error {
	return r.db.Close()
}

// MapIDs returns the ids of all stored maps.
func (r *Reader) MapIDs() ([]string, error) {
	rows, err := r.db.Query("SELECT map_id FROM maps ORDER BY map_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mapIDs := make([]string, 0)
	for rows.Next() {
		var mapID string
		if err := rows.Scan(&mapID); err != nil {
			return nil, err
		}
		mapIDs = append(mapIDs, mapID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mapIDs, nil
}

// ReadLayer reads the first layer named name, with its tiles and properties.
func (r *Reader) ReadLayer(mapID, name string) (*tmx.Layer, error) {
	layer := &tmx.Layer{Name: name}

	var layerIndex int
	var formatName string
	err := r.db.QueryRow(`
		SELECT layer_index, width, height, visible, opacity, offset_x, offset_y, format
		FROM layers WHERE map_id = ? AND name = ? ORDER BY layer_index LIMIT 1`, mapID, name).
		Scan(&layerIndex, &layer.Size.Width, &layer.Size.Height, &layer.Visible, &layer.Opacity,
			&layer.Offset.X, &layer.Offset.Y, &formatName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: layer %q of map %v", ErrNotFound, name, mapID)
	}
	if err != nil {
		return nil, err
	}

	if layer.Format, err = parseFormatName(formatName); err != nil {
		return nil, err
	}

	cellCount, err := spec.CellCount(layer.Size)
	if err != nil {
		return nil, err
	}
	layer.Tiles = make([]tile.GID, cellCount)
	rows, err := r.db.Query(
		"SELECT tile_column, tile_row, gid FROM cells WHERE map_id = ? AND layer_index = ?", mapID, layerIndex)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var column, row int
		var gid uint32
		if err := rows.Scan(&column, &row, &gid); err != nil {
			return nil, err
		}
		if column < 0 || row < 0 || column >= layer.Size.Width || row >= layer.Size.Height {
			return nil, fmt.Errorf("layer %q: cell (%d, %d) outside of the layer", name, column, row)
		}
		layer.Tiles[row*layer.Size.Width+column] = tile.GID(gid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if layer.Properties, err = r.ReadProperties(mapID, LayerOwner(name)); err != nil {
		return nil, err
	}

	return layer, nil
}

// ReadProperties reads the properties of one owner. Owners without properties
// yield an empty bag.
func (r *Reader) ReadProperties(mapID, owner string) (tmx.Properties, error) {
	properties := make(tmx.Properties)

	rows, err := r.db.Query("SELECT name, value FROM properties WHERE map_id = ? AND owner = ?", mapID, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		properties[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return properties, nil
}

func parseFormatName(name string) (spec.Format, error) {
	for _, format := range []spec.Format{
		spec.FormatXML, spec.FormatCSV, spec.FormatBase64, spec.FormatBase64Gzip, spec.FormatBase64Zlib,
	} {
		if format.String() == name {
			return format, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", spec.ErrUnsupportedEncoding, name)
}

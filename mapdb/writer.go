package mapdb

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eak1mov/go-libtmx/tile"
	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/google/uuid"
)

// Writer stores parsed maps in a SQLite database.
type Writer struct {
	db     *sql.DB
	logger *slog.Logger
}

type writerConfig struct {
	Logger *slog.Logger
}

type WriterOption func(*writerConfig)

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new database at filePath and the tables maps are written to.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	var err error
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE maps (
			map_id TEXT PRIMARY KEY,
			version TEXT,
			orientation TEXT,
			width INTEGER,
			height INTEGER,
			tile_width INTEGER,
			tile_height INTEGER
		);
		CREATE TABLE layers (
			map_id TEXT,
			layer_index INTEGER,
			name TEXT,
			width INTEGER,
			height INTEGER,
			visible INTEGER,
			opacity INTEGER,
			offset_x REAL,
			offset_y REAL,
			format TEXT
		);
		CREATE TABLE cells (
			map_id TEXT,
			layer_index INTEGER,
			tile_column INTEGER,
			tile_row INTEGER,
			gid INTEGER
		);
		CREATE TABLE properties (map_id TEXT, owner TEXT, name TEXT, value TEXT);
	`)
	if err != nil {
		return nil, err
	}

	return &Writer{db, config.Logger}, nil
}

func (w *Writer) Close() error {
	return w.db.Close()
}

// WriteMap stores m under a fresh map id and returns that id.
// Empty cells are not stored.
func (w *Writer) WriteMap(m *tmx.Map) (string, error) {
	mapID := uuid.NewString()

	tx, err := w.db.Begin()
	if err != nil {
		return "", err
	}

	if err := writeMap(tx, mapID, m); err != nil {
		return "", errors.Join(err, tx.Rollback())
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	w.logger.Debug("libtmx: map written", "map_id", mapID, "layers", len(m.Layers))
	return mapID, nil
}

func writeMap(tx *sql.Tx, mapID string, m *tmx.Map) error {
	_, err := tx.Exec("INSERT INTO maps VALUES (?, ?, ?, ?, ?, ?, ?)",
		mapID, m.Version, m.Orientation.String(),
		m.Size.Width, m.Size.Height, m.TileSize.Width, m.TileSize.Height)
	if err != nil {
		return err
	}

	propertiesStmt, err := tx.Prepare("INSERT INTO properties (map_id, owner, name, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer propertiesStmt.Close()

	writeProperties := func(owner string, properties tmx.Properties) error {
		for name, value := range properties {
			if _, err := propertiesStmt.Exec(mapID, owner, name, value); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeProperties(MapOwner, m.Properties); err != nil {
		return err
	}
	for gid, properties := range m.TileProperties {
		if err := writeProperties(TileOwner(gid), properties); err != nil {
			return err
		}
	}
	for _, group := range m.ObjectGroups {
		if err := writeProperties(ObjectGroupOwner(group.Name), group.Properties); err != nil {
			return err
		}
	}

	cellsStmt, err := tx.Prepare("INSERT INTO cells (map_id, layer_index, tile_column, tile_row, gid) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer cellsStmt.Close()

	for layerIndex, layer := range m.Layers {
		_, err := tx.Exec("INSERT INTO layers VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			mapID, layerIndex, layer.Name, layer.Size.Width, layer.Size.Height,
			layer.Visible, layer.Opacity, layer.Offset.X, layer.Offset.Y, layer.Format.String())
		if err != nil {
			return err
		}

		if err := writeProperties(LayerOwner(layer.Name), layer.Properties); err != nil {
			return err
		}

		for cell, gid := range tile.IterTiles(layer) {
			if _, err := cellsStmt.Exec(mapID, layerIndex, cell.Column, cell.Row, uint32(gid)); err != nil {
				return fmt.Errorf("layer %q: %w", layer.Name, err)
			}
		}
	}

	return nil
}

func (w *Writer) Finalize() error {
	w.logger.Debug("libtmx: creating indices")
	_, err := w.db.Exec(`
		CREATE UNIQUE INDEX layer_index ON layers (map_id, layer_index);
		CREATE UNIQUE INDEX cell_index ON cells (map_id, layer_index, tile_column, tile_row);
		CREATE INDEX property_index ON properties (map_id, owner);
	`)

	w.logger.Debug("libtmx: done!")
	return err
}

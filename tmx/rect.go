package tmx

import "github.com/eak1mov/go-libtmx/tile"

// Columns returns the number of tile columns in the tileset image.
//
// The margin is subtracted once, not on both sides: Tiled only offsets the
// first column by it, and maps written by Tiled rely on this.
func (ts *Tileset) Columns() int {
	step := ts.TileSize.Width + ts.Spacing
	if step <= 0 {
		return 0
	}
	return (ts.ImageSize.Width - ts.Margin + ts.Spacing) / step
}

// RectForGID returns the source rectangle of gid inside the tileset image.
// Flip flags are ignored. It reports false when gid is below the tileset's
// first gid or the image holds no full column.
func (ts *Tileset) RectForGID(gid tile.GID) (tile.Rect, bool) {
	bare := gid.Bare()
	columns := ts.Columns()
	if bare < ts.FirstGID || columns <= 0 {
		return tile.Rect{}, false
	}

	local := int(bare - ts.FirstGID)
	column := local % columns
	row := local / columns

	return tile.Rect{
		X:      column*(ts.TileSize.Width+ts.Spacing) + ts.Margin,
		Y:      row*(ts.TileSize.Height+ts.Spacing) + ts.Margin,
		Width:  ts.TileSize.Width,
		Height: ts.TileSize.Height,
	}, true
}

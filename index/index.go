// Package index provides a flat binary index of the non-empty cells of a map.
//
// The index is a sequence of little-endian Item records. Within a layer, items
// are ordered along a Hilbert curve so that cells close on the map stay close in
// the file.
package index

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"slices"

	"github.com/eak1mov/go-libtmx/tile"
	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/google/hilbert"
)

// Item represents a single record in the index: the raw global tile id stored
// in one cell of one layer. Layer is the position of the layer in Map.Layers.
// It is designed to be easily portable to other languages and utilities.
type Item struct {
	Layer  uint32
	Column uint32
	Row    uint32
	GID    uint32
}

func (i Item) Cell() tile.Cell {
	return tile.Cell{Column: int(i.Column), Row: int(i.Row)}
}

func WriteAll(items []Item, writer io.Writer) error {
	return binary.Write(writer, binary.LittleEndian, items)
}

func ReadAll(indexData []byte) ([]Item, error) {
	itemSize := binary.Size(Item{})
	if len(indexData)%itemSize != 0 {
		return nil, fmt.Errorf("libtmx: index size %d is not a multiple of %d", len(indexData), itemSize)
	}
	items := make([]Item, len(indexData)/itemSize)

	err := binary.Read(bytes.NewReader(indexData), binary.LittleEndian, items)
	if err != nil {
		return nil, err
	}

	return items, nil
}

// CurveSide returns the side of the smallest square Hilbert curve covering size.
func CurveSide(size tile.Size) int {
	side := max(size.Width, size.Height, 1)
	return 1 << bits.Len(uint(side-1))
}

// HilbertCode returns the distance of cell along a Hilbert curve of the given side,
// which must be a power of two larger than both coordinates.
func HilbertCode(cell tile.Cell, side int) (int, error) {
	h, err := hilbert.NewHilbert(side)
	if err != nil {
		return 0, err
	}
	return h.MapInverse(cell.Column, cell.Row)
}

// FromMap returns the items of every non-empty cell of m, layer by layer.
func FromMap(m *tmx.Map) ([]Item, error) {
	type codedItem struct {
		code int
		item Item
	}

	items := make([]Item, 0)
	for layerIndex, layer := range m.Layers {
		h, err := hilbert.NewHilbert(CurveSide(layer.Size))
		if err != nil {
			return nil, err
		}

		coded := make([]codedItem, 0, len(layer.Tiles))
		for cell, gid := range tile.IterTiles(layer) {
			code, err := h.MapInverse(cell.Column, cell.Row)
			if err != nil {
				return nil, fmt.Errorf("layer %q: %w", layer.Name, err)
			}
			coded = append(coded, codedItem{code: code, item: Item{
				Layer:  uint32(layerIndex),
				Column: uint32(cell.Column),
				Row:    uint32(cell.Row),
				GID:    uint32(gid),
			}})
		}

		slices.SortFunc(coded, func(a, b codedItem) int { return cmp.Compare(a.code, b.code) })
		for _, c := range coded {
			items = append(items, c.item)
		}
	}

	return items, nil
}

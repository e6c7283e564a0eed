package index_test

import (
	"bytes"
	"testing"

	"github.com/eak1mov/go-libtmx/index"
	"github.com/eak1mov/go-libtmx/internal"
	"github.com/eak1mov/go-libtmx/tile"
	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	items := []index.Item{
		{Layer: 0, Column: 1, Row: 2, GID: 3},
		{Layer: 4, Column: 5, Row: 6, GID: uint32(7 | tile.FlippedHorizontally)},
	}

	var buf bytes.Buffer
	require.NoError(t, index.WriteAll(items, &buf))
	require.Equal(t, 32, buf.Len())

	got, err := index.ReadAll(buf.Bytes())
	require.NoError(t, err)
	if diff := cmp.Diff(items, got); diff != "" {
		t.Errorf("ReadAll mismatch (-want+got):\n%s", diff)
	}

	_, err = index.ReadAll(buf.Bytes()[:31])
	require.Error(t, err)
}

func TestCurveSide(t *testing.T) {
	for _, tc := range []struct {
		Size tile.Size
		Want int
	}{
		{Size: tile.Size{}, Want: 1},
		{Size: tile.Size{Width: 1, Height: 1}, Want: 1},
		{Size: tile.Size{Width: 4, Height: 3}, Want: 4},
		{Size: tile.Size{Width: 5, Height: 2}, Want: 8},
		{Size: tile.Size{Width: 2, Height: 100}, Want: 128},
	} {
		require.Equal(t, tc.Want, index.CurveSide(tc.Size), "CurveSide(%v)", tc.Size)
	}
}

func TestHilbertCode(t *testing.T) {
	const side = 8

	cells := make(map[int]tile.Cell)
	for row := range side {
		for column := range side {
			cell := tile.Cell{Column: column, Row: row}
			code, err := index.HilbertCode(cell, side)
			require.NoError(t, err)
			require.NotContains(t, cells, code, "HilbertCode(%v) is not unique", cell)
			cells[code] = cell
		}
	}
	require.Len(t, cells, side*side)

	// consecutive codes are neighbouring cells
	for code := 1; code < side*side; code++ {
		a, b := cells[code-1], cells[code]
		distance := abs(a.Column-b.Column) + abs(a.Row-b.Row)
		require.Equal(t, 1, distance, "cells %v and %v are not adjacent", a, b)
	}

	_, err := index.HilbertCode(tile.Cell{}, 3)
	require.Error(t, err)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestFromMap(t *testing.T) {
	m, err := tmx.Load("maps/fixture.tmx", tmx.WithFileSystem(internal.Fixtures()))
	require.NoError(t, err)

	items, err := index.FromMap(m)
	require.NoError(t, err)

	nonEmpty := 0
	for _, gid := range internal.Grid {
		if !gid.Empty() {
			nonEmpty++
		}
	}
	require.Len(t, items, nonEmpty*len(m.Layers))

	side := index.CurveSide(m.Size)
	lastCode := -1
	for i, item := range items {
		layer := m.Layers[item.Layer]
		require.Equal(t, uint32(layer.GIDAt(item.Cell().Column, item.Cell().Row)), item.GID)

		code, err := index.HilbertCode(item.Cell(), side)
		require.NoError(t, err)
		if i > 0 && items[i-1].Layer != item.Layer {
			lastCode = -1
		}
		require.Greater(t, code, lastCode, "items of layer %d are not in curve order", item.Layer)
		lastCode = code
	}
}

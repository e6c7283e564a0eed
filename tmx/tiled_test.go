package tmx_test

import (
	"testing"

	"github.com/eak1mov/go-libtmx/internal"
	"github.com/eak1mov/go-libtmx/tile"
	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/google/go-cmp/cmp"
	"github.com/lafriks/go-tiled"
	"github.com/stretchr/testify/require"
)

// tiledGIDs rebuilds raw global ids from the tiles decoded by go-tiled.
func tiledGIDs(layer *tiled.Layer) []tile.GID {
	gids := make([]tile.GID, 0, len(layer.Tiles))
	for _, layerTile := range layer.Tiles {
		if layerTile.IsNil() {
			gids = append(gids, 0)
			continue
		}
		gid := tile.GID(layerTile.Tileset.FirstGID + layerTile.ID)
		if layerTile.HorizontalFlip {
			gid |= tile.FlippedHorizontally
		}
		if layerTile.VerticalFlip {
			gid |= tile.FlippedVertically
		}
		if layerTile.DiagonalFlip {
			gid |= tile.FlippedDiagonally
		}
		gids = append(gids, gid)
	}
	return gids
}

// TestCompareWithTiled decodes the same document with go-tiled and checks
// that both agree on every layer payload.
func TestCompareWithTiled(t *testing.T) {
	fsys := internal.Fixtures()

	want, err := tiled.LoadFile("standalone.tmx", tiled.WithFileSystem(fsys))
	require.NoError(t, err)

	got, err := tmx.Load("standalone.tmx", tmx.WithFileSystem(fsys))
	require.NoError(t, err)

	require.Equal(t, want.Width, got.Size.Width)
	require.Equal(t, want.Height, got.Size.Height)
	require.Equal(t, want.TileWidth, got.TileSize.Width)
	require.Equal(t, want.TileHeight, got.TileSize.Height)

	require.Len(t, got.Layers, len(want.Layers))
	for i, wantLayer := range want.Layers {
		gotLayer := got.Layers[i]
		t.Run(wantLayer.Name, func(t *testing.T) {
			require.Equal(t, wantLayer.Name, gotLayer.Name)
			if diff := cmp.Diff(tiledGIDs(wantLayer), gotLayer.Tiles); diff != "" {
				t.Errorf("Tiles mismatch (-tiled+tmx):\n%s", diff)
			}
		})
	}
}

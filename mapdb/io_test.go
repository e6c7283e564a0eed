package mapdb_test

import (
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-libtmx/internal"
	"github.com/eak1mov/go-libtmx/mapdb"
	"github.com/eak1mov/go-libtmx/tile"
	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func TestWriterReader(t *testing.T) {
	m, err := tmx.Load("maps/fixture.tmx", tmx.WithFileSystem(internal.Fixtures()))
	require.NoError(t, err)

	filePath := filepath.Join(t.TempDir(), "maps.sqlite")

	writer, err := mapdb.NewWriter(filePath)
	require.NoError(t, err)
	defer writer.Close()

	firstID, err := writer.WriteMap(m)
	require.NoError(t, err)
	secondID, err := writer.WriteMap(m)
	require.NoError(t, err)
	require.NotEqual(t, firstID, secondID)
	require.NoError(t, uuid.Validate(firstID))

	require.NoError(t, writer.Finalize())
	require.NoError(t, writer.Close())

	reader, err := mapdb.NewReader(filePath)
	require.NoError(t, err)
	defer reader.Close()

	mapIDs, err := reader.MapIDs()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{firstID, secondID}, mapIDs)

	for _, want := range m.Layers {
		t.Run(want.Name, func(t *testing.T) {
			got, err := reader.ReadLayer(firstID, want.Name)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ReadLayer mismatch (-want+got):\n%s", diff)
			}
		})
	}

	properties, err := reader.ReadProperties(firstID, mapdb.MapOwner)
	require.NoError(t, err)
	require.Equal(t, m.Properties, properties)

	properties, err = reader.ReadProperties(firstID, mapdb.TileOwner(internal.ExternalFirstGID+2))
	require.NoError(t, err)
	require.Equal(t, tmx.Properties{"solid": "true"}, properties)

	properties, err = reader.ReadProperties(secondID, mapdb.ObjectGroupOwner("objects"))
	require.NoError(t, err)
	require.Equal(t, tmx.Properties{"spawn": "yes"}, properties)

	properties, err = reader.ReadProperties(firstID, mapdb.LayerOwner("missing"))
	require.NoError(t, err)
	require.Empty(t, properties)

	_, err = reader.ReadLayer(firstID, "missing")
	require.ErrorIs(t, err, mapdb.ErrNotFound)
}

func TestOwners(t *testing.T) {
	require.Equal(t, "layer/ground", mapdb.LayerOwner("ground"))
	require.Equal(t, "objectgroup/spawns", mapdb.ObjectGroupOwner("spawns"))
	require.Equal(t, "tile/7", mapdb.TileOwner(7))
	require.Equal(t, "tile/2147483649", mapdb.TileOwner(1|tile.FlippedHorizontally))
}

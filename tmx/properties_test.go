package tmx_test

import (
	"testing"

	"github.com/eak1mov/go-libtmx/internal"
	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/stretchr/testify/require"
)

func TestPropertiesGetters(t *testing.T) {
	properties := tmx.Properties{
		"damage": "3",
		"speed":  "1.5",
		"solid":  "true",
		"name":   "box",
	}

	require.Equal(t, "box", properties.GetString("name"))
	require.Equal(t, "", properties.GetString("missing"))
	require.Equal(t, 3, properties.GetInt("damage", 0))
	require.Equal(t, 1, properties.GetInt("speed", 0))
	require.Equal(t, 7, properties.GetInt("name", 7))
	require.Equal(t, 1.5, properties.GetFloat("speed", 0))
	require.Equal(t, 2.5, properties.GetFloat("missing", 2.5))
	require.True(t, properties.GetBool("solid", false))
	require.True(t, properties.GetBool("name", true))
}

func TestTileProperties(t *testing.T) {
	m, err := tmx.Load("maps/fixture.tmx", tmx.WithFileSystem(internal.Fixtures()))
	require.NoError(t, err)

	// gid 2 is tile 1 of the inline tileset, gid 7 tile 2 of the external one
	require.Equal(t, "grass", m.TileProperties[2].GetString("kind"))
	require.True(t, m.TileProperties[internal.ExternalFirstGID+2].GetBool("solid", false))
	require.Equal(t, 3, m.ObjectGroups[0].Objects[0].Properties.GetInt("damage", 0))
}

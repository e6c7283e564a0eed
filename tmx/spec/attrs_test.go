package spec_test

import (
	"testing"

	"github.com/eak1mov/go-libtmx/tmx/spec"
	"github.com/stretchr/testify/require"
)

func TestAttributes(t *testing.T) {
	attrs := spec.NewAttributes([]spec.Attr{
		{Name: "width", Value: "12"},
		{Name: "x", Value: "3.9"},
		{Name: "opacity", Value: "0.5"},
		{Name: "visible", Value: "0"},
		{Name: "name", Value: "ground"},
		{Name: "bad", Value: "abc"},
		{Name: "name", Value: "walls"},
	})

	require.True(t, attrs.Has("width"))
	require.False(t, attrs.Has("height"))

	require.Equal(t, "walls", attrs.String("name"))
	require.Equal(t, "", attrs.String("height"))

	require.Equal(t, 12, attrs.Int("width", 0))
	require.Equal(t, 3, attrs.Int("x", 0))
	require.Equal(t, 7, attrs.Int("height", 7))
	require.Equal(t, -1, attrs.Int("bad", -1))

	require.Equal(t, 0.5, attrs.Float("opacity", 1))
	require.Equal(t, 1.0, attrs.Float("missing", 1))
	require.Equal(t, 2.0, attrs.Float("bad", 2))

	require.False(t, attrs.Bool("visible", true))
	require.True(t, attrs.Bool("missing", true))
	require.True(t, attrs.Bool("bad", true))
}

func TestParseHelpers(t *testing.T) {
	require.Equal(t, -4, spec.ParseInt(" -4 ", 0))
	require.Equal(t, -4, spec.ParseInt("-4.7", 0))
	require.Equal(t, 9, spec.ParseInt("NaN", 9))
	require.Equal(t, 1e3, spec.ParseFloat("1e3", 0))
	require.True(t, spec.ParseBool("true", false))
	require.False(t, spec.ParseBool("false", true))
}

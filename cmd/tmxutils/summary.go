package main

import (
	"log/slog"
	"os"

	"github.com/eak1mov/go-libtmx/tmx"
)

type tilesetSummary struct {
	Name     string `json:"name"`
	FirstGID uint32 `json:"first_gid"`
	Image    string `json:"image,omitempty"`
	Columns  int    `json:"columns"`
}

type layerSummary struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Tiles  int    `json:"tiles"` // non-empty cells
}

type objectGroupSummary struct {
	Name    string `json:"name"`
	Objects int    `json:"objects"`
}

type mapSummary struct {
	Version      string               `json:"version"`
	Orientation  string               `json:"orientation"`
	Width        int                  `json:"width"`
	Height       int                  `json:"height"`
	TileWidth    int                  `json:"tile_width"`
	TileHeight   int                  `json:"tile_height"`
	Properties   tmx.Properties       `json:"properties,omitempty"`
	Tilesets     []tilesetSummary     `json:"tilesets"`
	Layers       []layerSummary       `json:"layers"`
	ObjectGroups []objectGroupSummary `json:"object_groups"`
}

func summarize(m *tmx.Map) mapSummary {
	summary := mapSummary{
		Version:      m.Version,
		Orientation:  m.Orientation.String(),
		Width:        m.Size.Width,
		Height:       m.Size.Height,
		TileWidth:    m.TileSize.Width,
		TileHeight:   m.TileSize.Height,
		Properties:   m.Properties,
		Tilesets:     make([]tilesetSummary, 0, len(m.Tilesets)),
		Layers:       make([]layerSummary, 0, len(m.Layers)),
		ObjectGroups: make([]objectGroupSummary, 0, len(m.ObjectGroups)),
	}

	for _, tileset := range m.Tilesets {
		summary.Tilesets = append(summary.Tilesets, tilesetSummary{
			Name:     tileset.Name,
			FirstGID: uint32(tileset.FirstGID),
			Image:    tileset.Image,
			Columns:  tileset.Columns(),
		})
	}

	for _, layer := range m.Layers {
		tiles := 0
		for _, gid := range layer.Tiles {
			if !gid.Empty() {
				tiles++
			}
		}
		summary.Layers = append(summary.Layers, layerSummary{
			Name:   layer.Name,
			Width:  layer.Size.Width,
			Height: layer.Size.Height,
			Format: layer.Format.String(),
			Tiles:  tiles,
		})
	}

	for _, group := range m.ObjectGroups {
		summary.ObjectGroups = append(summary.ObjectGroups, objectGroupSummary{
			Name:    group.Name,
			Objects: len(group.Objects),
		})
	}

	return summary
}

// newLogger logs parser warnings to stderr; verbose adds debug output.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

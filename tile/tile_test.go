package tile_test

import (
	"errors"
	"maps"
	"testing"

	"github.com/eak1mov/go-libtmx/tile"
	"github.com/google/go-cmp/cmp"
)

type grid struct {
	width int
	gids  []tile.GID
}

func (g grid) VisitCells(visitor func(tile.Cell, tile.GID) error) error {
	for i, gid := range g.gids {
		if err := visitor(tile.Cell{Column: i % g.width, Row: i / g.width}, gid); err != nil {
			return err
		}
	}
	return nil
}

func TestGIDFlags(t *testing.T) {
	gid := tile.GID(7) | tile.FlippedHorizontally | tile.FlippedDiagonally
	if got, want := gid.Bare(), tile.GID(7); got != want {
		t.Errorf("Bare() = %v, want = %v", got, want)
	}
	if !gid.FlippedHorizontally() || gid.FlippedVertically() || !gid.FlippedDiagonally() {
		t.Errorf("unexpected flip flags for %#x", uint32(gid))
	}
	if !tile.FlippedVertically.Empty() {
		t.Errorf("flip flags alone must be an empty cell")
	}
}

func TestIterCells(t *testing.T) {
	g := grid{width: 2, gids: []tile.GID{1, 0, 0, 4}}

	want := map[tile.Cell]tile.GID{
		{Column: 0, Row: 0}: 1,
		{Column: 1, Row: 0}: 0,
		{Column: 0, Row: 1}: 0,
		{Column: 1, Row: 1}: 4,
	}
	if diff := cmp.Diff(want, maps.Collect(tile.IterCells(g))); diff != "" {
		t.Errorf("IterCells mismatch (-want+got):\n%v", diff)
	}

	wantTiles := map[tile.Cell]tile.GID{
		{Column: 0, Row: 0}: 1,
		{Column: 1, Row: 1}: 4,
	}
	if diff := cmp.Diff(wantTiles, maps.Collect(tile.IterTiles(g))); diff != "" {
		t.Errorf("IterTiles mismatch (-want+got):\n%v", diff)
	}

	count := 0
	for range tile.IterCells(g) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("break did not stop iteration, count = %v", count)
	}
}

type failing struct{}

func (failing) VisitCells(func(tile.Cell, tile.GID) error) error {
	return errors.New("broken grid")
}

func TestIterCellsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("IterCells did not panic on visitor error")
		}
	}()
	for range tile.IterCells(failing{}) {
	}
}

package tile

import (
	"errors"
	"iter"
)

var errVisitCancelled = errors.New("visit cancelled")

// IterCells returns an iterator over all cells of the grid.
// Iteration may panic on unrecoverable errors.
func IterCells(v Visitor) iter.Seq2[Cell, GID] {
	return func(yield func(Cell, GID) bool) {
		err := v.VisitCells(func(cell Cell, gid GID) error {
			if !yield(cell, gid) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}

// IterTiles is like IterCells but skips empty cells.
func IterTiles(v Visitor) iter.Seq2[Cell, GID] {
	return func(yield func(Cell, GID) bool) {
		for cell, gid := range IterCells(v) {
			if gid.Empty() {
				continue
			}
			if !yield(cell, gid) {
				return
			}
		}
	}
}

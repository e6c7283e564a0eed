package internal

import (
	"io/fs"
	"iter"
	"testing"
)

// TestdataCases yields the name and content of every file of fsys matching pattern.
func TestdataCases(t *testing.T, fsys fs.FS, pattern string) iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		t.Helper()

		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			t.Fatal(err)
		}
		if len(matches) == 0 {
			t.Fatalf("no test data matches %q", pattern)
		}

		for _, name := range matches {
			fileData, err := fs.ReadFile(fsys, name)
			if err != nil {
				t.Fatal(err)
			}

			if !yield(name, fileData) {
				return
			}
		}
	}
}

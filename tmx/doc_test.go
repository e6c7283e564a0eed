package tmx_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestExportedVarsDocumented keeps sentinel errors listed with a description in godoc.
func TestExportedVarsDocumented(t *testing.T) {
	for _, dir := range []string{".", "spec"} {
		files, err := filepath.Glob(filepath.Join(dir, "*.go"))
		require.NoError(t, err)

		fset := token.NewFileSet()
		for _, name := range files {
			if strings.HasSuffix(name, "_test.go") {
				continue
			}
			file, err := parser.ParseFile(fset, name, nil, parser.ParseComments)
			require.NoError(t, err)

			for _, decl := range file.Decls {
				gen, ok := decl.(*ast.GenDecl)
				if !ok || gen.Tok != token.VAR {
					continue
				}
				for _, s := range gen.Specs {
					value := s.(*ast.ValueSpec)
					for _, ident := range value.Names {
						if ident.IsExported() && gen.Doc == nil && value.Doc == nil {
							t.Errorf("%s: exported var %s has no doc comment", fset.Position(ident.Pos()), ident.Name)
						}
					}
				}
			}
		}
	}
}

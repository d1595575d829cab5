// Package testutil holds helpers shared by the package tests, chiefly
// the import guard that keeps the layering honest: entities must never
// grow a dependency on the readers and stores that produce them.
package testutil

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertNoDirectImports scans the non-test Go files of the package
// directory given (typically "." from within the package) and fails
// when any import path satisfies the forbidden predicate.
func AssertNoDirectImports(t testing.TB, dir string, forbidden func(path string) bool, reason string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Could not read the package directory %s: %s", dir, err)
	}

	fset := token.NewFileSet()
	var violations []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") ||
			strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil,
			parser.ImportsOnly)
		if err != nil {
			t.Fatalf("Could not parse %s: %s", name, err)
		}
		for _, imp := range f.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			if forbidden(path) {
				violations = append(violations,
					fmt.Sprintf("%s (in %s)", path, name))
			}
		}
	}
	if len(violations) > 0 {
		t.Fatalf("Forbidden imports (%s):\n%s",
			reason, strings.Join(violations, "\n"))
	}
}

// ImportsOf builds a predicate matching any of the package paths given,
// either exactly or as the trailing element of a longer module path, so
// ImportsOf("mmcif") catches "github.com/TuftsBCB/rna3d/mmcif".
func ImportsOf(paths ...string) func(string) bool {
	return func(importPath string) bool {
		for _, p := range paths {
			if importPath == p || strings.HasSuffix(importPath, "/"+p) {
				return true
			}
		}
		return false
	}
}

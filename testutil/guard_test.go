package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// recordingTB captures Fatalf calls so the guard itself can be tested.
type recordingTB struct {
	testing.TB
	failed bool
	msg    string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Fatalf(format string, args ...interface{}) {
	r.failed = true
	r.msg = fmt.Sprintf(format, args...)
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("%s", err)
	}
}

func TestGuardFlagsForbiddenImport(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.go", "package a\n\nimport _ \"evil/dep\"\n")
	write(t, dir, "b.go", "package a\n\nimport _ \"fmt\"\n")

	rec := &recordingTB{}
	AssertNoDirectImports(rec, dir, ImportsOf("evil/dep"), "no evil allowed")
	if !rec.failed {
		t.Fatal("Expected the guard to flag the forbidden import.")
	}
	if !strings.Contains(rec.msg, "evil/dep") || !strings.Contains(rec.msg, "a.go") {
		t.Fatalf("Expected the violation to name the import and file, got: %s",
			rec.msg)
	}
	if !strings.Contains(rec.msg, "no evil allowed") {
		t.Fatalf("Expected the reason in the failure, got: %s", rec.msg)
	}
}

func TestGuardIgnoresTestFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a_test.go", "package a\n\nimport _ \"evil/dep\"\n")
	write(t, dir, "a.go", "package a\n")

	rec := &recordingTB{}
	AssertNoDirectImports(rec, dir, ImportsOf("evil/dep"), "no evil allowed")
	if rec.failed {
		t.Fatalf("Expected test files to be exempt, got: %s", rec.msg)
	}
}

func TestImportsOf(t *testing.T) {
	match := ImportsOf("mmcif", "unitdb")
	for path, want := range map[string]bool{
		"github.com/TuftsBCB/rna3d/mmcif":  true,
		"mmcif":                            true,
		"github.com/TuftsBCB/rna3d/unitdb": true,
		"github.com/TuftsBCB/rna3d/unit":   false,
		"github.com/other/mmcifx":          false,
	} {
		if match(path) != want {
			t.Fatalf("Expected match(%q) == %v.", path, want)
		}
	}
}

package unit

import (
	"testing"

	"github.com/TuftsBCB/rna3d/testutil"
)

func TestLayering(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".",
		testutil.ImportsOf("mmcif", "unitdb", "batch"),
		"entities must not import their producers")
}

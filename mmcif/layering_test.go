package mmcif

import (
	"testing"

	"github.com/TuftsBCB/rna3d/testutil"
)

func TestLayering(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".",
		testutil.ImportsOf("unitdb", "batch"),
		"the reader must not depend on the store or the worker pool")
}

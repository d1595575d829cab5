package superpose

import (
	"testing"

	"github.com/TuftsBCB/rna3d/testutil"
)

func TestLayering(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".",
		testutil.ImportsOf("chem", "unit", "mmcif"),
		"the geometry engine sees coordinates only")
}

package batch

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TuftsBCB/rna3d/chem"
)

var testLib = chem.NewLibrary()

const docTemplate = `data_%s
_entry.id %s
loop_
_atom_site.group_PDB
_atom_site.label_atom_id
_atom_site.label_comp_id
_atom_site.auth_asym_id
_atom_site.auth_seq_id
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
_atom_site.pdbx_PDB_model_num
HETATM K K A 1 0.5000 1.5000 2.5000 1
`

// The second residue's x coordinate does not parse, so assembly returns
// a partial structure alongside the error.
const docMalformed = `data_1BAD
_entry.id 1BAD
loop_
_atom_site.group_PDB
_atom_site.label_atom_id
_atom_site.label_comp_id
_atom_site.auth_asym_id
_atom_site.auth_seq_id
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
_atom_site.pdbx_PDB_model_num
ATOM N1 U A "1" "1.000" "0.000" "0.000" 1
ATOM N1 U A "2" "bogus" "0.000" "0.000" 1
`

func writeDoc(t *testing.T, dir, name, pdb string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := fmt.Sprintf(docTemplate, pdb, pdb)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeGzDoc(t *testing.T, dir, name, pdb string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(fmt.Sprintf(docTemplate, pdb, pdb)))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestLoadPreservesOrderAndIsolatesFailures(t *testing.T) {
	dir := t.TempDir()

	noEntry := filepath.Join(dir, "noentry.cif")
	require.NoError(t, os.WriteFile(noEntry,
		[]byte("data_XXXX\n_struct.title tRNA\n"), 0o644))
	malformed := filepath.Join(dir, "malformed.cif")
	require.NoError(t, os.WriteFile(malformed, []byte(docMalformed), 0o644))

	paths := []string{
		writeDoc(t, dir, "a.cif", "1AAA"),
		filepath.Join(dir, "missing.cif"),
		noEntry,
		writeGzDoc(t, dir, "b.cif.gz", "1BBB"),
		malformed,
	}

	results := Load(paths, 3, testLib)
	require.Len(t, results, len(paths))
	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
	}

	require.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Structure)
	assert.Equal(t, "1AAA", results[0].Structure.PDB)
	assert.Equal(t, 1, results[0].Structure.Len())

	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Structure)

	assert.Error(t, results[2].Err)
	assert.Nil(t, results[2].Structure)

	require.NoError(t, results[3].Err)
	require.NotNil(t, results[3].Structure)
	assert.Equal(t, "1BBB", results[3].Structure.PDB)

	// A malformed component is dropped, not fatal: the survivors come
	// back along with the error.
	assert.Error(t, results[4].Err)
	require.NotNil(t, results[4].Structure)
	assert.Equal(t, 1, results[4].Structure.Len())
}

func TestLoadClampsWorkers(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeDoc(t, dir, "a.cif", "1AAA")}

	results := Load(paths, 0, testLib)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "1AAA", results[0].Structure.PDB)
}

func TestLoadNothing(t *testing.T) {
	assert.Empty(t, Load(nil, 4, testLib))
}

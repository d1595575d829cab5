package mmcif

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/TuftsBCB/rna3d/chem"
	"github.com/TuftsBCB/rna3d/superpose"
	"github.com/TuftsBCB/structure"
)

// cifAssembly exercises loop backed operator and generator categories,
// including a non-trivial rotation and translation.
const cifAssembly = `data_1ASM
_entry.id 1ASM
loop_
_pdbx_struct_oper_list.id
_pdbx_struct_oper_list.name
_pdbx_struct_oper_list.matrix[1][1]
_pdbx_struct_oper_list.matrix[1][2]
_pdbx_struct_oper_list.matrix[1][3]
_pdbx_struct_oper_list.matrix[2][1]
_pdbx_struct_oper_list.matrix[2][2]
_pdbx_struct_oper_list.matrix[2][3]
_pdbx_struct_oper_list.matrix[3][1]
_pdbx_struct_oper_list.matrix[3][2]
_pdbx_struct_oper_list.matrix[3][3]
_pdbx_struct_oper_list.vector[1]
_pdbx_struct_oper_list.vector[2]
_pdbx_struct_oper_list.vector[3]
1 "1_555" 1.0 0.0 0.0 0.0 1.0 0.0 0.0 0.0 1.0 0.0 0.0 0.0
2 "2_555" 1.0 0.0 0.0 0.0 1.0 0.0 0.0 0.0 -1.0 0.5 -1.25 3.0
loop_
_pdbx_struct_assembly_gen.assembly_id
_pdbx_struct_assembly_gen.oper_expression
_pdbx_struct_assembly_gen.asym_id_list
1 "1" "A , B"
1 "2" "C"
`

// cifComposed names a composed operator expression, which cannot be
// resolved to a single operator.
const cifComposed = `data_1VIR
_entry.id 1VIR
loop_
_pdbx_struct_oper_list.id
_pdbx_struct_oper_list.name
1 "1_555"
2 "2_555"
_pdbx_struct_assembly_gen.assembly_id 1
_pdbx_struct_assembly_gen.oper_expression "1,2"
_pdbx_struct_assembly_gen.asym_id_list A
`

// cifMalformed quotes its numeric fields so that specific values can be
// corrupted. Residue 2 has a bad coordinate and the last row has a bad
// residue number.
const cifMalformed = `data_1BAD
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
ATOM N1 U A "1" "1.000" "2.000" "3.000" 1
ATOM C2 U A "1" "1.500" "2.500" "3.100" 1
ATOM N1 U A "2" "12.x3" "0.000" "0.000" 1
ATOM C2 U A "2" "1.000" "0.000" "0.000" 1
ATOM N1 U A "zz" "1.000" "0.000" "0.000" 1
`

func TestOperators(t *testing.T) {
	d := readDoc(t, cifAssembly)

	for _, asym := range []string{"A", "B"} {
		ops := d.Operators(asym)
		if len(ops) != 1 {
			t.Fatalf("Expected one operator for chain %s, got %d.",
				asym, len(ops))
		}
		if ops[0].ID != "1" || ops[0].Name != "1_555" {
			t.Fatalf("Expected the identity operator for chain %s, got %+v.",
				asym, ops[0])
		}
	}

	ops := d.Operators("C")
	if len(ops) != 1 {
		t.Fatalf("Expected one operator for chain C, got %d.", len(ops))
	}
	op := ops[0]
	if op.ID != "2" || op.Name != "2_555" {
		t.Fatalf("Expected operator 2 for chain C, got %+v.", op)
	}
	wantRot := superpose.Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, -1,
	}
	if op.Rotation != wantRot {
		t.Fatalf("Expected a z mirror rotation, got %v.", op.Rotation)
	}
	wantTrans := structure.Coords{X: 0.5, Y: -1.25, Z: 3.0}
	if op.Translation != wantTrans {
		t.Fatalf("Expected translation %v, got %v.", wantTrans, op.Translation)
	}

	moved := op.Apply(structure.Coords{X: 1, Y: 1, Z: 1})
	want := structure.Coords{X: 1.5, Y: -0.25, Z: 2}
	if d := coordDist(moved, want); d > 1e-12 {
		t.Fatalf("Expected Apply to yield %v, got %v.", want, moved)
	}

	if len(d.Operators("D")) != 0 {
		t.Fatal("Expected no operators for an unlisted chain.")
	}
}

func TestIdentityOperatorFromItems(t *testing.T) {
	d := readDoc(t, cifRNA)
	ops := d.Operators("A")
	if len(ops) != 1 {
		t.Fatalf("Expected one operator, got %d.", len(ops))
	}
	op := ops[0]
	if op.Name != "1_555" {
		t.Fatalf("Expected operator name 1_555, got %s.", op.Name)
	}
	p := structure.Coords{X: 1.5, Y: -2, Z: 0.25}
	if moved := op.Apply(p); coordDist(moved, p) > 1e-12 {
		t.Fatalf("Expected the identity operator to fix %v, got %v.", p, moved)
	}
}

func TestComposedOperatorExpression(t *testing.T) {
	_, err := Read(strings.NewReader(cifComposed))
	var unsupported *UnsupportedOperatorError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected an UnsupportedOperatorError, got %v.", err)
	}
	if unsupported.Expression != "1,2" {
		t.Fatalf("Expected the offending expression, got %q.",
			unsupported.Expression)
	}
}

func TestStructurePartitionsAtoms(t *testing.T) {
	d := readDoc(t, cifRNA)
	s, err := d.Structure(chem.NewLibrary())
	if err != nil {
		t.Fatalf("Structure failed: %s", err)
	}
	if s.PDB != "1EHZ" {
		t.Fatalf("Expected structure id 1EHZ, got %s.", s.PDB)
	}
	if s.Len() != 3 {
		t.Fatalf("Expected 3 components, got %d.", s.Len())
	}
	if n := len(s.Atoms()); n != 13 {
		t.Fatalf("Expected all 13 atoms to survive assembly, got %d.", n)
	}

	comps := s.Components()
	wantIDs := []string{"1EHZ|1|A|A|16", "1EHZ|1|A|U|17", "1EHZ|1|B|HOH|101"}
	for i, want := range wantIDs {
		if got := comps[i].UnitID(); got != want {
			t.Fatalf("Expected component %d to be %s, got %s.", i, want, got)
		}
	}
	if comps[0].Len() != 11 || comps[1].Len() != 1 || comps[2].Len() != 1 {
		t.Fatalf("Unexpected component sizes: %d, %d, %d.",
			comps[0].Len(), comps[1].Len(), comps[2].Len())
	}
	if !comps[0].Polymeric() || !comps[1].Polymeric() || comps[2].Polymeric() {
		t.Fatal("Expected the nucleotides to be polymeric and the water not.")
	}
	if comps[2].Type() != "water" {
		t.Fatalf("Expected the water's entity type, got %q.", comps[2].Type())
	}
	if comps[0].ID().Index != 16 || comps[2].ID().Index != 0 {
		t.Fatal("Expected label_seq_id to map to the component index.")
	}
}

func TestStructureAtomFields(t *testing.T) {
	d := readDoc(t, cifRNA)
	s, err := d.Structure(chem.NewLibrary())
	if err != nil {
		t.Fatalf("Structure failed: %s", err)
	}
	atoms := s.Atoms()

	first := atoms[0]
	if first.Name != "C1'" || first.Element != "C" || first.Group != "ATOM" {
		t.Fatalf("Unexpected first atom: %+v.", first)
	}
	if first.AltID != "" || first.InsCode != "" {
		t.Fatal("Expected '.' and '?' to read as absent values.")
	}
	if first.Symmetry != "1_555" {
		t.Fatalf("Expected the identity symmetry on atoms, got %s.",
			first.Symmetry)
	}
	if first.Model != 1 || first.Chain != "A" || first.ComponentNumber != 16 {
		t.Fatalf("Unexpected identity fields: %+v.", first)
	}

	water := atoms[12]
	if water.Group != "HETATM" || water.Polymeric {
		t.Fatalf("Expected a non-polymeric HETATM water, got %+v.", water)
	}
}

func TestStructureFramesFromDocument(t *testing.T) {
	d := readDoc(t, cifRNA)
	s, err := d.Structure(chem.NewLibrary())
	if err != nil {
		t.Fatalf("Structure failed: %s", err)
	}

	// The adenosine was written at the reference coordinates, so its
	// canonical frame is the identity.
	a := s.Components()[0]
	rot, ok := a.RotationMatrix()
	if !ok {
		t.Fatal("Expected a canonical frame for the adenosine.")
	}
	for i, want := range []float64{1, 0, 0, 0, 1, 0, 0, 0, 1} {
		if math.Abs(rot[i]-want) > 1e-9 {
			t.Fatalf("Expected the identity rotation, got %v.", rot)
		}
	}
	if math.Abs(rot.Det()-1) > 1e-9 {
		t.Fatalf("Expected a proper rotation, got determinant %f.", rot.Det())
	}
	rmsd, ok := a.FrameRMSD()
	if !ok {
		t.Fatal("Expected a frame RMSD for the adenosine.")
	}
	if rmsd > 1e-9 {
		t.Fatalf("Expected a perfect fit, got RMSD %g.", rmsd)
	}

	// A single atom cannot anchor a frame, but the component still loads.
	u := s.Components()[1]
	if _, ok := u.RotationMatrix(); ok {
		t.Fatal("Expected no frame for a single-atom nucleotide.")
	}
}

func TestStructureMinimalDocument(t *testing.T) {
	d := readDoc(t, cifMinimal)
	s, err := d.Structure(chem.NewLibrary())
	if err != nil {
		t.Fatalf("Structure failed: %s", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Expected 2 components, got %d.", s.Len())
	}
	for _, c := range s.Components() {
		if c.Polymeric() {
			t.Fatalf("Expected no polymers without entity records, got %s.",
				c.UnitID())
		}
		if c.Type() != "" {
			t.Fatalf("Expected no entity type, got %q.", c.Type())
		}
	}
	if len(d.Operators("A")) != 0 {
		t.Fatal("Expected no operators without an operator category.")
	}
}

func TestStructureDropsMalformedComponents(t *testing.T) {
	d := readDoc(t, cifMalformed)
	s, err := d.Structure(chem.NewLibrary())
	if err == nil {
		t.Fatal("Expected malformed rows to be reported.")
	}
	var malformed *MalformedFieldError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected a MalformedFieldError, got %v.", err)
	}
	if s == nil {
		t.Fatal("Expected a partial structure alongside the errors.")
	}
	if s.Len() != 1 {
		t.Fatalf("Expected only the intact residue to survive, got %d.",
			s.Len())
	}
	c := s.Components()[0]
	if c.UnitID() != "1BAD|1|A|U|1" || c.Len() != 2 {
		t.Fatalf("Expected residue 1 with both atoms, got %s with %d.",
			c.UnitID(), c.Len())
	}
}

func TestSequences(t *testing.T) {
	d := readDoc(t, cifRNA)
	seqs, err := d.Sequences(chem.NewLibrary())
	if err != nil {
		t.Fatalf("Sequences failed: %s", err)
	}
	if len(seqs) != 1 {
		t.Fatalf("Expected one polymer sequence, got %d.", len(seqs))
	}
	sq, ok := seqs["1"]
	if !ok {
		t.Fatal("Expected a sequence for entity 1.")
	}
	if sq.Name != "1EHZ|1" {
		t.Fatalf("Expected the sequence name 1EHZ|1, got %s.", sq.Name)
	}
	want := "AGUX"
	if len(sq.Residues) != len(want) {
		t.Fatalf("Expected %d residues, got %d.", len(want), len(sq.Residues))
	}
	for i := range want {
		if byte(sq.Residues[i]) != want[i] {
			t.Fatalf("Expected residue %d to be %c, got %c.",
				i, want[i], sq.Residues[i])
		}
	}
}

func TestSequencesWithoutPolymers(t *testing.T) {
	d := readDoc(t, cifMinimal)
	seqs, err := d.Sequences(chem.NewLibrary())
	if err != nil {
		t.Fatalf("Sequences failed: %s", err)
	}
	if len(seqs) != 0 {
		t.Fatalf("Expected no sequences, got %d.", len(seqs))
	}
}

func coordDist(a, b structure.Coords) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

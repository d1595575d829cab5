// Package unit defines the assembled structural entities: atoms,
// components (residues, ligands and other chemical units) and whole
// structures, together with the geometric queries components support.
//
// Values in this package are immutable. Operations that "change" a
// component, like applying a transform or inferring hydrogens, return a
// new component and leave the receiver untouched, so components may be
// shared freely between derived views and goroutines.
package unit

import (
	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/rna3d/superpose"
)

// Atom is a single assembled atom record. Identity fields mirror the
// atom-site category of the source document; optional fields are zero
// when the source carried a placeholder.
type Atom struct {
	// The four letter PDB identifier of the structure this atom
	// belongs to.
	PDB string

	// The model number. (CIF: atom_site.pdbx_PDB_model_num)
	Model int

	// The author-assigned chain identifier.
	// (CIF: atom_site.auth_asym_id)
	Chain string

	// The residue type of the component owning this atom, e.g. "C" or
	// "LYS". (CIF: atom_site.label_comp_id)
	ComponentID string

	// The author-assigned residue number.
	// (CIF: atom_site.auth_seq_id)
	ComponentNumber int

	// The position of the residue within its polymer sequence, or 0 when
	// the source carried the placeholder for non-polymers.
	// (CIF: atom_site.label_seq_id)
	ComponentIndex int

	// The insertion code, or "" when absent.
	// (CIF: atom_site.pdbx_PDB_ins_code)
	InsCode string

	// The alternate location identifier, or "" when absent.
	// (CIF: atom_site.label_alt_id)
	AltID string

	// The record group, "ATOM" or "HETATM".
	// (CIF: atom_site.group_PDB)
	Group string

	// The element symbol. (CIF: atom_site.type_symbol)
	Element string

	// The atom name, e.g. "N9" or "C1'".
	// (CIF: atom_site.label_atom_id)
	Name string

	// The name of the symmetry operator applied to this atom.
	Symmetry string

	// Whether the atom belongs to a polymeric entity.
	Polymeric bool

	// Whether the atom is a template hydrogen added by inference rather
	// than read from the source document.
	Inferred bool

	structure.Coords
}

// Identity is the composite identity shared by all atoms of one
// component. It is comparable, so it serves directly as a grouping key.
type Identity struct {
	PDB      string
	Model    int
	Chain    string
	Symmetry string
	Sequence string
	Number   int
	Index    int
	InsCode  string
	AltID    string
}

// Identity returns the composite identity of the component this atom
// belongs to.
func (a Atom) Identity() Identity {
	return Identity{
		PDB:      a.PDB,
		Model:    a.Model,
		Chain:    a.Chain,
		Symmetry: a.Symmetry,
		Sequence: a.ComponentID,
		Number:   a.ComponentNumber,
		Index:    a.ComponentIndex,
		InsCode:  a.InsCode,
		AltID:    a.AltID,
	}
}

// Transform returns a copy of the atom with its coordinates passed
// through the given transform.
func (a Atom) Transform(m superpose.Matrix4) Atom {
	a.Coords = m.Apply(a.Coords)
	return a
}

// Distance returns the Euclidean distance between two atoms.
func (a Atom) Distance(b Atom) float64 {
	return superpose.Norm(superpose.Sub(a.Coords, b.Coords))
}

// Package chem holds the residue-chemistry reference data needed to place
// nucleotides into their canonical base frames: heavy base-atom
// compositions, standard-frame coordinates, hydrogen templates,
// modified-nucleotide atom correspondences, named atom groups for
// nucleotides and amino acids, and the hydrogen-bond donor/acceptor set.
//
// All data lives in a Library, built once by NewLibrary and immutable
// afterwards. Code that needs chemistry data takes a *Library explicitly;
// accessors return copies, so callers cannot corrupt the shared tables.
package chem

import (
	"sort"

	"github.com/TuftsBCB/structure"
)

// Library is an immutable collection of residue-chemistry tables. The
// zero value is not useful; use NewLibrary.
type Library struct {
	baseHeavy     map[string][]string
	baseCoords    map[string]map[string]structure.Coords
	baseHydrogens map[string][]string
	modified      map[string]Modified
	sugar         []string
	phosphate     []string
	aminoFG       map[string][]string
	aminoBackbone []string
	planar        map[string][]string
	hbond         map[string]bool
}

// Modified describes a modified nucleotide in terms of a standard parent
// residue type.
type Modified struct {
	// Parent is the standard residue type whose reference frame the
	// modified residue borrows.
	Parent string

	// Atoms maps each heavy base-atom name of the parent to the
	// corresponding atom name in the modified residue. Parent atoms
	// without a counterpart are absent and excluded from fits.
	Atoms map[string]string
}

// ParentNames returns the parent-side atom names of the correspondence in
// sorted order, so that iteration over a correspondence is deterministic.
func (m Modified) ParentNames() []string {
	names := make([]string, 0, len(m.Atoms))
	for name := range m.Atoms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MappedNames returns the modified-side atom names of the correspondence
// in sorted order.
func (m Modified) MappedNames() []string {
	names := make([]string, 0, len(m.Atoms))
	for _, name := range m.Atoms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewLibrary returns the built-in residue-chemistry library.
func NewLibrary() *Library {
	return &Library{
		baseHeavy:     rnaBaseHeavyAtoms,
		baseCoords:    rnaBaseCoordinates,
		baseHydrogens: rnaBaseHydrogens,
		modified:      modifiedNucleotides,
		sugar:         ntSugar,
		phosphate:     ntPhosphate,
		aminoFG:       aaFunctionalGroups,
		aminoBackbone: aaBackbone,
		planar:        planarAtoms,
		hbond:         hydrogenBondAtoms,
	}
}

// IsStandardNucleotide reports whether code is one of the standard RNA
// residue types with a reference frame of its own.
func (lib *Library) IsStandardNucleotide(code string) bool {
	_, ok := lib.baseHeavy[code]
	return ok
}

// IsNucleotide reports whether code is a standard or modified nucleotide.
func (lib *Library) IsNucleotide(code string) bool {
	if lib.IsStandardNucleotide(code) {
		return true
	}
	_, ok := lib.modified[code]
	return ok
}

// BaseHeavyAtoms returns the heavy base-atom names of a standard
// nucleotide, or nil when code is not a standard nucleotide.
func (lib *Library) BaseHeavyAtoms(code string) []string {
	return copyNames(lib.baseHeavy[code])
}

// BaseCoordinate returns the standard-frame position of one atom of a
// standard nucleotide. The table covers the heavy base atoms, the
// glycosidic C1' and the template hydrogens.
func (lib *Library) BaseCoordinate(code, atom string) (structure.Coords, bool) {
	coords, ok := lib.baseCoords[code]
	if !ok {
		return structure.Coords{}, false
	}
	c, ok := coords[atom]
	return c, ok
}

// BaseHydrogens returns the template hydrogen names of a standard
// nucleotide, or nil when code has no hydrogen template.
func (lib *Library) BaseHydrogens(code string) []string {
	return copyNames(lib.baseHydrogens[code])
}

// Modified returns the parent type and atom correspondence of a modified
// nucleotide.
func (lib *Library) Modified(code string) (Modified, bool) {
	m, ok := lib.modified[code]
	if !ok {
		return Modified{}, false
	}
	atoms := make(map[string]string, len(m.Atoms))
	for k, v := range m.Atoms {
		atoms[k] = v
	}
	return Modified{Parent: m.Parent, Atoms: atoms}, true
}

// Sugar returns the ribose atom names for a nucleotide type, or nil for
// non-nucleotides.
func (lib *Library) Sugar(code string) []string {
	if !lib.IsNucleotide(code) {
		return nil
	}
	return copyNames(lib.sugar)
}

// Phosphate returns the phosphate atom names for a nucleotide type, or
// nil for non-nucleotides.
func (lib *Library) Phosphate(code string) []string {
	if !lib.IsNucleotide(code) {
		return nil
	}
	return copyNames(lib.phosphate)
}

// AminoFunctionalGroup returns the side-chain functional-group atom names
// of an amino acid, or nil when code is not a known amino acid.
func (lib *Library) AminoFunctionalGroup(code string) []string {
	return copyNames(lib.aminoFG[code])
}

// AminoBackbone returns the backbone atom names for an amino acid, or nil
// when code is not a known amino acid.
func (lib *Library) AminoBackbone(code string) []string {
	if _, ok := lib.aminoFG[code]; !ok {
		return nil
	}
	return copyNames(lib.aminoBackbone)
}

// PlanarAtoms returns the three in-plane reference atoms used to compute
// a residue's plane normal, or nil when code has no declared plane.
func (lib *Library) PlanarAtoms(code string) []string {
	return copyNames(lib.planar[code])
}

// HydrogenBondAtoms returns the fixed hydrogen-bond donor/acceptor atom
// name set, sorted.
func (lib *Library) HydrogenBondAtoms() []string {
	names := make([]string, 0, len(lib.hbond))
	for name := range lib.hbond {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsHydrogenBondAtom reports whether an atom name belongs to the
// hydrogen-bond donor/acceptor set.
func (lib *Library) IsHydrogenBondAtom(name string) bool {
	return lib.hbond[name]
}

func copyNames(names []string) []string {
	if names == nil {
		return nil
	}
	out := make([]string, len(names))
	copy(out, names)
	return out
}

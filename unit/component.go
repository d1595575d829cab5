package unit

import (
	"errors"
	"fmt"
	"math"

	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/rna3d/chem"
	"github.com/TuftsBCB/rna3d/superpose"
	"github.com/TuftsBCB/rna3d/unitid"
)

// ErrNoCanonicalFrame is wrapped by errors returned from operations that
// need a canonical base frame invoked on a component that has none,
// either because its residue type has no reference frame or because the
// superposition against the reference failed.
var ErrNoCanonicalFrame = errors.New("no canonical frame")

// Component is a residue, ligand or other chemical unit: an ordered list
// of atoms sharing one composite identity. Nucleotide components carry,
// when the fit succeeds, a rotation into the canonical base frame.
//
// Components are immutable. Derivations like Select, Transform and
// InferHydrogens return new components.
type Component struct {
	id        Identity
	typ       string
	polymeric bool
	atoms     []Atom
	lib       *chem.Library
	groups    map[string][]string
	frame     *superpose.Fit
	frameErr  error
}

// NewComponent builds a component from atoms sharing one composite
// identity. The entity type is the source document's classification for
// the owning entity ("polymer", "water", ...). Named atom-center groups
// are derived from the residue type, and for nucleotide types the
// canonical-frame rotation is attempted: standard types fit their heavy
// base atoms against their own reference table, modified types fit
// against the parent's table through the declared atom correspondence. A
// failed fit leaves the component without a frame; operations that need
// one fail with ErrNoCanonicalFrame.
func NewComponent(lib *chem.Library, id Identity, entityType string, polymeric bool, atoms []Atom) *Component {
	owned := make([]Atom, len(atoms))
	copy(owned, atoms)
	return newComponent(lib, id, entityType, polymeric, owned)
}

// newComponent takes ownership of atoms.
func newComponent(lib *chem.Library, id Identity, entityType string, polymeric bool, atoms []Atom) *Component {
	c := &Component{
		id:        id,
		typ:       entityType,
		polymeric: polymeric,
		atoms:     atoms,
		lib:       lib,
		groups:    buildGroups(lib, id.Sequence),
	}
	c.computeFrame()
	return c
}

func buildGroups(lib *chem.Library, seq string) map[string][]string {
	groups := make(map[string][]string)
	if heavy := lib.BaseHeavyAtoms(seq); heavy != nil {
		groups["base"] = heavy
	} else if m, ok := lib.Modified(seq); ok {
		groups["base"] = m.MappedNames()
	}
	if sugar := lib.Sugar(seq); sugar != nil {
		groups["nt_sugar"] = sugar
	}
	if phosphate := lib.Phosphate(seq); phosphate != nil {
		groups["nt_phosphate"] = phosphate
	}
	if fg := lib.AminoFunctionalGroup(seq); fg != nil {
		groups["aa_fg"] = fg
	}
	if bb := lib.AminoBackbone(seq); bb != nil {
		groups["aa_backbone"] = bb
	}
	return groups
}

// computeFrame fits the heavy base atoms against the standard reference
// coordinates. Standard types pair atoms by name with their own table;
// modified types pair through the parent correspondence, iterated in
// sorted order so the fit is deterministic.
func (c *Component) computeFrame() {
	seq := c.id.Sequence
	var observed, reference []structure.Coords

	if m, ok := c.lib.Modified(seq); ok {
		for _, parent := range m.ParentNames() {
			pos, found := c.firstAtom(m.Atoms[parent])
			if !found {
				continue
			}
			ref, _ := c.lib.BaseCoordinate(m.Parent, parent)
			observed = append(observed, pos)
			reference = append(reference, ref)
		}
	} else if heavy := c.lib.BaseHeavyAtoms(seq); heavy != nil {
		for _, atom := range c.Atoms(heavy...) {
			ref, ok := c.lib.BaseCoordinate(seq, atom.Name)
			if !ok {
				continue
			}
			observed = append(observed, atom.Coords)
			reference = append(reference, ref)
		}
	} else {
		return
	}

	fit, err := superpose.BestTransformation(observed, reference)
	if err != nil {
		c.frameErr = err
		return
	}
	c.frame = fit
}

// ID returns the component's composite identity.
func (c *Component) ID() Identity { return c.id }

// Type returns the entity classification of the component, e.g.
// "polymer" or "water".
func (c *Component) Type() string { return c.typ }

// Polymeric reports whether the component belongs to a polymeric entity.
func (c *Component) Polymeric() bool { return c.polymeric }

// Len returns the number of atoms in the component.
func (c *Component) Len() int { return len(c.atoms) }

// Equal reports whether two components share the same full composite
// identity. Atom membership plays no part in equality.
func (c *Component) Equal(other *Component) bool {
	return other != nil && c.id == other.id
}

// UnitID returns the canonical unit id of this component.
func (c *Component) UnitID() string {
	return unitid.Encode(unitid.Fields{
		PDB:      c.id.PDB,
		Model:    c.id.Model,
		Chain:    c.id.Chain,
		Sequence: c.id.Sequence,
		Number:   c.id.Number,
		AltID:    c.id.AltID,
		InsCode:  c.id.InsCode,
		Symmetry: c.id.Symmetry,
	})
}

func (c *Component) String() string { return c.UnitID() }

// Atoms returns the component's atoms in order. With no arguments all
// atoms are returned. A single argument naming one of the residue's
// defined groups ("base", "nt_sugar", "nt_phosphate", "aa_fg",
// "aa_backbone") expands to that group's atom names; any other arguments
// match atom names literally.
func (c *Component) Atoms(names ...string) []Atom {
	if len(names) == 0 {
		out := make([]Atom, len(c.atoms))
		copy(out, c.atoms)
		return out
	}
	want := names
	if len(names) == 1 {
		if def, ok := c.groups[names[0]]; ok {
			want = def
		}
	}
	set := make(map[string]bool, len(want))
	for _, name := range want {
		set[name] = true
	}
	var out []Atom
	for _, a := range c.atoms {
		if set[a.Name] {
			out = append(out, a)
		}
	}
	return out
}

// Coordinates returns the coordinates of the selected atoms, in atom
// order. Selection follows the same rules as Atoms.
func (c *Component) Coordinates(names ...string) []structure.Coords {
	atoms := c.Atoms(names...)
	coords := make([]structure.Coords, len(atoms))
	for i, a := range atoms {
		coords[i] = a.Coords
	}
	return coords
}

// Select returns a new component with the same identity containing only
// the selected atoms. The canonical frame is recomputed from the subset.
func (c *Component) Select(names ...string) *Component {
	return newComponent(c.lib, c.id, c.typ, c.polymeric, c.Atoms(names...))
}

// IsComplete reports whether every requested atom name is present exactly
// once in this component.
func (c *Component) IsComplete(names []string) bool {
	counts := make(map[string]int, len(c.atoms))
	for _, a := range c.atoms {
		counts[a.Name]++
	}
	for _, name := range names {
		if counts[name] != 1 {
			return false
		}
	}
	return true
}

// Center returns a named center of the component: "*" averages over all
// atoms, a group name averages over the group's atoms that are present,
// and any other name returns the position of the first atom with that
// name.
func (c *Component) Center(name string) (structure.Coords, bool) {
	var coords []structure.Coords
	switch {
	case name == "*":
		coords = c.Coordinates()
	default:
		if def, ok := c.groups[name]; ok {
			coords = c.coordsNamed(def)
		} else {
			return c.firstAtom(name)
		}
	}
	if len(coords) == 0 {
		return structure.Coords{}, false
	}
	return superpose.Centroid(coords...), true
}

// Distance returns the Euclidean distance between a named center of this
// component and a named center of another.
func (c *Component) Distance(other *Component, using, to string) (float64, error) {
	a, ok := c.Center(using)
	if !ok {
		return 0, fmt.Errorf("The component %s has no center '%s'.",
			c.UnitID(), using)
	}
	b, ok := other.Center(to)
	if !ok {
		return 0, fmt.Errorf("The component %s has no center '%s'.",
			other.UnitID(), to)
	}
	return superpose.Norm(superpose.Sub(a, b)), nil
}

// AtomsWithin reports whether at least minNumber pairs of atoms, one from
// each component, lie within the cutoff distance. The atom subsets may be
// restricted by name; nil means all atoms. A single-element restriction
// naming a group expands like Atoms.
func (c *Component) AtomsWithin(other *Component, cutoff float64, using, to []string, minNumber int) bool {
	if minNumber <= 0 {
		return true
	}
	cutoff = math.Abs(cutoff)
	mine := c.atoms
	if using != nil {
		mine = c.Atoms(using...)
	}
	theirs := other.atoms
	if to != nil {
		theirs = other.Atoms(to...)
	}
	n := 0
	for _, a := range mine {
		for _, b := range theirs {
			if a.Distance(b) <= cutoff {
				n++
				if n >= minNumber {
					return true
				}
			}
		}
	}
	return false
}

// Normal returns the component's plane normal, the cross product of two
// edge vectors through the residue type's three planar reference atoms.
// Modified nucleotides borrow the parent's triple through the atom
// correspondence. The normal is not normalized.
func (c *Component) Normal() (structure.Coords, error) {
	seq := c.id.Sequence
	triple := c.lib.PlanarAtoms(seq)
	if triple == nil {
		if m, ok := c.lib.Modified(seq); ok {
			triple = mapTriple(c.lib.PlanarAtoms(m.Parent), m.Atoms)
		}
	}
	if len(triple) != 3 {
		return structure.Coords{}, fmt.Errorf("The component %s has no "+
			"planar reference atoms.", c.UnitID())
	}
	ps := make([]structure.Coords, 3)
	for i, name := range triple {
		p, ok := c.firstAtom(name)
		if !ok {
			return structure.Coords{}, fmt.Errorf("The component %s is "+
				"missing planar atom %s.", c.UnitID(), name)
		}
		ps[i] = p
	}
	return superpose.Cross(
		superpose.Sub(ps[1], ps[0]),
		superpose.Sub(ps[2], ps[0]),
	), nil
}

// AngleBetweenNormals returns the angle in radians between this
// component's plane normal and another's.
func (c *Component) AngleBetweenNormals(other *Component) (float64, error) {
	n1, err := c.Normal()
	if err != nil {
		return 0, err
	}
	n2, err := other.Normal()
	if err != nil {
		return 0, err
	}
	return superpose.AngleBetweenPlanes(n1, n2), nil
}

// EnoughHydrogenBonds reports whether strictly more than minBonds pairs
// of (base heavy atom, functional-group donor/acceptor atom) lie within
// minDistance between this nucleotide and an amino acid.
func (c *Component) EnoughHydrogenBonds(other *Component, minDistance float64, minBonds int) bool {
	n := 0
	for _, baseAtom := range c.Atoms("base") {
		for _, aaAtom := range other.Atoms("aa_fg") {
			if !c.lib.IsHydrogenBondAtom(aaAtom.Name) {
				continue
			}
			if baseAtom.Distance(aaAtom) <= minDistance {
				n++
				if n > minBonds {
					return true
				}
			}
		}
	}
	return false
}

// RotationMatrix returns the rotation into the canonical base frame,
// when the component has one.
func (c *Component) RotationMatrix() (superpose.Matrix3, bool) {
	if c.frame == nil {
		return superpose.Matrix3{}, false
	}
	return c.frame.Rotation, true
}

// FrameRMSD returns the residual of the canonical-frame fit.
func (c *Component) FrameRMSD() (float64, bool) {
	if c.frame == nil {
		return 0, false
	}
	return c.frame.RMSD, true
}

// CanonicalTransform returns the homogeneous transform carrying this
// component from its native frame to the canonical base frame: [Rᵗ|-Rᵗc]
// where R is the fitted rotation and c the native base center.
func (c *Component) CanonicalTransform() (superpose.Matrix4, error) {
	rot, ok := c.RotationMatrix()
	if !ok {
		return superpose.Matrix4{}, c.noFrame()
	}
	base, ok := c.Center("base")
	if !ok {
		return superpose.Matrix4{}, fmt.Errorf("The component %s has no "+
			"base center.", c.UnitID())
	}
	rt := rot.Transpose()
	return superpose.Rigid(rt, superpose.Scale(rt.Apply(base), -1)), nil
}

// Transform returns a new component with every atom passed through the
// transform, identity and type fields preserved. Template hydrogens are
// not carried over: inferred atoms are dropped, and the template is
// re-inferred in the new frame when one exists.
func (c *Component) Transform(m superpose.Matrix4) *Component {
	atoms := make([]Atom, 0, len(c.atoms))
	for _, a := range c.atoms {
		if a.Inferred {
			continue
		}
		atoms = append(atoms, a.Transform(m))
	}
	nc := newComponent(c.lib, c.id, c.typ, c.polymeric, atoms)
	if withH, err := nc.InferHydrogens(); err == nil {
		return withH
	}
	return nc
}

// TranslateRotate expresses another component in this component's
// canonical frame, applying the transform that carries this component to
// standard position at the origin.
func (c *Component) TranslateRotate(other *Component) (*Component, error) {
	m, err := c.CanonicalTransform()
	if err != nil {
		return nil, err
	}
	return other.Transform(m), nil
}

// InferHydrogens returns a new component with the residue type's template
// hydrogens appended, each placed at base center + offset·Rᵗ using the
// component's own rotation and base center. Existing atoms are kept as
// they are, so calling this on a component that already carries the
// template hydrogens duplicates them. Residue types without a hydrogen
// template are returned unchanged.
func (c *Component) InferHydrogens() (*Component, error) {
	seq := c.id.Sequence
	hydrogens := c.lib.BaseHydrogens(seq)
	if hydrogens == nil {
		return c, nil
	}
	rot, ok := c.RotationMatrix()
	if !ok {
		return nil, c.noFrame()
	}
	base, ok := c.Center("base")
	if !ok {
		return nil, fmt.Errorf("The component %s has no base center.", c.UnitID())
	}

	atoms := make([]Atom, len(c.atoms), len(c.atoms)+len(hydrogens))
	copy(atoms, c.atoms)
	for _, name := range hydrogens {
		offset, ok := c.lib.BaseCoordinate(seq, name)
		if !ok {
			continue
		}
		atoms = append(atoms, Atom{
			PDB:             c.id.PDB,
			Model:           c.id.Model,
			Chain:           c.id.Chain,
			ComponentID:     seq,
			ComponentNumber: c.id.Number,
			ComponentIndex:  c.id.Index,
			InsCode:         c.id.InsCode,
			AltID:           c.id.AltID,
			Element:         "H",
			Name:            name,
			Symmetry:        c.id.Symmetry,
			Polymeric:       c.polymeric,
			Inferred:        true,
			Coords:          superpose.Add(base, rot.Apply(offset)),
		})
	}

	// The appended hydrogens are not heavy base atoms, so the frame and
	// groups of the receiver remain valid and are shared.
	return &Component{
		id:        c.id,
		typ:       c.typ,
		polymeric: c.polymeric,
		atoms:     atoms,
		lib:       c.lib,
		groups:    c.groups,
		frame:     c.frame,
		frameErr:  c.frameErr,
	}, nil
}

func (c *Component) noFrame() error {
	if c.frameErr != nil {
		return fmt.Errorf("The component %s has no canonical frame: %w: %w",
			c.UnitID(), ErrNoCanonicalFrame, c.frameErr)
	}
	return fmt.Errorf("The component %s has no canonical frame: %w",
		c.UnitID(), ErrNoCanonicalFrame)
}

func (c *Component) firstAtom(name string) (structure.Coords, bool) {
	for _, a := range c.atoms {
		if a.Name == name {
			return a.Coords, true
		}
	}
	return structure.Coords{}, false
}

func (c *Component) coordsNamed(names []string) []structure.Coords {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	var coords []structure.Coords
	for _, a := range c.atoms {
		if set[a.Name] {
			coords = append(coords, a.Coords)
		}
	}
	return coords
}

func mapTriple(parentTriple []string, atoms map[string]string) []string {
	if len(parentTriple) != 3 {
		return nil
	}
	triple := make([]string, 0, 3)
	for _, name := range parentTriple {
		mapped, ok := atoms[name]
		if !ok {
			return nil
		}
		triple = append(triple, mapped)
	}
	return triple
}

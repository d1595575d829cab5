package unit

// Structure is one assembled document: a structure id and its components
// in source order.
type Structure struct {
	// The four letter PDB identifier of the document.
	PDB string

	components []*Component
}

// NewStructure builds a structure over the given components, preserving
// their order.
func NewStructure(pdb string, components []*Component) *Structure {
	owned := make([]*Component, len(components))
	copy(owned, components)
	return &Structure{PDB: pdb, components: owned}
}

// Components returns all components in source order.
func (s *Structure) Components() []*Component {
	out := make([]*Component, len(s.components))
	copy(out, s.components)
	return out
}

// Residues returns the components whose residue type matches one of the
// given types, in source order. With no arguments all components are
// returned.
func (s *Structure) Residues(types ...string) []*Component {
	if len(types) == 0 {
		return s.Components()
	}
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []*Component
	for _, c := range s.components {
		if want[c.ID().Sequence] {
			out = append(out, c)
		}
	}
	return out
}

// Atoms returns every atom of every component, in source order.
func (s *Structure) Atoms() []Atom {
	var out []Atom
	for _, c := range s.components {
		out = append(out, c.Atoms()...)
	}
	return out
}

// Component finds a component by its canonical unit id.
func (s *Structure) Component(unitID string) (*Component, bool) {
	for _, c := range s.components {
		if c.UnitID() == unitID {
			return c, true
		}
	}
	return nil, false
}

// Len returns the number of components.
func (s *Structure) Len() int { return len(s.components) }

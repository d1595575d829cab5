package mmcif

import (
	"errors"
	"strconv"

	"github.com/TuftsBCB/seq"
	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/rna3d/chem"
	"github.com/TuftsBCB/rna3d/unit"
)

// MalformedFieldError is returned when a value of a category cannot be
// parsed as the type its column requires, e.g. an unparsable Cartesian
// coordinate in an atom-site row.
type MalformedFieldError struct {
	Category string
	Column   string
	Row      int
	Value    string
	Err      error
}

func (e *MalformedFieldError) Error() string {
	return sf("Row %d of category '%s' has a malformed '%s' value '%s'.",
		e.Row, e.Category, e.Column, e.Value)
}

func (e *MalformedFieldError) Unwrap() error { return e.Err }

// atomSite is the column view of the atom-site category the assembler
// reads. Optional columns are nil when the document omits them.
type atomSite struct {
	names    []string
	comps    []string
	chains   []string
	numbers  []string
	models   []string
	xs       []string
	ys       []string
	zs       []string
	groups   []string
	elements []string
	indexes  []string
	insCodes []string
	altIDs   []string
	entities []string
}

// Structure assembles the document's atom-site rows into components and
// returns them as one structure. Atoms are grouped by composite identity
// in file order; each group becomes one component carrying the
// chemistry-derived atom groups and canonical frame from lib.
//
// Symmetry resolution is a placeholder: every atom passes through the
// identity operator and carries its name. Rows with malformed fields are
// dropped along with their whole component, and all such failures are
// returned joined alongside the assembled remainder.
func (d *Document) Structure(lib *chem.Library) (*unit.Structure, error) {
	t, err := d.Table("atom_site")
	if err != nil {
		return nil, err
	}
	site, err := readAtomSite(t)
	if err != nil {
		return nil, err
	}

	op := IdentityOperator()

	var errs []error
	var order []unit.Identity
	buckets := make(map[unit.Identity][]unit.Atom)
	entityTypes := make(map[unit.Identity]string)
	poisoned := make(map[unit.Identity]bool)

	for i := range site.names {
		a, err := site.atom(d, t.Name, i, op)
		if err != nil {
			errs = append(errs, err)
			if a != nil {
				poisoned[a.Identity()] = true
			}
			continue
		}
		id := a.Identity()
		if _, ok := buckets[id]; !ok {
			order = append(order, id)
			entityTypes[id] = d.entities[site.entity(i)].Type
		}
		buckets[id] = append(buckets[id], *a)
	}

	components := make([]*unit.Component, 0, len(order))
	for _, id := range order {
		if poisoned[id] {
			lf("mmcif: dropping %s %s%d of %s: malformed atom fields\n",
				id.Sequence, id.Chain, id.Number, d.PDB)
			continue
		}
		atoms := buckets[id]
		components = append(components,
			unit.NewComponent(lib, id, entityTypes[id], atoms[0].Polymeric, atoms))
	}
	return unit.NewStructure(d.PDB, components), errors.Join(errs...)
}

func readAtomSite(t *Table) (*atomSite, error) {
	site := &atomSite{}
	for _, req := range []struct {
		name string
		dst  *[]string
	}{
		{"label_atom_id", &site.names},
		{"label_comp_id", &site.comps},
		{"auth_asym_id", &site.chains},
		{"auth_seq_id", &site.numbers},
		{"pdbx_pdb_model_num", &site.models},
		{"cartn_x", &site.xs},
		{"cartn_y", &site.ys},
		{"cartn_z", &site.zs},
	} {
		col, err := t.Column(req.name)
		if err != nil {
			return nil, err
		}
		*req.dst = col
	}
	site.groups = optionalColumn(t, "group_pdb")
	site.elements = optionalColumn(t, "type_symbol")
	site.indexes = optionalColumn(t, "label_seq_id")
	site.insCodes = optionalColumn(t, "pdbx_pdb_ins_code")
	site.altIDs = optionalColumn(t, "label_alt_id")
	site.entities = optionalColumn(t, "label_entity_id")
	return site, nil
}

func (s *atomSite) entity(i int) string {
	if s.entities == nil {
		return ""
	}
	return s.entities[i]
}

// atom builds row i into an atom placed through the given operator. On a
// malformed field it returns a *MalformedFieldError; the atom is still
// returned when enough fields parsed to identify its component, so the
// caller can drop the whole component, and is nil otherwise.
func (s *atomSite) atom(d *Document, category string, i int, op SymmetryOperator) (*unit.Atom, error) {
	number, err := strconv.Atoi(s.numbers[i])
	if err != nil {
		return nil, &MalformedFieldError{Category: category,
			Column: "auth_seq_id", Row: i, Value: s.numbers[i], Err: err}
	}
	model, err := strconv.Atoi(s.models[i])
	if err != nil {
		return nil, &MalformedFieldError{Category: category,
			Column: "pdbx_pdb_model_num", Row: i, Value: s.models[i], Err: err}
	}
	index := 0
	if s.indexes != nil && !placeholder(s.indexes[i]) {
		index, err = strconv.Atoi(s.indexes[i])
		if err != nil {
			return nil, &MalformedFieldError{Category: category,
				Column: "label_seq_id", Row: i, Value: s.indexes[i], Err: err}
		}
	}

	a := &unit.Atom{
		PDB:             d.PDB,
		Model:           model,
		Chain:           s.chains[i],
		ComponentID:     s.comps[i],
		ComponentNumber: number,
		ComponentIndex:  index,
		InsCode:         optionalField(s.insCodes, i),
		AltID:           optionalField(s.altIDs, i),
		Group:           rawField(s.groups, i),
		Element:         rawField(s.elements, i),
		Name:            s.names[i],
		Symmetry:        op.Name,
		Polymeric:       d.IsPolymeric(s.entity(i)),
	}

	coords := [3]float64{}
	for j, col := range []struct {
		name   string
		values []string
	}{
		{"cartn_x", s.xs}, {"cartn_y", s.ys}, {"cartn_z", s.zs},
	} {
		coords[j], err = strconv.ParseFloat(col.values[i], 64)
		if err != nil {
			// The identity fields parsed, so hand the atom back for
			// component poisoning.
			return a, &MalformedFieldError{Category: category,
				Column: col.name, Row: i, Value: col.values[i], Err: err}
		}
	}
	a.Coords = op.Apply(structure.Coords{
		X: coords[0], Y: coords[1], Z: coords[2],
	})
	return a, nil
}

// placeholder reports whether a value is one of the CIF "inapplicable"
// or "unknown" tokens.
func placeholder(v string) bool { return v == "." || v == "?" || v == "" }

// optionalField normalizes placeholder tokens of an optional column to
// the empty string.
func optionalField(col []string, i int) string {
	if col == nil || placeholder(col[i]) {
		return ""
	}
	return col[i]
}

func rawField(col []string, i int) string {
	if col == nil {
		return ""
	}
	return col[i]
}

// Sequences returns the residue sequence of each polymeric entity,
// keyed by entity id, from the entity_poly_seq category. Standard and
// modified nucleotides map to the parent one-letter code via lib; amino
// acids map through their three-letter codes; anything else becomes 'X'.
// Documents without the category return no sequences.
func (d *Document) Sequences(lib *chem.Library) (map[string]seq.Sequence, error) {
	t, err := d.Table("entity_poly_seq")
	if err != nil {
		if isMissingCategory(err) {
			return map[string]seq.Sequence{}, nil
		}
		return nil, err
	}
	entityIDs, err := t.Column("entity_id")
	if err != nil {
		return nil, err
	}
	monIDs, err := t.Column("mon_id")
	if err != nil {
		return nil, err
	}

	seqs := make(map[string]seq.Sequence)
	for i := range entityIDs {
		s, ok := seqs[entityIDs[i]]
		if !ok {
			s = seq.Sequence{
				Name:     sf("%s|%s", d.PDB, entityIDs[i]),
				Residues: make([]seq.Residue, 0, 50),
			}
		}
		s.Residues = append(s.Residues, residueLetter(lib, monIDs[i]))
		seqs[entityIDs[i]] = s
	}
	return seqs, nil
}

func residueLetter(lib *chem.Library, monID string) seq.Residue {
	if lib.IsStandardNucleotide(monID) {
		return seq.Residue(monID[0])
	}
	if m, ok := lib.Modified(monID); ok {
		return seq.Residue(m.Parent[0])
	}
	return aminoCodonToLetter(monID)
}

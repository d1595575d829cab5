// Package unitdb loads unit components from an external indexed store
// through database/sql.
//
// The store keeps one row per component in pdb_unit_id_correspondence,
// the position of each component within its file in pdb_unit_ordering,
// and one row per atom in atom_data. Rows are addressed by the indices
// the server assigned when the file was ingested, so a lookup never
// re-derives composite identities: atoms are grouped by the index column
// the store hands back.
package unitdb

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/rna3d/chem"
	"github.com/TuftsBCB/rna3d/unit"
	"github.com/TuftsBCB/rna3d/unitid"
)

var (
	ef = fmt.Errorf
	sf = fmt.Sprintf
)

// Bind selects the placeholder style of the SQL driver behind a store.
type Bind int

const (
	// BindQuestion writes '?' placeholders (sqlite, mysql).
	BindQuestion Bind = iota

	// BindDollar writes '$1' style placeholders (postgres).
	BindDollar
)

// Store reads components from an indexed unit store. Any database/sql
// driver works; the bind style must match the driver's placeholder
// syntax.
type Store struct {
	db   *sql.DB
	bind Bind
	lib  *chem.Library
}

// NewStore wraps an open database handle. The library given is consulted
// when components are rebuilt from store rows.
func NewStore(db *sql.DB, bind Bind, lib *chem.Library) *Store {
	return &Store{db: db, bind: bind, lib: lib}
}

const componentQuery = `
SELECT
	U.pdb,
	U.model,
	U.chain,
	U.seq_id,
	U.comp_id,
	O."index",
	U.sym_op,
	U.ins_code
FROM pdb_unit_ordering AS O
JOIN pdb_unit_id_correspondence AS U ON O.nt_id = U.old_id
WHERE O.pdb = ? AND U.pdb_file = ? AND O."index" IN (%s)
ORDER BY O."index"
`

const atomQuery = `
SELECT
	A.x,
	A.y,
	A.z,
	A.name,
	O."index"
FROM pdb_unit_ordering AS O
JOIN atom_data AS A ON O.nt_id = A.nt_id
JOIN pdb_unit_id_correspondence AS U ON O.nt_id = U.old_id
WHERE O.pdb = ? AND U.pdb_file = ? AND O."index" IN (%s)
`

// storeAtom is an atom row before its component's identity is known.
type storeAtom struct {
	name string
	pos  structure.Coords
}

// Lookup fetches every component named by the motif index lists, in
// ascending index order, with its atoms attached. The whole lookup is
// two round trips: one for atoms, one for components. Indices requested
// but absent from the store are simply not returned; LoadMotifs turns
// that into an error.
func (s *Store) Lookup(ctx context.Context, pdb, filetype string, motifs [][]int) ([]*unit.Component, error) {
	indices := uniqueIndices(motifs)
	if len(indices) == 0 {
		return nil, nil
	}
	args := make([]interface{}, 0, len(indices)+2)
	args = append(args, pdb, filetype)
	for _, idx := range indices {
		args = append(args, idx)
	}

	atoms, err := s.fetchAtoms(ctx, args, len(indices))
	if err != nil {
		return nil, err
	}
	return s.fetchComponents(ctx, args, len(indices), atoms)
}

// LoadMotifs resolves each motif's index list against one Lookup. The
// same component value backs every mention of its index. An index the
// store does not know yields an error naming it.
func (s *Store) LoadMotifs(ctx context.Context, pdb, filetype string, motifs [][]int) ([][]*unit.Component, error) {
	comps, err := s.Lookup(ctx, pdb, filetype, motifs)
	if err != nil {
		return nil, err
	}
	byIndex := make(map[int]*unit.Component, len(comps))
	for _, c := range comps {
		byIndex[c.ID().Index] = c
	}

	out := make([][]*unit.Component, len(motifs))
	for i, motif := range motifs {
		group := make([]*unit.Component, len(motif))
		for j, idx := range motif {
			c, ok := byIndex[idx]
			if !ok {
				return nil, ef("The store has no component at index %d of %s (%s).",
					idx, pdb, filetype)
			}
			group[j] = c
		}
		out[i] = group
	}
	return out, nil
}

func (s *Store) fetchAtoms(ctx context.Context, args []interface{}, n int) (map[int][]storeAtom, error) {
	rows, err := s.db.QueryContext(ctx, s.expand(atomQuery, n), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	atoms := make(map[int][]storeAtom)
	for rows.Next() {
		var a storeAtom
		var index int
		if err := rows.Scan(&a.pos.X, &a.pos.Y, &a.pos.Z, &a.name, &index); err != nil {
			return nil, err
		}
		atoms[index] = append(atoms[index], a)
	}
	return atoms, rows.Err()
}

func (s *Store) fetchComponents(ctx context.Context, args []interface{}, n int, atoms map[int][]storeAtom) ([]*unit.Component, error) {
	rows, err := s.db.QueryContext(ctx, s.expand(componentQuery, n), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comps []*unit.Component
	for rows.Next() {
		var pdb, chain, comp string
		var model, number, index int
		var symmetry, insCode sql.NullString
		err := rows.Scan(&pdb, &model, &chain, &number, &comp,
			&index, &symmetry, &insCode)
		if err != nil {
			return nil, err
		}

		id := unit.Identity{
			PDB:      pdb,
			Model:    model,
			Chain:    chain,
			Symmetry: unitid.DefaultSymmetry,
			Sequence: comp,
			Number:   number,
			Index:    index,
			InsCode:  insCode.String,
		}
		if symmetry.Valid && len(symmetry.String) > 0 {
			id.Symmetry = symmetry.String
		}
		comps = append(comps, s.newComponent(id, atoms[index]))
	}
	return comps, rows.Err()
}

// newComponent turns grouped store rows into a component. The store
// carries no entity records, so nucleotides are taken as polymeric and
// everything else as not.
func (s *Store) newComponent(id unit.Identity, rows []storeAtom) *unit.Component {
	polymeric := s.lib.IsNucleotide(id.Sequence)
	atoms := make([]unit.Atom, len(rows))
	for i, row := range rows {
		element := ""
		if len(row.name) > 0 {
			element = row.name[:1]
		}
		atoms[i] = unit.Atom{
			PDB:             id.PDB,
			Model:           id.Model,
			Chain:           id.Chain,
			ComponentID:     id.Sequence,
			ComponentNumber: id.Number,
			ComponentIndex:  id.Index,
			InsCode:         id.InsCode,
			AltID:           id.AltID,
			Element:         element,
			Name:            row.name,
			Symmetry:        id.Symmetry,
			Polymeric:       polymeric,
			Coords:          row.pos,
		}
	}
	return unit.NewComponent(s.lib, id, "", polymeric, atoms)
}

// expand fills the query's IN clause with n placeholders and rewrites
// them to the store's bind style.
func (s *Store) expand(query string, n int) string {
	marks := strings.TrimSuffix(strings.Repeat("?,", n), ",")
	query = sf(query, marks)
	if s.bind != BindDollar {
		return query
	}
	var b strings.Builder
	arg := 0
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		arg++
		b.WriteString("$")
		b.WriteString(strconv.Itoa(arg))
	}
	return b.String()
}

// uniqueIndices flattens motif index lists into a sorted set.
func uniqueIndices(motifs [][]int) []int {
	seen := make(map[int]bool)
	var indices []int
	for _, motif := range motifs {
		for _, idx := range motif {
			if !seen[idx] {
				seen[idx] = true
				indices = append(indices, idx)
			}
		}
	}
	sort.Ints(indices)
	return indices
}

package mmcif

import (
	"errors"
	"strconv"
	"strings"

	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/rna3d/superpose"
	"github.com/TuftsBCB/rna3d/unitid"
)

// UnsupportedOperatorError is returned when an assembly-generation entry
// uses an operator expression this package cannot resolve, e.g. the
// composed expressions ("1,2" or "(1-60)") seen in viral capsid
// assemblies. Resolution fails rather than guessing a composition.
type UnsupportedOperatorError struct {
	Expression string
}

func (e *UnsupportedOperatorError) Error() string {
	return sf("The assembly operator expression '%s' does not name a "+
		"single operator and cannot be resolved.", e.Expression)
}

// SymmetryOperator is one crystallographic or biological-assembly
// transformation from the document's operator list.
type SymmetryOperator struct {
	// The operator id. (CIF: pdbx_struct_oper_list.id)
	ID string

	// The operator name, e.g. "1_555".
	// (CIF: pdbx_struct_oper_list.name)
	Name string

	Rotation    superpose.Matrix3
	Translation structure.Coords
}

// Apply passes a coordinate through the operator.
func (op SymmetryOperator) Apply(p structure.Coords) structure.Coords {
	return superpose.Add(op.Rotation.Apply(p), op.Translation)
}

// IdentityOperator returns the operator applied to atoms when no
// crystallographic symmetry has been resolved for them.
func IdentityOperator() SymmetryOperator {
	return SymmetryOperator{
		ID:       "1",
		Name:     unitid.DefaultSymmetry,
		Rotation: superpose.Identity3(),
	}
}

// Entity is the document's classification of one entity.
type Entity struct {
	// The entity id. (CIF: entity.id)
	ID string

	// The entity type: "polymer", "water", "non-polymer" or another
	// classification from the source document. (CIF: entity.type)
	Type string
}

// Operators returns the assembly operators the given chain participates
// in, in document order. Chains that appear in no assembly-generation
// entry have no operators.
func (d *Document) Operators(asymID string) []SymmetryOperator {
	ops := d.assemblies[asymID]
	out := make([]SymmetryOperator, len(ops))
	copy(out, ops)
	return out
}

// Entity returns the classification of the given entity id.
func (d *Document) Entity(id string) (Entity, bool) {
	e, ok := d.entities[id]
	return e, ok
}

// IsWater reports whether the given entity id is classified as water.
func (d *Document) IsWater(entityID string) bool {
	return d.entities[entityID].Type == "water"
}

// IsPolymeric reports whether the given entity id is classified as a
// polymer.
func (d *Document) IsPolymeric(entityID string) bool {
	return d.entities[entityID].Type == "polymer"
}

// loadAssemblies combines the operator-list category with the
// assembly-generation category into a chain id to operators mapping.
// Documents carrying neither category resolve to an empty mapping; an
// assembly-generation entry whose operator expression is not the id of a
// single operator fails with *UnsupportedOperatorError.
func (d *Document) loadAssemblies() error {
	d.assemblies = make(map[string][]SymmetryOperator)

	operators := make(map[string]SymmetryOperator)
	opers, err := d.Table("pdbx_struct_oper_list")
	if err == nil {
		if operators, err = readOperators(opers); err != nil {
			return err
		}
	} else if !isMissingCategory(err) {
		return err
	}

	gen, err := d.Table("pdbx_struct_assembly_gen")
	if err != nil {
		if isMissingCategory(err) {
			return nil
		}
		return err
	}
	exprs, err := gen.Column("oper_expression")
	if err != nil {
		return err
	}
	lists, err := gen.Column("asym_id_list")
	if err != nil {
		return err
	}
	for i := range exprs {
		op, ok := operators[exprs[i]]
		if !ok {
			return &UnsupportedOperatorError{Expression: exprs[i]}
		}
		for _, asymID := range strings.Split(lists[i], ",") {
			asymID = strings.TrimSpace(asymID)
			if asymID == "" {
				continue
			}
			d.assemblies[asymID] = append(d.assemblies[asymID], op)
		}
	}
	return nil
}

func readOperators(t *Table) (map[string]SymmetryOperator, error) {
	ids, err := t.Column("id")
	if err != nil {
		return nil, err
	}
	names := optionalColumn(t, "name")

	operators := make(map[string]SymmetryOperator, len(ids))
	for i := range ids {
		op := SymmetryOperator{
			ID:       ids[i],
			Name:     ids[i],
			Rotation: superpose.Identity3(),
		}
		if names != nil && names[i] != "" {
			op.Name = names[i]
		}
		if err := readOperatorMatrix(t, i, &op); err != nil {
			return nil, err
		}
		operators[op.ID] = op
	}
	return operators, nil
}

// readOperatorMatrix fills in the rotation and translation of one
// operator row. Operator lists without matrix columns keep the identity.
func readOperatorMatrix(t *Table, row int, op *SymmetryOperator) error {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			name := sf("matrix[%d][%d]", r+1, c+1)
			col := optionalColumn(t, name)
			if col == nil {
				return nil
			}
			v, err := strconv.ParseFloat(col[row], 64)
			if err != nil {
				return &MalformedFieldError{
					Category: t.Name, Column: name,
					Row: row, Value: col[row], Err: err,
				}
			}
			op.Rotation[3*r+c] = v
		}
	}
	for i, dst := range []*float64{
		&op.Translation.X, &op.Translation.Y, &op.Translation.Z,
	} {
		name := sf("vector[%d]", i+1)
		col := optionalColumn(t, name)
		if col == nil {
			return nil
		}
		v, err := strconv.ParseFloat(col[row], 64)
		if err != nil {
			return &MalformedFieldError{
				Category: t.Name, Column: name,
				Row: row, Value: col[row], Err: err,
			}
		}
		*dst = v
	}
	return nil
}

// loadEntities indexes the entity category by id. Documents without the
// category resolve to an empty mapping.
func (d *Document) loadEntities() error {
	d.entities = make(map[string]Entity)

	t, err := d.Table("entity")
	if err != nil {
		if isMissingCategory(err) {
			return nil
		}
		return err
	}
	ids, err := t.Column("id")
	if err != nil {
		return err
	}
	types := optionalColumn(t, "type")
	for i := range ids {
		e := Entity{ID: ids[i]}
		if types != nil {
			e.Type = types[i]
		}
		d.entities[e.ID] = e
	}
	return nil
}

func optionalColumn(t *Table, name string) []string {
	col, err := t.Column(name)
	if err != nil {
		return nil
	}
	return col
}

func isMissingCategory(err error) bool {
	var missing *MissingCategoryError
	return errors.As(err, &missing)
}

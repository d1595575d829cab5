package mmcif

import (
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/cif"
)

// MissingCategoryError is returned when a requested category does not
// exist in a document.
type MissingCategoryError struct {
	Category string
}

func (e *MissingCategoryError) Error() string {
	return sf("The document has no category '%s'.", e.Category)
}

// MissingColumnError is returned when a requested column does not exist
// in a table.
type MissingColumnError struct {
	Category string
	Column   string
}

func (e *MissingColumnError) Error() string {
	return sf("The category '%s' has no column '%s'.", e.Category, e.Column)
}

// Table is an ordered sequence of rows over the columns of one category.
// Column names are exposed with the category qualification stripped, and
// all values are exposed in their string form as written in the source
// document.
//
// Tables are immutable views. Slice returns a new view over the same
// underlying columns, and callers must not modify the slices returned by
// Column.
type Table struct {
	// Name is the normalized category name, e.g. "atom_site".
	Name string

	cols  []string
	index map[string]int
	data  [][]string
	from  int
	to    int
}

// Table returns the named category of the document as a table. The name
// is case-normalized and a leading underscore is stripped, so
// "_atom_site", "atom_site" and "ATOM_SITE" are the same category.
//
// A category declared as a loop keeps its declared column order; a
// category declared as plain items becomes a single-row table with its
// columns in sorted order. If the document has no such category, an
// error of type *MissingCategoryError is returned.
func (d *Document) Table(name string) (*Table, error) {
	category := normalizeCategory(name)
	prefix := category + "."

	for tag, loop := range d.CIF.Loops {
		if strings.HasPrefix(tag, prefix) {
			return tableFromLoop(category, prefix, loop)
		}
	}
	if t := tableFromItems(d.CIF, category, prefix); t != nil {
		return t, nil
	}
	return nil, &MissingCategoryError{Category: category}
}

// Columns returns the table's column names in order, stripped of the
// category qualification.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// Len returns the number of rows in this view.
func (t *Table) Len() int { return t.to - t.from }

// Column returns the named column's values, in row order. The name is
// case-normalized and may carry the category qualification. If the table
// has no such column, an error of type *MissingColumnError is returned.
func (t *Table) Column(name string) ([]string, error) {
	i, ok := t.index[t.normalizeColumn(name)]
	if !ok {
		return nil, &MissingColumnError{Category: t.Name, Column: name}
	}
	return t.data[i][t.from:t.to], nil
}

// Row returns row i as a mapping from column name to value.
func (t *Table) Row(i int) (map[string]string, error) {
	if i < 0 || i >= t.Len() {
		return nil, ef("The category '%s' has %d rows; there is no row %d.",
			t.Name, t.Len(), i)
	}
	row := make(map[string]string, len(t.cols))
	for j, col := range t.cols {
		row[col] = t.data[j][t.from+i]
	}
	return row, nil
}

// Slice returns a view over rows [from, to) of this view. Like a Go
// slice expression, it panics when the bounds are out of range.
func (t *Table) Slice(from, to int) *Table {
	if from < 0 || to < from || to > t.Len() {
		panic(sf("Slice bounds [%d:%d] are out of range for %d rows.",
			from, to, t.Len()))
	}
	return &Table{
		Name:  t.Name,
		cols:  t.cols,
		index: t.index,
		data:  t.data,
		from:  t.from + from,
		to:    t.from + to,
	}
}

func (t *Table) normalizeColumn(name string) string {
	n := strings.ToLower(strings.TrimPrefix(name, "_"))
	return strings.TrimPrefix(n, t.Name+".")
}

func normalizeCategory(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, "_"))
}

func tableFromLoop(category, prefix string, loop *cif.Loop) (*Table, error) {
	type colref struct {
		pos  int
		name string
	}
	var refs []colref
	for tag, pos := range loop.Columns {
		if strings.HasPrefix(tag, prefix) {
			refs = append(refs, colref{pos, strings.TrimPrefix(tag, prefix)})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].pos < refs[j].pos })

	t := &Table{
		Name:  category,
		cols:  make([]string, 0, len(refs)),
		index: make(map[string]int, len(refs)),
		data:  make([][]string, 0, len(refs)),
	}
	rows := -1
	for _, ref := range refs {
		col, err := stringColumn(category, ref.name, loop.Get(prefix+ref.name))
		if err != nil {
			return nil, err
		}
		if rows == -1 {
			rows = len(col)
		} else if len(col) != rows {
			return nil, ef("The category '%s' has ragged columns: '%s' has "+
				"%d values where %d rows were expected.",
				category, ref.name, len(col), rows)
		}
		t.index[ref.name] = len(t.cols)
		t.cols = append(t.cols, ref.name)
		t.data = append(t.data, col)
	}
	if rows < 0 {
		rows = 0
	}
	t.to = rows
	return t, nil
}

// tableFromItems synthesizes a single-row table from a category written
// as plain items rather than a loop, abstracting over whether a data set
// is represented one way or the other. For example, a file with one
// assembly operator typically declares 'pdbx_struct_oper_list.*' as
// items. Returns nil when the document has no items of the category.
func tableFromItems(b *cif.DataBlock, category, prefix string) *Table {
	var names []string
	for tag := range b.Items {
		if strings.HasPrefix(tag, prefix) {
			names = append(names, strings.TrimPrefix(tag, prefix))
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	t := &Table{
		Name:  category,
		cols:  names,
		index: make(map[string]int, len(names)),
		data:  make([][]string, len(names)),
		to:    1,
	}
	for i, name := range names {
		t.index[name] = i
		switch v := b.Items[prefix+name].Raw().(type) {
		case string:
			t.data[i] = []string{v}
		case int:
			t.data[i] = []string{strconv.Itoa(v)}
		case float64:
			t.data[i] = []string{strconv.FormatFloat(v, 'g', -1, 64)}
		default:
			panic(sf("Unknown value type %T for %s.", v, prefix+name))
		}
	}
	return t
}

// stringColumn exposes a loop column in string form regardless of the
// type the CIF reader assigned to it.
func stringColumn(category, name string, vl cif.ValueLoop) ([]string, error) {
	if vs := vl.Strings(); vs != nil {
		out := make([]string, len(vs))
		copy(out, vs)
		return out, nil
	}
	if vs := vl.Ints(); vs != nil {
		out := make([]string, len(vs))
		for i, v := range vs {
			out[i] = strconv.Itoa(v)
		}
		return out, nil
	}
	if vs := vl.Floats(); vs != nil {
		out := make([]string, len(vs))
		for i, v := range vs {
			out[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return out, nil
	}
	return nil, ef("The column '%s.%s' has values of an unsupported type.",
		category, name)
}

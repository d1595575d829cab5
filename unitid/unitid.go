// Package unitid encodes and decodes canonical unit ids, the stable
// external identifiers of residues, e.g. "2AVY|1|A|C|15".
//
// A unit id joins the identity fields of a residue with '|' in a fixed
// order: structure id, model, chain, residue type, residue number,
// alternate-location id, insertion code and symmetry operator. The first
// five fields are always present. Trailing empty fields are omitted, and
// the symmetry field is omitted when it is the default 1_555.
package unitid

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSymmetry is the symmetry operator assumed when a unit id does
// not carry one.
const DefaultSymmetry = "1_555"

// Fields holds the identity fields of a component-level unit id in
// encoding order.
type Fields struct {
	PDB      string
	Model    int
	Chain    string
	Sequence string // residue type, e.g. "C" or "PSU"
	Number   int
	AltID    string // "" when absent
	InsCode  string // "" when absent
	Symmetry string // "" encodes as the default 1_555
}

// Encode returns the canonical unit id string for f.
func Encode(f Fields) string {
	sym := f.Symmetry
	if sym == DefaultSymmetry {
		sym = ""
	}
	fields := []string{
		f.PDB,
		strconv.Itoa(f.Model),
		f.Chain,
		f.Sequence,
		strconv.Itoa(f.Number),
		f.AltID,
		f.InsCode,
		sym,
	}
	n := len(fields)
	for n > 5 && fields[n-1] == "" {
		n--
	}
	return strings.Join(fields[:n], "|")
}

// Decode parses a unit id back into its fields. Missing optional fields
// come back empty, except Symmetry, which comes back as DefaultSymmetry.
func Decode(id string) (Fields, error) {
	parts := strings.Split(id, "|")
	if len(parts) < 5 {
		return Fields{}, fmt.Errorf("The unit id '%s' has %d fields, but "+
			"at least 5 are required.", id, len(parts))
	}
	if len(parts) > 8 {
		return Fields{}, fmt.Errorf("The unit id '%s' has %d fields, but "+
			"at most 8 are allowed.", id, len(parts))
	}

	f := Fields{
		PDB:      parts[0],
		Chain:    parts[2],
		Sequence: parts[3],
		Symmetry: DefaultSymmetry,
	}
	var err error
	if f.Model, err = strconv.Atoi(parts[1]); err != nil {
		return Fields{}, fmt.Errorf("The unit id '%s' has a non-numeric "+
			"model field '%s'.", id, parts[1])
	}
	if f.Number, err = strconv.Atoi(parts[4]); err != nil {
		return Fields{}, fmt.Errorf("The unit id '%s' has a non-numeric "+
			"number field '%s'.", id, parts[4])
	}
	if len(parts) > 5 {
		f.AltID = parts[5]
	}
	if len(parts) > 6 {
		f.InsCode = parts[6]
	}
	if len(parts) > 7 && parts[7] != "" {
		f.Symmetry = parts[7]
	}
	return f, nil
}

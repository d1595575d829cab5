package unitid

import (
	"fmt"
	"strings"
	"testing"
)

func ExampleEncode() {
	fmt.Println(Encode(Fields{
		PDB:      "2AVY",
		Model:    1,
		Chain:    "A",
		Sequence: "C",
		Number:   15,
	}))
	fmt.Println(Encode(Fields{
		PDB:      "2AVY",
		Model:    1,
		Chain:    "A",
		Sequence: "C",
		Number:   15,
		InsCode:  "B",
	}))
	fmt.Println(Encode(Fields{
		PDB:      "1A34",
		Model:    1,
		Chain:    "B",
		Sequence: "U",
		Number:   -2,
		Symmetry: "6_555",
	}))
	// Output:
	// 2AVY|1|A|C|15
	// 2AVY|1|A|C|15||B
	// 1A34|1|B|U|-2|||6_555
}

func TestEncodeDefaultSymmetry(t *testing.T) {
	explicit := Encode(Fields{
		PDB: "2AVY", Model: 1, Chain: "A", Sequence: "G", Number: 8,
		Symmetry: DefaultSymmetry,
	})
	implicit := Encode(Fields{
		PDB: "2AVY", Model: 1, Chain: "A", Sequence: "G", Number: 8,
	})
	if explicit != implicit {
		t.Fatalf("Explicit default symmetry encodes as '%s', implicit as '%s'.",
			explicit, implicit)
	}
	if strings.Contains(explicit, DefaultSymmetry) {
		t.Fatalf("The default symmetry must be omitted, but got '%s'.", explicit)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []Fields{
		{PDB: "2AVY", Model: 1, Chain: "A", Sequence: "C", Number: 15,
			Symmetry: DefaultSymmetry},
		{PDB: "2AVY", Model: 3, Chain: "AB", Sequence: "PSU", Number: 1914,
			Symmetry: DefaultSymmetry},
		{PDB: "1GID", Model: 1, Chain: "X", Sequence: "G", Number: 103,
			AltID: "A", Symmetry: DefaultSymmetry},
		{PDB: "1GID", Model: 1, Chain: "X", Sequence: "G", Number: 103,
			InsCode: "C", Symmetry: DefaultSymmetry},
		{PDB: "1A34", Model: 1, Chain: "B", Sequence: "U", Number: -2,
			AltID: "B", InsCode: "A", Symmetry: "6_555"},
	}
	for _, want := range tests {
		got, err := Decode(Encode(want))
		if err != nil {
			t.Fatalf("Decoding '%s' failed: %s", Encode(want), err)
		}
		if got != want {
			t.Fatalf("Round trip of %+v gave %+v.", want, got)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	bad := []string{
		"",
		"2AVY",
		"2AVY|1|A",
		"2AVY|1|A|C|15|x|y|1_555|extra",
		"2AVY|one|A|C|15",
		"2AVY|1|A|C|fifteen",
	}
	for _, id := range bad {
		if _, err := Decode(id); err == nil {
			t.Fatalf("Decoding '%s' did not fail.", id)
		}
	}
}

func TestDecodeDefaults(t *testing.T) {
	f, err := Decode("2AVY|1|A|C|15")
	if err != nil {
		t.Fatalf("Decoding failed: %s", err)
	}
	if f.Symmetry != DefaultSymmetry {
		t.Fatalf("Missing symmetry decoded as '%s', not the default.", f.Symmetry)
	}
	if f.AltID != "" || f.InsCode != "" {
		t.Fatalf("Missing optional fields decoded as '%s'/'%s'.", f.AltID, f.InsCode)
	}
}

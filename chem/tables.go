package chem

import "github.com/TuftsBCB/structure"

// Heavy base-atom compositions of the standard RNA residue types, in ring
// order.
var rnaBaseHeavyAtoms = map[string][]string{
	"A": {"N9", "C8", "N7", "C5", "C6", "N6", "N1", "C2", "N3", "C4"},
	"C": {"N1", "C2", "O2", "N3", "C4", "N4", "C5", "C6"},
	"G": {"N9", "C8", "N7", "C5", "C6", "O6", "N1", "C2", "N2", "N3", "C4"},
	"U": {"N1", "C2", "O2", "N3", "C4", "O4", "C5", "C6"},
}

// Standard reference frames following Olson et al. (2001), translated so
// that the centroid of the heavy base atoms sits at the origin. The base
// plane is the xy plane, every tabulated atom has z = 0, and the
// glycosidic C1' lies in the negative-x, positive-y quadrant. Coordinates
// are in Angstroms and cover the heavy base atoms, the glycosidic C1' and
// the template hydrogens.
var rnaBaseCoordinates = map[string]map[string]structure.Coords{
	"A": {
		"C1'": {X: -2.0284, Y: 2.8116},
		"N9":  {X: -0.8404, Y: 1.9636},
		"C8":  {X: 0.4746, Y: 2.3626},
		"N7":  {X: 1.3276, Y: 1.3676},
		"C5":  {X: 0.5216, Y: 0.2366},
		"C6":  {X: 0.8196, Y: -1.1364},
		"N6":  {X: 2.0616, Y: -1.6254},
		"N1":  {X: -0.2174, Y: -2.0024},
		"C2":  {X: -1.4614, Y: -1.5114},
		"N3":  {X: -1.8694, Y: -0.2444},
		"C4":  {X: -0.8164, Y: 0.5896},
		"H2":  {X: -2.2493, Y: -2.2501},
		"H8":  {X: 0.7770, Y: 3.3994},
		"H9":  {X: -1.6569, Y: 2.5581},
		"H61": {X: 2.2111, Y: -2.6243},
		"H62": {X: 2.8519, Y: -0.9965},
	},
	"C": {
		"C1'": {X: -2.2231, Y: 2.0281},
		"N1":  {X: -1.0311, Y: 1.1681},
		"C2":  {X: -1.2181, Y: -0.2159},
		"O2":  {X: -2.3741, Y: -0.6649},
		"N3":  {X: -0.1371, Y: -1.0299},
		"C4":  {X: 1.0909, Y: -0.5059},
		"N4":  {X: 2.1289, Y: -1.3469},
		"C5":  {X: 1.3099, Y: 0.9011},
		"C6":  {X: 0.2309, Y: 1.6941},
		"H1":  {X: -1.8320, Y: 1.7835},
		"H5":  {X: 2.3082, Y: 1.3130},
		"H6":  {X: 0.3596, Y: 2.7664},
		"H41": {X: 1.9706, Y: -2.3444},
		"H42": {X: 3.0719, Y: -0.9852},
	},
	"G": {
		"C1'": {X: -1.7859, Y: 3.0228},
		"N9":  {X: -0.5979, Y: 2.1748},
		"C8":  {X: 0.7141, Y: 2.5858},
		"N7":  {X: 1.5611, Y: 1.5928},
		"C5":  {X: 0.7621, Y: 0.4568},
		"C6":  {X: 1.1151, Y: -0.9162},
		"O6":  {X: 2.2451, Y: -1.4212},
		"N1":  {X: -0.0089, Y: -1.7352},
		"C2":  {X: -1.3079, Y: -1.2892},
		"N2":  {X: -2.2579, Y: -2.2372},
		"N3":  {X: -1.6509, Y: -0.0122},
		"C4":  {X: -0.5739, Y: 0.8008},
		"H1":  {X: 0.1415, Y: -2.7339},
		"H8":  {X: 1.0131, Y: 3.6236},
		"H9":  {X: -1.4171, Y: 2.7657},
		"H21": {X: -1.9975, Y: -3.2130},
		"H22": {X: -3.2332, Y: -1.9747},
	},
	"U": {
		"C1'": {X: -2.2782, Y: 1.9817},
		"N1":  {X: -1.0813, Y: 1.1277},
		"C2":  {X: -1.2592, Y: -0.2413},
		"O2":  {X: -2.3603, Y: -0.7643},
		"N3":  {X: -0.0993, Y: -0.9753},
		"C4":  {X: 1.1917, Y: -0.4883},
		"O4":  {X: 2.1378, Y: -1.2783},
		"C5":  {X: 1.2917, Y: 0.9387},
		"C6":  {X: 0.1787, Y: 1.6807},
		"H1":  {X: -1.8894, Y: 1.7336},
		"H3":  {X: -0.2018, Y: -1.9800},
		"H5":  {X: 2.2612, Y: 1.4147},
		"H6":  {X: 0.2728, Y: 2.7566},
	},
}

// Template hydrogens inferred onto standard bases. H9 (purines) and H1
// (pyrimidines) sit on the glycosidic nitrogen; the amino hydrogens are
// numbered with the Watson-Crick-side hydrogen first.
var rnaBaseHydrogens = map[string][]string{
	"A": {"H2", "H8", "H9", "H61", "H62"},
	"C": {"H1", "H5", "H6", "H41", "H42"},
	"G": {"H1", "H8", "H9", "H21", "H22"},
	"U": {"H1", "H3", "H5", "H6"},
}

// Modified nucleotides, keyed by residue type. Each entry names the
// standard parent and maps parent heavy base atoms to their counterparts
// in the modified residue. Inosine lacks the guanine N2; 4-thiouridine
// replaces O4 with S4. The deoxy types borrow their ribo parents, with
// thymine treated as 5-methyluracil.
var modifiedNucleotides = map[string]Modified{
	"1MA": {Parent: "A", Atoms: identityAtoms("A")},
	"A2M": {Parent: "A", Atoms: identityAtoms("A")},
	"MIA": {Parent: "A", Atoms: identityAtoms("A")},
	"DA":  {Parent: "A", Atoms: identityAtoms("A")},

	"1MG": {Parent: "G", Atoms: identityAtoms("G")},
	"2MG": {Parent: "G", Atoms: identityAtoms("G")},
	"M2G": {Parent: "G", Atoms: identityAtoms("G")},
	"7MG": {Parent: "G", Atoms: identityAtoms("G")},
	"OMG": {Parent: "G", Atoms: identityAtoms("G")},
	"DG":  {Parent: "G", Atoms: identityAtoms("G")},
	"I":   {Parent: "G", Atoms: withoutAtoms(identityAtoms("G"), "N2")},

	"5MC": {Parent: "C", Atoms: identityAtoms("C")},
	"OMC": {Parent: "C", Atoms: identityAtoms("C")},
	"DC":  {Parent: "C", Atoms: identityAtoms("C")},

	"PSU": {Parent: "U", Atoms: identityAtoms("U")},
	"5MU": {Parent: "U", Atoms: identityAtoms("U")},
	"H2U": {Parent: "U", Atoms: identityAtoms("U")},
	"OMU": {Parent: "U", Atoms: identityAtoms("U")},
	"UR3": {Parent: "U", Atoms: identityAtoms("U")},
	"4SU": {Parent: "U", Atoms: renameAtom(identityAtoms("U"), "O4", "S4")},
	"DT":  {Parent: "U", Atoms: identityAtoms("U")},
	"DU":  {Parent: "U", Atoms: identityAtoms("U")},
}

// Ribose and phosphate groups shared by all nucleotide types.
var (
	ntSugar     = []string{"C1'", "C2'", "C3'", "C4'", "O4'"}
	ntPhosphate = []string{"P", "OP1", "OP2", "O5'"}
)

// Side-chain functional groups of the twenty standard amino acids.
var aaFunctionalGroups = map[string][]string{
	"ALA": {"CB"},
	"ARG": {"NE", "CZ", "NH1", "NH2"},
	"ASN": {"CG", "OD1", "ND2"},
	"ASP": {"CG", "OD1", "OD2"},
	"CYS": {"SG"},
	"GLN": {"CD", "OE1", "NE2"},
	"GLU": {"CD", "OE1", "OE2"},
	"GLY": {"CA"},
	"HIS": {"CG", "ND1", "CD2", "CE1", "NE2"},
	"ILE": {"CB", "CG1", "CG2", "CD1"},
	"LEU": {"CB", "CG", "CD1", "CD2"},
	"LYS": {"NZ"},
	"MET": {"CG", "SD", "CE"},
	"PHE": {"CG", "CD1", "CD2", "CE1", "CE2", "CZ"},
	"PRO": {"CB", "CG", "CD"},
	"SER": {"OG"},
	"THR": {"OG1"},
	"TRP": {"CG", "CD1", "NE1", "CD2", "CE2", "CE3", "CZ2", "CZ3", "CH2"},
	"TYR": {"CG", "CD1", "CD2", "CE1", "CE2", "CZ", "OH"},
	"VAL": {"CB", "CG1", "CG2"},
}

var aaBackbone = []string{"N", "CA", "C", "O"}

// Planar reference triples. The base triples are ordered so that the
// normal (P2-P1) x (P3-P1) points along +z in the standard frame, which
// keeps normals comparable between residues.
var planarAtoms = map[string][]string{
	"A":   {"N9", "C4", "C8"},
	"G":   {"N9", "C4", "C8"},
	"C":   {"N1", "C2", "C6"},
	"U":   {"N1", "C2", "C6"},
	"HIS": {"CG", "ND1", "CD2"},
	"PHE": {"CG", "CD1", "CD2"},
	"TYR": {"CG", "CD1", "CD2"},
	"TRP": {"CD2", "CZ2", "CE3"},
	"ARG": {"NE", "NH1", "NH2"},
	"ASN": {"CG", "OD1", "ND2"},
	"GLN": {"CD", "OE1", "NE2"},
	"ASP": {"CG", "OD1", "OD2"},
	"GLU": {"CD", "OE1", "OE2"},
}

// Donor/acceptor atom names recognized by hydrogen-bond counting.
var hydrogenBondAtoms = map[string]bool{
	"N":   true,
	"NH1": true,
	"NH2": true,
	"NE":  true,
	"NZ":  true,
	"ND1": true,
	"NE2": true,
	"O":   true,
	"OD1": true,
	"OE1": true,
	"OE2": true,
	"OG":  true,
	"OH":  true,
}

// identityAtoms builds the identity correspondence over a standard type's
// heavy base atoms.
func identityAtoms(code string) map[string]string {
	atoms := make(map[string]string, len(rnaBaseHeavyAtoms[code]))
	for _, name := range rnaBaseHeavyAtoms[code] {
		atoms[name] = name
	}
	return atoms
}

func withoutAtoms(atoms map[string]string, names ...string) map[string]string {
	for _, name := range names {
		delete(atoms, name)
	}
	return atoms
}

func renameAtom(atoms map[string]string, parent, modified string) map[string]string {
	atoms[parent] = modified
	return atoms
}

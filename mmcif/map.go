package mmcif

import "github.com/TuftsBCB/seq"

// aminoCodonToLetter maps three-letter amino acid codes to their single
// letter representation. Codes this package does not recognize map to
// 'X' rather than failing, since arbitrary chemical component ids show
// up in polymer sequences.
func aminoCodonToLetter(codon string) seq.Residue {
	switch codon {
	case "ALA":
		return 'A'
	case "ARG":
		return 'R'
	case "ASN":
		return 'N'
	case "ASP":
		return 'D'
	case "CYS":
		return 'C'
	case "GLU":
		return 'E'
	case "GLN":
		return 'Q'
	case "GLY":
		return 'G'
	case "HIS":
		return 'H'
	case "ILE":
		return 'I'
	case "LEU":
		return 'L'
	case "LYS":
		return 'K'
	case "MET":
		return 'M'
	case "PHE":
		return 'F'
	case "PRO":
		return 'P'
	case "SER":
		return 'S'
	case "THR":
		return 'T'
	case "TRP":
		return 'W'
	case "TYR":
		return 'Y'
	case "VAL":
		return 'V'
	default:
		return 'X'
	}
}

// Package mmcif reads PDBx/mmCIF structure documents and assembles
// their atom records into the typed entities of the unit package.
//
// The package splits into three layers. The tabular document model
// (Table) is a generic accessor over any category of a data block and
// knows nothing about chemistry. The resolver loads, once per document,
// the assembly operators that apply to each chain and the classification
// of each entity. The assembler turns atom-site rows into unit.Atom
// values, groups them into components by composite identity and produces
// a unit.Structure.
package mmcif

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/BurntSushi/cif"
)

var (
	ef = fmt.Errorf
	lf = func(f string, v ...interface{}) { fmt.Fprintf(os.Stderr, f, v...) }
	sf = fmt.Sprintf
)

// Document is a single parsed mmCIF data block together with the
// resolved per-chain assembly operators and per-entity classifications.
type Document struct {
	// CIF is the underlying data block, exposed so that clients can
	// reach categories this package does not interpret.
	CIF *cif.DataBlock

	// PDB is the structure identifier from 'entry.id'.
	PDB string

	assemblies map[string][]SymmetryOperator
	entities   map[string]Entity
}

// Read reads exactly one mmCIF document from the reader given. If there
// are 0 documents or more than 1 document, an error is returned.
//
// This function is useful for reading standard PDBx/mmCIF files obtained
// from the PDB. (But in general, an mmCIF file may contain more than one
// data block.)
func Read(r io.Reader) (*Document, error) {
	docs, err := ReadAll(r)
	if err != nil {
		return nil, err
	} else if len(docs) != 1 {
		return nil, ef("Expected one mmCIF document but got %d.", len(docs))
	}
	return docs[0], nil
}

// ReadAll reads all mmCIF documents from the reader provided. If you're
// reading PDBx/mmCIF files from the PDB, then use the Read function
// which guarantees the reader given only has a single document.
//
// An error is returned if the reader could not be interpreted as a valid
// CIF file, or if any data block fails to resolve its assembly
// operators.
func ReadAll(r io.Reader) ([]*Document, error) {
	cf, err := cif.Read(r)
	if err != nil {
		return nil, err
	}
	var docs []*Document
	for _, block := range cf.Blocks {
		d, err := ReadCIFDataBlock(block)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// ReadFile reads exactly one mmCIF document from the named file. If the
// file name ends with ".gz", gzip decompression is used.
func ReadFile(fileName string) (*Document, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fileName) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}
	return Read(reader)
}

// ReadCIFDataBlock converts an mmCIF data block into a Document,
// resolving its assembly operators and entity classifications. It is
// exposed in the public interface so that clients can freely mix
// Documents and their corresponding underlying data blocks.
//
// An error is returned if the block has no 'entry.id', or if it declares
// assemblies this package cannot resolve.
func ReadCIFDataBlock(b *cif.DataBlock) (*Document, error) {
	id, ok := b.Items["entry.id"]
	if !ok {
		return nil, ef("Could not find ID code (in 'entry.id').")
	}
	d := &Document{CIF: b, PDB: id.String()}
	if err := d.loadAssemblies(); err != nil {
		return nil, err
	}
	if err := d.loadEntities(); err != nil {
		return nil, err
	}
	return d, nil
}

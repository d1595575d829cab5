// Package batch loads many mmCIF files across a fixed-size worker pool.
//
// Each worker owns one document at a time, from parse through assembly,
// so no locking exists anywhere in the pipeline: documents never share
// state, and the only coordination is the pool itself.
package batch

import (
	"sync"

	"github.com/Jeffail/tunny"

	"github.com/TuftsBCB/rna3d/chem"
	"github.com/TuftsBCB/rna3d/mmcif"
	"github.com/TuftsBCB/rna3d/unit"
)

// Result pairs an input path with the outcome of loading it. When the
// assembler drops malformed components, both Structure and Err are set:
// the structure holds everything that survived and the error says what
// did not.
type Result struct {
	Path      string
	Structure *unit.Structure
	Err       error
}

// Load reads and assembles every named file, running up to workers
// documents at once. Results come back in input order. A failure for
// one path is recorded in its Result and never aborts the rest.
func Load(paths []string, workers int, lib *chem.Library) []Result {
	if workers < 1 {
		workers = 1
	}
	pool := tunny.NewFunc(workers, func(payload interface{}) interface{} {
		return load(payload.(string), lib)
	})
	defer pool.Close()

	results := make([]Result, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			results[i] = pool.Process(path).(Result)
		}(i, path)
	}
	wg.Wait()
	return results
}

func load(path string, lib *chem.Library) Result {
	r := Result{Path: path}
	d, err := mmcif.ReadFile(path)
	if err != nil {
		r.Err = err
		return r
	}
	r.Structure, r.Err = d.Structure(lib)
	return r
}

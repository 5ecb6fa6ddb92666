// Package montecarlo provides the trial ensemble and the parameter
// distribution engine: every uncertain physical quantity in an analysis is
// one of its laws, realized once as a length-N vector.
package montecarlo

import (
	"fmt"
	"sync"

	"golang.org/x/exp/rand"

	"geomc/domain/core"
)

// Ensemble fixes the trial count and root seed for one Monte Carlo analysis.
// Every distribution constructed against the same ensemble produces vectors of
// the same length, so position i always refers to the same trial across every
// sampled quantity. It must be created once, before any sampling, and held
// fixed for the duration of the analysis.
//
// Each distribution draws from its own sub-stream, derived deterministically
// from the root seed and a construction counter. The realization therefore
// depends on construction order only, never on the order or interleaving of
// later Sample calls.
type Ensemble struct {
	trials int
	seed   uint64

	mu      sync.Mutex
	streams uint64
}

// NewEnsemble creates an ensemble with the given trial count and root seed.
func NewEnsemble(trials int, seed uint64) (*Ensemble, error) {
	if trials <= 0 {
		return nil, core.NewInvalidParameterError("trials", fmt.Sprintf("must be positive, got %d", trials))
	}
	return &Ensemble{trials: trials, seed: seed}, nil
}

// Trials returns the trial count N shared by every sampled vector.
func (e *Ensemble) Trials() int { return e.trials }

// Seed returns the root seed.
func (e *Ensemble) Seed() uint64 { return e.seed }

// source derives the next independent sub-stream. Mutex-guarded so that
// concurrent construction still yields one stream per distribution.
func (e *Ensemble) source() rand.Source {
	e.mu.Lock()
	e.streams++
	n := e.streams
	e.mu.Unlock()
	return rand.NewSource(splitmix64(e.seed ^ (n * 0x9e3779b97f4a7c15)))
}

// splitmix64 mixes a seed into a well-distributed sub-seed.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

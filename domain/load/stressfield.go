package load

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"geomc/domain/core"
)

// StressField holds vertical stress increases indexed by [elevation][trial],
// in kPa. Singular cells (query point coinciding with a load's sampled
// application point) carry +Inf and are counted in SingularCells so callers
// can detect them; they are never silently floored.
type StressField struct {
	Elevations    []float64
	Values        [][]float64
	SingularCells int
}

func newStressField(elevations []float64, trials int) *StressField {
	f := &StressField{
		Elevations: make([]float64, len(elevations)),
		Values:     make([][]float64, len(elevations)),
	}
	copy(f.Elevations, elevations)
	for i := range f.Values {
		f.Values[i] = make([]float64, trials)
	}
	return f
}

// Trials returns the trial count N of the field.
func (f *StressField) Trials() int {
	if len(f.Values) == 0 {
		return 0
	}
	return len(f.Values[0])
}

// At returns the stress at one (elevation index, trial) cell.
func (f *StressField) At(elevIdx, trial int) float64 {
	return f.Values[elevIdx][trial]
}

// Add accumulates another field elementwise (superposition). Both fields
// must share the same elevation grid and trial count.
func (f *StressField) Add(other *StressField) error {
	if other == nil {
		return core.NewInvalidParameterError("field", "cannot be nil")
	}
	if other.Trials() != f.Trials() {
		return core.NewEnsembleMismatchError(f.Trials(), other.Trials())
	}
	if len(other.Elevations) != len(f.Elevations) {
		return core.NewInvalidParameterError("elevations",
			fmt.Sprintf("grid size mismatch: %d vs %d", len(f.Elevations), len(other.Elevations)))
	}
	for i, e := range f.Elevations {
		if other.Elevations[i] != e {
			return core.NewInvalidParameterError("elevations",
				fmt.Sprintf("grid mismatch at index %d: %g vs %g", i, e, other.Elevations[i]))
		}
	}
	for i := range f.Values {
		floats.Add(f.Values[i], other.Values[i])
	}
	f.SingularCells += other.SingularCells
	return nil
}

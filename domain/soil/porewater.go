package soil

import (
	"fmt"
	"sort"

	"geomc/domain/core"
	"geomc/domain/montecarlo"
)

// WaterUnitWeight is the unit weight of water in kN/m³.
const WaterUnitWeight = 9.81

// PoreWaterPressure produces, for a query elevation, a per-trial pore
// pressure vector in kPa. Models are immutable after construction.
//
// Sign convention: elevations are measured above a common datum everywhere
// in this package. Positive pressure below the water table, negative above
// it (the formal hydrostatic extrapolation; no suction clamp is applied).
type PoreWaterPressure interface {
	// SamplePressure returns the length-N pressure vector at elevation.
	SamplePressure(elevation float64) ([]float64, error)

	fmt.Stringer
}

// WaterTable models hydrostatic pore pressure below a (possibly uncertain)
// groundwater table, with an optional artesian gradient.
type WaterTable struct {
	elevation montecarlo.Distribution
	gradient  montecarlo.Distribution
}

// NewWaterTable creates a water table model. elevation is the groundwater
// table elevation in m; gradient is the artesian pressure gradient in m/m
// (positive indicates artesian conditions) and defaults to zero when nil.
func NewWaterTable(ens *montecarlo.Ensemble, elevation, gradient montecarlo.Param) (*WaterTable, error) {
	if elevation == nil {
		return nil, core.NewInvalidParameterError("water_table_elevation", "required")
	}
	if gradient == nil {
		gradient = montecarlo.Scalar(0)
	}
	elevDist, err := montecarlo.Resolve(ens, elevation)
	if err != nil {
		return nil, err
	}
	gradDist, err := montecarlo.Resolve(ens, gradient)
	if err != nil {
		return nil, err
	}
	return &WaterTable{elevation: elevDist, gradient: gradDist}, nil
}

// SamplePressure computes, per trial, the hydrostatic head pressure plus the
// artesian correction: (wt − elevation) · γw · (1 + gradient). Elevations
// above the table yield negative values; callers that want a no-suction
// floor must clamp themselves.
func (w *WaterTable) SamplePressure(elevation float64) ([]float64, error) {
	wt := w.elevation.Sample()
	grad := w.gradient.Sample()
	out := make([]float64, len(wt))
	for i := range out {
		head := (wt[i] - elevation) * WaterUnitWeight
		out[i] = head + head*grad[i]
	}
	return out, nil
}

func (w *WaterTable) String() string {
	return fmt.Sprintf("water table at %s m", w.elevation)
}

// Measurement is one observed (elevation, pressure) pair. Pressure accepts a
// scalar or a distribution, so measurement uncertainty can be expressed.
type Measurement struct {
	Elevation float64
	Pressure  montecarlo.Param
}

// MeasuredPoreWaterPressure holds a measured pressure-vs-elevation profile,
// kept sorted by elevation descending. Its sampling rule (interpolated or
// nearest match between measurements) is not decided yet; SamplePressure
// fails until it is.
type MeasuredPoreWaterPressure struct {
	elevations []float64
	pressures  []montecarlo.Distribution
}

// NewMeasuredPoreWaterPressure creates a measured-profile model. The pairs
// are stable-sorted by elevation descending at construction.
func NewMeasuredPoreWaterPressure(ens *montecarlo.Ensemble, measurements []Measurement) (*MeasuredPoreWaterPressure, error) {
	if len(measurements) == 0 {
		return nil, core.NewInvalidParameterError("measurements", "at least one measurement required")
	}
	sorted := make([]Measurement, len(measurements))
	copy(sorted, measurements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Elevation > sorted[j].Elevation
	})

	m := &MeasuredPoreWaterPressure{
		elevations: make([]float64, len(sorted)),
		pressures:  make([]montecarlo.Distribution, len(sorted)),
	}
	for i, meas := range sorted {
		if meas.Pressure == nil {
			return nil, core.NewInvalidParameterError("measurements",
				fmt.Sprintf("measurement at elevation %g has no pressure", meas.Elevation))
		}
		dist, err := montecarlo.Resolve(ens, meas.Pressure)
		if err != nil {
			return nil, err
		}
		m.elevations[i] = meas.Elevation
		m.pressures[i] = dist
	}
	return m, nil
}

// Elevations returns the measurement elevations in descending order.
func (m *MeasuredPoreWaterPressure) Elevations() []float64 {
	out := make([]float64, len(m.elevations))
	copy(out, m.elevations)
	return out
}

// SamplePressure is not implemented: the rule for mapping a query elevation
// onto the measurement list has not been chosen.
func (m *MeasuredPoreWaterPressure) SamplePressure(elevation float64) ([]float64, error) {
	return nil, core.NewUnsupportedError("measured pore water pressure sampling")
}

func (m *MeasuredPoreWaterPressure) String() string {
	return fmt.Sprintf("measured pore water pressure (%d points)", len(m.elevations))
}

// UniformPressure applies the same pressure at every elevation. It is the
// coercion target when a profile is handed a bare scalar instead of a model.
type UniformPressure struct {
	pressure montecarlo.Distribution
}

// NewUniformPressure creates an elevation-independent pressure model.
func NewUniformPressure(ens *montecarlo.Ensemble, pressure montecarlo.Param) (*UniformPressure, error) {
	if pressure == nil {
		pressure = montecarlo.Scalar(0)
	}
	dist, err := montecarlo.Resolve(ens, pressure)
	if err != nil {
		return nil, err
	}
	return &UniformPressure{pressure: dist}, nil
}

func (u *UniformPressure) SamplePressure(elevation float64) ([]float64, error) {
	return u.pressure.Sample(), nil
}

func (u *UniformPressure) String() string {
	return fmt.Sprintf("uniform pore pressure %s kPa", u.pressure)
}

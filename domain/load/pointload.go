// Package load implements applied-load models and the closed-form vertical
// stress solutions they superpose.
package load

import (
	"fmt"
	"math"

	"geomc/domain/core"
	"geomc/domain/montecarlo"
)

// Load computes per-trial vertical stress increases at query points.
// Implementations are immutable after construction.
type Load interface {
	// SampleVerticalPressure returns the stress field at a single query
	// (x, y) across the given elevations, indexed [elevation][trial].
	SampleVerticalPressure(x, y float64, elevations []float64) (*StressField, error)

	fmt.Stringer
}

// PointLoad is a concentrated load with stochastic magnitude and placement,
// evaluated with the Boussinesq elastic half-space solution.
type PointLoad struct {
	magnitude montecarlo.Distribution // kN
	elevation montecarlo.Distribution // m
	x         montecarlo.Distribution // m
	y         montecarlo.Distribution // m
}

// NewPointLoad creates a point load. All four arguments accept a bare
// montecarlo.Scalar or any distribution; scalars are wrapped as Constant.
func NewPointLoad(ens *montecarlo.Ensemble, magnitude, elevation, x, y montecarlo.Param) (*PointLoad, error) {
	p := &PointLoad{}
	for _, f := range []struct {
		name  string
		param montecarlo.Param
		out   *montecarlo.Distribution
	}{
		{"load", magnitude, &p.magnitude},
		{"elevation_load", elevation, &p.elevation},
		{"x_load", x, &p.x},
		{"y_load", y, &p.y},
	} {
		if f.param == nil {
			return nil, core.NewInvalidParameterError(f.name, "required")
		}
		dist, err := montecarlo.Resolve(ens, f.param)
		if err != nil {
			return nil, fmt.Errorf("point load: %s: %w", f.name, err)
		}
		*f.out = dist
	}
	return p, nil
}

// SampleVerticalPressure evaluates Δσz = 3Q / (2πz²) / (1 + (r/z)²)^(5/2)
// per trial, where r is the horizontal offset from the sampled load position
// and z the vertical offset from the sampled load elevation. z enters
// squared, so queries above the load mirror those below it. When z == 0 the
// solution is singular; the cell is set to +Inf and counted on the field.
func (p *PointLoad) SampleVerticalPressure(x, y float64, elevations []float64) (*StressField, error) {
	if len(elevations) == 0 {
		return nil, core.NewInvalidParameterError("elevations", "at least one query elevation required")
	}

	q := p.magnitude.Sample()
	elevLoad := p.elevation.Sample()
	xLoad := p.x.Sample()
	yLoad := p.y.Sample()

	field := newStressField(elevations, len(q))
	for ei, elevation := range elevations {
		row := field.Values[ei]
		for i := range q {
			z := elevLoad[i] - elevation
			if z == 0 {
				row[i] = math.Inf(1)
				field.SingularCells++
				continue
			}
			dx := x - xLoad[i]
			dy := y - yLoad[i]
			r2 := dx*dx + dy*dy
			z2 := z * z
			row[i] = (3 * q[i]) / (2 * math.Pi * z2) / math.Pow(1+r2/z2, 2.5)
		}
	}
	return field, nil
}

func (p *PointLoad) String() string {
	return fmt.Sprintf("point load %s kN at (%s, %s, %s)", p.magnitude, p.x, p.y, p.elevation)
}

// Superpose sums each load's vertical stress contribution elementwise at one
// query (x, y) across the given elevations.
func Superpose(x, y float64, elevations []float64, loads ...Load) (*StressField, error) {
	if len(loads) == 0 {
		return nil, core.NewInvalidParameterError("loads", "at least one load required")
	}
	total, err := loads[0].SampleVerticalPressure(x, y, elevations)
	if err != nil {
		return nil, err
	}
	for _, l := range loads[1:] {
		field, err := l.SampleVerticalPressure(x, y, elevations)
		if err != nil {
			return nil, err
		}
		if err := total.Add(field); err != nil {
			return nil, err
		}
	}
	return total, nil
}

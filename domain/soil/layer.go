package soil

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"

	"geomc/domain/core"
	"geomc/domain/montecarlo"
)

// Property names used to key per-layer sample vectors.
const (
	PropElevationTop       = "elevation_top"
	PropElevationBottom    = "elevation_bottom"
	PropWetDensity         = "wet_density"
	PropDryDensity         = "dry_density"
	PropCohesion           = "cohesion"
	PropFrictionAngle      = "angle_of_internal_friction"
	PropCompressionIndex   = "compression_index"
	PropRecompressionIndex = "recompression_index"
	PropInitialVoidRatio   = "initial_void_ratio"
)

// PropertyNames lists every sampled layer property, in reporting order.
var PropertyNames = []string{
	PropElevationTop,
	PropElevationBottom,
	PropWetDensity,
	PropDryDensity,
	PropCohesion,
	PropFrictionAngle,
	PropCompressionIndex,
	PropRecompressionIndex,
	PropInitialVoidRatio,
}

// LayerParams holds the stochastic parameters of one stratigraphic unit.
// Every field accepts a bare montecarlo.Scalar or any distribution.
//
// Units: elevations in m above datum, densities in kN/m³, cohesion in kPa,
// friction angle in degrees, compression/recompression indices and initial
// void ratio dimensionless.
type LayerParams struct {
	ElevationTop       montecarlo.Param
	ElevationBottom    montecarlo.Param
	WetDensity         montecarlo.Param
	DryDensity         montecarlo.Param
	Cohesion           montecarlo.Param
	FrictionAngle      montecarlo.Param
	CompressionIndex   montecarlo.Param
	RecompressionIndex montecarlo.Param
	InitialVoidRatio   montecarlo.Param
}

// SoilLayer is one stratigraphic unit. Immutable after construction.
type SoilLayer struct {
	name  string
	props map[string]montecarlo.Distribution

	// cached ensemble-mean of elevation_top, used for ordering and wetness
	meanTop float64
}

// NewLayer creates a layer, coercing every scalar parameter to a Constant
// law. When both elevations are deterministic, elevation_top must exceed
// elevation_bottom; for stochastic elevations the constructor cannot decide
// and GeometryViolations reports the per-trial count instead.
func NewLayer(ens *montecarlo.Ensemble, name string, p LayerParams) (*SoilLayer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, core.NewInvalidParameterError("name", "layer name cannot be empty")
	}

	fields := []struct {
		key   string
		param montecarlo.Param
	}{
		{PropElevationTop, p.ElevationTop},
		{PropElevationBottom, p.ElevationBottom},
		{PropWetDensity, p.WetDensity},
		{PropDryDensity, p.DryDensity},
		{PropCohesion, p.Cohesion},
		{PropFrictionAngle, p.FrictionAngle},
		{PropCompressionIndex, p.CompressionIndex},
		{PropRecompressionIndex, p.RecompressionIndex},
		{PropInitialVoidRatio, p.InitialVoidRatio},
	}

	layer := &SoilLayer{name: name, props: make(map[string]montecarlo.Distribution, len(fields))}
	for _, f := range fields {
		if f.param == nil {
			return nil, core.NewInvalidParameterError(f.key, fmt.Sprintf("required for layer %q", name))
		}
		dist, err := montecarlo.Resolve(ens, f.param)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %s: %w", name, f.key, err)
		}
		layer.props[f.key] = dist
	}

	top, topDeterministic := deterministicValue(layer.props[PropElevationTop])
	bottom, bottomDeterministic := deterministicValue(layer.props[PropElevationBottom])
	if topDeterministic && bottomDeterministic && top <= bottom {
		return nil, core.NewInvalidParameterError("elevation_top",
			fmt.Sprintf("layer %q: top elevation %g must exceed bottom elevation %g", name, top, bottom))
	}

	mean, err := stats.Mean(layer.props[PropElevationTop].Sample())
	if err != nil {
		return nil, core.NewInvalidParameterError("elevation_top", err.Error())
	}
	layer.meanTop = mean
	return layer, nil
}

func deterministicValue(d montecarlo.Distribution) (float64, bool) {
	c, ok := d.(*montecarlo.Constant)
	if !ok {
		return 0, false
	}
	return c.Value, true
}

// Name returns the layer name.
func (l *SoilLayer) Name() string { return l.name }

// MeanElevationTop returns the ensemble mean of the top elevation, the value
// layers are ordered and classified by.
func (l *SoilLayer) MeanElevationTop() float64 { return l.meanTop }

// Property returns the distribution backing one named property.
func (l *SoilLayer) Property(name string) (montecarlo.Distribution, error) {
	d, ok := l.props[name]
	if !ok {
		return nil, core.NewInvalidParameterError("property", fmt.Sprintf("unknown property %q", name))
	}
	return d, nil
}

// IsWet reports whether the layer classifies as wet against the groundwater
// reference. The frame is elevation above datum throughout this package, and
// the rule is mean(elevation_top) >= groundwaterReference: a layer is wet
// when its top reaches the reference. Classification uses the ensemble mean
// of elevation_top; per-trial refinement belongs to downstream settlement
// calculations.
func (l *SoilLayer) IsWet(groundwaterReference float64) bool {
	return l.meanTop >= groundwaterReference
}

// Density returns the wet unit-weight distribution when the layer is wet
// against the given groundwater reference, the dry one otherwise.
func (l *SoilLayer) Density(groundwaterReference float64) montecarlo.Distribution {
	if l.IsWet(groundwaterReference) {
		return l.props[PropWetDensity]
	}
	return l.props[PropDryDensity]
}

// GeometryViolations counts trials in which elevation_top <= elevation_bottom.
// Nonzero counts indicate the elevation distributions overlap.
func (l *SoilLayer) GeometryViolations() int {
	top := l.props[PropElevationTop].Sample()
	bottom := l.props[PropElevationBottom].Sample()
	violations := 0
	for i := range top {
		if top[i] <= bottom[i] {
			violations++
		}
	}
	return violations
}

// Samples draws one length-N vector per property, keyed by property name.
func (l *SoilLayer) Samples() map[string][]float64 {
	out := make(map[string][]float64, len(l.props))
	for name, dist := range l.props {
		out[name] = dist.Sample()
	}
	return out
}

func (l *SoilLayer) String() string {
	return fmt.Sprintf("%s (%s m to %s m)", l.name, l.props[PropElevationTop], l.props[PropElevationBottom])
}

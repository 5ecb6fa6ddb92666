package soil

import (
	"fmt"
	"sort"
	"strings"

	"geomc/domain/core"
	"geomc/domain/montecarlo"
)

// ProfileSamples maps layer name -> property name -> length-N sample vector.
// It is the profile's principal output: one realization of the entire
// stratigraphy per trial, ready for downstream stress and settlement work.
type ProfileSamples map[string]map[string][]float64

// SoilProfile is an ordered sequence of layers plus one pore-water-pressure
// model. Layers are kept in descending order of mean top elevation
// (shallowest first) at all times; insertion order is preserved for ties.
type SoilProfile struct {
	ens          *montecarlo.Ensemble
	layers       []*SoilLayer
	porePressure PoreWaterPressure
}

// NewProfile creates a profile. A nil porePressure defaults to a zero
// uniform pressure, the same coercion the layer parameters get.
func NewProfile(ens *montecarlo.Ensemble, porePressure PoreWaterPressure, layers ...*SoilLayer) (*SoilProfile, error) {
	if porePressure == nil {
		var err error
		porePressure, err = NewUniformPressure(ens, montecarlo.Scalar(0))
		if err != nil {
			return nil, err
		}
	}
	p := &SoilProfile{ens: ens, porePressure: porePressure}
	for _, layer := range layers {
		if err := p.AddLayer(layer); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// AddLayer appends a layer and re-sorts the collection by mean top elevation
// descending. The sort is stable: layers with equal top elevations keep
// their relative insertion order.
func (p *SoilProfile) AddLayer(layer *SoilLayer) error {
	if layer == nil {
		return core.NewInvalidParameterError("layer", "cannot be nil")
	}
	for _, existing := range p.layers {
		if existing.Name() == layer.Name() {
			return fmt.Errorf("%w: %q", core.ErrDuplicateLayer, layer.Name())
		}
	}
	p.layers = append(p.layers, layer)
	sort.SliceStable(p.layers, func(i, j int) bool {
		return p.layers[i].MeanElevationTop() > p.layers[j].MeanElevationTop()
	})
	return nil
}

// Layers returns the layers, shallowest first.
func (p *SoilProfile) Layers() []*SoilLayer {
	out := make([]*SoilLayer, len(p.layers))
	copy(out, p.layers)
	return out
}

// Layer looks a layer up by name.
func (p *SoilProfile) Layer(name string) (*SoilLayer, error) {
	for _, layer := range p.layers {
		if layer.Name() == name {
			return layer, nil
		}
	}
	return nil, core.NewLayerNotFoundError(name)
}

// IsWet classifies the named layer against the groundwater reference.
func (p *SoilProfile) IsWet(name string, groundwaterReference float64) (bool, error) {
	layer, err := p.Layer(name)
	if err != nil {
		return false, err
	}
	return layer.IsWet(groundwaterReference), nil
}

// Density returns the named layer's governing unit-weight distribution.
func (p *SoilProfile) Density(name string, groundwaterReference float64) (montecarlo.Distribution, error) {
	layer, err := p.Layer(name)
	if err != nil {
		return nil, err
	}
	return layer.Density(groundwaterReference), nil
}

// Samples draws one vector per property per layer. Because distributions
// cache their realization at construction, calling this twice on an
// unmutated profile returns identical draws.
func (p *SoilProfile) Samples() ProfileSamples {
	out := make(ProfileSamples, len(p.layers))
	for _, layer := range p.layers {
		out[layer.Name()] = layer.Samples()
	}
	return out
}

// PorePressureAt returns the per-trial pore pressure at the query elevation,
// delegating to the profile's model.
func (p *SoilProfile) PorePressureAt(elevation float64) ([]float64, error) {
	return p.porePressure.SamplePressure(elevation)
}

// PorePressureModel returns the profile's pore-water-pressure model.
func (p *SoilProfile) PorePressureModel() PoreWaterPressure {
	return p.porePressure
}

func (p *SoilProfile) String() string {
	if len(p.layers) == 0 {
		return "empty soil profile"
	}
	names := make([]string, len(p.layers))
	for i, layer := range p.layers {
		names[i] = layer.Name()
	}
	return fmt.Sprintf("soil profile [%s], %s", strings.Join(names, " > "), p.porePressure)
}

package montecarlo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"geomc/domain/core"
)

// Distribution is a probability law realized once per ensemble.
//
// Sampling contract: the length-N vector is drawn at construction and cached;
// every Sample call returns the same realization (as a defensive copy). A
// parameter's value is therefore fixed per trial across every place it is
// referenced, which keeps strata physically consistent: a layer's cohesion
// cannot differ between the moment it is classified and the moment its stress
// contribution is computed.
type Distribution interface {
	// Sample returns the cached length-N realization. The returned slice is
	// a copy; callers may mutate it freely.
	Sample() []float64

	fmt.Stringer

	// Param so that any Distribution can stand wherever a scalar-or-
	// distribution argument is accepted.
	Param
}

// Uniform draws values uniformly in [Lower, Upper).
type Uniform struct {
	Lower float64
	Upper float64

	values []float64
}

// NewUniform creates a uniform law on [lower, upper).
func NewUniform(ens *Ensemble, lower, upper float64) (*Uniform, error) {
	if err := requireFinite("uniform", lower, upper); err != nil {
		return nil, err
	}
	if lower > upper {
		return nil, core.NewInvalidParameterError("uniform",
			fmt.Sprintf("lower bound %g exceeds upper bound %g", lower, upper))
	}
	d := distuv.Uniform{Min: lower, Max: upper, Src: ens.source()}
	return &Uniform{Lower: lower, Upper: upper, values: draw(ens.trials, d.Rand)}, nil
}

func (u *Uniform) Sample() []float64 { return clone(u.values) }

func (u *Uniform) String() string { return fmt.Sprintf("%g to %g", u.Lower, u.Upper) }

// Normal draws values from a Gaussian law.
type Normal struct {
	Mean float64
	Std  float64

	values []float64
}

// NewNormal creates a Gaussian law with the given mean and standard deviation.
func NewNormal(ens *Ensemble, mean, std float64) (*Normal, error) {
	if err := requireFinite("normal", mean, std); err != nil {
		return nil, err
	}
	if std < 0 {
		return nil, core.NewInvalidParameterError("normal",
			fmt.Sprintf("standard deviation must be non-negative, got %g", std))
	}
	var values []float64
	if std == 0 {
		// distuv rejects Sigma == 0; a degenerate Gaussian is a constant.
		values = draw(ens.trials, func() float64 { return mean })
	} else {
		d := distuv.Normal{Mu: mean, Sigma: std, Src: ens.source()}
		values = draw(ens.trials, d.Rand)
	}
	return &Normal{Mean: mean, Std: std, values: values}, nil
}

func (n *Normal) Sample() []float64 { return clone(n.values) }

func (n *Normal) String() string { return fmt.Sprintf("%g ± %g", n.Mean, n.Std) }

// LogNormal draws values whose natural logarithm follows a Gaussian law with
// the given underlying mean and standard deviation.
type LogNormal struct {
	Mu    float64
	Sigma float64

	values []float64
}

// NewLogNormal creates a log-normal law in the standard underlying-normal
// parameterization: ln(X) ~ N(mu, sigma).
func NewLogNormal(ens *Ensemble, mu, sigma float64) (*LogNormal, error) {
	if err := requireFinite("lognormal", mu, sigma); err != nil {
		return nil, err
	}
	if sigma < 0 {
		return nil, core.NewInvalidParameterError("lognormal",
			fmt.Sprintf("underlying standard deviation must be non-negative, got %g", sigma))
	}
	var values []float64
	if sigma == 0 {
		values = draw(ens.trials, func() float64 { return math.Exp(mu) })
	} else {
		d := distuv.LogNormal{Mu: mu, Sigma: sigma, Src: ens.source()}
		values = draw(ens.trials, d.Rand)
	}
	return &LogNormal{Mu: mu, Sigma: sigma, values: values}, nil
}

func (l *LogNormal) Sample() []float64 { return clone(l.values) }

func (l *LogNormal) String() string { return fmt.Sprintf("e^(%g ± %g)", l.Mu, l.Sigma) }

// Constant returns the same value for every trial. It never consults a
// random source and does not consume a sub-stream.
type Constant struct {
	Value float64

	trials int
}

// NewConstant creates a degenerate law fixed at value.
func NewConstant(ens *Ensemble, value float64) (*Constant, error) {
	if err := requireFinite("constant", value); err != nil {
		return nil, err
	}
	return &Constant{Value: value, trials: ens.trials}, nil
}

func (c *Constant) Sample() []float64 {
	v := make([]float64, c.trials)
	for i := range v {
		v[i] = c.Value
	}
	return v
}

func (c *Constant) String() string { return fmt.Sprintf("%g", c.Value) }

// NewBootstrap would resample with replacement from an empirical data set.
// The resampling rule is not decided yet.
func NewBootstrap(ens *Ensemble, samples []float64) (Distribution, error) {
	return nil, core.NewUnsupportedError("bootstrap resampling")
}

func draw(n int, next func() float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = next()
	}
	return v
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

func requireFinite(field string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewInvalidParameterError(field, fmt.Sprintf("non-finite value %g", v))
		}
	}
	return nil
}

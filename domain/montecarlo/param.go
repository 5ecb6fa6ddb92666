package montecarlo

import "geomc/domain/core"

// Param is a constructor argument that accepts either a Distribution or a
// bare scalar. Scalars are wrapped as Constant laws by Resolve, so every
// field that takes a "distribution-or-scalar" goes through the same coercion.
//
// The variant set is closed: only types in this package implement Param.
type Param interface {
	resolve(ens *Ensemble) (Distribution, error)
}

// Scalar is a bare numeric value used where a distribution is accepted.
// It resolves to a Constant law of the ensemble's trial count.
type Scalar float64

func (s Scalar) resolve(ens *Ensemble) (Distribution, error) {
	return NewConstant(ens, float64(s))
}

func (u *Uniform) resolve(*Ensemble) (Distribution, error)   { return u, nil }
func (n *Normal) resolve(*Ensemble) (Distribution, error)    { return n, nil }
func (l *LogNormal) resolve(*Ensemble) (Distribution, error) { return l, nil }
func (c *Constant) resolve(*Ensemble) (Distribution, error)  { return c, nil }

// Resolve coerces a Param into a Distribution against the given ensemble.
// A distribution built against a different ensemble is rejected, which keeps
// the shared trial indexing valid when vectors are later combined.
func Resolve(ens *Ensemble, p Param) (Distribution, error) {
	d, err := p.resolve(ens)
	if err != nil {
		return nil, err
	}
	if got := len(d.Sample()); got != ens.trials {
		return nil, core.NewEnsembleMismatchError(ens.trials, got)
	}
	return d, nil
}

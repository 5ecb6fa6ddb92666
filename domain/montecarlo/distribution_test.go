package montecarlo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"geomc/domain/core"
)

const convergenceTrials = 20000

func TestDistributions_SampleLength(t *testing.T) {
	ens, err := NewEnsemble(300, 42)
	require.NoError(t, err)

	uniform, err := NewUniform(ens, 0, 1)
	require.NoError(t, err)
	normal, err := NewNormal(ens, 0, 1)
	require.NoError(t, err)
	logNormal, err := NewLogNormal(ens, 0, 1)
	require.NoError(t, err)
	constant, err := NewConstant(ens, 3.5)
	require.NoError(t, err)

	for _, d := range []Distribution{uniform, normal, logNormal, constant} {
		assert.Len(t, d.Sample(), 300, "%s", d)
	}
}

func TestConstant_EveryElementEqualsValue(t *testing.T) {
	ens, err := NewEnsemble(100, 42)
	require.NoError(t, err)
	c, err := NewConstant(ens, 17.2)
	require.NoError(t, err)

	for i, v := range c.Sample() {
		if v != 17.2 {
			t.Fatalf("trial %d: got %g, want 17.2", i, v)
		}
	}
	assert.Equal(t, "17.2", c.String())
}

func TestUniform_BoundsAndMean(t *testing.T) {
	ens, err := NewEnsemble(convergenceTrials, 42)
	require.NoError(t, err)
	u, err := NewUniform(ens, 2, 8)
	require.NoError(t, err)

	values := u.Sample()
	for i, v := range values {
		if v < 2 || v >= 8 {
			t.Fatalf("trial %d: %g outside [2, 8)", i, v)
		}
	}
	assert.InDelta(t, 5.0, stat.Mean(values, nil), 0.1)
	assert.Equal(t, "2 to 8", u.String())
}

func TestNormal_MeanAndStdConverge(t *testing.T) {
	ens, err := NewEnsemble(convergenceTrials, 42)
	require.NoError(t, err)
	n, err := NewNormal(ens, 5, 2)
	require.NoError(t, err)

	values := n.Sample()
	mean, std := stat.MeanStdDev(values, nil)
	assert.InDelta(t, 5.0, mean, 0.1)
	assert.InDelta(t, 2.0, std, 0.1)
	assert.Equal(t, "5 ± 2", n.String())
}

func TestLogNormal_UnderlyingParameterization(t *testing.T) {
	ens, err := NewEnsemble(convergenceTrials, 42)
	require.NoError(t, err)
	l, err := NewLogNormal(ens, 1.5, 0.4)
	require.NoError(t, err)

	values := l.Sample()
	logs := make([]float64, len(values))
	for i, v := range values {
		require.Greater(t, v, 0.0, "log-normal draws must be positive")
		logs[i] = math.Log(v)
	}
	mean, std := stat.MeanStdDev(logs, nil)
	assert.InDelta(t, 1.5, mean, 0.05)
	assert.InDelta(t, 0.4, std, 0.05)
	assert.Equal(t, "e^(1.5 ± 0.4)", l.String())
}

func TestDistributions_InvalidParameters(t *testing.T) {
	ens, err := NewEnsemble(10, 42)
	require.NoError(t, err)

	cases := []struct {
		name string
		err  error
	}{
		{"uniform lower > upper", func() error { _, e := NewUniform(ens, 5, 1); return e }()},
		{"uniform NaN bound", func() error { _, e := NewUniform(ens, math.NaN(), 1); return e }()},
		{"normal negative std", func() error { _, e := NewNormal(ens, 0, -1); return e }()},
		{"lognormal negative sigma", func() error { _, e := NewLogNormal(ens, 0, -0.5); return e }()},
		{"constant infinite", func() error { _, e := NewConstant(ens, math.Inf(1)); return e }()},
	}
	for _, tc := range cases {
		require.ErrorIs(t, tc.err, core.ErrInvalidParameter, tc.name)
	}
}

func TestDistributions_DegenerateSpread(t *testing.T) {
	ens, err := NewEnsemble(50, 42)
	require.NoError(t, err)

	n, err := NewNormal(ens, 3, 0)
	require.NoError(t, err)
	for _, v := range n.Sample() {
		assert.Equal(t, 3.0, v)
	}

	l, err := NewLogNormal(ens, 0, 0)
	require.NoError(t, err)
	for _, v := range l.Sample() {
		assert.Equal(t, 1.0, v)
	}
}

// The caching contract: one realization per distribution, fixed at
// construction, returned identically by every Sample call.
func TestDistributions_SampleIsCachedAtConstruction(t *testing.T) {
	ens, err := NewEnsemble(500, 42)
	require.NoError(t, err)
	n, err := NewNormal(ens, 0, 1)
	require.NoError(t, err)

	first := n.Sample()
	second := n.Sample()
	assert.Equal(t, first, second)
}

func TestDistributions_SampleReturnsDefensiveCopy(t *testing.T) {
	ens, err := NewEnsemble(100, 42)
	require.NoError(t, err)
	u, err := NewUniform(ens, 0, 1)
	require.NoError(t, err)

	first := u.Sample()
	first[0] = -999
	assert.NotEqual(t, -999.0, u.Sample()[0], "mutating a returned vector must not corrupt the cached realization")
}

func TestBootstrap_Unsupported(t *testing.T) {
	ens, err := NewEnsemble(10, 42)
	require.NoError(t, err)
	_, err = NewBootstrap(ens, []float64{1, 2, 3})
	require.ErrorIs(t, err, core.ErrUnsupported)
}

func TestResolve_ScalarBecomesConstant(t *testing.T) {
	ens, err := NewEnsemble(25, 42)
	require.NoError(t, err)

	d, err := Resolve(ens, Scalar(9.81))
	require.NoError(t, err)
	c, ok := d.(*Constant)
	require.True(t, ok, "scalar must resolve to a Constant law")
	assert.Equal(t, 9.81, c.Value)
	assert.Len(t, d.Sample(), 25)
}

func TestResolve_DistributionPassesThrough(t *testing.T) {
	ens, err := NewEnsemble(25, 42)
	require.NoError(t, err)
	n, err := NewNormal(ens, 0, 1)
	require.NoError(t, err)

	d, err := Resolve(ens, n)
	require.NoError(t, err)
	assert.Same(t, n, d.(*Normal))
}

func TestResolve_RejectsForeignEnsemble(t *testing.T) {
	small, err := NewEnsemble(10, 42)
	require.NoError(t, err)
	big, err := NewEnsemble(20, 42)
	require.NoError(t, err)

	n, err := NewNormal(small, 0, 1)
	require.NoError(t, err)
	_, err = Resolve(big, n)
	require.ErrorIs(t, err, core.ErrEnsembleMismatch)
}

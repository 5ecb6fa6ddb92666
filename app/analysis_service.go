package app

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"geomc/domain/core"
	"geomc/domain/load"
	"geomc/domain/soil"
	"geomc/internal/errors"
)

// AnalysisService orchestrates one Monte Carlo analysis: it realizes the
// profile's stratigraphy and evaluates every load's stress contribution at
// the query point, then superposes the contributions into a total field.
type AnalysisService struct {
	log *slog.Logger
}

// NewAnalysisService creates an analysis service.
func NewAnalysisService(logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{log: logger}
}

// AnalysisRequest defines the inputs for one analysis run.
type AnalysisRequest struct {
	Profile    *soil.SoilProfile
	Loads      []load.Load
	X          float64
	Y          float64
	Elevations []float64

	// RunID is generated when empty.
	RunID core.RunID
}

// AnalysisResult is the complete output of one run. LoadFields holds each
// load's contribution in request order; TotalStress is their superposition
// (nil when the request carried no loads).
type AnalysisResult struct {
	RunID       core.RunID
	Samples     soil.ProfileSamples
	LoadFields  []*load.StressField
	TotalStress *load.StressField
	Runtime     time.Duration
}

// Run executes the analysis. Profile sampling and per-load stress evaluation
// run concurrently: all randomness was fixed when the distributions were
// constructed, so the work is read-only and the result is independent of
// goroutine interleaving.
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	start := time.Now()

	if req.Profile == nil {
		return nil, errors.InvalidInput("analysis request needs a soil profile")
	}
	if len(req.Profile.Layers()) == 0 {
		return nil, errors.Wrap(core.ErrEmptyProfile, "analysis request")
	}
	if len(req.Loads) > 0 && len(req.Elevations) == 0 {
		return nil, errors.InvalidInput("analysis request with loads needs query elevations")
	}

	runID := req.RunID
	if runID == "" {
		runID = core.NewRunID()
	}

	s.log.Info("analysis started",
		"run_id", runID.String(),
		"layers", len(req.Profile.Layers()),
		"loads", len(req.Loads),
		"elevations", len(req.Elevations))

	result := &AnalysisResult{
		RunID:      runID,
		LoadFields: make([]*load.StressField, len(req.Loads)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		result.Samples = req.Profile.Samples()
		return nil
	})
	for i, l := range req.Loads {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			field, err := l.SampleVerticalPressure(req.X, req.Y, req.Elevations)
			if err != nil {
				return err
			}
			result.LoadFields[i] = field
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("analysis failed", "run_id", runID.String(), "error", err)
		return nil, errors.AnalysisFailed("analysis run failed", err)
	}

	if len(result.LoadFields) > 0 {
		total := newEmptyCopy(result.LoadFields[0])
		for _, field := range result.LoadFields {
			if err := total.Add(field); err != nil {
				return nil, errors.AnalysisFailed("superposing stress fields", err)
			}
		}
		result.TotalStress = total
		if total.SingularCells > 0 {
			s.log.Warn("stress field contains singular cells",
				"run_id", runID.String(),
				"singular_cells", total.SingularCells)
		}
	}

	result.Runtime = time.Since(start)
	s.log.Info("analysis finished", "run_id", runID.String(), "runtime", result.Runtime)
	return result, nil
}

// newEmptyCopy allocates a zero field on the same grid, so Add can
// accumulate every contribution uniformly.
func newEmptyCopy(f *load.StressField) *load.StressField {
	out := &load.StressField{
		Elevations: make([]float64, len(f.Elevations)),
		Values:     make([][]float64, len(f.Values)),
	}
	copy(out.Elevations, f.Elevations)
	for i := range out.Values {
		out.Values[i] = make([]float64, f.Trials())
	}
	return out
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"

	"geomc/app"
	"geomc/domain/load"
	"geomc/domain/montecarlo"
	"geomc/domain/soil"
	"geomc/internal/config"
)

func main() {
	// optional .env; absence is fine
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "geomc",
		Short: "Monte Carlo probabilistic analysis of layered soil profiles",
	}
	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var trials int
	var seed uint64
	var x, y float64
	var elevations []float64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demo analysis: two-layer profile under a 100 kN point load",
		Long: `Run a Monte Carlo analysis of a two-layer soil profile (sand over clay,
water table at 95 m) under a 100 kN point load at the surface, and print
per-elevation summary statistics of the vertical stress increase.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("trials") {
				cfg.Trials = trials
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg.LogLevel)
			return runDemo(cmd, cfg, logger, x, y, elevations)
		},
	}

	cmd.Flags().IntVar(&trials, "trials", config.DefaultTrials, "Monte Carlo trial count")
	cmd.Flags().Uint64Var(&seed, "seed", config.DefaultSeed, "root random seed")
	cmd.Flags().Float64Var(&x, "x", 0, "query point x coordinate (m)")
	cmd.Flags().Float64Var(&y, "y", 0, "query point y coordinate (m)")
	cmd.Flags().Float64SliceVar(&elevations, "elevations", []float64{99, 97, 95, 90, 85}, "query elevations (m)")
	return cmd
}

func runDemo(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, x, y float64, elevations []float64) error {
	ens, err := cfg.Ensemble()
	if err != nil {
		return err
	}

	profile, err := demoProfile(ens)
	if err != nil {
		return err
	}
	surface, err := load.NewPointLoad(ens,
		montecarlo.Scalar(100), // kN
		montecarlo.Scalar(100), // applied at the ground surface
		montecarlo.Scalar(0),
		montecarlo.Scalar(0),
	)
	if err != nil {
		return err
	}

	svc := app.NewAnalysisService(logger)
	result, err := svc.Run(cmd.Context(), app.AnalysisRequest{
		Profile:    profile,
		Loads:      []load.Load{surface},
		X:          x,
		Y:          y,
		Elevations: elevations,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s: %d trials, seed %d\n", result.RunID, cfg.Trials, cfg.Seed)
	fmt.Fprintf(out, "profile: %s\n\n", profile)
	fmt.Fprintf(out, "%-14s %12s %12s %12s\n", "elevation (m)", "mean (kPa)", "std (kPa)", "p95 (kPa)")
	for i, elevation := range result.TotalStress.Elevations {
		row := result.TotalStress.Values[i]
		mean, err := stats.Mean(row)
		if err != nil {
			return err
		}
		std, err := stats.StandardDeviation(row)
		if err != nil {
			return err
		}
		p95, err := stats.Percentile(row, 95)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-14g %12.3f %12.3f %12.3f\n", elevation, mean, std, p95)
	}
	if result.TotalStress.SingularCells > 0 {
		fmt.Fprintf(out, "\nwarning: %d singular cells (query coincides with sampled load point)\n",
			result.TotalStress.SingularCells)
	}
	return nil
}

// demoProfile builds a two-layer stratigraphy with uncertain strength and
// compressibility parameters, matching the canonical scenario.
func demoProfile(ens *montecarlo.Ensemble) (*soil.SoilProfile, error) {
	sandFriction, err := montecarlo.NewUniform(ens, 30, 36)
	if err != nil {
		return nil, err
	}
	sand, err := soil.NewLayer(ens, "sand", soil.LayerParams{
		ElevationTop:       montecarlo.Scalar(100),
		ElevationBottom:    montecarlo.Scalar(90),
		WetDensity:         montecarlo.Scalar(19.5),
		DryDensity:         montecarlo.Scalar(17.0),
		Cohesion:           montecarlo.Scalar(0),
		FrictionAngle:      sandFriction,
		CompressionIndex:   montecarlo.Scalar(0.05),
		RecompressionIndex: montecarlo.Scalar(0.01),
		InitialVoidRatio:   montecarlo.Scalar(0.6),
	})
	if err != nil {
		return nil, err
	}

	clayCohesion, err := montecarlo.NewNormal(ens, 40, 8)
	if err != nil {
		return nil, err
	}
	clayCc, err := montecarlo.NewLogNormal(ens, -1.2, 0.25)
	if err != nil {
		return nil, err
	}
	clay, err := soil.NewLayer(ens, "clay", soil.LayerParams{
		ElevationTop:       montecarlo.Scalar(90),
		ElevationBottom:    montecarlo.Scalar(80),
		WetDensity:         montecarlo.Scalar(18.5),
		DryDensity:         montecarlo.Scalar(16.0),
		Cohesion:           clayCohesion,
		FrictionAngle:      montecarlo.Scalar(22),
		CompressionIndex:   clayCc,
		RecompressionIndex: montecarlo.Scalar(0.04),
		InitialVoidRatio:   montecarlo.Scalar(1.1),
	})
	if err != nil {
		return nil, err
	}

	waterTable, err := soil.NewWaterTable(ens, montecarlo.Scalar(95), nil)
	if err != nil {
		return nil, err
	}
	return soil.NewProfile(ens, waterTable, sand, clay)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	}))
}

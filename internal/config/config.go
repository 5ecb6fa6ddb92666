package config

import (
	"fmt"
	"os"
	"strconv"

	"geomc/domain/montecarlo"
	"geomc/internal/errors"
)

// Default ensemble parameters, used when the environment sets nothing.
const (
	DefaultTrials = 1000
	DefaultSeed   = 42
)

// Config holds the process-wide Monte Carlo settings. It must be resolved
// once, before any distribution is constructed, and held fixed for the
// duration of one analysis.
type Config struct {
	Trials   int
	Seed     uint64
	LogLevel string
}

// Load reads configuration from the environment (GEOMC_TRIALS, GEOMC_SEED,
// GEOMC_LOG_LEVEL), falling back to defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Trials:   DefaultTrials,
		Seed:     DefaultSeed,
		LogLevel: "INFO",
	}

	if s := os.Getenv("GEOMC_TRIALS"); s != "" {
		trials, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Wrapf(err, "GEOMC_TRIALS %q is not an integer", s)
		}
		cfg.Trials = trials
	}
	if s := os.Getenv("GEOMC_SEED"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "GEOMC_SEED %q is not an unsigned integer", s)
		}
		cfg.Seed = seed
	}
	if s := os.Getenv("GEOMC_LOG_LEVEL"); s != "" {
		cfg.LogLevel = s
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Trials <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("trial count must be positive, got %d", c.Trials))
	}
	return nil
}

// Ensemble builds the Monte Carlo ensemble this configuration describes.
func (c *Config) Ensemble() (*montecarlo.Ensemble, error) {
	ens, err := montecarlo.NewEnsemble(c.Trials, c.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "building ensemble from config")
	}
	return ens, nil
}

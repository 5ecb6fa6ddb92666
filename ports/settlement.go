package ports

import (
	"context"

	"geomc/domain/load"
	"geomc/domain/soil"
)

// SettlementCalculator is the extension point for settlement aggregation.
// No implementation ships with this module: the consolidation formula is an
// external concern. The contract is fixed here so the core's outputs stay
// consumable: per-layer sampled properties from the profile, a vertical
// stress field from the loads, and an elapsed time in consistent units,
// producing one settlement value per trial. Both inputs must share the same
// trial count.
type SettlementCalculator interface {
	CalculateSettlements(ctx context.Context, samples soil.ProfileSamples, stress *load.StressField, elapsed float64) ([]float64, error)
}

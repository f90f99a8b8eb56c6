package inventory

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/barstock/internal/domain/models"
)

const (
	// MlPerFlOz converts millilitres to US fluid ounces.
	MlPerFlOz = 29.5735
	// FlOzPerServing is one standard pour.
	FlOzPerServing = 1.5
)

// Convert turns a scale reading into a liquor observation for the given bottle.
// Readings below the tare or above the full weight are clamped to 0% and 100%.
// The percentage and fluid ounces are kept unrounded.
func Convert(weightG float64, liquorType string, bottle models.BottleSpec) (models.LiquorItem, error) {
	if math.IsNaN(weightG) || math.IsInf(weightG, 0) {
		return models.LiquorItem{}, fmt.Errorf("weight %v is not a number: %w", weightG, ErrInvalidInput)
	}
	if !bottle.Complete() {
		return models.LiquorItem{}, fmt.Errorf("bottle %q is missing label, volume or weights: %w", bottle.Label, ErrInvalidInput)
	}

	liquidWeight := bottle.FullWeightG - bottle.EmptyWeightG
	if liquidWeight <= 0 {
		return models.LiquorItem{}, fmt.Errorf("full weight %.0fg must exceed empty weight %.0fg: %w", bottle.FullWeightG, bottle.EmptyWeightG, ErrInvalidBottleSpec)
	}

	net := math.Min(math.Max(weightG-bottle.EmptyWeightG, 0), liquidWeight)
	percentage := 100 * net / liquidWeight
	remainingMl := bottle.VolumeMl * percentage / 100
	remainingFlOz := remainingMl / MlPerFlOz

	return models.LiquorItem{
		Type:          liquorType,
		Name:          bottle.Label,
		VolumeMl:      bottle.VolumeMl,
		Percentage:    percentage,
		RemainingFlOz: decimal.NewFromFloat(remainingFlOz),
		Servings:      int(math.Floor(remainingFlOz / FlOzPerServing)),
		Bottles:       1,
	}, nil
}

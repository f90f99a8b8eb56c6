package models

import (
	"math"

	"github.com/shopspring/decimal"
)

// BottleSpec is a catalog entry describing a liquor container.
type BottleSpec struct {
	Label        string  `json:"label" bson:"label"`
	VolumeMl     float64 `json:"volumeMl" bson:"volume_ml"`
	EmptyWeightG float64 `json:"emptyWeightG" bson:"empty_weight_g"`
	FullWeightG  float64 `json:"fullWeightG" bson:"full_weight_g"`
}

// Complete reports whether every field needed to measure the bottle is present.
func (b BottleSpec) Complete() bool {
	return b.Label != "" && isSet(b.VolumeMl) && isSet(b.EmptyWeightG) && isSet(b.FullWeightG)
}

// LiquorItem is one weighed bottle, or several same-named bottles merged
// within a session.
type LiquorItem struct {
	Type          string          `json:"type"`
	Name          string          `json:"name"`
	VolumeMl      float64         `json:"volumeMl"`
	Percentage    float64         `json:"percentage"`
	RemainingFlOz decimal.Decimal `json:"remainingFlOz"`
	Servings      int             `json:"servings"`
	Bottles       int             `json:"bottles,omitempty"`
}

func (l LiquorItem) ItemKey() string   { return l.Type + "_" + l.Name }
func (l LiquorItem) ItemName() string  { return l.Name }
func (l LiquorItem) ItemGroup() string { return l.Type }

func (l LiquorItem) Amount() decimal.Decimal { return l.RemainingFlOz }

func (l LiquorItem) Gauge() Level {
	return Level{
		Servings:      l.Servings,
		Percentage:    l.Percentage,
		HasPercentage: true,
		VolumeMl:      l.VolumeMl,
	}
}

// Merge folds another bottle of the same key into l. Fluid ounces and
// servings are summed; the percentage becomes the capacity-weighted mean of
// both sides.
func (l LiquorItem) Merge(other LiquorItem) LiquorItem {
	left, right := l.capacityMl(), other.capacityMl()

	merged := l
	if total := left + right; total > 0 {
		merged.Percentage = (l.Percentage*left + other.Percentage*right) / total
	}
	merged.RemainingFlOz = l.RemainingFlOz.Add(other.RemainingFlOz)
	merged.Servings = l.Servings + other.Servings
	merged.Bottles = l.bottleCount() + other.bottleCount()
	return merged
}

func (l LiquorItem) bottleCount() int {
	if l.Bottles <= 0 {
		return 1
	}
	return l.Bottles
}

func (l LiquorItem) capacityMl() float64 {
	return l.VolumeMl * float64(l.bottleCount())
}

func isSet(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/barstock/internal/domain/models"
)

// Item is implemented by every trackable line (liquor bottles, beer counts).
// T is the concrete item type so that Merge stays type safe.
type Item[T any] interface {
	// ItemKey identifies the item inside a session and across history.
	ItemKey() string
	ItemName() string
	// ItemGroup is the liquor type or the beer category.
	ItemGroup() string
	// Amount is the remaining quantity: fluid ounces or units.
	Amount() decimal.Decimal
	Gauge() models.Level
	Merge(other T) T
}

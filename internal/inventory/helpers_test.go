package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/barstock/internal/domain/models"
)

var day0 = time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)

func days(n int) time.Time { return day0.AddDate(0, 0, n) }

func liquor(liquorType, name string, flOz string, servings int, pct float64) models.LiquorItem {
	return models.LiquorItem{
		Type:          liquorType,
		Name:          name,
		VolumeMl:      750,
		Percentage:    pct,
		RemainingFlOz: decimal.RequireFromString(flOz),
		Servings:      servings,
		Bottles:       1,
	}
}

func beer(key, label string, count int) models.BeerItem {
	return models.BeerItem{CatalogKey: key, Label: label, Category: "Media", Count: count}
}

func beerSession(end time.Time, items ...models.BeerItem) Session[models.BeerItem] {
	return Session[models.BeerItem]{StartDate: end.Add(-time.Hour), EndDate: end, Items: Aggregate(items)}
}

func liquorSession(end time.Time, items ...models.LiquorItem) Session[models.LiquorItem] {
	return Session[models.LiquorItem]{StartDate: end.Add(-time.Hour), EndDate: end, Items: Aggregate(items)}
}

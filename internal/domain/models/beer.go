package models

import "github.com/shopspring/decimal"

// BeerSpec is a catalog entry for a beer product. Beer is counted, not weighed.
type BeerSpec struct {
	Label    string `json:"label" bson:"label"`
	Category string `json:"category" bson:"category"`
}

// BeerItem is a counted line of one catalog beer.
type BeerItem struct {
	CatalogKey string `json:"key"`
	Label      string `json:"label"`
	Category   string `json:"category"`
	Count      int    `json:"count"`
}

func (b BeerItem) ItemKey() string   { return b.CatalogKey }
func (b BeerItem) ItemName() string  { return b.Label }
func (b BeerItem) ItemGroup() string { return b.Category }

func (b BeerItem) Amount() decimal.Decimal { return decimal.NewFromInt(int64(b.Count)) }

// Gauge treats every unit as one serving; beer has no fill percentage.
func (b BeerItem) Gauge() Level {
	return Level{Servings: b.Count}
}

func (b BeerItem) Merge(other BeerItem) BeerItem {
	merged := b
	merged.Count = b.Count + other.Count
	return merged
}

package catalog

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/barstock/internal/domain/models"
	"github.com/mamadbah2/barstock/internal/inventory"
)

// Beer maps a derived beer key to its catalog entry. It is not safe for
// concurrent use.
type Beer struct {
	beers map[string]models.BeerSpec
}

func NewBeer(beers map[string]models.BeerSpec) *Beer {
	copied := make(map[string]models.BeerSpec, len(beers))
	for key, spec := range beers {
		copied[key] = spec
	}
	return &Beer{beers: copied}
}

func (c *Beer) Lookup(key string) (models.BeerSpec, error) {
	spec, ok := c.beers[key]
	if !ok {
		return models.BeerSpec{}, fmt.Errorf("beer %s: %w", key, ErrNotFound)
	}
	return spec, nil
}

// Add registers a beer and returns its derived key.
func (c *Beer) Add(label, category string) (string, error) {
	label, category = strings.TrimSpace(label), strings.TrimSpace(category)
	if label == "" || category == "" {
		return "", fmt.Errorf("beer name and category are required: %w", inventory.ErrInvalidInput)
	}

	key := BeerKey(label, category)
	if _, exists := c.beers[key]; exists {
		return "", fmt.Errorf("beer %s: %w", key, inventory.ErrDuplicateCatalogKey)
	}
	c.beers[key] = models.BeerSpec{Label: label, Category: category}
	return key, nil
}

// Keys lists the beer keys in lexical order.
func (c *Beer) Keys() []string {
	return sortedKeys(c.beers)
}

func (c *Beer) Snapshot() map[string]models.BeerSpec {
	return NewBeer(c.beers).beers
}

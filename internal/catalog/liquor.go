package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mamadbah2/barstock/internal/domain/models"
	"github.com/mamadbah2/barstock/internal/inventory"
)

// ErrNotFound indicates the requested catalog entry does not exist.
var ErrNotFound = errors.New("catalog entry not found")

// Liquor maps a liquor type to its bottles, keyed by bottle key.
// It is not safe for concurrent use.
type Liquor struct {
	bottles map[string]map[string]models.BottleSpec
}

// NewLiquor copies the provided entries into a new catalog.
func NewLiquor(bottles map[string]map[string]models.BottleSpec) *Liquor {
	return &Liquor{bottles: copyBottles(bottles)}
}

// Lookup returns the bottle registered under liquorType and key.
func (c *Liquor) Lookup(liquorType, key string) (models.BottleSpec, error) {
	spec, ok := c.bottles[liquorType][key]
	if !ok {
		return models.BottleSpec{}, fmt.Errorf("bottle %s/%s: %w", liquorType, key, ErrNotFound)
	}
	return spec, nil
}

// Add registers a bottle under liquorType, creating the type when new. The
// key is derived from the bottle label and existing keys are never overwritten.
func (c *Liquor) Add(liquorType string, spec models.BottleSpec) (string, error) {
	liquorType = strings.ToLower(strings.TrimSpace(liquorType))
	spec.Label = strings.TrimSpace(spec.Label)

	if liquorType == "" || !spec.Complete() {
		return "", fmt.Errorf("type, name, volume, empty and full weight are required: %w", inventory.ErrInvalidInput)
	}
	if spec.FullWeightG <= spec.EmptyWeightG {
		return "", fmt.Errorf("full weight must exceed empty weight: %w", inventory.ErrInvalidBottleSpec)
	}

	key := BottleKey(spec.Label)
	if key == "" {
		return "", fmt.Errorf("bottle name %q has no usable characters: %w", spec.Label, inventory.ErrInvalidInput)
	}
	if _, exists := c.bottles[liquorType][key]; exists {
		return "", fmt.Errorf("bottle %s/%s: %w", liquorType, key, inventory.ErrDuplicateCatalogKey)
	}
	// Seeded entries carry hand-picked keys, so the label is checked too.
	for existing, bottle := range c.bottles[liquorType] {
		if strings.EqualFold(strings.TrimSpace(bottle.Label), spec.Label) {
			return "", fmt.Errorf("bottle %s/%s already named %q: %w", liquorType, existing, spec.Label, inventory.ErrDuplicateCatalogKey)
		}
	}

	if c.bottles[liquorType] == nil {
		c.bottles[liquorType] = make(map[string]models.BottleSpec)
	}
	c.bottles[liquorType][key] = spec
	return key, nil
}

// Types lists the liquor types in lexical order.
func (c *Liquor) Types() []string {
	types := make([]string, 0, len(c.bottles))
	for t := range c.bottles {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Snapshot returns a deep copy suitable for persisting or serving.
func (c *Liquor) Snapshot() map[string]map[string]models.BottleSpec {
	return copyBottles(c.bottles)
}

// Repair restores built-in bottles whose stored copy lost its label, volume
// or weights. It returns the "type/key" of every restored entry.
func (c *Liquor) Repair(defaults map[string]map[string]models.BottleSpec) []string {
	var restored []string
	for _, liquorType := range sortedKeys(defaults) {
		stored, ok := c.bottles[liquorType]
		if !ok {
			continue
		}
		for _, key := range sortedKeys(defaults[liquorType]) {
			current, ok := stored[key]
			if !ok || current.Complete() {
				continue
			}
			stored[key] = defaults[liquorType][key]
			restored = append(restored, liquorType+"/"+key)
		}
	}
	return restored
}

func copyBottles(src map[string]map[string]models.BottleSpec) map[string]map[string]models.BottleSpec {
	dst := make(map[string]map[string]models.BottleSpec, len(src))
	for liquorType, bottles := range src {
		inner := make(map[string]models.BottleSpec, len(bottles))
		for key, spec := range bottles {
			inner[key] = spec
		}
		dst[liquorType] = inner
	}
	return dst
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/barstock/internal/domain/models"
	"github.com/mamadbah2/barstock/internal/inventory"
)

func TestBeerKey(t *testing.T) {
	assert.Equal(t, "corona-extra_media", BeerKey("Corona Extra", "Media"))
	assert.Equal(t, "stella-artois_botella-355", BeerKey("  Stella   Artois ", "Botella\t355"))
}

func TestBottleKey(t *testing.T) {
	assert.Equal(t, "don_julio_70", BottleKey("Don Julio 70"))
	assert.Equal(t, "jack_daniel_s", BottleKey("Jack Daniel's"))
	assert.Equal(t, "", BottleKey("  ¡! "))
}

func TestLiquorAdd(t *testing.T) {
	c := NewLiquor(DefaultBottles())
	spec := models.BottleSpec{Label: "Don Julio 70", VolumeMl: 700, EmptyWeightG: 620, FullWeightG: 1280}

	key, err := c.Add(" Tequila ", spec)
	require.NoError(t, err)
	assert.Equal(t, "don_julio_70", key)

	got, err := c.Lookup("tequila", key)
	require.NoError(t, err)
	assert.Equal(t, spec, got)

	t.Run("duplicate key refused", func(t *testing.T) {
		_, err := c.Add("tequila", spec)
		assert.ErrorIs(t, err, inventory.ErrDuplicateCatalogKey)
	})

	t.Run("seeded label refused", func(t *testing.T) {
		_, err := c.Add("Whiskey", models.BottleSpec{Label: "jack daniel's", VolumeMl: 700, EmptyWeightG: 560, FullWeightG: 1240})
		assert.ErrorIs(t, err, inventory.ErrDuplicateCatalogKey)
		_, err = c.Add("tequila", models.BottleSpec{Label: "Patrón", VolumeMl: 750, EmptyWeightG: 600, FullWeightG: 1300})
		assert.ErrorIs(t, err, inventory.ErrDuplicateCatalogKey)
		assert.Len(t, c.Snapshot()["whiskey"], 2)
	})

	t.Run("new type created", func(t *testing.T) {
		_, err := c.Add("Amaretto", models.BottleSpec{Label: "Disaronno", VolumeMl: 700, EmptyWeightG: 700, FullWeightG: 1350})
		require.NoError(t, err)
		assert.Contains(t, c.Types(), "amaretto")
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := c.Add("", spec)
		assert.ErrorIs(t, err, inventory.ErrInvalidInput)
		_, err = c.Add("vodka", models.BottleSpec{Label: "Smirnoff", VolumeMl: 750})
		assert.ErrorIs(t, err, inventory.ErrInvalidInput)
	})

	t.Run("full weight not above tare", func(t *testing.T) {
		_, err := c.Add("vodka", models.BottleSpec{Label: "Smirnoff", VolumeMl: 750, EmptyWeightG: 600, FullWeightG: 500})
		assert.ErrorIs(t, err, inventory.ErrInvalidBottleSpec)
	})
}

func TestLiquorLookupMissing(t *testing.T) {
	_, err := NewLiquor(DefaultBottles()).Lookup("tequila", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLiquorSnapshotIsolated(t *testing.T) {
	c := NewLiquor(DefaultBottles())
	snap := c.Snapshot()
	delete(snap["tequila"], "patron")

	_, err := c.Lookup("tequila", "patron")
	assert.NoError(t, err)
}

func TestLiquorRepair(t *testing.T) {
	stored := DefaultBottles()
	stored["tequila"]["patron"] = models.BottleSpec{Label: "Patrón", VolumeMl: 750}
	stored["tequila"]["custom"] = models.BottleSpec{Label: "Custom"}

	c := NewLiquor(stored)
	restored := c.Repair(DefaultBottles())
	assert.Equal(t, []string{"tequila/patron"}, restored)

	patron, err := c.Lookup("tequila", "patron")
	require.NoError(t, err)
	assert.Equal(t, 480.0, patron.EmptyWeightG)

	custom, err := c.Lookup("tequila", "custom")
	require.NoError(t, err)
	assert.False(t, custom.Complete(), "custom bottles are left alone")
}

func TestBeerAdd(t *testing.T) {
	c := NewBeer(DefaultBeers())

	key, err := c.Add("Corona Extra", "Media")
	require.NoError(t, err)
	assert.Equal(t, "corona-extra_media", key)

	_, err = c.Add("corona   extra", "MEDIA")
	assert.ErrorIs(t, err, inventory.ErrDuplicateCatalogKey)

	_, err = c.Add("", "Media")
	assert.ErrorIs(t, err, inventory.ErrInvalidInput)

	spec, err := c.Lookup(key)
	require.NoError(t, err)
	assert.Equal(t, models.BeerSpec{Label: "Corona Extra", Category: "Media"}, spec)
	assert.Contains(t, c.Keys(), key)
}

func TestDefaultsAreMeasurable(t *testing.T) {
	for liquorType, bottles := range DefaultBottles() {
		for key, spec := range bottles {
			_, err := inventory.Convert(spec.FullWeightG, liquorType, spec)
			assert.NoError(t, err, "%s/%s", liquorType, key)
		}
	}
	for key, spec := range DefaultBeers() {
		assert.Equal(t, key, BeerKey(spec.Label, spec.Category))
	}
}

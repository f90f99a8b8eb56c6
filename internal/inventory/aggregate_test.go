package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/barstock/internal/domain/models"
)

func TestAggregateLiquor(t *testing.T) {
	a := liquor("tequila", "Patrón", "12.50", 8, 50)
	b := liquor("tequila", "Patrón", "6.25", 4, 25)
	c := liquor("vodka", "Oso Negro", "20.00", 13, 60)

	merged := Aggregate([]models.LiquorItem{a, b, c})
	require.Len(t, merged, 2)

	patron := merged["tequila_Patrón"]
	assert.Equal(t, "18.75", patron.RemainingFlOz.StringFixed(2))
	assert.Equal(t, 12, patron.Servings)
	assert.Equal(t, 2, patron.Bottles)
	assert.InDelta(t, 37.5, patron.Percentage, 1e-9)

	assert.Equal(t, c, merged["vodka_Oso Negro"])
}

func TestAggregateWeightsPercentageByCapacity(t *testing.T) {
	small := liquor("ron", "Antillano", "5", 3, 80)
	small.VolumeMl = 250
	large := liquor("ron", "Antillano", "10", 6, 20)
	large.VolumeMl = 750

	merged := Aggregate([]models.LiquorItem{small, large})["ron_Antillano"]
	assert.InDelta(t, (80*250+20*750)/1000.0, merged.Percentage, 1e-9)
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	a := liquor("licor", "Flamingo Blue Curacao", "3.33", 2, 10)
	b := liquor("licor", "Flamingo Blue Curacao", "7.01", 4, 21)

	ab := Aggregate([]models.LiquorItem{a, b})["licor_Flamingo Blue Curacao"]
	ba := Aggregate([]models.LiquorItem{b, a})["licor_Flamingo Blue Curacao"]

	assert.True(t, ab.RemainingFlOz.Equal(ba.RemainingFlOz))
	assert.Equal(t, ab.Servings, ba.Servings)
	assert.InDelta(t, ab.Percentage, ba.Percentage, 1e-9)

	x := beer("indio_media", "Indio", 12)
	y := beer("indio_media", "Indio", 6)
	assert.Equal(t, Aggregate([]models.BeerItem{x, y}), Aggregate([]models.BeerItem{y, x}))
}

func TestAggregateBeerSumsCounts(t *testing.T) {
	merged := Aggregate([]models.BeerItem{
		beer("indio_media", "Indio", 12),
		beer("xx-lager_media", "XX Lager", 3),
		beer("indio_media", "Indio", 6),
	})
	require.Len(t, merged, 2)
	assert.Equal(t, 18, merged["indio_media"].Count)
	assert.Equal(t, 3, merged["xx-lager_media"].Count)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate[models.BeerItem](nil))
}

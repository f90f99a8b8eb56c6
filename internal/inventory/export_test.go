package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/barstock/internal/domain/models"
)

func TestFlatten(t *testing.T) {
	history := []Session[models.LiquorItem]{
		liquorSession(days(0), liquor("vodka", "Oso Negro", "20", 13, 60), liquor("ron", "Antillano", "8.5", 5, 25)),
		liquorSession(days(4), liquor("ron", "Antillano", "4.25", 2, 12.5)),
	}

	rows := Flatten(history)
	require.Len(t, rows, 3)

	assert.Equal(t, "ron_Antillano", rows[0].Key)
	assert.Equal(t, "Antillano", rows[0].Label)
	assert.Equal(t, "ron", rows[0].Group)
	assert.Equal(t, "8.5", rows[0].Quantity.String())
	assert.Equal(t, 5, rows[0].Servings)
	assert.Equal(t, 750.0, rows[0].VolumeMl)
	assert.True(t, rows[0].HasPercentage)
	assert.Equal(t, days(0), rows[0].SessionEnd)

	assert.Equal(t, "vodka_Oso Negro", rows[1].Key)
	assert.Equal(t, days(4), rows[2].SessionEnd)
}

func TestFlattenRegroupRoundTrip(t *testing.T) {
	liquorHistory := []Session[models.LiquorItem]{
		liquorSession(days(0),
			liquor("vodka", "Oso Negro", "20.11", 13, 60),
			liquor("vodka", "Oso Negro", "3.07", 2, 9),
			liquor("ron", "Antillano", "8.5", 5, 25),
		),
		liquorSession(days(4), liquor("ron", "Antillano", "4.25", 2, 12.5)),
	}

	regrouped := Regroup(Flatten(liquorHistory))
	require.Len(t, regrouped, len(liquorHistory))
	for i, session := range liquorHistory {
		want := SessionTotals(session)
		got := regrouped[i].Totals
		require.Len(t, got, len(want))
		for key, totals := range want {
			assert.True(t, totals.Quantity.Equal(got[key].Quantity), "quantity of %s", key)
			assert.Equal(t, totals.Servings, got[key].Servings, "servings of %s", key)
		}
		assert.Equal(t, session.EndDate, regrouped[i].EndDate)
	}

	beerHistory := []Session[models.BeerItem]{
		beerSession(days(0), beer("indio_media", "Indio", 12), beer("indio_media", "Indio", 6)),
	}
	beerTotals := Regroup(Flatten(beerHistory))
	require.Len(t, beerTotals, 1)
	assert.Equal(t, "18", beerTotals[0].Totals["indio_media"].Quantity.String())
}

func TestRegroupDerivesMissingKey(t *testing.T) {
	rows := Flatten([]Session[models.LiquorItem]{liquorSession(days(0), liquor("ron", "Antillano", "8.5", 5, 25))})
	rows[0].Key = ""

	regrouped := Regroup(rows)
	require.Len(t, regrouped, 1)
	assert.Contains(t, regrouped[0].Totals, "ron_Antillano")
}

package catalog

import "github.com/mamadbah2/barstock/internal/domain/models"

// DefaultBottles is the built-in liquor catalog used when nothing is stored.
func DefaultBottles() map[string]map[string]models.BottleSpec {
	return map[string]map[string]models.BottleSpec{
		"tequila": {
			"herradura": {Label: "Herradura", VolumeMl: 750, EmptyWeightG: 500, FullWeightG: 1092},
			"patron":    {Label: "Patrón", VolumeMl: 750, EmptyWeightG: 480, FullWeightG: 1072},
		},
		"whiskey": {
			"jackdaniels": {Label: "Jack Daniel's", VolumeMl: 1000, EmptyWeightG: 700, FullWeightG: 1489},
			"jameson":     {Label: "Jameson", VolumeMl: 750, EmptyWeightG: 510, FullWeightG: 1102},
		},
		"vodka": {
			"oso_negro": {Label: "Oso Negro", VolumeMl: 1000, EmptyWeightG: 665, FullWeightG: 1620},
		},
		"ginebra": {
			"oso_negro": {Label: "Oso Negro", VolumeMl: 1000, EmptyWeightG: 665, FullWeightG: 1620},
		},
		"brandy": {},
		"mezcal": {
			"apaluz": {Label: "Apaluz", VolumeMl: 750, EmptyWeightG: 485, FullWeightG: 1190},
		},
		"ron": {
			"antillano": {Label: "Antillano", VolumeMl: 1000, EmptyWeightG: 625, FullWeightG: 1580},
		},
		"licor": {
			"flamingo_blue":          {Label: "Flamingo Blue Curacao", VolumeMl: 1000, EmptyWeightG: 635, FullWeightG: 1700},
			"sangrita_viuda_sanchez": {Label: "Sangrita Viuda Sanchez", VolumeMl: 1000, EmptyWeightG: 640, FullWeightG: 1695},
		},
	}
}

// DefaultBeers is the built-in beer catalog used when nothing is stored.
func DefaultBeers() map[string]models.BeerSpec {
	return map[string]models.BeerSpec{
		"miller-high-life_media":   {Label: "Miller High Life", Category: "Media"},
		"xx-lager_media":           {Label: "XX Lager", Category: "Media"},
		"indio_media":              {Label: "Indio", Category: "Media"},
		"carta-blanca_caguamita":   {Label: "Carta Blanca", Category: "Caguamita"},
		"miller-high-life_caguama": {Label: "Miller High Life", Category: "Caguama"},
		"amstel-ultra_media":       {Label: "Amstel Ultra", Category: "Media"},
		"xx-ultra_media":           {Label: "XX Ultra", Category: "Media"},
	}
}

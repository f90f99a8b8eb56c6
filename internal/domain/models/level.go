package models

// Level is the stock gauge of one item as read by low-stock checks and exports.
type Level struct {
	Servings      int
	Percentage    float64
	HasPercentage bool
	VolumeMl      float64
}

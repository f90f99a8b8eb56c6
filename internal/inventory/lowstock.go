package inventory

// Alert reasons.
const (
	ReasonBoth       = "Servings & Percentage"
	ReasonServings   = "Servings"
	ReasonPercentage = "Percentage"
)

// Thresholds bound the low-stock scan.
type Thresholds struct {
	MinServings   int     `json:"minServings"`
	MinPercentage float64 `json:"minPercentage"`
}

// DefaultThresholds flags fewer than 5 servings or less than 15% left.
func DefaultThresholds() Thresholds {
	return Thresholds{MinServings: 5, MinPercentage: 15}
}

// Alert is a low-stock flag raised for one item of the latest session.
type Alert struct {
	Key           string  `json:"key"`
	Name          string  `json:"name"`
	Group         string  `json:"group"`
	Servings      int     `json:"servings"`
	Percentage    float64 `json:"percentage,omitempty"`
	HasPercentage bool    `json:"-"`
	Reason        string  `json:"reason"`
}

// Evaluate scans the latest session for items below either threshold. Items
// without a fill percentage are checked against servings only. Alerts come
// back ordered by item key.
func Evaluate[T Item[T]](latest Session[T], thresholds Thresholds) []Alert {
	var alerts []Alert
	for _, key := range latest.Keys() {
		item := latest.Items[key]
		level := item.Gauge()

		lowServings := level.Servings < thresholds.MinServings
		lowPercentage := level.HasPercentage && level.Percentage < thresholds.MinPercentage
		if !lowServings && !lowPercentage {
			continue
		}

		reason := ReasonPercentage
		switch {
		case lowServings && lowPercentage:
			reason = ReasonBoth
		case lowServings:
			reason = ReasonServings
		}

		alerts = append(alerts, Alert{
			Key:           key,
			Name:          item.ItemName(),
			Group:         item.ItemGroup(),
			Servings:      level.Servings,
			Percentage:    level.Percentage,
			HasPercentage: level.HasPercentage,
			Reason:        reason,
		})
	}
	return alerts
}

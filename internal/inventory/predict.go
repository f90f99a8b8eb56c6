package inventory

import (
	"math"
	"sort"
	"time"

	"github.com/mamadbah2/barstock/internal/domain/models"
)

// NoteNoConsumption marks predictions where no interval showed depletion.
const NoteNoConsumption = "no consumption observed"

// Point is one observation of an item's remaining quantity.
type Point struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
}

// Prediction is the depletion forecast of one item.
type Prediction struct {
	Key              string
	Name             string
	Group            string
	LatestQuantity   float64
	LatestLevel      models.Level
	AvgDailyRate     float64
	DaysLeft         float64
	Periods          int
	InsufficientData bool
	Note             string
}

// Series projects the history onto one item: a point per session containing
// it, ordered by the session end date.
func Series[T Item[T]](sessions []Session[T], key string) []Point {
	points := make([]Point, 0, len(sessions))
	for _, session := range SortedByEnd(sessions) {
		item, ok := session.Items[key]
		if !ok {
			continue
		}
		points = append(points, Point{Date: session.EndDate, Quantity: item.Amount().InexactFloat64()})
	}
	return points
}

// Predict estimates the daily consumption rate of one item and the days left
// until it runs out.
//
// Only intervals where time passed and the quantity dropped count towards the
// rate, so restocks neither deflate nor invert it. The rate is the ratio of
// total consumption to total days across those intervals.
func Predict[T Item[T]](sessions []Session[T], key string) Prediction {
	var (
		points []Point
		latest T
		found  bool
	)
	for _, session := range SortedByEnd(sessions) {
		item, ok := session.Items[key]
		if !ok {
			continue
		}
		points = append(points, Point{Date: session.EndDate, Quantity: item.Amount().InexactFloat64()})
		latest, found = item, true
	}

	prediction := Prediction{Key: key}
	if found {
		prediction.Name = latest.ItemName()
		prediction.Group = latest.ItemGroup()
		prediction.LatestLevel = latest.Gauge()
		prediction.LatestQuantity = points[len(points)-1].Quantity
	}
	if len(points) < 2 {
		prediction.InsufficientData = true
		return prediction
	}

	var totalConsumed float64
	var totalDays int
	for i := 1; i < len(points); i++ {
		days := daysBetween(points[i-1].Date, points[i].Date)
		consumed := points[i-1].Quantity - points[i].Quantity
		if days > 0 && consumed > 0 {
			totalConsumed += consumed
			totalDays += days
			prediction.Periods++
		}
	}

	if prediction.Periods == 0 {
		prediction.DaysLeft = math.Inf(1)
		prediction.Note = NoteNoConsumption
		return prediction
	}

	prediction.AvgDailyRate = totalConsumed / float64(totalDays)
	prediction.DaysLeft = prediction.LatestQuantity / prediction.AvgDailyRate
	return prediction
}

// PredictAll forecasts every item seen in the history. Items observed in
// fewer than two sessions are left out. The result is ordered by SortPredictions.
func PredictAll[T Item[T]](sessions []Session[T]) []Prediction {
	seen := make(map[string]struct{})
	var keys []string
	for _, session := range sessions {
		for key := range session.Items {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}

	predictions := make([]Prediction, 0, len(keys))
	for _, key := range keys {
		p := Predict(sessions, key)
		if p.InsufficientData {
			continue
		}
		predictions = append(predictions, p)
	}
	SortPredictions(predictions)
	return predictions
}

// SortPredictions orders by days left ascending with unbounded forecasts last;
// ties go to the item name, then the key.
func SortPredictions(predictions []Prediction) {
	sort.SliceStable(predictions, func(i, j int) bool {
		a, b := predictions[i], predictions[j]
		aInf, bInf := math.IsInf(a.DaysLeft, 1), math.IsInf(b.DaysLeft, 1)
		if aInf != bInf {
			return bInf
		}
		if !aInf && a.DaysLeft != b.DaysLeft {
			return a.DaysLeft < b.DaysLeft
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Key < b.Key
	})
}

// daysBetween counts whole calendar days from a to b, each read in its own
// location. A day only counts once b's wall clock reaches a's, so a 23 hour
// day across a daylight saving change still counts as one.
func daysBetween(a, b time.Time) int {
	if b.Before(a) {
		return -daysBetween(b, a)
	}

	days := civilDay(b) - civilDay(a)
	if days > 0 && timeOfDay(b) < timeOfDay(a) {
		days--
	}
	return days
}

// civilDay numbers the calendar date of t, ignoring its offset.
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func timeOfDay(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}

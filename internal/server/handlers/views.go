package handlers

import (
	"math"
	"time"

	"github.com/mamadbah2/barstock/internal/domain/models"
	"github.com/mamadbah2/barstock/internal/inventory"
)

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

type liquorItemView struct {
	Type          string  `json:"type"`
	Name          string  `json:"name"`
	VolumeMl      float64 `json:"volumeMl"`
	Percentage    float64 `json:"percentage"`
	RemainingFlOz float64 `json:"remainingFlOz"`
	Servings      int     `json:"servings"`
	Bottles       int     `json:"bottles,omitempty"`
}

func newLiquorItemView(item models.LiquorItem) liquorItemView {
	return liquorItemView{
		Type:          item.Type,
		Name:          item.Name,
		VolumeMl:      item.VolumeMl,
		Percentage:    round(item.Percentage, 1),
		RemainingFlOz: item.RemainingFlOz.Round(2).InexactFloat64(),
		Servings:      item.Servings,
		Bottles:       item.Bottles,
	}
}

func newLiquorItemViews(items []models.LiquorItem) []liquorItemView {
	views := make([]liquorItemView, 0, len(items))
	for _, item := range items {
		views = append(views, newLiquorItemView(item))
	}
	return views
}

type draftView[V any] struct {
	StartDate time.Time `json:"startDate"`
	Items     []V       `json:"items"`
}

type sessionView[V any] struct {
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Items     map[string]V `json:"items"`
}

func newSessionView[T inventory.Item[T], V any](session inventory.Session[T], view func(T) V) sessionView[V] {
	items := make(map[string]V, len(session.Items))
	for key, item := range session.Items {
		items[key] = view(item)
	}
	return sessionView[V]{StartDate: session.StartDate, EndDate: session.EndDate, Items: items}
}

func newHistoryView[T inventory.Item[T], V any](sessions []inventory.Session[T], view func(T) V) []sessionView[V] {
	views := make([]sessionView[V], 0, len(sessions))
	for _, session := range sessions {
		views = append(views, newSessionView(session, view))
	}
	return views
}

func identity[T any](v T) T { return v }

type alertView struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Servings   int      `json:"servings"`
	Percentage *float64 `json:"percentage,omitempty"`
	Reason     string   `json:"reason"`
}

func newAlertViews(alerts []inventory.Alert) []alertView {
	views := make([]alertView, 0, len(alerts))
	for _, a := range alerts {
		v := alertView{Key: a.Key, Name: a.Name, Group: a.Group, Servings: a.Servings, Reason: a.Reason}
		if a.HasPercentage {
			pct := round(a.Percentage, 1)
			v.Percentage = &pct
		}
		views = append(views, v)
	}
	return views
}

// predictionView renders unbounded forecasts as a null daysLeft.
type predictionView struct {
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	Group          string   `json:"group"`
	LatestQuantity float64  `json:"latestQuantity"`
	Servings       int      `json:"servings"`
	Percentage     *float64 `json:"percentage,omitempty"`
	AvgDailyRate   float64  `json:"avgDailyRate"`
	DaysLeft       *float64 `json:"daysLeft"`
	Periods        int      `json:"periods"`
	Note           string   `json:"note,omitempty"`
}

func newPredictionViews(predictions []inventory.Prediction) []predictionView {
	views := make([]predictionView, 0, len(predictions))
	for _, p := range predictions {
		v := predictionView{
			Key:            p.Key,
			Name:           p.Name,
			Group:          p.Group,
			LatestQuantity: round(p.LatestQuantity, 2),
			Servings:       p.LatestLevel.Servings,
			AvgDailyRate:   round(p.AvgDailyRate, 2),
			Periods:        p.Periods,
			Note:           p.Note,
		}
		if p.LatestLevel.HasPercentage {
			pct := round(p.LatestLevel.Percentage, 1)
			v.Percentage = &pct
		}
		if !math.IsInf(p.DaysLeft, 1) {
			days := round(p.DaysLeft, 1)
			v.DaysLeft = &days
		}
		views = append(views, v)
	}
	return views
}

type groupSummaryView struct {
	Type              string  `json:"type"`
	TotalServings     int     `json:"totalServings"`
	AveragePercentage float64 `json:"averagePercentage"`
	Bottles           int     `json:"bottles"`
}

type trendView struct {
	Date              time.Time `json:"date"`
	TotalServings     int       `json:"totalServings"`
	AveragePercentage float64   `json:"averagePercentage"`
}

type typeTotalView struct {
	Type          string  `json:"type"`
	RemainingFlOz float64 `json:"remainingFlOz"`
}

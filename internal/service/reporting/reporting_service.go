package reporting

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/barstock/internal/inventory"
	"github.com/mamadbah2/barstock/internal/service/tracking"
)

const (
	dateLayout     = "2006-01-02"
	digestForecast = 5
)

// Alerts holds the low-stock flags of the latest session of each domain.
type Alerts struct {
	Liquor []inventory.Alert
	Beer   []inventory.Alert
}

func (a Alerts) Count() int { return len(a.Liquor) + len(a.Beer) }

// Predictions holds the depletion forecasts of each domain.
type Predictions struct {
	Liquor []inventory.Prediction
	Beer   []inventory.Prediction
}

// Summary describes the latest liquor session per liquor type.
type Summary struct {
	Date   time.Time
	Groups []inventory.GroupSummary
}

// Service computes dashboards and digests from the tracked histories.
type Service struct {
	tracker    *tracking.Service
	thresholds inventory.Thresholds
	logger     *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(tracker *tracking.Service, thresholds inventory.Thresholds, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{tracker: tracker, thresholds: thresholds, logger: logger}
}

func (s *Service) Thresholds() inventory.Thresholds {
	return s.thresholds
}

// Alerts evaluates the most recently closed session of each domain.
func (s *Service) Alerts() Alerts {
	var alerts Alerts
	if latest, ok := s.tracker.Liquor.Latest(); ok {
		alerts.Liquor = inventory.Evaluate(latest, s.thresholds)
	}
	if latest, ok := s.tracker.Beer.Latest(); ok {
		alerts.Beer = inventory.Evaluate(latest, s.thresholds)
	}
	return alerts
}

func (s *Service) Predictions() Predictions {
	return Predictions{
		Liquor: inventory.PredictAll(s.tracker.Liquor.History()),
		Beer:   inventory.PredictAll(s.tracker.Beer.History()),
	}
}

// LiquorSummary groups the latest liquor session by type. It reports false
// when no session was closed yet.
func (s *Service) LiquorSummary() (Summary, bool) {
	latest, ok := s.tracker.Liquor.Latest()
	if !ok {
		return Summary{}, false
	}
	return Summary{Date: latest.EndDate, Groups: inventory.Summarize(latest)}, true
}

func (s *Service) LiquorTrends() []inventory.Trend {
	return inventory.Trends(s.tracker.Liquor.History())
}

func (s *Service) LiquorTypeTotals() []inventory.GroupTotal {
	return inventory.GroupTotals(s.tracker.Liquor.History())
}

func (s *Service) LiquorSeries(key string) []inventory.Point {
	return inventory.Series(s.tracker.Liquor.History(), key)
}

func (s *Service) BeerSeries(key string) []inventory.Point {
	return inventory.Series(s.tracker.Beer.History(), key)
}

// Observe logs the recomputed alerts whenever a session closes.
func (s *Service) Observe(event tracking.Event) {
	if event.Kind != tracking.EventSessionClosed {
		return
	}

	alerts := s.Alerts()
	flagged := alerts.Liquor
	if event.Domain == tracking.DomainBeer {
		flagged = alerts.Beer
	}
	if len(flagged) == 0 {
		s.logger.Info("session closed without low stock", zap.String("domain", event.Domain))
		return
	}

	keys := make([]string, 0, len(flagged))
	for _, alert := range flagged {
		keys = append(keys, alert.Key)
	}
	s.logger.Warn("low stock after session close",
		zap.String("domain", event.Domain),
		zap.Int("count", len(flagged)),
		zap.Strings("keys", keys),
	)
}

// Digest renders the low-stock alerts and the items expected to run out
// first as a plain text message.
func (s *Service) Digest(now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stock digest %s\n", now.Format(dateLayout))

	alerts := s.Alerts()
	if alerts.Count() == 0 {
		b.WriteString("No low-stock items.\n")
	} else {
		fmt.Fprintf(&b, "Low stock (%d):\n", alerts.Count())
		for _, alert := range alerts.Liquor {
			fmt.Fprintf(&b, "- %s (%s): %d servings, %.1f%% [%s]\n", alert.Name, alert.Group, alert.Servings, alert.Percentage, alert.Reason)
		}
		for _, alert := range alerts.Beer {
			fmt.Fprintf(&b, "- %s (%s): %d units [%s]\n", alert.Name, alert.Group, alert.Servings, alert.Reason)
		}
	}

	predictions := s.Predictions()
	combined := append(append([]inventory.Prediction(nil), predictions.Liquor...), predictions.Beer...)
	inventory.SortPredictions(combined)

	var soon []inventory.Prediction
	for _, p := range combined {
		if math.IsInf(p.DaysLeft, 1) {
			break
		}
		soon = append(soon, p)
		if len(soon) == digestForecast {
			break
		}
	}
	switch {
	case len(combined) == 0:
		b.WriteString("Not enough history to forecast depletion.")
		return b.String()
	case len(soon) == 0:
		b.WriteString("No consumption observed between sessions.")
		return b.String()
	}

	b.WriteString("Running out first:")
	for _, p := range soon {
		fmt.Fprintf(&b, "\n- %s (%s): %.1f days left", p.Name, p.Group, p.DaysLeft)
	}
	return b.String()
}

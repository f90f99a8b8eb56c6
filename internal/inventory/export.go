package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row is one item of one session in flat, tabular form.
type Row struct {
	SessionStart  time.Time
	SessionEnd    time.Time
	Key           string
	Label         string
	Group         string
	Quantity      decimal.Decimal
	Servings      int
	VolumeMl      float64
	Percentage    float64
	HasPercentage bool
}

// Flatten turns a history into rows: sessions in closing order, items by key.
func Flatten[T Item[T]](sessions []Session[T]) []Row {
	var rows []Row
	for _, session := range sessions {
		for _, key := range session.Keys() {
			item := session.Items[key]
			level := item.Gauge()
			rows = append(rows, Row{
				SessionStart:  session.StartDate,
				SessionEnd:    session.EndDate,
				Key:           key,
				Label:         item.ItemName(),
				Group:         item.ItemGroup(),
				Quantity:      item.Amount(),
				Servings:      level.Servings,
				VolumeMl:      level.VolumeMl,
				Percentage:    level.Percentage,
				HasPercentage: level.HasPercentage,
			})
		}
	}
	return rows
}

// Totals is the summed quantity and servings of one item in one session.
type Totals struct {
	Quantity decimal.Decimal
	Servings int
}

// RowSession groups rows that share a session start and end.
type RowSession struct {
	StartDate time.Time
	EndDate   time.Time
	Totals    map[string]Totals
}

// Regroup rebuilds per-session, per-item totals from flat rows, e.g. rows read
// back from an exported sheet. Sessions keep the order of their first row.
func Regroup(rows []Row) []RowSession {
	type span struct{ start, end int64 }

	var sessions []RowSession
	index := make(map[span]int)
	for _, row := range rows {
		id := span{row.SessionStart.UnixNano(), row.SessionEnd.UnixNano()}
		pos, ok := index[id]
		if !ok {
			pos = len(sessions)
			index[id] = pos
			sessions = append(sessions, RowSession{
				StartDate: row.SessionStart,
				EndDate:   row.SessionEnd,
				Totals:    make(map[string]Totals),
			})
		}

		key := row.Key
		if key == "" {
			key = row.Group + "_" + row.Label
		}
		current := sessions[pos].Totals[key]
		current.Quantity = current.Quantity.Add(row.Quantity)
		current.Servings += row.Servings
		sessions[pos].Totals[key] = current
	}
	return sessions
}

// SessionTotals is the Totals view of a closed session, comparable with Regroup output.
func SessionTotals[T Item[T]](session Session[T]) map[string]Totals {
	totals := make(map[string]Totals, len(session.Items))
	for key, item := range session.Items {
		totals[key] = Totals{Quantity: item.Amount(), Servings: item.Gauge().Servings}
	}
	return totals
}

package export

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/barstock/internal/inventory"
)

const timeLayout = time.RFC3339Nano

// layout describes how one domain's rows are laid out in CSV and sheets.
type layout struct {
	sheetRange string
	header     []string
	format     func(inventory.Row) []string
	parse      func([]string) (inventory.Row, error)
}

var liquorLayout = layout{
	sheetRange: "Liquor!A:I",
	header:     []string{"Start", "End", "Key", "Type", "Name", "Volume (ml)", "% Remaining", "Fl Oz Remaining", "Servings"},
	format: func(r inventory.Row) []string {
		return []string{
			r.SessionStart.Format(timeLayout),
			r.SessionEnd.Format(timeLayout),
			r.Key,
			r.Group,
			r.Label,
			strconv.FormatFloat(r.VolumeMl, 'f', -1, 64),
			strconv.FormatFloat(math.Round(r.Percentage*10)/10, 'f', 1, 64),
			r.Quantity.StringFixed(2),
			strconv.Itoa(r.Servings),
		}
	},
	parse: func(cells []string) (inventory.Row, error) {
		if len(cells) < 9 {
			return inventory.Row{}, fmt.Errorf("expected 9 cells, got %d", len(cells))
		}
		row, err := parseSpan(cells)
		if err != nil {
			return row, err
		}
		row.Key, row.Group, row.Label = cells[2], cells[3], cells[4]
		if row.VolumeMl, err = strconv.ParseFloat(cells[5], 64); err != nil {
			return row, fmt.Errorf("volume: %w", err)
		}
		if row.Percentage, err = strconv.ParseFloat(cells[6], 64); err != nil {
			return row, fmt.Errorf("percentage: %w", err)
		}
		row.HasPercentage = true
		if row.Quantity, err = decimal.NewFromString(cells[7]); err != nil {
			return row, fmt.Errorf("fl oz: %w", err)
		}
		if row.Servings, err = strconv.Atoi(cells[8]); err != nil {
			return row, fmt.Errorf("servings: %w", err)
		}
		return row, nil
	},
}

var beerLayout = layout{
	sheetRange: "Beer!A:F",
	header:     []string{"Start", "End", "Key", "Beer", "Category", "Count"},
	format: func(r inventory.Row) []string {
		return []string{
			r.SessionStart.Format(timeLayout),
			r.SessionEnd.Format(timeLayout),
			r.Key,
			r.Label,
			r.Group,
			strconv.Itoa(r.Servings),
		}
	},
	parse: func(cells []string) (inventory.Row, error) {
		if len(cells) < 6 {
			return inventory.Row{}, fmt.Errorf("expected 6 cells, got %d", len(cells))
		}
		row, err := parseSpan(cells)
		if err != nil {
			return row, err
		}
		row.Key, row.Label, row.Group = cells[2], cells[3], cells[4]
		count, err := strconv.Atoi(cells[5])
		if err != nil {
			return row, fmt.Errorf("count: %w", err)
		}
		row.Servings = count
		row.Quantity = decimal.NewFromInt(int64(count))
		return row, nil
	},
}

func parseSpan(cells []string) (inventory.Row, error) {
	var row inventory.Row
	var err error
	if row.SessionStart, err = time.Parse(timeLayout, cells[0]); err != nil {
		return row, fmt.Errorf("start: %w", err)
	}
	if row.SessionEnd, err = time.Parse(timeLayout, cells[1]); err != nil {
		return row, fmt.Errorf("end: %w", err)
	}
	return row, nil
}

// roundTotals applies the presentation rounding of the layouts to totals
// computed from a session.
func roundTotals(totals map[string]inventory.Totals) map[string]inventory.Totals {
	rounded := make(map[string]inventory.Totals, len(totals))
	for key, t := range totals {
		rounded[key] = inventory.Totals{Quantity: t.Quantity.Round(2), Servings: t.Servings}
	}
	return rounded
}

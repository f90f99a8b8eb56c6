// Package export renders the closed histories as CSV and mirrors them into
// Google Sheets.
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/barstock/internal/inventory"
	"github.com/mamadbah2/barstock/internal/repository/sheets"
	"github.com/mamadbah2/barstock/internal/service/tracking"
)

var (
	// ErrUnknownDomain is returned for a domain other than liquor or beer.
	ErrUnknownDomain = errors.New("unknown domain")
	// ErrSheetsDisabled is returned when no spreadsheet is configured.
	ErrSheetsDisabled = errors.New("sheets export not configured")
)

// Result reports one domain's sheet export.
type Result struct {
	Domain     string   `json:"domain"`
	Range      string   `json:"range"`
	Rows       int      `json:"rows"`
	Sessions   int      `json:"sessions"`
	Verified   bool     `json:"verified"`
	Mismatches []string `json:"mismatches,omitempty"`
}

type Service struct {
	tracker *tracking.Service
	sheets  sheets.Repository
	logger  *zap.Logger
}

// NewService wires the exporter. repo may be nil, which disables Sheets.
func NewService(tracker *tracking.Service, repo sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{tracker: tracker, sheets: repo, logger: logger}
}

// WriteCSV writes a header and one line per item of every closed session.
func (s *Service) WriteCSV(w io.Writer, domain string) error {
	l, rows, err := s.rows(domain)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(l.header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(l.format(row)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportSheets replaces both sheets with the current histories and reads
// them back to confirm the per-session totals survived the trip.
func (s *Service) ExportSheets(ctx context.Context) ([]Result, error) {
	if s.sheets == nil {
		return nil, ErrSheetsDisabled
	}

	results := make([]Result, 0, 2)
	for _, domain := range []string{tracking.DomainLiquor, tracking.DomainBeer} {
		result, err := s.exportDomain(ctx, domain)
		if err != nil {
			return results, fmt.Errorf("export %s: %w", domain, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Service) exportDomain(ctx context.Context, domain string) (Result, error) {
	l, rows, err := s.rows(domain)
	if err != nil {
		return Result{}, err
	}

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, toCells(l.header))
	for _, row := range rows {
		values = append(values, toCells(l.format(row)))
	}

	if err := s.sheets.ClearRange(ctx, l.sheetRange); err != nil {
		return Result{}, err
	}
	if err := s.sheets.WriteRows(ctx, l.sheetRange, values); err != nil {
		return Result{}, err
	}

	expected := s.expectedTotals(domain)
	result := Result{Domain: domain, Range: l.sheetRange, Rows: len(rows), Sessions: len(expected)}

	stored, err := s.sheets.ReadRange(ctx, l.sheetRange)
	if err != nil {
		return result, err
	}
	result.Mismatches = compare(expected, inventory.Regroup(s.parseRows(l, stored)))
	result.Verified = len(result.Mismatches) == 0

	logFn := s.logger.Info
	if !result.Verified {
		logFn = s.logger.Warn
	}
	logFn("history exported to sheets",
		zap.String("domain", domain),
		zap.Int("rows", result.Rows),
		zap.Bool("verified", result.Verified),
	)
	return result, nil
}

func (s *Service) rows(domain string) (layout, []inventory.Row, error) {
	switch domain {
	case tracking.DomainLiquor:
		return liquorLayout, inventory.Flatten(s.tracker.Liquor.History()), nil
	case tracking.DomainBeer:
		return beerLayout, inventory.Flatten(s.tracker.Beer.History()), nil
	default:
		return layout{}, nil, fmt.Errorf("%q: %w", domain, ErrUnknownDomain)
	}
}

type sessionSpan struct {
	start, end int64
}

func spanOf(start, end time.Time) sessionSpan {
	return sessionSpan{start.UnixNano(), end.UnixNano()}
}

func (s sessionSpan) String() string {
	return time.Unix(0, s.end).UTC().Format(time.RFC3339)
}

func (s *Service) expectedTotals(domain string) map[sessionSpan]map[string]inventory.Totals {
	out := make(map[sessionSpan]map[string]inventory.Totals)
	switch domain {
	case tracking.DomainLiquor:
		for _, session := range s.tracker.Liquor.History() {
			out[spanOf(session.StartDate, session.EndDate)] = roundTotals(inventory.SessionTotals(session))
		}
	case tracking.DomainBeer:
		for _, session := range s.tracker.Beer.History() {
			out[spanOf(session.StartDate, session.EndDate)] = roundTotals(inventory.SessionTotals(session))
		}
	}
	return out
}

// parseRows skips the header and any row that does not parse.
func (s *Service) parseRows(l layout, values [][]interface{}) []inventory.Row {
	rows := make([]inventory.Row, 0, len(values))
	for i, value := range values {
		cells := make([]string, len(value))
		for j, cell := range value {
			cells[j] = fmt.Sprint(cell)
		}
		if i == 0 && len(cells) > 0 && cells[0] == l.header[0] {
			continue
		}
		row, err := l.parse(cells)
		if err != nil {
			s.logger.Debug("skip unreadable sheet row", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func compare(expected map[sessionSpan]map[string]inventory.Totals, got []inventory.RowSession) []string {
	var mismatches []string
	seen := make(map[sessionSpan]bool, len(got))
	for _, session := range got {
		span := spanOf(session.StartDate, session.EndDate)
		seen[span] = true
		want, ok := expected[span]
		if !ok {
			mismatches = append(mismatches, fmt.Sprintf("%s: unexpected session", span))
			continue
		}
		for _, key := range unionKeys(want, session.Totals) {
			w, g := want[key], session.Totals[key]
			if !w.Quantity.Equal(g.Quantity) || w.Servings != g.Servings {
				mismatches = append(mismatches, fmt.Sprintf("%s: %s expected %s/%d, read %s/%d",
					span, key, w.Quantity, w.Servings, g.Quantity, g.Servings))
			}
		}
	}
	for span := range expected {
		if !seen[span] {
			mismatches = append(mismatches, fmt.Sprintf("%s: session missing", span))
		}
	}
	sort.Strings(mismatches)
	return mismatches
}

func unionKeys(a, b map[string]inventory.Totals) []string {
	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	for key := range b {
		if _, ok := a[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

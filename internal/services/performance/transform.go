// Package performance turns monthly portfolio snapshots into the ordered,
// derived views consumed by the dashboard chart and history table.
//
// The transform is pure: it never mutates its input, holds no state between
// calls and never fails. Malformed dates, missing year anchors and zero
// denominators degrade to placeholder or zero values.
package performance

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/folio/internal/models"
)

// DefaultDomainPadding widens the chart Y range by 10% of the value range on
// each side.
const DefaultDomainPadding = 0.10

// Options configures a Transformer.
type Options struct {
	Currency      string  // ISO 4217 display currency, default USD
	DomainPadding float64 // fraction of the value range, default 0.10
}

// Transformer runs the performance transform with fixed formatting options.
// A Transformer is immutable and safe for concurrent use.
type Transformer struct {
	format  Formatter
	padding decimal.Decimal
}

// NewTransformer creates a Transformer.
func NewTransformer(opts Options) *Transformer {
	padding := opts.DomainPadding
	if padding <= 0 {
		padding = DefaultDomainPadding
	}
	return &Transformer{
		format:  NewFormatter(opts.Currency),
		padding: decimal.NewFromFloat(padding),
	}
}

// Transform runs the transform with USD formatting and default padding.
func Transform(snapshots []models.Snapshot) *models.PerformanceReport {
	return NewTransformer(Options{}).Transform(snapshots)
}

// entry is a snapshot with its parsed month. Entries with an unparseable date
// have valid=false and sort after every dated entry.
type entry struct {
	models.Snapshot
	at    time.Time
	valid bool
}

// yearKey groups entries by calendar year; undated entries share one group.
func (e entry) yearKey() int {
	if !e.valid {
		return -1
	}
	return e.at.Year()
}

// Transform derives the ascending chart series and the descending history
// table from snapshots given in any order.
func (t *Transformer) Transform(snapshots []models.Snapshot) *models.PerformanceReport {
	report := &models.PerformanceReport{
		Currency: t.format.Currency(),
		Chart:    []models.ChartPoint{},
		Table:    []models.PerformanceRecord{},
	}
	if len(snapshots) == 0 {
		return report
	}

	asc := sortAscending(snapshots)
	anchors := yearAnchors(snapshots)
	n := len(asc)

	// The table is the exact reverse of asc: row i is asc[n-1-i] and its
	// previous month is asc[n-2-i].
	report.Table = make([]models.PerformanceRecord, n)
	for i := range n {
		cur := asc[n-1-i]
		rec := t.record(cur)

		if i+1 < n {
			prev := asc[n-2-i]
			rec.MoMGain = cur.Value.Sub(prev.Value)
			rec.MoMReturn = percentChange(rec.MoMGain, prev.Value)
			rec.MoMGap = cur.valid && prev.valid && monthIndex(cur.at)-monthIndex(prev.at) != 1
			rec.IsYearBoundary = cur.yearKey() != prev.yearKey()
		}

		if cur.valid {
			if anchor, ok := anchors[yearStart(cur.at)]; ok {
				rec.YTDGain = cur.Value.Sub(anchor)
				rec.YTDReturn = percentChange(rec.YTDGain, anchor)
			}
		}

		rec.FormattedMoMGain = t.format.Money(rec.MoMGain)
		rec.FormattedMoMReturn = FormatPercent(rec.MoMReturn)
		rec.FormattedYTDGain = t.format.Money(rec.YTDGain)
		rec.FormattedYTDReturn = FormatPercent(rec.YTDReturn)
		report.Table[i] = rec
	}

	report.Chart = make([]models.ChartPoint, n)
	for j, e := range asc {
		report.Chart[j] = models.ChartPoint{
			Date:           e.Date,
			Value:          e.Value,
			FormattedDate:  report.Table[n-1-j].FormattedDate,
			FormattedValue: t.format.MoneyWhole(e.Value),
			YTDReturn:      report.Table[n-1-j].YTDReturn,
		}
	}

	report.Domain = t.domain(asc)
	report.Summary = summarize(report.Table)
	return report
}

func (t *Transformer) record(e entry) models.PerformanceRecord {
	label := InvalidDateLabel
	if e.valid {
		label = e.at.Format("Jan 2006")
	}
	return models.PerformanceRecord{
		Date:             e.Date,
		Value:            e.Value,
		NetFlow:          e.NetFlow,
		FormattedDate:    label,
		FormattedValue:   t.format.Money(e.Value),
		FormattedNetFlow: t.format.Money(e.NetFlow),
	}
}

// sortAscending returns a private copy ordered oldest first. Equal dates keep
// their input order; undated entries go last.
func sortAscending(snapshots []models.Snapshot) []entry {
	entries := make([]entry, len(snapshots))
	for i, s := range snapshots {
		at, ok := parseSnapshotDate(s.Date)
		entries[i] = entry{Snapshot: s, at: at, valid: ok}
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		switch {
		case a.valid && b.valid:
			return a.at.Compare(b.at)
		case a.valid:
			return -1
		case b.valid:
			return 1
		}
		return 0
	})
	return entries
}

// yearAnchors indexes the raw input by date string so the January 1st lookup
// is an exact string match. The first occurrence of a date wins.
func yearAnchors(snapshots []models.Snapshot) map[string]decimal.Decimal {
	idx := make(map[string]decimal.Decimal, len(snapshots))
	for _, s := range snapshots {
		if _, seen := idx[s.Date]; !seen {
			idx[s.Date] = s.Value
		}
	}
	return idx
}

// percentChange returns gain/base*100, or 0 when base is zero.
func percentChange(gain, base decimal.Decimal) float64 {
	if base.IsZero() {
		return 0
	}
	return gain.Div(base).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// domain pads the min/max of all values by padding*(max-min) on each side.
func (t *Transformer) domain(entries []entry) models.ChartDomain {
	lo, hi := entries[0].Value, entries[0].Value
	for _, e := range entries[1:] {
		lo = decimal.Min(lo, e.Value)
		hi = decimal.Max(hi, e.Value)
	}
	pad := hi.Sub(lo).Mul(t.padding)
	return models.ChartDomain{Min: lo.Sub(pad), Max: hi.Add(pad)}
}

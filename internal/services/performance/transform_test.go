package performance

import (
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/models"
)

func snap(date string, value int64) models.Snapshot {
	return models.Snapshot{Date: date, Value: decimal.NewFromInt(value)}
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	msg := fmt.Sprintf("want %d, got %s", want, got.String())
	if len(msgAndArgs) > 0 {
		msg += fmt.Sprintf(" (%v)", msgAndArgs...)
	}
	assert.True(t, got.Equal(decimal.NewFromInt(want)), msg)
}

func tableDates(r *models.PerformanceReport) []string {
	out := make([]string, len(r.Table))
	for i, rec := range r.Table {
		out[i] = rec.Date
	}
	return out
}

func chartDates(r *models.PerformanceReport) []string {
	out := make([]string, len(r.Chart))
	for i, p := range r.Chart {
		out[i] = p.Date
	}
	return out
}

func TestTransformEmpty(t *testing.T) {
	r := Transform(nil)

	require.NotNil(t, r)
	assert.Empty(t, r.Chart)
	assert.Empty(t, r.Table)
	assert.NotNil(t, r.Chart)
	assert.NotNil(t, r.Table)
	assert.True(t, r.Domain.Min.IsZero())
	assert.True(t, r.Domain.Max.IsZero())
	assert.Equal(t, 0, r.Summary.Months)
	assert.Equal(t, "USD", r.Currency)
}

func TestTransformMonthOverMonth(t *testing.T) {
	r := Transform([]models.Snapshot{
		snap("2023-01-01", 1000),
		snap("2023-02-01", 1100),
	})

	require.Len(t, r.Table, 2)
	feb := r.Table[0]
	assert.Equal(t, "2023-02-01", feb.Date)
	assert.Equal(t, "Feb 2023", feb.FormattedDate)
	assertDecimal(t, 100, feb.MoMGain)
	assert.InDelta(t, 10.0, feb.MoMReturn, 1e-9)
	assert.Equal(t, "$100", feb.FormattedMoMGain)
	assert.Equal(t, "+10.00%", feb.FormattedMoMReturn)
	assert.Equal(t, "$1,100", feb.FormattedValue)

	jan := r.Table[1]
	assertDecimal(t, 0, jan.MoMGain)
	assert.Equal(t, 0.0, jan.MoMReturn)
	assert.Equal(t, "$0", jan.FormattedMoMGain)
	assert.Equal(t, "+0.00%", jan.FormattedMoMReturn)
}

func TestTransformOldestHasZeroMoM(t *testing.T) {
	r := Transform([]models.Snapshot{
		snap("2023-05-01", 900),
		snap("2023-03-01", 500),
		snap("2023-04-01", 700),
	})

	oldest := r.Table[len(r.Table)-1]
	assert.Equal(t, "2023-03-01", oldest.Date)
	assertDecimal(t, 0, oldest.MoMGain)
	assert.Equal(t, 0.0, oldest.MoMReturn)
	assert.False(t, oldest.IsYearBoundary)
}

func TestTransformYearToDate(t *testing.T) {
	r := Transform([]models.Snapshot{
		snap("2024-03-01", 1200),
		snap("2024-01-01", 1000),
		snap("2024-02-01", 900),
	})

	require.Len(t, r.Table, 3)
	mar := r.Table[0]
	assertDecimal(t, 200, mar.YTDGain)
	assert.InDelta(t, 20.0, mar.YTDReturn, 1e-9)
	assert.Equal(t, "$200", mar.FormattedYTDGain)
	assert.Equal(t, "+20.00%", mar.FormattedYTDReturn)

	feb := r.Table[1]
	assertDecimal(t, -100, feb.YTDGain)
	assert.InDelta(t, -10.0, feb.YTDReturn, 1e-9)
	assert.Equal(t, "-$100", feb.FormattedYTDGain)
	assert.Equal(t, "-10.00%", feb.FormattedYTDReturn)

	jan := r.Table[2]
	assertDecimal(t, 0, jan.YTDGain)
}

func TestTransformYearToDateWithoutAnchor(t *testing.T) {
	r := Transform([]models.Snapshot{
		snap("2023-12-31", 500),
		snap("2024-01-31", 1000),
		snap("2024-02-29", 1500),
	})

	for _, rec := range r.Table {
		assertDecimal(t, 0, rec.YTDGain, rec.Date)
		assert.Equal(t, 0.0, rec.YTDReturn, rec.Date)
	}
	for _, p := range r.Chart {
		assert.Equal(t, 0.0, p.YTDReturn, p.Date)
	}
}

func TestTransformAnchorIsExactStringMatch(t *testing.T) {
	// An RFC 3339 January 1st is a different string than the anchor key.
	r := Transform([]models.Snapshot{
		snap("2024-01-01T00:00:00Z", 1000),
		snap("2024-02-01", 1100),
	})

	assertDecimal(t, 0, r.Table[0].YTDGain)
	assert.Equal(t, "Jan 2024", r.Table[1].FormattedDate)
}

func TestTransformZeroDenominators(t *testing.T) {
	r := Transform([]models.Snapshot{
		snap("2023-01-01", 0),
		snap("2023-02-01", 250),
	})

	feb := r.Table[0]
	assertDecimal(t, 250, feb.MoMGain)
	assert.Equal(t, 0.0, feb.MoMReturn)
	assertDecimal(t, 250, feb.YTDGain)
	assert.Equal(t, 0.0, feb.YTDReturn)
	assert.Equal(t, "+0.00%", feb.FormattedMoMReturn)
}

func TestTransformYearBoundary(t *testing.T) {
	r := Transform([]models.Snapshot{
		snap("2022-11-01", 100),
		snap("2023-02-01", 130),
		snap("2022-12-01", 110),
	})

	require.Equal(t, []string{"2023-02-01", "2022-12-01", "2022-11-01"}, tableDates(r))
	assert.True(t, r.Table[0].IsYearBoundary)
	assert.False(t, r.Table[1].IsYearBoundary)
	assert.False(t, r.Table[2].IsYearBoundary)
}

func TestTransformMonthGap(t *testing.T) {
	r := Transform([]models.Snapshot{
		snap("2023-01-01", 100),
		snap("2023-02-01", 110),
		snap("2023-05-01", 140),
	})

	assert.True(t, r.Table[0].MoMGap, "May follows February")
	assertDecimal(t, 30, r.Table[0].MoMGain, "MoM stays positional across the gap")
	assert.False(t, r.Table[1].MoMGap)
	assert.False(t, r.Table[2].MoMGap)
}

func TestTransformInvalidDate(t *testing.T) {
	var r *models.PerformanceReport
	require.NotPanics(t, func() {
		r = Transform([]models.Snapshot{
			snap("2023-02-01", 20),
			snap("not-a-date", 5),
			snap("2023-01-01", 10),
		})
	})

	assert.Equal(t, []string{"2023-01-01", "2023-02-01", "not-a-date"}, chartDates(r))
	assert.Equal(t, []string{"not-a-date", "2023-02-01", "2023-01-01"}, tableDates(r))

	bad := r.Table[0]
	assert.Equal(t, InvalidDateLabel, bad.FormattedDate)
	assert.Equal(t, "$5", bad.FormattedValue)
	assertDecimal(t, 0, bad.YTDGain)
	assert.True(t, bad.IsYearBoundary)
	assertDecimal(t, -15, bad.MoMGain)
	assert.False(t, bad.MoMGap)
	assert.Equal(t, InvalidDateLabel, r.Chart[2].FormattedDate)

	assert.Equal(t, "2023-02-01", r.Summary.LatestDate)
}

func TestTransformOnlyInvalidDates(t *testing.T) {
	r := Transform([]models.Snapshot{snap("garbage", 1), snap("", 2)})

	require.Len(t, r.Table, 2)
	assert.Equal(t, []string{"", "garbage"}, tableDates(r))
	assert.False(t, r.Table[0].IsYearBoundary)
	assert.Equal(t, "", r.Summary.LatestDate)
}

func TestTransformOrderingInverse(t *testing.T) {
	input := []models.Snapshot{
		snap("2021-06-01", 6),
		snap("2020-01-01", 1),
		snap("bogus", 0),
		snap("2021-01-01", 5),
		snap("2020-07-01", 3),
	}
	r := Transform(input)

	asc := chartDates(r)
	desc := tableDates(r)
	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestTransformStableTies(t *testing.T) {
	first := models.Snapshot{Date: "2023-01-01", Value: decimal.NewFromInt(1)}
	second := models.Snapshot{Date: "2023-01-01", Value: decimal.NewFromInt(2)}
	r := Transform([]models.Snapshot{second, snap("2022-12-01", 0), first})

	assertDecimal(t, 0, r.Chart[0].Value)
	assertDecimal(t, 2, r.Chart[1].Value, "input order kept among equal dates")
	assertDecimal(t, 1, r.Chart[2].Value)

	// The anchor lookup takes the first matching row of the raw input.
	assertDecimal(t, -1, r.Table[0].YTDGain)
}

func TestTransformDoesNotMutateInput(t *testing.T) {
	input := []models.Snapshot{
		snap("2023-03-01", 3),
		snap("2023-01-01", 1),
		snap("2023-02-01", 2),
	}
	before := append([]models.Snapshot(nil), input...)

	Transform(input)

	assert.Equal(t, before, input)
}

func TestTransformIdempotent(t *testing.T) {
	a := []models.Snapshot{snap("2023-01-01", 1000), snap("2023-02-01", 1100), snap("2023-03-01", 1050)}
	b := []models.Snapshot{a[2], a[0], a[1]}

	first := Transform(a)
	second := Transform(a)
	shuffled := Transform(b)

	assert.Equal(t, first, second)
	assert.Equal(t, first, shuffled)
}

func TestTransformDomainPadding(t *testing.T) {
	r := Transform([]models.Snapshot{
		snap("2023-01-01", 100),
		snap("2023-02-01", 200),
	})
	assertDecimal(t, 90, r.Domain.Min)
	assertDecimal(t, 210, r.Domain.Max)

	flat := Transform([]models.Snapshot{snap("2023-01-01", 50), snap("2023-02-01", 50)})
	assertDecimal(t, 50, flat.Domain.Min)
	assertDecimal(t, 50, flat.Domain.Max)

	wide := NewTransformer(Options{DomainPadding: 0.5}).Transform([]models.Snapshot{
		snap("2023-01-01", 100),
		snap("2023-02-01", 200),
	})
	assertDecimal(t, 50, wide.Domain.Min)
	assertDecimal(t, 250, wide.Domain.Max)
}

func TestTransformChartPoints(t *testing.T) {
	r := Transform([]models.Snapshot{
		snap("2024-01-01", 1000),
		{Date: "2024-02-01", Value: decimal.RequireFromString("1234.56")},
	})

	require.Len(t, r.Chart, 2)
	assert.Equal(t, "Jan 2024", r.Chart[0].FormattedDate)
	assert.Equal(t, "$1,000", r.Chart[0].FormattedValue)
	assert.Equal(t, "$1,235", r.Chart[1].FormattedValue)
	assert.InDelta(t, 23.456, r.Chart[1].YTDReturn, 1e-9)
	assert.Equal(t, "$1,234.56", r.Table[0].FormattedValue)
}

func TestTransformSummary(t *testing.T) {
	r := Transform([]models.Snapshot{
		{Date: "2023-01-01", Value: decimal.NewFromInt(1000), NetFlow: decimal.NewFromInt(1000)},
		{Date: "2023-02-01", Value: decimal.NewFromInt(1100), NetFlow: decimal.NewFromInt(50)},
		{Date: "2023-03-01", Value: decimal.NewFromInt(1210), NetFlow: decimal.NewFromInt(-25)},
	})

	s := r.Summary
	assert.Equal(t, 3, s.Months)
	assert.Equal(t, "2023-03-01", s.LatestDate)
	assertDecimal(t, 1210, s.LatestValue)
	assertDecimal(t, 210, s.YTDGain)
	assert.InDelta(t, 21.0, s.YTDReturn, 1e-9)
	assertDecimal(t, 1025, s.TotalNetFlow)
	assert.InDelta(t, 10.0, s.MeanMonthlyReturn, 1e-9)
	assert.InDelta(t, 0.0, s.MonthlyReturnStdev, 1e-9)
}

func TestTransformSummarySingleMonth(t *testing.T) {
	r := Transform([]models.Snapshot{snap("2023-01-01", 10)})

	assert.Equal(t, 1, r.Summary.Months)
	assert.Equal(t, 0.0, r.Summary.MeanMonthlyReturn)
	assert.Equal(t, 0.0, r.Summary.MonthlyReturnStdev)
}

func TestTransformerCurrency(t *testing.T) {
	r := NewTransformer(Options{Currency: "eur"}).Transform([]models.Snapshot{
		snap("2023-01-01", 1000),
		snap("2023-02-01", 900),
	})

	assert.Equal(t, "EUR", r.Currency)
	assert.Equal(t, "€900", r.Table[0].FormattedValue)
	assert.Equal(t, "-€100", r.Table[0].FormattedMoMGain)
}

func TestTransformConcurrentCallers(t *testing.T) {
	tr := NewTransformer(Options{})
	var wg sync.WaitGroup
	results := make([]*models.PerformanceReport, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := make([]models.Snapshot, 0, 12)
			for m := 12; m >= 1; m-- {
				input = append(input, snap(fmt.Sprintf("2023-%02d-01", m), int64(m*100+i)))
			}
			results[i] = tr.Transform(input)
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		require.Len(t, r.Table, 12)
		assertDecimal(t, int64(1200+i), r.Table[0].Value)
		assertDecimal(t, int64(1100), r.Table[0].YTDGain)
	}
}

package performance

import (
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/bobmcallan/folio/internal/models"
)

// summarize computes the headline metrics from the descending table.
// The latest month is the newest row with a parseable date.
func summarize(table []models.PerformanceRecord) models.PerformanceSummary {
	sum := models.PerformanceSummary{Months: len(table)}
	if len(table) == 0 {
		return sum
	}

	latest := table[0]
	for _, r := range table {
		if r.FormattedDate != InvalidDateLabel {
			latest = r
			break
		}
	}
	sum.LatestDate = latest.Date
	sum.LatestValue = latest.Value
	sum.YTDGain = latest.YTDGain
	sum.YTDReturn = latest.YTDReturn

	total := decimal.Zero
	for _, r := range table {
		total = total.Add(r.NetFlow)
	}
	sum.TotalNetFlow = total

	// The oldest row has no predecessor; its zero MoM return is not a sample.
	returns := make([]float64, 0, len(table)-1)
	for _, r := range table[:len(table)-1] {
		returns = append(returns, r.MoMReturn)
	}
	if len(returns) > 0 {
		sum.MeanMonthlyReturn = stat.Mean(returns, nil)
	}
	if len(returns) > 1 {
		sum.MonthlyReturnStdev = stat.StdDev(returns, nil)
	}
	return sum
}

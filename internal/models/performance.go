package models

import "github.com/shopspring/decimal"

// ChartPoint is one entry of the ascending (oldest first) chart series.
type ChartPoint struct {
	Date           string          `json:"date"`
	Value          decimal.Decimal `json:"value"`
	FormattedDate  string          `json:"formatted_date"`
	FormattedValue string          `json:"formatted_value"` // whole currency units
	YTDReturn      float64         `json:"ytd_return"`      // hidden overlay series
}

// PerformanceRecord is one row of the descending (newest first) history table.
type PerformanceRecord struct {
	Date    string          `json:"date"`
	Value   decimal.Decimal `json:"value"`
	NetFlow decimal.Decimal `json:"net_flow"`

	FormattedDate    string `json:"formatted_date"`
	FormattedValue   string `json:"formatted_value"`
	FormattedNetFlow string `json:"formatted_net_flow"`

	MoMGain   decimal.Decimal `json:"mom_gain"`
	MoMReturn float64         `json:"mom_return"` // percent
	YTDGain   decimal.Decimal `json:"ytd_gain"`
	YTDReturn float64         `json:"ytd_return"` // percent

	FormattedMoMGain   string `json:"formatted_mom_gain"`
	FormattedMoMReturn string `json:"formatted_mom_return"`
	FormattedYTDGain   string `json:"formatted_ytd_gain"`
	FormattedYTDReturn string `json:"formatted_ytd_return"`

	// IsYearBoundary is set when the next (older) row belongs to another
	// calendar year. Rendering hint only.
	IsYearBoundary bool `json:"is_year_boundary"`
	// MoMGap is set when the previous row is not exactly one calendar month
	// earlier, i.e. the MoM delta spans missing months. Rendering hint only.
	MoMGap bool `json:"mom_gap,omitempty"`
}

// ChartDomain is the padded Y-axis range of the chart.
type ChartDomain struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// PerformanceSummary holds the dashboard headline metrics.
type PerformanceSummary struct {
	Months             int             `json:"months"`
	LatestDate         string          `json:"latest_date,omitempty"`
	LatestValue        decimal.Decimal `json:"latest_value"`
	YTDGain            decimal.Decimal `json:"ytd_gain"`
	YTDReturn          float64         `json:"ytd_return"`
	TotalNetFlow       decimal.Decimal `json:"total_net_flow"`
	MeanMonthlyReturn  float64         `json:"mean_monthly_return"`
	MonthlyReturnStdev float64         `json:"monthly_return_stdev"`
}

// PerformanceReport is the output of the performance transform.
type PerformanceReport struct {
	PortfolioID string              `json:"portfolio_id,omitempty"`
	Currency    string              `json:"currency"`
	Chart       []ChartPoint        `json:"chart"`
	Table       []PerformanceRecord `json:"table"`
	Domain      ChartDomain         `json:"domain"`
	Summary     PerformanceSummary  `json:"summary"`
}

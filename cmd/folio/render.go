package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/performance"
)

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func portfoliosMarkdown(portfolios []models.Portfolio) string {
	if len(portfolios) == 0 {
		return "_No portfolios yet. Create one with `folio portfolios -create <name>`._\n"
	}

	var b strings.Builder
	b.WriteString("| | Portfolio | ID | Created |\n")
	b.WriteString("|---|---|---|---|\n")
	for i, p := range portfolios {
		marker := ""
		if i == 0 {
			marker = "*"
		}
		fmt.Fprintf(&b, "| %s | %s | `%s` | %s |\n", marker, p.Name, p.ID, p.CreatedAt.Format("2006-01-02"))
	}
	b.WriteString("\n\\* default selection\n")
	return b.String()
}

// historyMarkdown lays out the performance table newest first. Rows that
// start a new calendar year carry the year as a bold label.
func historyMarkdown(report *models.PerformanceReport) string {
	var b strings.Builder

	if len(report.Table) == 0 {
		b.WriteString("_No snapshots recorded._\n")
		return b.String()
	}

	b.WriteString("| Month | Value | Net Flow | MoM | MoM % | YTD | YTD % |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|---:|\n")

	gaps := false
	for _, r := range report.Table {
		month := r.FormattedDate
		if r.IsYearBoundary && r.FormattedDate != performance.InvalidDateLabel {
			month = "**" + month + "**"
		}
		momPct := r.FormattedMoMReturn
		if r.MoMGap {
			momPct += " †"
			gaps = true
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			month, r.FormattedValue, r.FormattedNetFlow,
			r.FormattedMoMGain, momPct, r.FormattedYTDGain, r.FormattedYTDReturn)
	}

	if gaps {
		b.WriteString("\n† compared with a snapshot more than one month earlier\n")
	}

	s := report.Summary
	format := performance.NewFormatter(report.Currency)
	fmt.Fprintf(&b, "\n**%d months**, latest %s: %s, YTD %s (%s), net deposits %s, mean monthly return %s\n",
		s.Months,
		performance.FormatMonth(s.LatestDate),
		format.Money(s.LatestValue),
		format.Money(s.YTDGain),
		performance.FormatPercent(s.YTDReturn),
		format.Money(s.TotalNetFlow),
		performance.FormatPercent(s.MeanMonthlyReturn),
	)
	return b.String()
}

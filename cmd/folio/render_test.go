package main

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/performance"
)

func TestHistoryMarkdown(t *testing.T) {
	report := performance.Transform([]models.Snapshot{
		{Date: "2023-12-01", Value: decimal.NewFromInt(900)},
		{Date: "2024-01-01", Value: decimal.NewFromInt(1000), NetFlow: decimal.NewFromInt(50)},
		{Date: "2024-03-01", Value: decimal.NewFromInt(1100)},
	})

	md := historyMarkdown(report)
	lines := strings.Split(md, "\n")

	assert.True(t, strings.HasPrefix(lines[2], "| Mar 2024 | $1,100 |"), lines[2])
	assert.Contains(t, lines[2], "+10.00% †")
	assert.True(t, strings.HasPrefix(lines[3], "| **Jan 2024** |"), lines[3])
	assert.Contains(t, md, "† compared with a snapshot more than one month earlier")
	assert.Contains(t, md, "**3 months**, latest Mar 2024: $1,100")
}

func TestHistoryMarkdown_Empty(t *testing.T) {
	md := historyMarkdown(performance.Transform(nil))
	assert.Equal(t, "_No snapshots recorded._\n", md)
}

func TestPortfoliosMarkdown(t *testing.T) {
	created := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	md := portfoliosMarkdown([]models.Portfolio{
		{ID: "p1", Name: "Main", CreatedAt: created},
		{ID: "p2", Name: "Side", CreatedAt: created},
	})

	assert.Contains(t, md, "| * | Main | `p1` | 2024-02-03 |")
	assert.Contains(t, md, "|  | Side | `p2` | 2024-02-03 |")

	assert.Contains(t, portfoliosMarkdown(nil), "No portfolios yet")
}

func TestSetCmdParse(t *testing.T) {
	c := &setCmd{portfolio: "p1", date: "2024-01-01", value: "1234.5", netFlow: "-20"}
	value, netFlow, err := c.parse()
	assert.NoError(t, err)
	assert.True(t, value.Equal(decimal.RequireFromString("1234.5")))
	assert.True(t, netFlow.Equal(decimal.NewFromInt(-20)))

	c.value = "lots"
	_, _, err = c.parse()
	assert.Error(t, err)

	c = &setCmd{portfolio: "p1"}
	_, _, err = c.parse()
	assert.Error(t, err)
}

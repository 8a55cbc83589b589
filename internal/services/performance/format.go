package performance

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is used when no display currency is configured.
const DefaultCurrency = "USD"

// Formatter renders amounts in one display currency.
type Formatter struct {
	currency string
	symbol   string
}

// NewFormatter returns a Formatter for an ISO 4217 code. Unknown codes render
// with the code itself as prefix ("XYZ 1,000").
func NewFormatter(currency string) Formatter {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = DefaultCurrency
	}
	symbol := code + " "
	if c := money.GetCurrency(code); c != nil && c.Grapheme != "" {
		symbol = c.Grapheme
	}
	return Formatter{currency: code, symbol: symbol}
}

// Currency returns the ISO code of the formatter.
func (f Formatter) Currency() string { return f.currency }

// Money renders an amount with grouped thousands and at most two decimals.
// The sign goes before the symbol: -$1,234.5.
func (f Formatter) Money(d decimal.Decimal) string {
	return f.render(d, 2)
}

// MoneyWhole renders an amount rounded to whole currency units.
func (f Formatter) MoneyWhole(d decimal.Decimal) string {
	return f.render(d, 0)
}

func (f Formatter) render(d decimal.Decimal, places int32) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	abs := d.Abs().Round(places).InexactFloat64()
	p := message.NewPrinter(language.English)
	return sign + f.symbol + p.Sprint(number.Decimal(abs, number.MaxFractionDigits(int(places))))
}

var usd = NewFormatter(DefaultCurrency)

// FormatMoney renders a USD amount, e.g. "-$250".
func FormatMoney(d decimal.Decimal) string { return usd.Money(d) }

// FormatMoneyWhole renders a USD amount rounded to dollars.
func FormatMoneyWhole(d decimal.Decimal) string { return usd.MoneyWhole(d) }

// FormatPercent renders a percentage with a forced sign and two decimals:
// "+10.00%", "-3.25%".
func FormatPercent(p float64) string {
	sign := "+"
	if p < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%.2f%%", sign, math.Abs(p))
}

// FormatMonth renders a snapshot date as "Jan 2024", or InvalidDateLabel.
func FormatMonth(date string) string {
	t, ok := parseSnapshotDate(date)
	if !ok {
		return InvalidDateLabel
	}
	return t.Format("Jan 2006")
}

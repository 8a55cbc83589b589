package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/folio/internal/app"
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

var commands = []subcommands.Command{
	&portfoliosCmd{},
	&historyCmd{},
	&chartCmd{},
	&setCmd{},
}

// openApp initializes the shared core from -config.
func openApp() (*app.App, error) {
	return app.NewApp(*configPath)
}

// exitStatus reports err and maps it onto an exit status.
func exitStatus(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, interfaces.ErrInvalidInput) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

type portfoliosCmd struct {
	user   string
	create string
}

func (*portfoliosCmd) Name() string     { return "portfolios" }
func (*portfoliosCmd) Synopsis() string { return "list (or create) the portfolios of a user" }
func (*portfoliosCmd) Usage() string {
	return `folio portfolios [-user <id>] [-create <name>]

  Lists the user's portfolios; the first one is the default selection.
`
}

func (c *portfoliosCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", common.DefaultUserID, "user id owning the portfolios")
	f.StringVar(&c.create, "create", "", "create a portfolio with this name first")
}

func (c *portfoliosCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	if c.create != "" {
		p, err := a.PortfolioService.CreatePortfolio(ctx, c.user, c.create)
		if err != nil {
			return exitStatus(err)
		}
		fmt.Printf("Created %s (%s)\n", p.Name, p.ID)
	}

	portfolios, err := a.PortfolioService.ListPortfolios(ctx, c.user)
	if err != nil {
		return exitStatus(err)
	}
	printMarkdown(portfoliosMarkdown(portfolios))
	return subcommands.ExitSuccess
}

type historyCmd struct {
	user      string
	portfolio string
	currency  string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the month-by-month performance table" }
func (*historyCmd) Usage() string {
	return `folio history -p <portfolio> [-user <id>] [-currency <code>]

  Displays MoM and YTD gains for every snapshot, newest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", common.DefaultUserID, "user id owning the portfolio")
	f.StringVar(&c.portfolio, "p", "", "portfolio id")
	f.StringVar(&c.currency, "currency", "", "display currency (defaults to config)")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" {
		fmt.Fprintln(os.Stderr, "Error: -p is required")
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	if c.currency != "" {
		ctx = common.WithUserContext(ctx, &common.UserContext{UserID: c.user, DisplayCurrency: c.currency})
	}
	report, err := a.PortfolioService.GetPerformance(ctx, c.user, c.portfolio)
	if err != nil {
		return exitStatus(err)
	}
	printMarkdown(historyMarkdown(report))
	return subcommands.ExitSuccess
}

type chartCmd struct {
	user      string
	portfolio string
	output    string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render the portfolio value chart to a PNG file" }
func (*chartCmd) Usage() string {
	return `folio chart -p <portfolio> [-user <id>] [-o <file.png>]
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", common.DefaultUserID, "user id owning the portfolio")
	f.StringVar(&c.portfolio, "p", "", "portfolio id")
	f.StringVar(&c.output, "o", "portfolio.png", "output file")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" {
		fmt.Fprintln(os.Stderr, "Error: -p is required")
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	png, err := a.PortfolioService.GetChart(ctx, c.user, c.portfolio)
	if err != nil {
		return exitStatus(err)
	}
	if err := os.WriteFile(c.output, png, 0644); err != nil {
		return exitStatus(err)
	}
	fmt.Printf("Chart written to %s (%d bytes)\n", c.output, len(png))
	return subcommands.ExitSuccess
}

type setCmd struct {
	user      string
	portfolio string
	date      string
	value     string
	netFlow   string
	update    bool
}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "add or revise the snapshot of one month" }
func (*setCmd) Usage() string {
	return `folio set -p <portfolio> -date <YYYY-MM-DD> -value <amount> [-netflow <amount>] [-update]

  Stores a month's end balance and net deposits, then prints the refreshed table.
  With -update the month must already exist.
`
}

func (c *setCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", common.DefaultUserID, "user id owning the portfolio")
	f.StringVar(&c.portfolio, "p", "", "portfolio id")
	f.StringVar(&c.date, "date", "", "month date, YYYY-MM-DD")
	f.StringVar(&c.value, "value", "", "end-of-month balance")
	f.StringVar(&c.netFlow, "netflow", "0", "deposits minus withdrawals during the month")
	f.BoolVar(&c.update, "update", false, "fail if the month does not exist")
}

func (c *setCmd) parse() (decimal.Decimal, decimal.Decimal, error) {
	if c.portfolio == "" || c.date == "" || c.value == "" {
		return decimal.Zero, decimal.Zero, fmt.Errorf("-p, -date and -value are required: %w", interfaces.ErrInvalidInput)
	}
	value, err := decimal.NewFromString(c.value)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("value %q: %w", c.value, interfaces.ErrInvalidInput)
	}
	netFlow, err := decimal.NewFromString(c.netFlow)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("netflow %q: %w", c.netFlow, interfaces.ErrInvalidInput)
	}
	return value, netFlow, nil
}

func (c *setCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	value, netFlow, err := c.parse()
	if err != nil {
		return exitStatus(err)
	}
	a, err := openApp()
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	var report *models.PerformanceReport
	if c.update {
		report, err = a.PortfolioService.UpdateSnapshot(ctx, c.user, c.portfolio, c.date, models.SnapshotUpdate{Value: value, NetFlow: netFlow})
	} else {
		report, err = a.PortfolioService.UpsertSnapshot(ctx, c.user, c.portfolio, models.Snapshot{Date: c.date, Value: value, NetFlow: netFlow})
	}
	if err != nil {
		return exitStatus(err)
	}
	printMarkdown(historyMarkdown(report))
	return subcommands.ExitSuccess
}

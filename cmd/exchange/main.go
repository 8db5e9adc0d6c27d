// Command exchange prints mean, minimum and maximum exchange rates for a date range.
//
//	exchange <CURRENCYFROM> <CURRENCYTO> <DATEFROM> <DATETO>
//
// Retrieved rates are cached locally. A small share of business days may fail to load; the summary then
// carries a notice. A larger share is reported as an error.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/damon-houk/exchange-rate-overview/internal/app/setup"
	"github.com/damon-houk/exchange-rate-overview/internal/config"
	"github.com/damon-houk/exchange-rate-overview/internal/domain/entity"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/logger"
)

const usage = `Use exchangeratesapi.io to get exchange rates for given time period

USAGE:
    exchange <CURRENCYFROM> <CURRENCYTO> <DATEFROM> <DATETO>

ARGS:
    <CURRENCYFROM>
    <CURRENCYTO>
    <DATEFROM>        date in format YYYY-MM-DD
    <DATETO>          date in format YYYY-MM-DD

ENVIRONMENT:
    EXCHANGE_API_URL  rates endpoint (default https://api.exchangeratesapi.io/)
    EXCHANGE_API_KEY  access key sent as access_key
    CACHE_BACKEND     file, badger or memory (default file)
    CACHE_DIR         cache location (default .)
    LOG_LEVEL         DEBUG, INFO, WARN or ERROR (default WARN)
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("exchange", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { fmt.Fprint(stderr, usage) }
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if flags.NArg() != 4 {
		fmt.Fprintf(stderr, "expected 4 arguments, got %d\n\n", flags.NArg())
		flags.Usage()
		return 1
	}
	currencyFrom, currencyTo := flags.Arg(0), flags.Arg(1)

	dateFrom, err := entity.ParseDate(flags.Arg(2))
	if err != nil {
		fmt.Fprintf(stderr, "invalid DATEFROM %q: expected YYYY-MM-DD\n", flags.Arg(2))
		return 1
	}
	dateTo, err := entity.ParseDate(flags.Arg(3))
	if err != nil {
		fmt.Fprintf(stderr, "invalid DATETO %q: expected YYYY-MM-DD\n", flags.Arg(3))
		return 1
	}

	cfg, err := config.Load(logger.WarnLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	log := logger.NewJSONLogger(stderr, cfg.LogLevel)
	logger.SetDefaultLogger(log)

	deps, err := setup.Build(cfg, nil, log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Error("Error closing rate cache", map[string]interface{}{"error": err.Error()})
		}
	}()

	fmt.Fprintf(stdout, "For %s:%s between %s and %s\n", currencyFrom, currencyTo,
		dateFrom.Format(entity.DateLayout), dateTo.Format(entity.DateLayout))

	summary, err := deps.Overview.GetOverview(ctx, currencyFrom, currencyTo, entity.NewDateRange(dateFrom, dateTo))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	printSummary(stdout, summary)
	return 0
}

func printSummary(w io.Writer, summary *entity.ExchangeSummary) {
	fmt.Fprintf(w, "mean rate: %v\n", summary.MeanRate)
	fmt.Fprintf(w, "min rate:  %v on %s\n", summary.MinRate.Value, summary.MinRate.Date.Format(entity.DateLayout))
	fmt.Fprintf(w, "max rate:  %v on %s\n", summary.MaxRate.Value, summary.MaxRate.Date.Format(entity.DateLayout))
	if summary.HasNotice() {
		fmt.Fprintf(w, "notice:    %s\n", summary.Notice)
	}
}

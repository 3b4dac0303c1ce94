package rebalance

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// The quote provider fills the 1.0-defaulted slots of a quote vector with
// per-share closing prices from a chart JSON endpoint. The engine never
// calls it: rebalance and RMD computations only consume prefilled vectors.

const quoteURLEnv = "VAPO_QUOTE_URL"

// quoteBase returns the chart API base URL, overridable through the
// environment (loaded from .env by the CLI).
func quoteBase() string {
	if base := os.Getenv(quoteURLEnv); base != "" {
		return base
	}
	return "https://query1.finance.yahoo.com"
}

// FillMissingQuotes fetches the latest closing price for every tradable
// bucket still at the 1.0 missing-price sentinel. Slots priced by the
// export are left alone. Fetch failures are joined into the returned error;
// slots that did fetch are kept even on partial failure.
func FillMissingQuotes(quotes Vector) (Vector, error) {
	client := daily()
	var errs error
	for _, sym := range Tradable() {
		if quotes.Value(sym) != 1.0 {
			continue
		}
		latest, err := fetchClose(client, chartAddr(sym.String(), "interval=1d&range=5d"))
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("could not get quote for %s: %w", sym, err))
			continue
		}
		quotes = quotes.With(sym, latest)
	}
	return quotes, errs
}

// FillEOYQuotes fetches the last closing price of the given year for every
// tradable bucket still at the 1.0 sentinel. Used to reprice a
// reconstructed prior-year-end snapshot.
func FillEOYQuotes(quotes Vector, year int) (Vector, error) {
	// Last trading days of December, in the exchange's timezone.
	loc := time.FixedZone("EST", -5*3600)
	start := time.Date(year, time.December, 25, 0, 0, 1, 0, loc).Unix()
	stop := time.Date(year, time.December, 31, 23, 59, 59, 0, loc).Unix()

	client := daily()
	var errs error
	for _, sym := range Tradable() {
		if quotes.Value(sym) != 1.0 {
			continue
		}
		query := fmt.Sprintf("interval=1d&period1=%d&period2=%d", start, stop)
		latest, err := fetchClose(client, chartAddr(sym.String(), query))
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("could not get %d year-end quote for %s: %w", year, sym, err))
			continue
		}
		quotes = quotes.With(sym, latest)
	}
	return quotes, errs
}

func chartAddr(ticker, query string) string {
	return fmt.Sprintf("%s/v8/finance/chart/%s?%s", quoteBase(), ticker, query)
}

// fetchClose extracts the most recent closing price from a chart response.
func fetchClose(client *http.Client, addr string) (float64, error) {
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error in wget %q: %w", addr, err)
	}
	path := "$.chart.result[0].indicators.quote[0].close[-1:]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing chart response: %q %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing chart response: %q %s %v", path, "not a float", jval)
	}
	if val == 0 {
		return math.NaN(), errors.New("empty close in chart response")
	}
	return val, nil
}

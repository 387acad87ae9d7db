// censor reads newline-separated observed delays from stdin and
// describes them under a censored delay model configured from the
// environment.
//
// The model is a delay distribution (CENSOR_DELAY, with
// CENSOR_DELAY_PARAMS) whose primary event falls uniformly in a
// window of CENSOR_PRIMARY_WINDOW, optionally truncated to
// (CENSOR_LOWER, CENSOR_UPPER] and rounded to intervals of
// CENSOR_WIDTH or to CENSOR_BOUNDARIES.
package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	count "github.com/jayalane/go-counter"
	ll "github.com/jayalane/go-lll"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/aclements/go-censored/censor"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	ll.SetWriter(os.Stderr)
	censor.InitWithLogger(ll.Init("CENSOR", cfg.LogLevel))
	if cfg.Counters {
		censor.InitCounters()
	}

	delay, err := cfg.delay()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	d, err := censor.DoubleIntervalCensored(delay, cfg.options())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	xs, err := readInput(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	describe(os.Stdout, d, xs)

	if cfg.Counters {
		count.LogCounters()
	}
}

func describe(w io.Writer, d censor.Dist, xs []float64) {
	lp := censor.LogPDFEach(d, xs)
	fmt.Fprintf(w, "N %d  log-likelihood %.6g", len(xs), floats.Sum(lp))
	if pc, ok := d.(censor.PrimaryCensored); ok {
		fmt.Fprintf(w, "  mean %.6g", pc.Mean())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	// Model quantiles.
	for _, p := range []int{1, 5, 25, 50, 75, 95, 99} {
		fmt.Fprintf(w, "%8s %.6g\n", fmt.Sprintf("%d%%ile", p), d.Quantile(float64(p)/100))
	}
	fmt.Fprintln(w)

	if dd, ok := d.(censor.DiscreteDist); ok {
		FprintPMF(w, dd, xs)
	} else {
		FprintPDF(w, d, xs)
	}
}

// FprintPMF prints the model probability of each observed value next
// to its observed frequency.
func FprintPMF(w io.Writer, d censor.DiscreteDist, xs []float64) {
	obs := make(map[float64]int)
	for _, x := range xs {
		obs[x]++
	}
	keys := make([]float64, 0, len(obs))
	for x := range obs {
		keys = append(keys, x)
	}
	sort.Float64s(keys)

	pmf := d.PMFEach(keys)
	fmt.Fprintf(w, "%10s %10s %10s\n", "value", "pmf", "observed")
	for i, x := range keys {
		freq := float64(obs[x]) / float64(len(xs))
		fmt.Fprintf(w, "%10.4g %10.4g %10.4g %s\n", x, pmf[i], freq, bar(pmf[i]))
	}
}

// FprintPDF prints the model density over the range of xs.
func FprintPDF(w io.Writer, d censor.Dist, xs []float64) {
	if len(xs) == 0 {
		return
	}
	lo, hi := floats.Min(xs), floats.Max(xs)
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	grid := floats.Span(make([]float64, 20), lo, hi)
	fmt.Fprintf(w, "%10s %10s\n", "x", "pdf")
	for _, x := range grid {
		p := d.PDF(x)
		fmt.Fprintf(w, "%10.4g %10.4g %s\n", x, p, bar(p))
	}
}

func bar(p float64) string {
	if !(p > 0) {
		return ""
	}
	return strings.Repeat("*", int(math.Ceil(math.Min(p, 1)*50)))
}

func readInput(r io.Reader) ([]float64, error) {
	var xs []float64
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		l := strings.TrimSpace(scanner.Text())
		if l == "" {
			continue
		}
		value, err := strconv.ParseFloat(l, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		xs = append(xs, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	return xs, nil
}

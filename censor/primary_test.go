// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// expUniform returns the exact CDF and PDF of Exponential(rate) +
// Uniform(0, 1).
func expUniform(rate float64) (cdf, pdf func(float64) float64) {
	cdf = func(x float64) float64 {
		switch {
		case x <= 0:
			return 0
		case x <= 1:
			return x + math.Expm1(-rate*x)/rate
		}
		return 1 - (math.Exp(-rate*(x-1))-math.Exp(-rate*x))/rate
	}
	pdf = func(x float64) float64 {
		switch {
		case x < 0:
			return 0
		case x <= 1:
			return -math.Expm1(-rate * x)
		}
		return math.Exp(-rate*x) * math.Expm1(rate)
	}
	return
}

func mustPrimary(t *testing.T, delay, primary Dist, method SolverMethod) PrimaryCensored {
	t.Helper()
	d, err := NewPrimaryCensored(delay, primary, method)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestPrimaryCensoredExact(t *testing.T) {
	const rate = 0.7
	cdf, pdf := expUniform(rate)
	d := mustPrimary(t, NewExponential(rate), NewUniform(0, 1), nil)
	for _, x := range []float64{0.1, 0.25, 0.5, 0.9, 1.2, 2, 3.5, 6} {
		if got, want := d.CDF(x), cdf(x); !scalar.EqualWithinAbsOrRel(want, got, 1e-10, 1e-8) {
			t.Errorf("CDF(%v) = %v; want %v", x, got, want)
		}
		if got, want := d.PDF(x), pdf(x); !scalar.EqualWithinAbsOrRel(want, got, 1e-6, 1e-5) {
			t.Errorf("PDF(%v) = %v; want %v", x, got, want)
		}
	}
}

func TestPrimaryCensoredPDFAnalytical(t *testing.T) {
	// With a unit uniform window, the density at x is
	// F(x) - F(x-1) for the delay CDF F.
	g := NewGamma(2.5, 1.2)
	d := mustPrimary(t, g, NewUniform(0, 1), nil)
	for _, x := range []float64{0.3, 0.8, 1, 1.7, 3, 5, 9} {
		want := g.CDF(x) - g.CDF(math.Max(x-1, 0))
		if got := d.PDF(x); !scalar.EqualWithinAbsOrRel(want, got, 1e-6, 1e-5) {
			t.Errorf("PDF(%v) = %v; want %v", x, got, want)
		}
	}
}

func TestPrimaryCensoredBounds(t *testing.T) {
	d := mustPrimary(t, NewGamma(2, 1), NewUniform(0, 1), nil)
	testFunc(t, "CDF", d.CDF, map[float64]float64{
		-1:          0,
		0:           0,
		math.Inf(1): 1,
	})
	testFunc(t, "LogCDF", d.LogCDF, map[float64]float64{
		-1:          math.Inf(-1),
		0:           math.Inf(-1),
		math.Inf(1): 0,
	})
	testFunc(t, "LogCCDF", d.LogCCDF, map[float64]float64{
		0:           0,
		math.Inf(1): math.Inf(-1),
	})
	testFunc(t, "LogPDF", d.LogPDF, map[float64]float64{
		-1: math.Inf(-1),
	})
	if lo, hi := d.Support(); lo != 0 || !math.IsInf(hi, 1) {
		t.Errorf("Support() = %v, %v; want 0, +Inf", lo, hi)
	}
	if !math.IsNaN(d.CDF(math.NaN())) {
		t.Errorf("CDF(NaN) is not NaN")
	}
}

func TestPrimaryCensoredConsistency(t *testing.T) {
	xs := floats.Span(make([]float64, 40), 0.05, 15)
	for _, method := range []SolverMethod{Analytical{}, Numeric{}} {
		for _, delay := range []Dist{NewGamma(3, 1), NewLogNormal(1, 0.5), NewWeibull(2, 3), NewExponential(0.4)} {
			d := mustPrimary(t, delay, NewUniform(0, 1), method)
			t.Run(fmtDist(d), func(t *testing.T) {
				checkMonotone(t, "CDF", d.CDF, xs)
				checkLogConsistent(t, "CDF", d.CDF, d.LogCDF, xs)
				checkLogConsistent(t, "PDF", d.PDF, d.LogPDF, xs)
				checkLogConsistent(t, "CCDF", d.CCDF, d.LogCCDF, xs)
				for _, x := range xs {
					if c := d.CDF(x); c < 0 || c > 1 {
						t.Errorf("CDF(%v) = %v not in [0, 1]", x, c)
					}
				}
			})
		}
	}
}

func TestPrimaryCensoredCDFEach(t *testing.T) {
	d := mustPrimary(t, NewLogNormal(0.5, 0.5), NewUniform(0, 1), nil)
	xs := []float64{0.5, 1, 2, 4}
	got := d.CDFEach(xs)
	for i, x := range xs {
		if got[i] != d.CDF(x) {
			t.Errorf("CDFEach[%d] = %v; want CDF(%v) = %v", i, got[i], x, d.CDF(x))
		}
	}
}

func TestPrimaryCensoredQuantile(t *testing.T) {
	ps := []float64{0.001, 0.01, 0.1, 0.25, 0.5, 0.75, 0.9, 0.99}
	for _, delay := range []Dist{NewGamma(2, 1.5), NewLogNormal(1, 0.5), NewExponential(1)} {
		d := mustPrimary(t, delay, NewUniform(0, 1), nil)
		prev := math.Inf(-1)
		for _, p := range ps {
			q, ok := d.QuantileConverged(p)
			if !ok {
				t.Errorf("%s: Quantile(%v) did not converge", fmtDist(d), p)
			}
			if c := d.CDF(q); !scalar.EqualWithinAbs(p, c, 1e-6) {
				t.Errorf("%s: CDF(Quantile(%v)) = CDF(%v) = %v", fmtDist(d), p, q, c)
			}
			if q < prev {
				t.Errorf("%s: Quantile(%v) = %v < previous quantile %v", fmtDist(d), p, q, prev)
			}
			prev = q
		}
		if q := d.Quantile(0); q != 0 {
			t.Errorf("%s: Quantile(0) = %v; want 0", fmtDist(d), q)
		}
		if q := d.Quantile(1); !math.IsInf(q, 1) {
			t.Errorf("%s: Quantile(1) = %v; want +Inf", fmtDist(d), q)
		}
	}
}

func TestQuantileBadProbability(t *testing.T) {
	d := mustPrimary(t, NewGamma(2, 1), NewUniform(0, 1), nil)
	for _, p := range []float64{-0.1, 1.1, math.NaN()} {
		func() {
			defer func() {
				if r := recover(); r != badProbability {
					t.Errorf("Quantile(%v) recovered %v; want panic %q", p, r, badProbability)
				}
			}()
			d.Quantile(p)
		}()
	}
}

func TestNewPrimaryCensoredSupport(t *testing.T) {
	_, err := NewPrimaryCensored(NewUniform(2, 5), NewUniform(0, 1), nil)
	if !errors.Is(err, ErrDelaySupport) {
		t.Errorf("NewPrimaryCensored(Uniform(2, 5)) error = %v; want ErrDelaySupport", err)
	}
	_, err = NewPrimaryCensored(NewNormal(0, 1), NewUniform(0, 1), nil)
	if !errors.Is(err, ErrDelaySupport) {
		t.Errorf("NewPrimaryCensored(Normal) error = %v; want ErrDelaySupport", err)
	}
	d, err := NewPrimaryCensored(NewGamma(2, 1), NewUniform(0, 1), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := d.Method.(Analytical); !ok {
		t.Errorf("default Method = %T; want Analytical", d.Method)
	}
}

func TestPrimaryCensoredMean(t *testing.T) {
	d := mustPrimary(t, NewGamma(2, 1.5), NewUniform(0, 1), nil)
	if got := d.Mean(); !aeq(3.5, got) {
		t.Errorf("Mean() = %v; want 3.5", got)
	}
	d = PrimaryCensored{Delay: NewGamma(2, 1.5), Primary: PrimaryCensored{Delay: NewExponential(1), Primary: NewUniform(0, 1)}}
	if got := d.Mean(); !aeq(4.5, got) {
		t.Errorf("nested Mean() = %v; want 4.5", got)
	}
}

func TestSolverFor(t *testing.T) {
	integ := FixedQuad{Points: 20}
	if m, ok := SolverFor(integ, true).(Numeric); !ok || m.Integrator != Integrator(integ) {
		t.Errorf("SolverFor(integ, true) = %#v", SolverFor(integ, true))
	}
	if m, ok := SolverFor(integ, false).(Analytical); !ok || m.Fallback != Integrator(integ) {
		t.Errorf("SolverFor(integ, false) = %#v", SolverFor(integ, false))
	}
}

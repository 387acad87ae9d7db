// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestAnalyticalMatchesNumeric(t *testing.T) {
	delays := []Dist{
		NewGamma(2, 1.5),
		NewGamma(0.8, 3),
		NewLogNormal(1, 0.6),
		NewLogNormal(0.2, 1.1),
		NewWeibull(1.5, 2),
		NewWeibull(0.9, 4),
	}
	primaries := []Uniform{NewUniform(0, 1), NewUniform(0, 2.5), NewUniform(0.5, 1.5)}
	xs := floats.Span(make([]float64, 24), 0.5, 12)

	for _, delay := range delays {
		for _, primary := range primaries {
			if !HasAnalyticalCDF(delay, primary) {
				t.Fatalf("no closed form registered for %s, %s", fmtDist(delay), fmtDist(primary))
			}
			a := PrimaryCensored{Delay: delay, Primary: primary, Method: Analytical{}}
			n := PrimaryCensored{Delay: delay, Primary: primary, Method: Numeric{}}
			for _, x := range xs {
				ca, cn := a.CDF(x), n.CDF(x)
				if !scalar.EqualWithinAbsOrRel(cn, ca, 1e-9, 1e-6) {
					t.Errorf("%s + %s: analytical CDF(%v) = %v, numeric %v", fmtDist(delay), fmtDist(primary), x, ca, cn)
				}
			}
		}
	}
}

func TestAnalyticalRegistry(t *testing.T) {
	u := NewUniform(0, 1)
	for _, d := range []Dist{NewGamma(1, 1), NewLogNormal(0, 1), NewWeibull(1, 1)} {
		if !HasAnalyticalCDF(d, u) {
			t.Errorf("HasAnalyticalCDF(%T, Uniform) = false", d)
		}
	}
	for _, d := range []Dist{NewExponential(1), NewNormal(0, 1)} {
		if HasAnalyticalCDF(d, u) {
			t.Errorf("HasAnalyticalCDF(%T, Uniform) = true", d)
		}
	}
	if HasAnalyticalCDF(NewGamma(1, 1), NewGamma(1, 1)) {
		t.Errorf("HasAnalyticalCDF(Gamma, Gamma) = true")
	}
}

// domainFailer is an exponential delay whose closed form always
// fails with a domain error.
type domainFailer struct{ Exponential }

// bugFailer is an exponential delay whose closed form has a bug.
type bugFailer struct{ Exponential }

func init() {
	RegisterAnalyticalCDF(domainFailer{}, Uniform{}, func(delay, primary Dist, x float64) float64 {
		panic(&DomainError{Op: "test", Arg: x})
	})
	RegisterAnalyticalCDF(bugFailer{}, Uniform{}, func(delay, primary Dist, x float64) float64 {
		panic("something else")
	})
}

func TestAnalyticalDomainFailure(t *testing.T) {
	d := PrimaryCensored{Delay: domainFailer{NewExponential(1)}, Primary: NewUniform(0, 1)}
	if got := d.LogCDF(2); !math.IsInf(got, -1) {
		t.Errorf("LogCDF with failing closed form = %v; want -Inf", got)
	}
	if got := d.CDF(2); got != 0 {
		t.Errorf("CDF with failing closed form = %v; want 0", got)
	}
	if got := d.LogPDF(2); !math.IsInf(got, -1) {
		t.Errorf("LogPDF with failing closed form = %v; want -Inf", got)
	}
}

func TestAnalyticalBugPanics(t *testing.T) {
	d := PrimaryCensored{Delay: bugFailer{NewExponential(1)}, Primary: NewUniform(0, 1)}
	defer func() {
		if r := recover(); r != "something else" {
			t.Errorf("recovered %v; want original panic", r)
		}
	}()
	d.LogCDF(2)
	t.Errorf("LogCDF did not panic")
}

func TestAnalyticalZeroWindow(t *testing.T) {
	// A degenerate window is outside the closed form's domain.
	d := PrimaryCensored{Delay: NewGamma(2, 1), Primary: NewUniform(0, 0)}
	if got := d.LogCDF(1); !math.IsInf(got, -1) {
		t.Errorf("LogCDF with zero-width window = %v; want -Inf", got)
	}
}

// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import (
	"math"
	"reflect"

	"github.com/aclements/go-censored/mathx"
)

// A SolverMethod selects how PrimaryCensored evaluates its CDF. It is
// either Analytical or Numeric.
type SolverMethod interface {
	// logCDF returns log Pr[delay + primary <= x] for x strictly
	// inside (min(delay), +Inf).
	logCDF(delay, primary Dist, x float64) float64

	// cdf returns Pr[delay + primary <= x] under the same
	// conditions as logCDF.
	cdf(delay, primary Dist, x float64) float64
}

// Analytical evaluates the primary censored CDF with a closed-form
// formula when one is registered for the (delay, primary) pair and
// otherwise integrates numerically with Fallback. A nil Fallback
// means the zero AdaptiveQuad.
type Analytical struct {
	Fallback Integrator
}

// Numeric always integrates numerically, ignoring any registered
// closed form. This is mainly useful for validating the analytical
// formulas.
type Numeric struct {
	Integrator Integrator
}

// SolverFor returns Numeric{integ} if forceNumeric is set and
// Analytical{integ} otherwise.
func SolverFor(integ Integrator, forceNumeric bool) SolverMethod {
	if forceNumeric {
		return Numeric{Integrator: integ}
	}
	return Analytical{Fallback: integ}
}

func (m Analytical) logCDF(delay, primary Dist, x float64) float64 {
	if f, ok := lookupAnalyticalCDF(delay, primary); ok {
		countEventSuffix("censor_cdf_analytical", reflect.TypeOf(delay).Name())
		return guardLog("analytical logcdf", func() float64 {
			return math.Min(f(delay, primary, x), 0)
		})
	}
	countEvent("censor_cdf_fallback")
	return mathx.Log(numericCDF(delay, primary, x, m.Fallback))
}

func (m Analytical) cdf(delay, primary Dist, x float64) float64 {
	if _, ok := lookupAnalyticalCDF(delay, primary); ok {
		return math.Exp(m.logCDF(delay, primary, x))
	}
	countEvent("censor_cdf_fallback")
	return numericCDF(delay, primary, x, m.Fallback)
}

func (m Numeric) logCDF(delay, primary Dist, x float64) float64 {
	return mathx.Log(numericCDF(delay, primary, x, m.Integrator))
}

func (m Numeric) cdf(delay, primary Dist, x float64) float64 {
	return numericCDF(delay, primary, x, m.Integrator)
}

// numericCDF computes
//
//	Pr[D + P <= x] = ∫ F_D(u) f_P(x-u) du
//
// over the values of u for which both factors can be nonzero. The
// integrand is evaluated in log space as exp(log F_D(u) + log f_P(x-u)).
func numericCDF(delay, primary Dist, x float64, integ Integrator) float64 {
	countEvent("censor_cdf_numeric")
	dmin, _ := delay.Support()
	pmin, pmax := primary.Support()
	lower := math.Max(x-pmax, dmin)
	upper := x - pmin
	if !(upper > lower) {
		return 0
	}
	f := func(u float64) float64 {
		return math.Exp(delay.LogCDF(u) + primary.LogPDF(x-u))
	}
	p := defaultIntegrator(integ).Integrate(f, lower, upper)
	switch {
	case p < 0 || math.IsNaN(p):
		return 0
	case p > 1:
		return 1
	}
	return p
}

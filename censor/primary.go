// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import (
	"math"

	"github.com/pkg/errors"

	"github.com/aclements/go-censored/mathx"
)

// PrimaryCensored is the distribution of the delay from a primary
// event to a secondary event when the time of the primary event is
// itself uncertain. If D is distributed as Delay and P, the time of
// the primary event within its window, is distributed as Primary,
// then PrimaryCensored is the distribution of D + P.
//
// PrimaryCensored values should be constructed with
// NewPrimaryCensored, which validates Delay. They are immutable and
// safe for concurrent use, provided the random sources of Delay and
// Primary are.
type PrimaryCensored struct {
	// Delay is the delay distribution given an exactly known
	// primary event time. Its minimum support must be 0.
	Delay Dist

	// Primary is the distribution of the primary event time
	// within its window, for example Uniform(0, 1).
	Primary Dist

	// Method selects analytical or numeric CDF evaluation. If
	// nil, Analytical{} is used.
	Method SolverMethod
}

// pdfStep is the finite-difference step used to derive the density
// from the log CDF.
const pdfStep = 1e-8

// NewPrimaryCensored returns the primary censored distribution of
// delay given primary event timing distribution primary. If method is
// nil, the CDF uses a registered closed form when one exists and the
// default adaptive quadrature otherwise.
//
// It returns an error wrapping ErrDelaySupport if the minimum of
// delay's support is not 0.
func NewPrimaryCensored(delay, primary Dist, method SolverMethod) (PrimaryCensored, error) {
	if lo, _ := delay.Support(); lo != 0 {
		return PrimaryCensored{}, errors.Wrapf(ErrDelaySupport, "minimum support is %g", lo)
	}
	if method == nil {
		method = Analytical{}
	}
	return PrimaryCensored{Delay: delay, Primary: primary, Method: method}, nil
}

func (d PrimaryCensored) method() SolverMethod {
	if d.Method == nil {
		return Analytical{}
	}
	return d.Method
}

// Support returns the support of the delay distribution.
func (d PrimaryCensored) Support() (float64, float64) {
	return d.Delay.Support()
}

func (d PrimaryCensored) CDF(x float64) float64 {
	lo, _ := d.Support()
	switch {
	case math.IsNaN(x):
		return nan
	case x <= lo:
		return 0
	case math.IsInf(x, 1):
		return 1
	}
	return d.method().cdf(d.Delay, d.Primary, x)
}

// CDFEach returns CDF(xs[i]) for each i.
func (d PrimaryCensored) CDFEach(xs []float64) []float64 {
	return CDFEach(d, xs)
}

func (d PrimaryCensored) LogCDF(x float64) float64 {
	lo, _ := d.Support()
	switch {
	case math.IsNaN(x):
		return nan
	case x <= lo:
		return math.Inf(-1)
	case math.IsInf(x, 1):
		return 0
	}
	return d.method().logCDF(d.Delay, d.Primary, x)
}

// CCDF returns the survival function 1 - CDF(x).
func (d PrimaryCensored) CCDF(x float64) float64 {
	return 1 - d.CDF(x)
}

// LogCCDF returns log(1 - CDF(x)), computed from LogCDF.
func (d PrimaryCensored) LogCCDF(x float64) float64 {
	return logCCDF(d.LogCDF(x))
}

func logCCDF(lcdf float64) float64 {
	switch {
	case math.IsNaN(lcdf):
		return nan
	case math.IsInf(lcdf, -1):
		return 0
	case lcdf >= 0:
		return math.Inf(-1)
	}
	return mathx.Log1mExp(lcdf)
}

// PDF returns exp(LogPDF(x)).
func (d PrimaryCensored) PDF(x float64) float64 {
	return math.Exp(d.LogPDF(x))
}

// LogPDF returns the log density at x, derived numerically from
// LogCDF by a finite difference with step 1e-8: centered in the
// interior of the support, forward at the lower bound and backward at
// the upper bound. Outside the support, or if the difference cannot
// be evaluated, it returns -Inf.
func (d PrimaryCensored) LogPDF(x float64) float64 {
	lo, hi := d.Support()
	if !(x >= lo && x <= hi) {
		return math.Inf(-1)
	}
	return guardLog("logpdf", func() float64 {
		const h = pdfStep
		var a, b float64
		switch {
		case x-h/2 < lo:
			a, b = d.LogCDF(x+h), d.LogCDF(x)
		case x+h/2 > hi:
			a, b = d.LogCDF(x), d.LogCDF(x-h)
		default:
			a, b = d.LogCDF(x+h/2), d.LogCDF(x-h/2)
		}
		return mathx.LogSubExp(a, b) - math.Log(h)
	})
}

// Quantile returns the p'th quantile of d, found numerically starting
// from Delay.Quantile(p) plus the mean of Primary. If the solver does
// not converge, Quantile logs a warning and returns its best
// estimate; use QuantileConverged to detect this.
//
// Quantile panics if p is not in [0, 1].
func (d PrimaryCensored) Quantile(p float64) float64 {
	q, _ := d.QuantileConverged(p)
	return q
}

// QuantileConverged is like Quantile, but also reports whether the
// solver converged to within tolerance.
func (d PrimaryCensored) QuantileConverged(p float64) (q float64, ok bool) {
	checkProb(p)
	lo, hi := d.Support()
	switch p {
	case 0:
		return lo, true
	case 1:
		return hi, true
	}
	guess := d.Delay.Quantile(p) + mean(d.Primary)
	q, ok = solveQuantile(d.CDF, p, guess, lo, hi)
	if !ok {
		countEvent("censor_quantile_nonconverged")
		logger().La("censor: quantile did not converge for p =", p, "best estimate", q, "cdf", d.CDF(q))
	}
	return q, ok
}

// Rand returns the sum of independent draws from Delay and Primary.
func (d PrimaryCensored) Rand() float64 {
	return d.Delay.Rand() + d.Primary.Rand()
}

// Mean returns the mean of d, which is the sum of the means of Delay
// and Primary. It is NaN if either lacks a Mean method.
func (d PrimaryCensored) Mean() float64 {
	type meaner interface {
		Mean() float64
	}
	dm, ok1 := d.Delay.(meaner)
	pm, ok2 := d.Primary.(meaner)
	if !ok1 || !ok2 {
		return nan
	}
	return dm.Mean() + pm.Mean()
}

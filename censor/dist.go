// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

// A Dist is a univariate statistical distribution that can be
// censored. Base distributions (Gamma, LogNormal, ...) and every
// censoring wrapper implement it.
type Dist interface {
	// Support returns the exact bounds of the support of this
	// distribution. Either bound may be infinite.
	Support() (min, max float64)

	// CDF returns the cumulative probability Pr[X <= x].
	CDF(x float64) float64

	// LogCDF returns the natural logarithm of CDF(x). It is -Inf
	// wherever CDF(x) is 0.
	LogCDF(x float64) float64

	// PDF returns the value of the probability density function
	// at x. For discrete distributions this is the probability
	// mass function.
	PDF(x float64) float64

	// LogPDF returns the natural logarithm of PDF(x). It is -Inf
	// wherever PDF(x) is 0.
	LogPDF(x float64) float64

	// Quantile returns the inverse of the CDF for p. p must be in
	// [0, 1].
	Quantile(p float64) float64

	// Rand returns an independent random draw from this
	// distribution.
	Rand() float64
}

// A DiscreteDist is a Dist whose probability is concentrated on the
// left edges of a set of intervals.
type DiscreteDist interface {
	Dist

	// PMF returns the probability mass of the interval
	// containing x.
	PMF(x float64) float64

	// LogPMF returns the natural logarithm of PMF(x).
	LogPMF(x float64) float64

	// PMFEach returns PMF(xs[i]) for each i.
	PMFEach(xs []float64) []float64

	// LogPMFEach returns LogPMF(xs[i]) for each i.
	LogPMFEach(xs []float64) []float64
}

// mean returns the mean of dist if it has a Mean method and
// otherwise its median.
func mean(dist Dist) float64 {
	type meaner interface {
		Mean() float64
	}
	if dist, ok := dist.(meaner); ok {
		return dist.Mean()
	}
	return dist.Quantile(0.5)
}

// CDFEach returns dist.CDF(xs[i]) for each i.
func CDFEach(dist Dist, xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = dist.CDF(x)
	}
	return res
}

// LogPDFEach returns dist.LogPDF(xs[i]) for each i. If dist is a
// DiscreteDist, this uses its batched LogPMFEach.
func LogPDFEach(dist Dist, xs []float64) []float64 {
	if dist, ok := dist.(DiscreteDist); ok {
		return dist.LogPMFEach(xs)
	}
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = dist.LogPDF(x)
	}
	return res
}

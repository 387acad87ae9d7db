// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/aclements/go-censored/mathx"
)

// Truncated is the distribution of Dist conditioned on lying in
// (Lower, Upper]. An infinite bound means that side is not truncated.
//
// Truncated values must be constructed with Truncate, which computes
// the normalizing constant.
type Truncated struct {
	Dist Dist

	Lower, Upper float64

	// Src is the source of uniform variates used by Rand when
	// rejection sampling from Dist gives up. If nil, the global
	// golang.org/x/exp/rand source is used.
	Src rand.Source

	// lcdf and ucdf are Dist.CDF at Lower and Upper.
	lcdf, ucdf float64
}

// maxRejections bounds the number of draws Rand takes from Dist
// before switching to inverse transform sampling.
const maxRejections = 100

// Truncate returns d truncated to (lower, upper]. Use math.Inf(-1)
// or math.Inf(1) to leave a side unbounded.
//
// It returns an error wrapping ErrTruncationBounds if lower is not
// less than upper, and one wrapping ErrZeroMass if d assigns no
// probability to the interval.
func Truncate(d Dist, lower, upper float64) (Truncated, error) {
	if !(lower < upper) {
		return Truncated{}, errors.Wrapf(ErrTruncationBounds, "lower %g, upper %g", lower, upper)
	}
	t := Truncated{Dist: d, Lower: lower, Upper: upper, lcdf: 0, ucdf: 1}
	if !math.IsInf(lower, -1) {
		t.lcdf = d.CDF(lower)
	}
	if !math.IsInf(upper, 1) {
		t.ucdf = d.CDF(upper)
	}
	if !(t.mass() > 0) {
		return Truncated{}, errors.Wrapf(ErrZeroMass, "(%g, %g]", lower, upper)
	}
	return t, nil
}

// mass returns the probability of the truncation interval under
// Dist.
func (t Truncated) mass() float64 {
	return t.ucdf - t.lcdf
}

func (t Truncated) Support() (float64, float64) {
	lo, hi := t.Dist.Support()
	return math.Max(lo, t.Lower), math.Min(hi, t.Upper)
}

func (t Truncated) CDF(x float64) float64 {
	lo, hi := t.Support()
	switch {
	case math.IsNaN(x):
		return nan
	case x <= lo:
		return 0
	case x >= hi:
		return 1
	}
	c := (t.Dist.CDF(x) - t.lcdf) / t.mass()
	return math.Max(0, math.Min(1, c))
}

func (t Truncated) LogCDF(x float64) float64 {
	lo, hi := t.Support()
	switch {
	case math.IsNaN(x):
		return nan
	case x <= lo:
		return math.Inf(-1)
	case x >= hi:
		return 0
	}
	if t.lcdf == 0 {
		// Stay in log space so deep left tails keep their precision.
		return math.Min(0, t.Dist.LogCDF(x)-math.Log(t.mass()))
	}
	return mathx.Log(t.CDF(x))
}

// CCDF returns 1 - CDF(x).
func (t Truncated) CCDF(x float64) float64 {
	return 1 - t.CDF(x)
}

// LogCCDF returns log(1 - CDF(x)).
func (t Truncated) LogCCDF(x float64) float64 {
	return logCCDF(t.LogCDF(x))
}

// contains reports whether x is in both (Lower, Upper] and Dist's
// support.
func (t Truncated) contains(x float64) bool {
	lo, hi := t.Support()
	return x > t.Lower && x <= t.Upper && x >= lo && x <= hi
}

func (t Truncated) PDF(x float64) float64 {
	if !t.contains(x) {
		return 0
	}
	return t.Dist.PDF(x) / t.mass()
}

func (t Truncated) LogPDF(x float64) float64 {
	if !t.contains(x) {
		return math.Inf(-1)
	}
	return t.Dist.LogPDF(x) - math.Log(t.mass())
}

// Quantile returns Dist's quantile at the corresponding probability
// within the truncation interval, clamped to the support. It panics
// if p is not in [0, 1].
func (t Truncated) Quantile(p float64) float64 {
	checkProb(p)
	lo, hi := t.Support()
	switch p {
	case 0:
		return lo
	case 1:
		return hi
	}
	q := t.Dist.Quantile(t.lcdf + p*t.mass())
	return math.Max(lo, math.Min(hi, q))
}

// Rand draws from Dist until a value falls in the truncation
// interval. If that takes more than a fixed number of draws, which
// happens when the interval holds little mass, it falls back to
// inverting the CDF at a uniform variate from Src.
func (t Truncated) Rand() float64 {
	for i := 0; i < maxRejections; i++ {
		x := t.Dist.Rand()
		if x > t.Lower && x <= t.Upper {
			return x
		}
	}
	countEvent("censor_truncated_rand_inverse")
	var u float64
	if t.Src == nil {
		u = rand.Float64()
	} else {
		u = rand.New(t.Src).Float64()
	}
	return t.Quantile(u)
}

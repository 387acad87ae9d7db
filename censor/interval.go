// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/aclements/go-censored/mathx"
)

// IntervalCensored is the distribution of observations of Dist that
// are only recorded to the interval containing them. All of the
// probability of an interval is placed on its left edge.
//
// In regular mode (Boundaries is nil), the intervals are
// [k·Width, (k+1)·Width) for all integers k. In arbitrary mode, the
// intervals are [Boundaries[i], Boundaries[i+1]) and values outside
// [Boundaries[0], Boundaries[len-1]) have no interval and no mass.
//
// IntervalCensored values should be constructed with
// NewIntervalCensored or NewIntervalCensoredBoundaries. They must not
// be modified after construction.
type IntervalCensored struct {
	Dist Dist

	Width float64

	Boundaries []float64
}

// NewIntervalCensored returns d censored to regular intervals of the
// given width, starting at 0. It returns an error wrapping
// ErrIntervalWidth unless width is positive and finite.
func NewIntervalCensored(d Dist, width float64) (IntervalCensored, error) {
	if !(width > 0) || math.IsInf(width, 1) {
		return IntervalCensored{}, errors.Wrapf(ErrIntervalWidth, "width %g", width)
	}
	return IntervalCensored{Dist: d, Width: width}, nil
}

// NewIntervalCensoredBoundaries returns d censored to the intervals
// between consecutive boundaries. boundaries is copied. It returns an
// error wrapping ErrBoundaries unless there are at least two finite,
// strictly increasing boundaries.
func NewIntervalCensoredBoundaries(d Dist, boundaries []float64) (IntervalCensored, error) {
	if len(boundaries) < 2 {
		return IntervalCensored{}, errors.Wrapf(ErrBoundaries, "got %d", len(boundaries))
	}
	for i, b := range boundaries {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return IntervalCensored{}, errors.Wrapf(ErrBoundaries, "boundary %d is %g", i, b)
		}
		if i > 0 && !(b > boundaries[i-1]) {
			return IntervalCensored{}, errors.Wrapf(ErrBoundaries, "boundary %d (%g) does not exceed %g", i, b, boundaries[i-1])
		}
	}
	bs := make([]float64, len(boundaries))
	copy(bs, boundaries)
	return IntervalCensored{Dist: d, Boundaries: bs}, nil
}

func (d IntervalCensored) regular() bool {
	return d.Boundaries == nil
}

// cell returns the k such that k·Width <= x < (k+1)·Width, with both
// edges computed as floating-point products. math.Floor(x/Width) alone
// can be off by one when x is itself an edge, such as 3*0.1.
func (d IntervalCensored) cell(x float64) float64 {
	k := math.Floor(x / d.Width)
	if k*d.Width > x {
		k--
	} else if (k+1)*d.Width <= x {
		k++
	}
	return k
}

// floor returns the left edge of the regular interval containing x.
func (d IntervalCensored) floor(x float64) float64 {
	return d.cell(x) * d.Width
}

// index returns the number of boundaries <= x. 0 means x precedes the
// first boundary and len(Boundaries) means x is at or past the last.
func (d IntervalCensored) index(x float64) int {
	b := d.Boundaries
	return sort.Search(len(b), func(i int) bool { return b[i] > x })
}

// edges returns the interval [lo, hi) containing x. ok is false if x
// is NaN or, in arbitrary mode, outside all intervals.
func (d IntervalCensored) edges(x float64) (lo, hi float64, ok bool) {
	if math.IsNaN(x) {
		return 0, 0, false
	}
	if d.regular() {
		k := d.cell(x)
		return k * d.Width, (k + 1) * d.Width, !math.IsInf(x, 0)
	}
	i := d.index(x)
	if i == 0 || i == len(d.Boundaries) {
		return 0, 0, false
	}
	return d.Boundaries[i-1], d.Boundaries[i], true
}

// baseCDF returns Dist.CDF(x), pinned to exactly 0 or 1 at and beyond
// the bounds of Dist's support.
func (d IntervalCensored) baseCDF(x float64) float64 {
	lo, hi := d.Dist.Support()
	switch {
	case x <= lo:
		return 0
	case x >= hi:
		return 1
	}
	return math.Max(0, math.Min(1, d.Dist.CDF(x)))
}

// Support returns the left edges of the intervals containing the
// bounds of Dist's support. In arbitrary mode these are clamped to
// the first and last intervals.
func (d IntervalCensored) Support() (float64, float64) {
	lo, hi := d.Dist.Support()
	if d.regular() {
		return d.floor(lo), d.floor(hi)
	}
	b := d.Boundaries
	n := len(b)
	edge := func(x float64) float64 {
		switch i := d.index(x); {
		case i == 0:
			return b[0]
		case i >= n-1:
			return b[n-2]
		default:
			return b[i-1]
		}
	}
	return edge(lo), edge(hi)
}

// snap maps x to the left edge of its interval. In arbitrary mode,
// values before the first boundary snap to it and values at or past
// the last boundary snap to the last boundary.
func (d IntervalCensored) snap(x float64) float64 {
	if d.regular() {
		return d.floor(x)
	}
	b := d.Boundaries
	switch i := d.index(x); i {
	case 0:
		return b[0]
	case len(b):
		return b[len(b)-1]
	default:
		return b[i-1]
	}
}

// PMF returns the probability of the interval containing x, which is
// 0 if x is in no interval.
func (d IntervalCensored) PMF(x float64) float64 {
	lo, hi, ok := d.edges(x)
	if !ok {
		return 0
	}
	return math.Max(0, d.baseCDF(hi)-d.baseCDF(lo))
}

// LogPMF returns log(PMF(x)), which is -Inf wherever PMF is 0.
func (d IntervalCensored) LogPMF(x float64) float64 {
	return mathx.Log(d.PMF(x))
}

// PDF is PMF, so IntervalCensored can stand in for any Dist.
func (d IntervalCensored) PDF(x float64) float64 { return d.PMF(x) }

// LogPDF is LogPMF.
func (d IntervalCensored) LogPDF(x float64) float64 { return d.LogPMF(x) }

// CDF returns Dist's CDF at the left edge of the interval containing
// x. In arbitrary mode it is 0 before the first boundary and Dist's
// CDF at the last boundary at or past it.
func (d IntervalCensored) CDF(x float64) float64 {
	if math.IsNaN(x) {
		return nan
	}
	if !d.regular() && d.index(x) == 0 {
		return 0
	}
	return d.baseCDF(d.snap(x))
}

func (d IntervalCensored) LogCDF(x float64) float64 {
	if math.IsNaN(x) {
		return nan
	}
	if !d.regular() && d.index(x) == 0 {
		return math.Inf(-1)
	}
	e := d.snap(x)
	lo, hi := d.Dist.Support()
	switch {
	case e <= lo:
		return math.Inf(-1)
	case e >= hi:
		return 0
	}
	return math.Min(0, d.Dist.LogCDF(e))
}

// CCDF returns 1 - CDF(x).
func (d IntervalCensored) CCDF(x float64) float64 {
	return 1 - d.CDF(x)
}

// LogCCDF returns log(1 - CDF(x)).
func (d IntervalCensored) LogCCDF(x float64) float64 {
	return logCCDF(d.LogCDF(x))
}

// PMFEach returns PMF(xs[i]) for each i. It evaluates Dist's CDF once
// per distinct interval edge, which is much cheaper than calling PMF
// for each point when many points share intervals and Dist's CDF is
// expensive.
func (d IntervalCensored) PMFEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	cache := make(map[float64]float64)
	cdf := func(x float64) float64 {
		c, ok := cache[x]
		if !ok {
			c = d.baseCDF(x)
			cache[x] = c
		}
		return c
	}
	for i, x := range xs {
		lo, hi, ok := d.edges(x)
		if !ok {
			continue
		}
		res[i] = math.Max(0, cdf(hi)-cdf(lo))
	}
	markDistribution("censor_pmf_batch_edges", float64(len(cache)))
	return res
}

// LogPMFEach returns LogPMF(xs[i]) for each i, sharing CDF
// evaluations like PMFEach.
func (d IntervalCensored) LogPMFEach(xs []float64) []float64 {
	pmf := d.PMFEach(xs)
	for i, p := range pmf {
		pmf[i] = mathx.Log(p)
	}
	return pmf
}

// Rand returns a draw from Dist snapped to the left edge of its
// interval.
func (d IntervalCensored) Rand() float64 {
	return d.snap(d.Dist.Rand())
}

// Quantile returns Dist's p'th quantile snapped to the left edge of
// its interval. It panics if p is not in [0, 1].
func (d IntervalCensored) Quantile(p float64) float64 {
	checkProb(p)
	return d.snap(d.Dist.Quantile(p))
}

// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import (
	"math"

	"gonum.org/v1/gonum/optimize"
)

// quantileTol is the largest |CDF(q) - p| accepted as a converged
// quantile.
var quantileTol = 1e-9

// solveQuantile finds q in [lo, hi] with cdf(q) ≈ p, starting from
// guess. It first minimizes (cdf(q) - p)² with Nelder–Mead and, if
// that misses quantileTol, polishes the result by bracketing and
// bisection. ok is false if neither reached the tolerance, in which
// case q is the best point found.
func solveQuantile(cdf func(float64) float64, p, guess, lo, hi float64) (q float64, ok bool) {
	clamp := func(x float64) float64 {
		return math.Max(lo, math.Min(hi, x))
	}
	resid := func(x float64) float64 {
		return math.Abs(cdf(x) - p)
	}
	if math.IsNaN(guess) || math.IsInf(guess, 0) {
		guess = 0
	}
	guess = clamp(guess)

	prob := optimize.Problem{
		Func: func(x []float64) float64 {
			r := cdf(clamp(x[0])) - p
			return r * r
		},
	}
	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   quantileTol * quantileTol / 100,
			Iterations: 20,
		},
		FuncEvaluations: 1000,
	}
	q = guess
	// Minimize reports early termination as an error but still
	// returns the best point.
	res, err := optimize.Minimize(prob, []float64{guess}, settings, &optimize.NelderMead{})
	if err != nil {
		logger().Ls("quantile: optimizer stopped early:", err)
	}
	if res != nil && len(res.X) == 1 && !math.IsNaN(res.X[0]) {
		q = clamp(res.X[0])
	}
	best := resid(q)
	if best <= quantileTol {
		return q, true
	}

	if bq, ok := bisectQuantile(cdf, p, q, lo, hi); ok {
		return bq, true
	} else if r := resid(bq); r < best {
		q = bq
	}
	return q, false
}

// bisectQuantile brackets p around start by expanding steps and then
// bisects for the smallest x with cdf(x) >= p, following the generic
// InvCDF of the stats packages. It reports false if p could not be
// bracketed.
func bisectQuantile(cdf func(float64) float64, p, start, lo, hi float64) (float64, bool) {
	var loX, hiX float64
	step := math.Max(1, math.Abs(start))
	if cdf(start) < p {
		loX, hiX = start, start
		for cdf(hiX) < p {
			if hiX >= hi {
				return hiX, false
			}
			loX, hiX = hiX, math.Min(hiX+step, hi)
			step *= 2
			if math.IsInf(step, 1) {
				return hiX, false
			}
		}
	} else {
		loX, hiX = start, start
		for cdf(loX) >= p {
			if loX <= lo {
				return loX, true
			}
			hiX, loX = loX, math.Max(loX-step, lo)
			step *= 2
			if math.IsInf(step, 1) {
				return loX, false
			}
		}
	}

	// Invariant: cdf(loX) < p <= cdf(hiX).
	for {
		mid := loX + (hiX-loX)/2
		if mid == loX || mid == hiX {
			return hiX, true
		}
		c := cdf(mid)
		if math.Abs(c-p) <= quantileTol*1e-3 {
			return mid, true
		}
		if c < p {
			loX = mid
		} else {
			hiX = mid
		}
	}
}

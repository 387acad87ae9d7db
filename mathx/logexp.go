// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mathx implements numerically stable log-space arithmetic
// and special functions used by the censored distributions.
package mathx // import "github.com/aclements/go-censored/mathx"

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

var negInf = math.Inf(-1)

// LogAddExp returns log(exp(a) + exp(b)) without overflowing or
// underflowing the intermediate exponentials.
func LogAddExp(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a < b {
		a, b = b, a
	}
	if math.IsInf(a, 1) {
		return a
	}
	return a + math.Log1p(math.Exp(b-a))
}

// LogSumExp returns log(Σ exp(xs[i])). It returns -Inf for an empty
// slice.
func LogSumExp(xs []float64) float64 {
	if len(xs) == 0 {
		return negInf
	}
	return floats.LogSumExp(xs)
}

// LogSubExp returns log(exp(a) - exp(b)).
//
// The difference is clamped at zero: if b >= a, including when both
// are -Inf, LogSubExp returns -Inf rather than NaN. This absorbs the
// tiny negative differences floating-point cancellation produces
// between two nearly equal probabilities.
func LogSubExp(a, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.NaN()
	}
	if b >= a {
		return negInf
	}
	if math.IsInf(b, -1) {
		return a
	}
	return a + Log1mExp(b-a)
}

// Log1mExp returns log(1 - exp(x)) for x <= 0.
//
// It switches between log(-expm1(x)) and log1p(-exp(x)) at -log(2),
// following Mächler (2012), "Accurately Computing log(1 − exp(−|a|))".
// Log1mExp(0) is -Inf and Log1mExp(-Inf) is 0. For x > 0 the result
// is NaN.
func Log1mExp(x float64) float64 {
	switch {
	case x > 0 || math.IsNaN(x):
		return math.NaN()
	case x == 0:
		return negInf
	case x > -math.Ln2:
		return math.Log(-math.Expm1(x))
	}
	return math.Log1p(-math.Exp(x))
}

// ClampDiff returns a - b, or 0 if the difference is negative.
func ClampDiff(a, b float64) float64 {
	if d := a - b; d > 0 {
		return d
	}
	return 0
}

// Log returns math.Log(x), treating x <= 0 as an exact zero
// probability and returning -Inf.
func Log(x float64) float64 {
	if x <= 0 {
		return negInf
	}
	return math.Log(x)
}

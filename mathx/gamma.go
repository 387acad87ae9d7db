// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// GammaIncLowerReg returns the regularized lower incomplete gamma
// function P(a, x) = γ(a, x)/Γ(a).
//
// Unlike mathext.GammaIncReg, this accepts x = +Inf (returning 1) and
// x <= 0 (returning 0). a must be positive; otherwise the underlying
// mathext routine panics.
func GammaIncLowerReg(a, x float64) float64 {
	switch {
	case x <= 0:
		return 0
	case math.IsInf(x, 1):
		return 1
	}
	return mathext.GammaIncReg(a, x)
}

// LogGamma returns log|Γ(x)|.
func LogGamma(x float64) float64 {
	lg, _ := math.Lgamma(x)
	return lg
}

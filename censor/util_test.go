// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func aeq(expect, got float64) bool {
	if math.IsInf(expect, 0) || math.IsNaN(expect) {
		return scalar.Same(expect, got)
	}
	return math.Abs(expect-got) < 0.00001
}

// testFunc checks f against the expected values in vals, in order of
// increasing argument.
func testFunc(t *testing.T, name string, f func(float64) float64, vals map[float64]float64) {
	t.Helper()
	xs := make([]float64, 0, len(vals))
	for x := range vals {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	for _, x := range xs {
		want, got := vals[x], f(x)
		if !aeq(want, got) {
			t.Errorf("%s(%v) = %v; want %v", name, x, got, want)
		}
	}
}

// checkMonotone checks that f is non-decreasing over xs.
func checkMonotone(t *testing.T, name string, f func(float64) float64, xs []float64) {
	t.Helper()
	prev := math.Inf(-1)
	for _, x := range xs {
		y := f(x)
		if y < prev {
			t.Errorf("%s not monotone: %s(%v) = %v < %v", name, name, x, y, prev)
		}
		prev = y
	}
}

// checkLogConsistent checks that logf(x) == log(f(x)) over xs,
// wherever f(x) is not so small that the log loses precision.
func checkLogConsistent(t *testing.T, name string, f, logf func(float64) float64, xs []float64) {
	t.Helper()
	for _, x := range xs {
		v, lv := f(x), logf(x)
		if v == 0 {
			if !math.IsInf(lv, -1) {
				t.Errorf("Log%s(%v) = %v; want -Inf since %s is 0", name, x, lv, name)
			}
			continue
		}
		if v < 1e-12 {
			continue
		}
		if !scalar.EqualWithinAbsOrRel(math.Log(v), lv, 1e-8, 1e-6) {
			t.Errorf("Log%s(%v) = %v; want log(%v) = %v", name, x, lv, v, math.Log(v))
		}
	}
}

func fmtDist(d Dist) string {
	return fmt.Sprintf("%T%+v", d, d)
}

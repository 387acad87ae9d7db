// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// An Integrator approximates definite integrals. It is the numeric
// collaborator of the primary censoring solver and can be replaced,
// for example with a cubature routine for unusual integrands.
type Integrator interface {
	// Integrate returns an approximation of the integral of f
	// from min to max. If min >= max, it returns 0.
	Integrate(f func(float64) float64, min, max float64) float64
}

// AdaptiveQuad is an adaptive Gauss–Legendre integrator. Each panel
// is integrated with a Points-point rule and compared against the
// sum of its two halves; panels that disagree by more than the
// tolerance are bisected, up to MaxDepth times.
//
// The zero value of AdaptiveQuad is the default integrator.
type AdaptiveQuad struct {
	// Points is the number of Gauss–Legendre nodes per panel.
	// If zero, it defaults to 15.
	Points int

	// AbsTol and RelTol bound the acceptable panel error. A panel
	// is accepted if its error estimate is at most
	// max(AbsTol, RelTol*|integral|). If zero, they default to
	// 1e-14 and 1e-10.
	AbsTol, RelTol float64

	// MaxDepth bounds the number of bisections of any panel.
	// If zero, it defaults to 16.
	MaxDepth int
}

// infinitePoints is the number of nodes used for integrals over an
// infinite range, which gonum maps onto a finite one and which are
// not refined.
const infinitePoints = 200

func (a AdaptiveQuad) Integrate(f func(float64) float64, min, max float64) float64 {
	if !(min < max) {
		return 0
	}
	n := a.Points
	if n <= 0 {
		n = 15
	}
	if math.IsInf(min, 0) || math.IsInf(max, 0) {
		// Let gonum choose a change of variables.
		return quad.Fixed(f, min, max, infinitePoints, nil, 0)
	}
	whole := quad.Fixed(f, min, max, n, quad.Legendre{}, 0)
	return a.refine(f, min, max, whole, n, 0)
}

func (a AdaptiveQuad) refine(f func(float64) float64, lo, hi, whole float64, n, depth int) float64 {
	absTol, relTol, maxDepth := a.AbsTol, a.RelTol, a.MaxDepth
	if absTol == 0 {
		absTol = 1e-14
	}
	if relTol == 0 {
		relTol = 1e-10
	}
	if maxDepth == 0 {
		maxDepth = 16
	}

	mid := lo + (hi-lo)/2
	left := quad.Fixed(f, lo, mid, n, quad.Legendre{}, 0)
	right := quad.Fixed(f, mid, hi, n, quad.Legendre{}, 0)
	sum := left + right
	if depth >= maxDepth || mid == lo || mid == hi || math.IsNaN(sum) ||
		math.Abs(sum-whole) <= math.Max(absTol, relTol*math.Abs(sum)) {
		return sum
	}
	return a.refine(f, lo, mid, left, n, depth+1) + a.refine(f, mid, hi, right, n, depth+1)
}

// FixedQuad integrates with a single Points-point Gauss–Legendre rule
// (or gonum's default change of variables for infinite bounds). It
// is cheaper and smoother in its arguments than AdaptiveQuad, but has
// no error control.
type FixedQuad struct {
	// Points is the number of quadrature nodes. If zero, it
	// defaults to 64.
	Points int

	// Concurrent is passed to quad.Fixed: if positive, up to
	// Concurrent integrand evaluations run in parallel. The
	// integrand must then be safe for concurrent use.
	Concurrent int
}

func (q FixedQuad) Integrate(f func(float64) float64, min, max float64) float64 {
	if !(min < max) {
		return 0
	}
	n := q.Points
	if n <= 0 {
		n = 64
	}
	var rule quad.FixedLocationer = quad.Legendre{}
	if math.IsInf(min, 0) || math.IsInf(max, 0) {
		rule = nil
	}
	return quad.Fixed(f, min, max, n, rule, q.Concurrent)
}

// defaultIntegrator returns integ, or the zero AdaptiveQuad if integ
// is nil.
func defaultIntegrator(integ Integrator) Integrator {
	if integ == nil {
		return AdaptiveQuad{}
	}
	return integ
}

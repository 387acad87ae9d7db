// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import (
	"math"
	"reflect"
	"sync"

	"github.com/aclements/go-censored/mathx"
)

// An AnalyticalCDF is a closed-form primary censored log CDF,
// log Pr[delay + primary <= x]. It is only called with x strictly
// greater than the delay's minimum support and finite, and with
// delay and primary of the concrete types it was registered for.
//
// A formula may panic with a *DomainError (or let gonum's special
// functions panic) when x or the parameters fall outside its domain;
// the caller converts such failures to -Inf.
type AnalyticalCDF func(delay, primary Dist, x float64) float64

type familyPair struct {
	delay, primary reflect.Type
}

var (
	analyticalMu  sync.RWMutex
	analyticalCDF = map[familyPair]AnalyticalCDF{}
)

// The built-in closed forms.
func init() {
	RegisterAnalyticalCDF(Gamma{}, Uniform{}, gammaUniformLogCDF)
	RegisterAnalyticalCDF(LogNormal{}, Uniform{}, logNormalUniformLogCDF)
	RegisterAnalyticalCDF(Weibull{}, Uniform{}, weibullUniformLogCDF)
}

// RegisterAnalyticalCDF registers f as the closed-form CDF for delay
// distributions of the concrete type of delay combined with primary
// event distributions of the concrete type of primary. The values
// themselves are only used for their types. A later registration for
// the same pair replaces an earlier one.
func RegisterAnalyticalCDF(delay, primary Dist, f AnalyticalCDF) {
	key := familyPair{reflect.TypeOf(delay), reflect.TypeOf(primary)}
	analyticalMu.Lock()
	defer analyticalMu.Unlock()
	analyticalCDF[key] = f
}

// HasAnalyticalCDF reports whether a closed-form CDF is registered
// for the concrete types of delay and primary.
func HasAnalyticalCDF(delay, primary Dist) bool {
	_, ok := lookupAnalyticalCDF(delay, primary)
	return ok
}

func lookupAnalyticalCDF(delay, primary Dist) (AnalyticalCDF, bool) {
	key := familyPair{reflect.TypeOf(delay), reflect.TypeOf(primary)}
	analyticalMu.RLock()
	defer analyticalMu.RUnlock()
	f, ok := analyticalCDF[key]
	return f, ok
}

// uniformWindowLogCDF computes the primary censored log CDF of a
// delay D under a uniform primary window of width w, given
//
//	t     = x - window start,
//	cdf   = F_D,
//	pcdf  = the CDF of the "partial expectation" distribution, for
//	        which E[D; D <= s] = exp(logMean) * pcdf(s).
//
// Integrating the window gives
//
//	Pr[D + P <= x] = (1/w) ∫_q^t F_D(s) ds,   q = max(t-w, 0)
//	               = F(t) - [mean·ΔG - (t-w)·ΔF] / w
//
// where ΔF = F(t) - F(q) and ΔG = pcdf(t) - pcdf(q). The bracket is
// assembled with log-space primitives; when q = 0 the sign of the
// second term flips.
func uniformWindowLogCDF(t, w float64, cdf, pcdf func(float64) float64, logMean float64) float64 {
	if t <= 0 {
		return math.Inf(-1)
	}
	q := math.Max(t-w, 0)
	ft := cdf(t)
	dF := mathx.ClampDiff(ft, cdf(q))
	dG := mathx.ClampDiff(pcdf(t), pcdf(q))

	var l float64
	if q > 0 {
		l = mathx.LogSubExp(logMean+mathx.Log(dG), math.Log(t-w)+mathx.Log(dF))
	} else {
		l = mathx.LogAddExp(logMean+mathx.Log(dG), mathx.Log(w-t)+mathx.Log(dF))
	}
	return mathx.LogSubExp(mathx.Log(ft), l-math.Log(w))
}

func uniformWindow(u Uniform, x float64) (t, w float64) {
	w = u.Max - u.Min
	if !(w > 0) {
		panic(&DomainError{Op: "uniform primary window", Arg: w})
	}
	return x - u.Min, w
}

// gammaUniformLogCDF is the closed form for a Gamma(k, θ) delay. The
// partial expectation is E[D; D <= s] = kθ F_{k+1}(s).
func gammaUniformLogCDF(delay, primary Dist, x float64) float64 {
	g, u := delay.(Gamma), primary.(Uniform)
	t, w := uniformWindow(u, x)
	k, theta := g.Shape(), g.Scale()
	shifted := NewGamma(k+1, theta)
	return uniformWindowLogCDF(t, w, g.CDF, shifted.CDF, math.Log(k*theta))
}

// logNormalUniformLogCDF is the closed form for a LogNormal(μ, σ)
// delay. The partial expectation is
// E[D; D <= s] = exp(μ + σ²/2) F_{LogNormal(μ+σ², σ)}(s).
func logNormalUniformLogCDF(delay, primary Dist, x float64) float64 {
	l, u := delay.(LogNormal), primary.(Uniform)
	t, w := uniformWindow(u, x)
	s2 := l.Sigma * l.Sigma
	shifted := NewLogNormal(l.Mu+s2, l.Sigma)
	return uniformWindowLogCDF(t, w, l.CDF, shifted.CDF, l.Mu+s2/2)
}

// weibullUniformLogCDF is the closed form for a Weibull(k, λ) delay.
// The partial expectation is
//
//	E[D; D <= s] = λ Γ(1 + 1/k) P(1 + 1/k, (s/λ)^k)
//
// where P is the regularized lower incomplete gamma function.
func weibullUniformLogCDF(delay, primary Dist, x float64) float64 {
	wb, u := delay.(Weibull), primary.(Uniform)
	t, w := uniformWindow(u, x)
	k, lambda := wb.K, wb.Lambda
	a := 1 + 1/k
	g := func(s float64) float64 {
		if s <= 0 {
			return 0
		}
		return mathx.GammaIncLowerReg(a, math.Pow(s/lambda, k))
	}
	return uniformWindowLogCDF(t, w, wb.CDF, g, math.Log(lambda)+mathx.LogGamma(a))
}

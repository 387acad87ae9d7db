// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aclements/go-censored/mathx"
)

// The base families below adapt gonum's distuv distributions to Dist.
// Each embeds the distuv value, so parameters, Quantile, Rand, Mean
// and the Src random source are those of gonum. Analytical CDFs are
// registered against these concrete types.

// Gamma is a gamma distribution. The embedded distuv.Gamma is
// parameterized by shape Alpha and rate Beta; see NewGamma for the
// shape/scale form.
type Gamma struct {
	distuv.Gamma
}

// NewGamma returns a gamma distribution with the given shape k and
// scale θ.
func NewGamma(shape, scale float64) Gamma {
	return Gamma{distuv.Gamma{Alpha: shape, Beta: 1 / scale}}
}

// Shape returns the shape parameter k.
func (g Gamma) Shape() float64 { return g.Alpha }

// Scale returns the scale parameter θ = 1/β.
func (g Gamma) Scale() float64 { return 1 / g.Beta }

func (Gamma) Support() (float64, float64) { return 0, inf }

func (g Gamma) CDF(x float64) float64 {
	if math.IsInf(x, 1) {
		return 1
	}
	return g.Gamma.CDF(x)
}

func (g Gamma) LogCDF(x float64) float64 { return mathx.Log(g.CDF(x)) }
func (g Gamma) PDF(x float64) float64    { return g.Prob(x) }
func (g Gamma) LogPDF(x float64) float64 { return g.LogProb(x) }

// LogNormal is a log-normal distribution: log X is normal with mean
// Mu and standard deviation Sigma.
type LogNormal struct {
	distuv.LogNormal
}

func NewLogNormal(mu, sigma float64) LogNormal {
	return LogNormal{distuv.LogNormal{Mu: mu, Sigma: sigma}}
}

func (LogNormal) Support() (float64, float64) { return 0, inf }

func (l LogNormal) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return l.LogNormal.CDF(x)
}

func (l LogNormal) LogCDF(x float64) float64 { return mathx.Log(l.CDF(x)) }
func (l LogNormal) PDF(x float64) float64    { return math.Exp(l.LogPDF(x)) }

func (l LogNormal) LogPDF(x float64) float64 {
	// distuv yields NaN at exactly 0.
	if x <= 0 {
		return math.Inf(-1)
	}
	return l.LogProb(x)
}

// Weibull is a Weibull distribution with shape K and scale Lambda.
type Weibull struct {
	distuv.Weibull
}

func NewWeibull(shape, scale float64) Weibull {
	return Weibull{distuv.Weibull{K: shape, Lambda: scale}}
}

func (Weibull) Support() (float64, float64) { return 0, inf }

func (w Weibull) LogCDF(x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}
	return mathx.Log1mExp(-math.Pow(x/w.Lambda, w.K))
}

func (w Weibull) PDF(x float64) float64 { return w.Prob(x) }

func (w Weibull) LogPDF(x float64) float64 {
	if x < 0 {
		return math.Inf(-1)
	}
	return w.LogProb(x)
}

// Exponential is an exponential distribution with the given Rate.
type Exponential struct {
	distuv.Exponential
}

func NewExponential(rate float64) Exponential {
	return Exponential{distuv.Exponential{Rate: rate}}
}

func (Exponential) Support() (float64, float64) { return 0, inf }

func (e Exponential) LogCDF(x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}
	return mathx.Log1mExp(-e.Rate * x)
}

func (e Exponential) PDF(x float64) float64 { return e.Prob(x) }

func (e Exponential) LogPDF(x float64) float64 {
	if x < 0 {
		return math.Inf(-1)
	}
	return e.LogProb(x)
}

// Uniform is a continuous uniform distribution on [Min, Max]. It is
// the usual primary event distribution: the primary event is known
// only to lie somewhere in a window.
type Uniform struct {
	distuv.Uniform
}

func NewUniform(min, max float64) Uniform {
	return Uniform{distuv.Uniform{Min: min, Max: max}}
}

func (u Uniform) Support() (float64, float64) { return u.Min, u.Max }

func (u Uniform) LogCDF(x float64) float64 { return mathx.Log(u.CDF(x)) }
func (u Uniform) PDF(x float64) float64    { return u.Prob(x) }
func (u Uniform) LogPDF(x float64) float64 { return u.LogProb(x) }

// Normal is a normal distribution with mean Mu and standard
// deviation Sigma.
type Normal struct {
	distuv.Normal
}

func NewNormal(mu, sigma float64) Normal {
	return Normal{distuv.Normal{Mu: mu, Sigma: sigma}}
}

func (Normal) Support() (float64, float64) { return -inf, inf }

func (n Normal) LogCDF(x float64) float64 { return mathx.Log(n.CDF(x)) }
func (n Normal) PDF(x float64) float64    { return n.Prob(x) }
func (n Normal) LogPDF(x float64) float64 { return n.LogProb(x) }

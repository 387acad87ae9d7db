// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import "math"

// DoubleCensoring configures DoubleIntervalCensored. The zero value
// means a Uniform(0, 1) primary window, no truncation, no interval
// censoring, and the analytical solver where available.
type DoubleCensoring struct {
	// Primary is the distribution of the primary event time
	// within its window. If nil, it is Uniform(0, 1).
	Primary Dist

	// Lower and Upper, if non-nil, truncate the primary censored
	// distribution to (*Lower, *Upper]. Either may be nil to leave
	// that side unbounded.
	Lower, Upper *float64

	// Width, if positive, censors the result to regular intervals
	// of this width. Boundaries, if non-nil, censors to arbitrary
	// intervals instead and takes precedence over Width.
	Width      float64
	Boundaries []float64

	// ForceNumeric disables closed-form CDFs.
	ForceNumeric bool

	// Integrator is the numeric integrator. If nil, it is the
	// zero AdaptiveQuad.
	Integrator Integrator
}

// DoubleIntervalCensored composes the censoring mechanisms that
// affect an observed delay: primary event censoring of delay, then
// truncation if opts sets a bound, then interval censoring if opts
// sets a width or boundaries. The result is a PrimaryCensored, a
// Truncated or an IntervalCensored, depending on which stages apply.
//
// The stages always apply in this order. Truncation acts on the
// continuous primary censored delay, before it is rounded to
// intervals.
func DoubleIntervalCensored(delay Dist, opts DoubleCensoring) (Dist, error) {
	primary := opts.Primary
	if primary == nil {
		primary = NewUniform(0, 1)
	}
	pc, err := NewPrimaryCensored(delay, primary, SolverFor(opts.Integrator, opts.ForceNumeric))
	if err != nil {
		return nil, err
	}
	var d Dist = pc

	if opts.Lower != nil || opts.Upper != nil {
		lower, upper := math.Inf(-1), math.Inf(1)
		if opts.Lower != nil {
			lower = *opts.Lower
		}
		if opts.Upper != nil {
			upper = *opts.Upper
		}
		t, err := Truncate(d, lower, upper)
		if err != nil {
			return nil, err
		}
		d = t
	}

	switch {
	case opts.Boundaries != nil:
		ic, err := NewIntervalCensoredBoundaries(d, opts.Boundaries)
		if err != nil {
			return nil, err
		}
		d = ic
	case opts.Width != 0:
		ic, err := NewIntervalCensored(d, opts.Width)
		if err != nil {
			return nil, err
		}
		d = ic
	}
	return d, nil
}

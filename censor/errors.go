// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import "github.com/pkg/errors"

// Construction errors. Constructors wrap these with the offending
// values; use errors.Is to test for them.
var (
	ErrDelaySupport     = errors.New("censor: delay distribution must have minimum support 0")
	ErrIntervalWidth    = errors.New("censor: interval width must be positive and finite")
	ErrBoundaries       = errors.New("censor: interval boundaries must be at least two strictly increasing finite points")
	ErrTruncationBounds = errors.New("censor: truncation lower bound must be less than upper bound")
	ErrZeroMass         = errors.New("censor: truncation bounds enclose no probability mass")
)

// badProbability is the panic value for a probability argument
// outside [0, 1].
const badProbability = "censor: probability out of [0, 1]"

func checkProb(p float64) {
	if !(p >= 0 && p <= 1) {
		panic(badProbability)
	}
}

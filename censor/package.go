// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package censor composes continuous delay distributions with the
// censoring mechanisms that arise when delays are observed in
// practice: uncertainty in the time of the initiating (primary)
// event, truncation of the observable range, and rounding of
// observations into reporting intervals (secondary censoring).
//
// Every distribution in this package, including the wrappers,
// implements Dist, so wrappers compose recursively. The usual
// composition is
//
//	PrimaryCensored → Truncated → IntervalCensored
//
// and DoubleIntervalCensored builds exactly that chain.
package censor // import "github.com/aclements/go-censored/censor"

import "math"

var inf = math.Inf(1)
var nan = math.NaN()

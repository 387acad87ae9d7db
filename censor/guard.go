// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import (
	"fmt"
	"math"
	"runtime"
	"strings"
)

// A DomainError reports that a function was evaluated outside the
// domain of one of its arguments. Closed-form CDFs and finite
// differences raise it (via panic) and the guarded evaluators in this
// package convert it to the appropriate zero-probability sentinel.
type DomainError struct {
	Op  string
	Arg float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("censor: %s: argument %g out of domain", e.Op, e.Arg)
}

// domainPanicPrefixes are the panic messages raised by gonum when a
// special function or distribution is evaluated out of bounds.
var domainPanicPrefixes = []string{"cephes:", "mathext:", "distuv:", "quad:"}

// isDomainPanic reports whether a recovered panic value is a domain,
// bounds, or argument failure. Anything else is a bug and must be
// re-raised.
func isDomainPanic(r any) bool {
	switch r := r.(type) {
	case *DomainError:
		return true
	case runtime.Error:
		return strings.Contains(r.Error(), "index out of range")
	case string:
		for _, p := range domainPanicPrefixes {
			if strings.HasPrefix(r, p) {
				return true
			}
		}
	}
	return false
}

// guardLog evaluates a log-probability, converting domain failures
// and NaN results to -Inf.
func guardLog(op string, f func() float64) (v float64) {
	defer func() {
		if r := recover(); r != nil {
			if !isDomainPanic(r) {
				panic(r)
			}
			logger().Ls(op, "recovered:", r)
			v = math.Inf(-1)
		}
	}()
	v = f()
	if math.IsNaN(v) {
		v = math.Inf(-1)
	}
	return v
}

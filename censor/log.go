// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package censor

import (
	"sync"
	"sync/atomic"

	count "github.com/jayalane/go-counter"
	ll "github.com/jayalane/go-lll"
)

var (
	ml     *ll.Lll
	mlOnce sync.Once

	countersOnce sync.Once
	countersOn   atomic.Bool
)

// Init sets up the package logger at level "none", so only warnings
// are written. It is called lazily on first use; calling it
// explicitly is only needed to force initialization order.
func Init() {
	mlOnce.Do(func() {
		ml = ll.Init("CENSOR", "none")
	})
}

// InitWithLogger makes the package log through l. It must be called
// before any other function in this package to take effect.
func InitWithLogger(l *ll.Lll) {
	mlOnce.Do(func() {
		ml = l
	})
}

func logger() *ll.Lll {
	Init()
	return ml
}

// InitCounters starts go-counter and enables the package's event
// counters (analytical CDF hits, numeric fallbacks, quantile
// non-convergence, batch cache sizes). Counting is off by default.
func InitCounters() {
	countersOnce.Do(func() {
		count.InitCounters()
		countersOn.Store(true)
	})
}

func countEvent(name string) {
	if countersOn.Load() {
		count.IncrSync(name)
	}
}

func countEventSuffix(name, suffix string) {
	if countersOn.Load() {
		count.IncrSyncSuffix(name, suffix)
	}
}

func markDistribution(name string, v float64) {
	if countersOn.Load() {
		count.MarkDistribution(name, v)
	}
}

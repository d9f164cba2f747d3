// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package stats accumulates the simulator's running statistics across
// two independent windowing schemes (by request-sequence count and by
// real elapsed time), each broken down both globally and per category.
package stats

import "webcachesim/pkg/counter"

// Window holds one window's worth of running counters: requests
// accumulate into each counter's live side, and Close flushes them all
// into history in one step.
type Window struct {
	ByteReq     counter.Counter
	ByteMiss    counter.Counter
	ObjectReq   counter.Counter
	ObjectMiss  counter.Counter
	RSS         counter.Counter
	ByteInCache counter.Counter
}

// Request folds one request into the window's demand-side counters.
// Every request is counted here exactly once, whether or not it turns
// out to miss.
func (w *Window) Request(size int64) {
	w.ByteReq.Add(size)
	w.ObjectReq.Add(1)
}

// Miss folds one miss into the window's miss-side counters. Called at
// most once per request, after the lookup (or filter rejection) has
// determined the outcome.
func (w *Window) Miss(size int64) {
	w.ByteMiss.Add(size)
	w.ObjectMiss.Add(1)
}

// Close flushes every accumulating counter into history and samples the
// two point-in-time gauges (rss, byteInCache) at the same boundary.
func (w *Window) Close(rss, byteInCache int64) {
	w.ByteReq.Close()
	w.ByteMiss.Close()
	w.ObjectReq.Close()
	w.ObjectMiss.Close()
	w.RSS.Sample(rss)
	w.ByteInCache.Sample(byteInCache)
}

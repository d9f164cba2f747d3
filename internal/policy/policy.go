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

// Package policy defines the cache replacement policy contract and a
// small registry of reference implementations. Real policies live
// outside this package and register themselves through Register.
package policy

import "webcachesim/internal/trace"

// Policy is the contract every cache replacement algorithm implements.
// A Policy is never used concurrently by the driver, so implementations
// need no internal locking.
type Policy interface {
	// SetSize establishes the cache's capacity in bytes. Called once
	// before the first request, and again at every sequence-window
	// boundary when metadata accounting is enabled, so implementations
	// must evict down to a reduced capacity synchronously.
	SetSize(bytes int64)

	// Configure passes through policy-specific options that the
	// simulation driver did not itself recognize.
	Configure(opts map[string]string) error

	// Lookup reports whether rec's object is currently cached. On a hit
	// the policy may update whatever metadata it keys eviction off of
	// (recency, frequency, the object's next occurrence for offline
	// policies), so Lookup is a mutating call.
	Lookup(rec *trace.Record) bool

	// Exist reports whether id is currently cached without updating any
	// policy metadata. Used by the driver's admission-filter bypass,
	// which must not disturb recency state.
	Exist(id int64) bool

	// Admit considers rec for admission into the cache, evicting as
	// necessary to make room. Returns whether rec was admitted.
	Admit(rec *trace.Record) bool

	// CurrentBytes reports the cache's present byte occupancy.
	CurrentBytes() int64

	// PeriodicTick is invoked by the driver at every sequence-window
	// boundary; a policy may rebalance, decay counters, or retrain.
	// Most policies do nothing here.
	PeriodicTick()

	// EmitStats returns free-form, policy-specific statistics to be
	// folded into the result document's per-policy section. May return
	// nil.
	EmitStats() map[string]int64
}

// Factory constructs a fresh, unconfigured Policy instance.
type Factory func() Policy

// Info describes one registered policy.
type Info struct {
	Name    string
	Offline bool // whether the policy consumes Record.NextSeq
	New     Factory
}

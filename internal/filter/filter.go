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

// Package filter implements the admission filter: a space-efficient
// membership structure consulted before a miss is offered to the cache
// policy, so that objects seen only once in the run never displace
// objects with repeat demand.
package filter

// Filter decides, for each id seen on a cache miss, whether this is its
// first sighting (and should be remembered but not yet admitted) or a
// repeat sighting (which clears it for admission). Implementations must
// be safe to use from a single goroutine only; the simulation driver
// never calls a Filter concurrently.
type Filter interface {
	// ExistOrInsert reports whether id has been seen before. As a side
	// effect, if id has not been seen, it is recorded so a subsequent
	// call returns true.
	ExistOrInsert(id int64) bool
}

// NullFilter is the no-op filter: every id is treated as already seen,
// so the admission decision always falls through to the cache policy
// unfiltered. This is the default when no admission filter is
// configured.
type NullFilter struct{}

func (NullFilter) ExistOrInsert(int64) bool { return true }

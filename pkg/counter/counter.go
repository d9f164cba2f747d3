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

// Package counter provides a small live/history counter primitive used
// throughout the simulator's statistics layer: a value accumulates on the
// hot path, and is periodically closed out into a historical series.
//
// The simulation driver is the sole writer of any given Counter (see
// internal/sim), so there are no atomics or locks here.
package counter

// Counter is a single running total plus its closed-out history.
type Counter struct {
	live    int64
	history []int64
}

// Add accumulates delta into the live value. delta may be negative, though
// the simulator only ever adds non-negative deltas (bytes and object
// counts cannot go backwards within a window).
func (c *Counter) Add(delta int64) {
	c.live += delta
}

// Live returns the counter's current, not-yet-closed value.
func (c *Counter) Live() int64 {
	return c.live
}

// Close appends the current live value to history and resets it to zero,
// returning the value that was appended.
func (c *Counter) Close() int64 {
	v := c.live
	c.history = append(c.history, v)
	c.live = 0
	return v
}

// History returns the closed-out values in emission order. The returned
// slice is shared with the Counter and must not be mutated by the caller.
func (c *Counter) History() []int64 {
	return c.history
}

// Len reports how many windows have been closed so far.
func (c *Counter) Len() int {
	return len(c.history)
}

// Sample appends v directly to history without touching the live value.
// Used for point-in-time samples taken at a window boundary (RSS, current
// cache byte occupancy) rather than values accumulated over the window.
func (c *Counter) Sample(v int64) {
	c.history = append(c.history, v)
}

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

// Package trace multiplexes one or more whitespace-delimited trace files
// into a single, globally time-ordered stream of requests.
package trace

import "math"

// NoNextSeq is the sentinel recorded in Record.NextSeq when a request has
// no future occurrence of the same id. It is strictly larger than any
// legitimate sequence number.
const NoNextSeq = int64(math.MaxInt64)

// Record is one request read off the merged trace stream. It carries no
// sequence number: the simulation driver counts logical positions itself,
// while the reader only knows about file-local ordering, not the logical
// position in the overall run.
type Record struct {
	T       int64
	ID      int64
	Size    int64
	NextSeq int64 // valid only when the reader is in offline mode
	Extra   []uint16
}

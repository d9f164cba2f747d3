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

package policy

import (
	"testing"

	"webcachesim/internal/trace"
)

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	p := newLRU()
	p.SetSize(10)

	p.Admit(&trace.Record{ID: 1, Size: 5})
	p.Admit(&trace.Record{ID: 2, Size: 5})
	if !p.Lookup(&trace.Record{ID: 1, Size: 5}) {
		t.Fatal("expected id 1 to be cached")
	}
	// id 1 is now most-recently-used; admitting id 3 should evict id 2.
	if !p.Admit(&trace.Record{ID: 3, Size: 5}) {
		t.Fatal("expected admit of id 3 to succeed")
	}
	if p.Exist(2) {
		t.Fatal("expected id 2 to have been evicted")
	}
	if !p.Exist(1) || !p.Exist(3) {
		t.Fatal("expected id 1 and id 3 to remain cached")
	}
	if p.CurrentBytes() != 10 {
		t.Fatalf("CurrentBytes() = %d, want 10", p.CurrentBytes())
	}
}

func TestLRUExistDoesNotTouchRecency(t *testing.T) {
	p := newLRU()
	p.SetSize(10)
	p.Admit(&trace.Record{ID: 1, Size: 5})
	p.Admit(&trace.Record{ID: 2, Size: 5})

	// Exist must not promote id 1, so it stays the eviction victim.
	p.Exist(1)
	p.Admit(&trace.Record{ID: 3, Size: 5})
	if p.Exist(1) {
		t.Fatal("expected id 1 to be evicted despite the Exist probe")
	}
	if !p.Exist(2) {
		t.Fatal("expected id 2 to survive")
	}
}

func TestLRUShrinksOnSetSize(t *testing.T) {
	p := newLRU()
	p.SetSize(20)
	p.Admit(&trace.Record{ID: 1, Size: 10})
	p.Admit(&trace.Record{ID: 2, Size: 10})

	p.SetSize(10)
	if p.CurrentBytes() > 10 {
		t.Fatalf("CurrentBytes() = %d after shrink, want <= 10", p.CurrentBytes())
	}
	if p.Exist(1) {
		t.Fatal("expected the least-recently-used entry to be evicted on shrink")
	}
	if !p.Exist(2) {
		t.Fatal("expected the most-recently-used entry to survive the shrink")
	}
}

func TestLRURejectsOversizedObject(t *testing.T) {
	p := newLRU()
	p.SetSize(10)
	if p.Admit(&trace.Record{ID: 1, Size: 20}) {
		t.Fatal("expected admit of an oversized object to fail")
	}
	if p.CurrentBytes() != 0 {
		t.Fatalf("CurrentBytes() = %d, want 0", p.CurrentBytes())
	}
}

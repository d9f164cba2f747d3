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

import "webcachesim/internal/trace"

func init() {
	Register(Info{Name: "belady", Offline: true, New: func() Policy { return newBelady() }})
}

type beladyEntry struct {
	size    int64
	nextSeq int64
}

// belady is the offline oracle: on every access it knows rec.NextSeq, the
// sequence number at which the same id next recurs, and evicts whichever
// cached object's next recurrence is furthest away (or never recurs).
// This requires Record.NextSeq, which only an offline-annotated trace
// provides (see internal/annotate), hence Offline: true above.
type belady struct {
	capacity int64
	used     int64
	entries  map[int64]*beladyEntry
}

func newBelady() *belady {
	return &belady{entries: make(map[int64]*beladyEntry)}
}

func (p *belady) SetSize(bytes int64) {
	p.capacity = bytes
	p.evictDown(0)
}

func (p *belady) Configure(opts map[string]string) error { return nil }

func (p *belady) Lookup(rec *trace.Record) bool {
	e, ok := p.entries[rec.ID]
	if !ok {
		return false
	}
	// A hit is the occurrence the stored nextSeq pointed at; the entry's
	// eviction rank must advance to the occurrence after this one.
	e.nextSeq = rec.NextSeq
	return true
}

func (p *belady) Exist(id int64) bool {
	_, ok := p.entries[id]
	return ok
}

func (p *belady) Admit(rec *trace.Record) bool {
	if e, ok := p.entries[rec.ID]; ok {
		e.nextSeq = rec.NextSeq
		return true
	}
	if rec.NextSeq == trace.NoNextSeq {
		// Never referenced again: admitting it would only waste space,
		// so the oracle declines.
		return false
	}
	if rec.Size > p.capacity {
		return false
	}
	p.evictDown(rec.Size)
	p.entries[rec.ID] = &beladyEntry{size: rec.Size, nextSeq: rec.NextSeq}
	p.used += rec.Size
	return true
}

// evictDown discards furthest-future entries until incoming more bytes
// fit within capacity.
func (p *belady) evictDown(incoming int64) {
	for p.used+incoming > p.capacity && len(p.entries) > 0 {
		victimID, victim := p.furthestFuture()
		delete(p.entries, victimID)
		p.used -= victim.size
	}
}

func (p *belady) furthestFuture() (int64, *beladyEntry) {
	var victimID int64
	var victim *beladyEntry
	for id, e := range p.entries {
		// Equal nextSeq values (e.g. several NoNextSeq entries) are broken
		// by the smaller id, so the victim never depends on map order.
		if victim == nil || e.nextSeq > victim.nextSeq || (e.nextSeq == victim.nextSeq && id < victimID) {
			victimID, victim = id, e
		}
	}
	return victimID, victim
}

func (p *belady) CurrentBytes() int64 { return p.used }

func (p *belady) PeriodicTick() {}

func (p *belady) EmitStats() map[string]int64 { return nil }

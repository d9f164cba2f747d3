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
	"container/list"

	"webcachesim/internal/trace"
)

func init() {
	Register(Info{Name: "lru", Offline: false, New: func() Policy { return newLRU() }})
}

type lruEntry struct {
	id   int64
	size int64
}

// lru is a minimal reference policy: it exists so the simulator always
// has at least one working, dependency-free policy to exercise the
// driver and registry against.
type lru struct {
	capacity int64
	used     int64
	ll       *list.List
	index    map[int64]*list.Element
}

func newLRU() *lru {
	return &lru{ll: list.New(), index: make(map[int64]*list.Element)}
}

func (p *lru) SetSize(bytes int64) {
	p.capacity = bytes
	p.evictDown(0)
}

func (p *lru) Configure(opts map[string]string) error { return nil }

func (p *lru) Lookup(rec *trace.Record) bool {
	el, ok := p.index[rec.ID]
	if !ok {
		return false
	}
	p.ll.MoveToFront(el)
	return true
}

func (p *lru) Exist(id int64) bool {
	_, ok := p.index[id]
	return ok
}

func (p *lru) Admit(rec *trace.Record) bool {
	if el, ok := p.index[rec.ID]; ok {
		p.ll.MoveToFront(el)
		return true
	}
	if rec.Size > p.capacity {
		return false
	}
	p.evictDown(rec.Size)
	el := p.ll.PushFront(&lruEntry{id: rec.ID, size: rec.Size})
	p.index[rec.ID] = el
	p.used += rec.Size
	return true
}

// evictDown removes least-recently-used entries until incoming more
// bytes would fit within capacity.
func (p *lru) evictDown(incoming int64) {
	for p.used+incoming > p.capacity && p.ll.Len() > 0 {
		back := p.ll.Back()
		evicted := back.Value.(*lruEntry)
		p.ll.Remove(back)
		delete(p.index, evicted.id)
		p.used -= evicted.size
	}
}

func (p *lru) CurrentBytes() int64 { return p.used }

func (p *lru) PeriodicTick() {}

func (p *lru) EmitStats() map[string]int64 { return nil }

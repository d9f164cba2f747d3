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

package sim

import (
	"context"
	"fmt"

	"webcachesim/internal/filter"
	"webcachesim/internal/policy"
	"webcachesim/internal/result"
	"webcachesim/internal/rss"
	"webcachesim/internal/stats"
	"webcachesim/internal/telemetry"
	"webcachesim/internal/trace"
)

// Driver runs one simulation end to end: read, decide admission, look
// up, account, repeat, checking ctx once per iteration so a cancelled
// run stops promptly without losing whatever statistics it has already
// accumulated.
type Driver struct {
	Config Config
	Reader *trace.Reader
	Policy policy.Policy
	Filter filter.Filter
	Prober rss.Prober

	Aggregator *stats.Aggregator

	seq         int64
	totalReqs   int64
	totalMisses int64
}

// NewDriver constructs a Driver from its already-built dependencies.
// Callers assemble the Reader/Policy/Filter/Prober themselves (typically
// from cmd/webcachesim-cli) so each can be swapped independently in
// tests. The policy is sized first and configured second, so Configure
// can rely on the capacity already being established.
func NewDriver(cfg Config, reader *trace.Reader, pol policy.Policy, f filter.Filter, prober rss.Prober) (*Driver, error) {
	if f == nil {
		f = filter.NullFilter{}
	}
	pol.SetSize(cfg.CacheSize)
	if err := pol.Configure(cfg.PolicyOpts); err != nil {
		return nil, fmt.Errorf("sim: configure policy: %w", err)
	}
	return &Driver{
		Config:     cfg,
		Reader:     reader,
		Policy:     pol,
		Filter:     f,
		Prober:     prober,
		Aggregator: stats.NewAggregator(cfg.SegmentWindow, cfg.RealTimeSegmentWindow),
	}, nil
}

// Run drives the simulation to completion (trace exhaustion, the
// NEarlyStop limit, or ctx cancellation, whichever comes first) and
// returns the finished result document.
func (d *Driver) Run(ctx context.Context) (result.Document, error) {
	// The first real-time window's upper bound comes from the earliest
	// pending timestamp across all files, rounded up to the next window
	// multiple, established before any record is consumed.
	if t, ok := d.Reader.PeekFirstTimestamp(); ok {
		d.Aggregator.PrimeRealTime(t)
	}

	skipped := int64(0)
	for {
		if err := ctx.Err(); err != nil {
			break
		}
		// seq_start burns loop iterations without consuming a trace
		// record or advancing seq.
		if skipped < d.Config.SeqStart {
			skipped++
			continue
		}
		if d.Config.NEarlyStop >= 0 && d.seq == d.Config.NEarlyStop {
			break
		}

		rec, ok := d.Reader.Next()
		if !ok {
			break
		}

		// Window boundaries are evaluated against this record's position
		// before the record itself is folded into the running totals, so
		// a window always reports the state as of strictly before the
		// record that crossed its boundary. RSS is sampled only when a
		// close will actually fire.
		if d.Aggregator.RealTimeBoundaryReached(rec.T) || d.Aggregator.SequenceBoundaryReached() {
			if err := d.closeWindows(rec.T); err != nil {
				return result.Document{}, err
			}
		}

		cat, hasCat := categoryOf(rec)
		d.Aggregator.RecordRequest(rec.Size, cat, hasCat)

		// An object already in the cache bypasses the admission filter
		// entirely; otherwise the filter records the sighting and blocks
		// first-sight admissions. NullFilter admits unconditionally.
		admitting := d.Policy.Exist(rec.ID) || d.Filter.ExistOrInsert(rec.ID)
		miss := true
		if admitting {
			if d.Policy.Lookup(rec) {
				miss = false
			} else {
				d.Aggregator.RecordMiss(rec.Size, cat, hasCat)
				d.Policy.Admit(rec)
			}
		} else {
			// First sight with the filter enabled: still a miss, but the
			// object is not offered to the cache.
			d.Aggregator.RecordMiss(rec.Size, cat, hasCat)
		}

		d.totalReqs++
		if miss {
			d.totalMisses++
		}
		telemetry.RequestsProcessed.Inc()
		telemetry.BytesRequested.Add(float64(rec.Size))

		d.seq++
	}

	rssNow, err := d.Prober.Sample()
	if err != nil {
		return result.Document{}, fmt.Errorf("sim: rss sample: %w", err)
	}
	d.Aggregator.Flush(rssNow, d.Policy.CurrentBytes())
	d.updateGauges()

	doc := result.Build(d.Aggregator, d.Config.TraceFiles, d.Config.CacheType, d.Config.CacheSize, d.Config.NExtraFields, d.Policy.EmitStats())
	return doc, nil
}

// closeWindows samples RSS once and closes every window boundary the
// record at timestamp t has crossed: first any due real-time windows,
// then the sequence window. A sequence-window close also drives the
// policy's periodic work and, when metadata accounting is on, shrinks
// the policy's logical capacity by the sampled RSS.
func (d *Driver) closeWindows(t int64) error {
	rssNow, err := d.Prober.Sample()
	if err != nil {
		return fmt.Errorf("sim: rss sample: %w", err)
	}
	occupancy := d.Policy.CurrentBytes()
	d.Aggregator.MaybeCloseRealTimeWindow(t, rssNow, occupancy)
	if d.Aggregator.MaybeCloseSequenceWindow(rssNow, occupancy) {
		d.Policy.PeriodicTick()
		if d.Config.MetadataInCacheSize {
			newSize := d.Config.CacheSize - rssNow
			if newSize < 0 {
				newSize = 0
			}
			d.Policy.SetSize(newSize)
		}
	}
	d.updateGauges()
	return nil
}

func (d *Driver) updateGauges() {
	telemetry.CacheOccupancyBytes.Set(float64(d.Policy.CurrentBytes()))
	if d.totalReqs > 0 {
		telemetry.MissRatio.Set(float64(d.totalMisses) / float64(d.totalReqs))
	}
}

// categoryOf derives the statistics-breakdown category from a record's
// extras: by convention, the first extra field. Records with no extras
// contribute only to the global series.
func categoryOf(rec *trace.Record) (cat int64, ok bool) {
	if len(rec.Extra) == 0 {
		return 0, false
	}
	return int64(rec.Extra[0]), true
}

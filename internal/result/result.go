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

// Package result builds the simulation's output document: the windowed
// statistics series, broken down globally and per category, plus the
// run's configuration for reproducibility.
package result

import (
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"webcachesim/internal/stats"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the full result document emitted at the end of a run.
// The segment_* vectors are indexed by sequence window in emission
// order; the real_time_segment_* vectors by real-time window.
type Document struct {
	TraceFiles            []string `json:"trace_files"`
	TraceID               string   `json:"trace_id"`
	CacheType             string   `json:"cache_type"`
	CacheSize             int64    `json:"cache_size"`
	NExtraFields          int      `json:"n_extra_fields"`
	SegmentWindow         int64    `json:"segment_window"`
	RealTimeSegmentWindow int64    `json:"real_time_segment_window"`

	NoWarmupByteMissRatio float64 `json:"no_warmup_byte_miss_ratio"`

	SegmentByteMiss    []int64 `json:"segment_byte_miss"`
	SegmentByteReq     []int64 `json:"segment_byte_req"`
	SegmentObjectMiss  []int64 `json:"segment_object_miss"`
	SegmentObjectReq   []int64 `json:"segment_object_req"`
	SegmentRSS         []int64 `json:"segment_rss"`
	SegmentByteInCache []int64 `json:"segment_byte_in_cache"`

	RealTimeSegmentByteMiss   []int64 `json:"real_time_segment_byte_miss"`
	RealTimeSegmentByteReq    []int64 `json:"real_time_segment_byte_req"`
	RealTimeSegmentObjectMiss []int64 `json:"real_time_segment_object_miss"`
	RealTimeSegmentObjectReq  []int64 `json:"real_time_segment_object_req"`
	RealTimeSegmentRSS        []int64 `json:"real_time_segment_rss"`

	StatsByExtraFeature []CategoryDoc `json:"stats_by_extra_feature,omitempty"`

	PolicyStats map[string]int64 `json:"policy_stats,omitempty"`
}

// CategoryDoc is one category's windowed statistics, under both series.
// Categories born after the first window close have shorter vectors
// than the globals.
type CategoryDoc struct {
	Feature int64 `json:"feature"`

	SegmentByteMiss   []int64 `json:"segment_byte_miss"`
	SegmentByteReq    []int64 `json:"segment_byte_req"`
	SegmentObjectMiss []int64 `json:"segment_object_miss"`
	SegmentObjectReq  []int64 `json:"segment_object_req"`

	RTSegmentByteMiss   []int64 `json:"rt_segment_byte_miss"`
	RTSegmentByteReq    []int64 `json:"rt_segment_byte_req"`
	RTSegmentObjectMiss []int64 `json:"rt_segment_object_miss"`
	RTSegmentObjectReq  []int64 `json:"rt_segment_object_req"`
}

// Build assembles a Document from the aggregator's accumulated series
// plus the run's static configuration and the policy's own free-form
// stats. traceFiles is preserved in invocation order; the document's
// identity key sorts a copy so the same file set always maps to the
// same trace_id regardless of argument order.
func Build(a *stats.Aggregator, traceFiles []string, cacheType string, cacheSize int64, nExtra int, policyStats map[string]int64) Document {
	seq := &a.Sequence.Global
	rt := &a.RealTime.Global

	doc := Document{
		TraceFiles:            traceFiles,
		TraceID:               traceID(traceFiles),
		CacheType:             cacheType,
		CacheSize:             cacheSize,
		NExtraFields:          nExtra,
		SegmentWindow:         a.SequenceWindow,
		RealTimeSegmentWindow: a.RealTimeWindow,

		NoWarmupByteMissRatio: ratio(seq.ByteMiss.History(), seq.ByteReq.History()),

		SegmentByteMiss:    seq.ByteMiss.History(),
		SegmentByteReq:     seq.ByteReq.History(),
		SegmentObjectMiss:  seq.ObjectMiss.History(),
		SegmentObjectReq:   seq.ObjectReq.History(),
		SegmentRSS:         seq.RSS.History(),
		SegmentByteInCache: seq.ByteInCache.History(),

		RealTimeSegmentByteMiss:   rt.ByteMiss.History(),
		RealTimeSegmentByteReq:    rt.ByteReq.History(),
		RealTimeSegmentObjectMiss: rt.ObjectMiss.History(),
		RealTimeSegmentObjectReq:  rt.ObjectReq.History(),
		RealTimeSegmentRSS:        rt.RSS.History(),

		PolicyStats: policyStats,
	}

	cats := a.Sequence.Categories()
	if len(cats) > 0 {
		features := make([]int64, 0, len(cats))
		for cat := range cats {
			features = append(features, cat)
		}
		sort.Slice(features, func(i, j int) bool { return features[i] < features[j] })

		doc.StatsByExtraFeature = make([]CategoryDoc, 0, len(features))
		for _, cat := range features {
			seqWin := cats[cat]
			cd := CategoryDoc{
				Feature:           cat,
				SegmentByteMiss:   seqWin.ByteMiss.History(),
				SegmentByteReq:    seqWin.ByteReq.History(),
				SegmentObjectMiss: seqWin.ObjectMiss.History(),
				SegmentObjectReq:  seqWin.ObjectReq.History(),
			}
			if rtWin := a.RealTime.Categories()[cat]; rtWin != nil {
				cd.RTSegmentByteMiss = rtWin.ByteMiss.History()
				cd.RTSegmentByteReq = rtWin.ByteReq.History()
				cd.RTSegmentObjectMiss = rtWin.ObjectMiss.History()
				cd.RTSegmentObjectReq = rtWin.ObjectReq.History()
			}
			doc.StatsByExtraFeature = append(doc.StatsByExtraFeature, cd)
		}
	}
	return doc
}

// ratio returns sum(miss)/sum(req), or 0 when no bytes were requested.
func ratio(miss, req []int64) float64 {
	var m, r int64
	for _, v := range miss {
		m += v
	}
	for _, v := range req {
		r += v
	}
	if r == 0 {
		return 0
	}
	return float64(m) / float64(r)
}

// traceID joins a sorted copy of the trace file list into one stable
// identity string for the run.
func traceID(traceFiles []string) string {
	sorted := make([]string, len(traceFiles))
	copy(sorted, traceFiles)
	sort.Strings(sorted)
	return strings.Join(sorted, "+")
}

// Marshal renders doc as compact JSON using jsoniter for speed; large
// runs can produce sizeable documents (one entry per window per series).
func Marshal(doc Document) ([]byte, error) {
	return json.Marshal(doc)
}

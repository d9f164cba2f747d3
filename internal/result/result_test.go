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

package result

import (
	stdjson "encoding/json"
	"testing"

	"webcachesim/internal/stats"
)

func TestBuildAndMarshalRoundTrips(t *testing.T) {
	a := stats.NewAggregator(0, 0)
	a.RecordRequest(100, 7, true)
	a.RecordRequest(50, 7, true)
	a.RecordMiss(50, 7, true)
	a.Flush(1024, 2048)

	doc := Build(a, []string{"a.tr"}, "lru", 1<<20, 0, map[string]int64{"evictions": 1})
	if got := doc.NoWarmupByteMissRatio; got != 50.0/150.0 {
		t.Fatalf("NoWarmupByteMissRatio = %v, want %v", got, 50.0/150.0)
	}
	b, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := stdjson.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["cache_type"] != "lru" {
		t.Fatalf("cache_type = %v, want lru", decoded["cache_type"])
	}
	for _, key := range []string{
		"no_warmup_byte_miss_ratio",
		"segment_byte_miss", "segment_byte_req",
		"segment_object_miss", "segment_object_req",
		"segment_rss", "segment_byte_in_cache",
		"real_time_segment_byte_miss", "real_time_segment_byte_req",
		"real_time_segment_object_miss", "real_time_segment_object_req",
		"real_time_segment_rss",
	} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("expected key %q in the marshaled document", key)
		}
	}
	feats, ok := decoded["stats_by_extra_feature"].([]interface{})
	if !ok || len(feats) != 1 {
		t.Fatalf("stats_by_extra_feature = %v, want a one-element array", decoded["stats_by_extra_feature"])
	}
	sub, ok := feats[0].(map[string]interface{})
	if !ok {
		t.Fatal("expected a sub-document per feature")
	}
	if sub["feature"] != float64(7) {
		t.Fatalf("feature = %v, want 7", sub["feature"])
	}
	if _, ok := sub["rt_segment_byte_req"]; !ok {
		t.Fatal("expected rt_segment_byte_req in the feature sub-document")
	}
}

func TestBuildSortsFeaturesAndTraceID(t *testing.T) {
	a := stats.NewAggregator(0, 0)
	a.RecordRequest(10, 9, true)
	a.RecordRequest(10, 2, true)
	a.RecordRequest(10, 5, true)
	a.Flush(0, 0)

	doc := Build(a, []string{"b.tr", "a.tr"}, "lru", 1<<20, 1, nil)
	if len(doc.StatsByExtraFeature) != 3 {
		t.Fatalf("got %d features, want 3", len(doc.StatsByExtraFeature))
	}
	for i, want := range []int64{2, 5, 9} {
		if doc.StatsByExtraFeature[i].Feature != want {
			t.Fatalf("feature[%d] = %d, want %d (sorted order)", i, doc.StatsByExtraFeature[i].Feature, want)
		}
	}
	// The identity key sorts the file list; the emitted array keeps
	// invocation order.
	if doc.TraceID != "a.tr+b.tr" {
		t.Fatalf("TraceID = %q, want %q", doc.TraceID, "a.tr+b.tr")
	}
	if doc.TraceFiles[0] != "b.tr" {
		t.Fatalf("TraceFiles = %v, want invocation order preserved", doc.TraceFiles)
	}
}

func TestBuildOmitsCategoryBreakdownWhenUnused(t *testing.T) {
	a := stats.NewAggregator(0, 0)
	a.RecordRequest(100, 0, false)
	a.Flush(0, 0)

	doc := Build(a, []string{"a.tr"}, "lru", 1<<20, 0, nil)
	if doc.StatsByExtraFeature != nil {
		t.Fatalf("StatsByExtraFeature = %v, want nil", doc.StatsByExtraFeature)
	}
}

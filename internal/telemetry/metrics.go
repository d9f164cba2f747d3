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

// Package telemetry exposes the simulator's live progress as prometheus
// metrics, registered once at init time.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "webcachesim",
		Name:      "requests_processed_total",
		Help:      "Total number of trace requests processed so far.",
	})

	BytesRequested = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "webcachesim",
		Name:      "bytes_requested_total",
		Help:      "Total number of bytes requested so far.",
	})

	CacheOccupancyBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "webcachesim",
		Name:      "cache_occupancy_bytes",
		Help:      "Current byte occupancy of the simulated cache.",
	})

	MissRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "webcachesim",
		Name:      "miss_ratio",
		Help:      "Running object miss ratio over the entire trace so far.",
	})
)

func init() {
	prometheus.MustRegister(RequestsProcessed, BytesRequested, CacheOccupancyBytes, MissRatio)
}

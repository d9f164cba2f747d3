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

// webcachesim-cli replays one or more web cache traces against a chosen
// cache replacement policy and reports hit/miss statistics windowed two
// ways: by request sequence count and by elapsed trace time.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"webcachesim/internal/annotate"
	"webcachesim/internal/filter"
	"webcachesim/internal/policy"
	"webcachesim/internal/publish"
	"webcachesim/internal/result"
	"webcachesim/internal/rss"
	"webcachesim/internal/sim"
	"webcachesim/internal/trace"
	"webcachesim/internal/tracecheck"
)

// repeatedFlag collects every occurrence of a repeatable flag, e.g.
// -trace a.tr -trace b.tr.
type repeatedFlag []string

func (r *repeatedFlag) String() string { return strings.Join(*r, ",") }
func (r *repeatedFlag) Set(v string) error {
	*r = append(*r, v)
	return nil
}

func main() {
	var traceFiles, opts repeatedFlag
	flag.Var(&traceFiles, "trace", "path to a trace file (repeatable)")
	flag.Var(&opts, "opt", "policy or simulation option as key=value (repeatable)")
	cacheType := flag.String("cache-type", "lru", fmt.Sprintf("cache replacement policy (%s)", strings.Join(policy.Names(), ", ")))
	cacheSize := flag.Int64("cache-size", 0, "cache capacity in bytes")
	offline := flag.Bool("offline", false, "trace files carry a leading next-occurrence field")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address")
	publishKind := flag.String("publish", "file", "where to publish the result document: file, redis")
	out := flag.String("out", "result.json", "output path (file publisher) or key (redis publisher)")
	redisAddr := flag.String("redis-addr", "127.0.0.1:6379", "redis address, when -publish=redis")
	annotateOnly := flag.String("annotate", "", "if set, only annotate this trace file for offline use and exit")
	flag.Parse()

	if *annotateOnly != "" {
		dst := annotate.Path(*annotateOnly)
		if err := annotate.Annotate(*annotateOnly, dst); err != nil {
			log.Fatalf("annotate: %v", err)
		}
		log.Printf("annotated trace written to %s", dst)
		return
	}

	if len(traceFiles) == 0 {
		log.Fatal("at least one -trace is required")
	}
	if *cacheSize <= 0 {
		log.Fatal("-cache-size must be positive")
	}

	optMap := make(map[string]string, len(opts))
	for _, raw := range opts {
		k, v, err := sim.ParseOpt(raw)
		if err != nil {
			log.Fatalf("%v", err)
		}
		optMap[k] = v
	}

	info, ok := policy.Lookup(*cacheType)
	if !ok {
		log.Fatalf("unknown cache type %q (known: %s)", *cacheType, strings.Join(policy.Names(), ", "))
	}

	// An offline policy consumes annotated traces. When the inputs are
	// plain (no -offline), annotate each one here and replay the
	// annotated variant instead.
	isOffline := *offline || info.Offline
	replayFiles := traceFiles
	if info.Offline && !*offline {
		replayFiles = make([]string, len(traceFiles))
		for i, p := range traceFiles {
			ann, err := annotate.EnsureAnnotated(p)
			if err != nil {
				log.Fatalf("annotate %s: %v", p, err)
			}
			replayFiles[i] = ann
		}
	}

	cfg, err := buildConfig(*cacheType, *cacheSize, isOffline, replayFiles, optMap)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if cfg.EnableTraceFormatCheck {
		checker := tracecheck.DefaultChecker{Offline: isOffline}
		for _, f := range replayFiles {
			if err := checker.Check(f); err != nil {
				log.Fatalf("trace format check failed: %v", err)
			}
		}
	}

	pol := info.New()

	var admissionFilter filter.Filter = filter.NullFilter{}
	if cfg.BloomFilter {
		admissionFilter = filter.NewCuckooFilter(cfg.BloomFilterCapacity)
	}

	reader, err := trace.NewReader(replayFiles, trace.Options{
		Offline: cfg.Offline,
		NExtra:  cfg.NExtraFields,
		UniSize: cfg.UniSize,
		Seed:    cfg.RNGSeed,
	})
	if err != nil {
		log.Fatalf("trace reader: %v", err)
	}
	defer reader.Close()

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Printf("webcachesim-cli metrics listening on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Print("received shutdown signal, finishing current window")
		cancel()
	}()

	driver, err := sim.NewDriver(cfg, reader, pol, admissionFilter, rss.DefaultProber{})
	if err != nil {
		log.Fatalf("%v", err)
	}
	doc, err := driver.Run(ctx)
	if err != nil {
		log.Fatalf("simulation: %v", err)
	}

	if err := publishResult(ctx, doc, *publishKind, *out, *redisAddr); err != nil {
		log.Printf("warning: failed to publish result: %v", err)
	}
}

func buildConfig(cacheType string, cacheSize int64, offline bool, traceFiles []string, opts map[string]string) (sim.Config, error) {
	nExtra, err := sim.ParseIntOpt(opts, "n_extra_fields", -1)
	if err != nil {
		return sim.Config{}, err
	}
	if nExtra < 0 {
		n, err := sim.DetectNExtraFields(traceFiles[0], offline)
		if err != nil {
			return sim.Config{}, fmt.Errorf("detecting n_extra_fields: %w", err)
		}
		nExtra = int64(n)
	}

	uniSize, err := sim.ParseBoolOpt(opts, "uni_size", false)
	if err != nil {
		return sim.Config{}, err
	}
	metaInSize, err := sim.ParseBoolOpt(opts, "is_metadata_in_cache_size", false)
	if err != nil {
		return sim.Config{}, err
	}
	bloomFilter, err := sim.ParseBoolOpt(opts, "bloom_filter", false)
	if err != nil {
		return sim.Config{}, err
	}
	bloomCapacity, err := sim.ParseIntOpt(opts, "bloom_filter_capacity", 1_000_000)
	if err != nil {
		return sim.Config{}, err
	}
	segmentWindow, err := sim.ParseIntOpt(opts, "segment_window", 1_000_000)
	if err != nil {
		return sim.Config{}, err
	}
	realTimeWindow, err := sim.ParseIntOpt(opts, "real_time_segment_window", 600)
	if err != nil {
		return sim.Config{}, err
	}
	nEarlyStop, err := sim.ParseIntOpt(opts, "n_early_stop", -1)
	if err != nil {
		return sim.Config{}, err
	}
	seqStart, err := sim.ParseIntOpt(opts, "seq_start", 0)
	if err != nil {
		return sim.Config{}, err
	}
	traceFormatCheck, err := sim.ParseBoolOpt(opts, "enable_trace_format_check", false)
	if err != nil {
		return sim.Config{}, err
	}
	// The seed defaults to a fixed value so two runs with the same inputs
	// and options produce identical documents; pass rng_seed to vary the
	// timestamp-tie ordering between files.
	rngSeed, err := sim.ParseIntOpt(opts, "rng_seed", 0)
	if err != nil {
		return sim.Config{}, err
	}

	return sim.Config{
		TraceFiles:             traceFiles,
		CacheType:              cacheType,
		CacheSize:              cacheSize,
		Offline:                offline,
		UniSize:                uniSize,
		MetadataInCacheSize:    metaInSize,
		BloomFilter:            bloomFilter,
		BloomFilterCapacity:    uint(bloomCapacity),
		SegmentWindow:          segmentWindow,
		RealTimeSegmentWindow:  realTimeWindow,
		NExtraFields:           int(nExtra),
		NEarlyStop:             nEarlyStop,
		SeqStart:               seqStart,
		EnableTraceFormatCheck: traceFormatCheck,
		RNGSeed:                rngSeed,
		PolicyOpts:             opts,
	}, nil
}

func publishResult(ctx context.Context, doc result.Document, kind, out, redisAddr string) error {
	b, err := result.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	var pub publish.Publisher
	switch kind {
	case "redis":
		rp := publish.NewRedisPublisher(redisAddr)
		defer rp.Close()
		pub = rp
	default:
		pub = publish.FilePublisher{}
	}
	return pub.Publish(ctx, out, b)
}

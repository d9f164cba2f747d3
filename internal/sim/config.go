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

// Package sim wires the trace reader, cache policy, admission filter,
// and statistics aggregator into the end-to-end simulation driver.
package sim

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds every option the simulation driver itself understands.
// Anything else passed via -opt is forwarded verbatim to the policy's
// Configure method.
type Config struct {
	TraceFiles []string
	CacheType  string
	CacheSize  int64
	Offline    bool

	UniSize                bool
	MetadataInCacheSize    bool
	BloomFilter            bool
	BloomFilterCapacity    uint
	SegmentWindow          int64
	RealTimeSegmentWindow  int64
	NExtraFields           int
	NEarlyStop             int64 // stop once seq reaches this; negative disables
	SeqStart               int64 // iterations to burn before the replay proper begins
	EnableTraceFormatCheck bool
	RNGSeed                int64

	PolicyOpts map[string]string
}

// DetectNExtraFields inspects the first non-empty line of path and
// returns the number of trailing extra fields implied by its column
// count: total fields minus 3 (t, id, size) for a plain trace, minus 4
// when offline is true (the offline variant carries a leading NextSeq
// field too). Assumes every record in a trace carries the same field
// count.
func DetectNExtraFields(path string, offline bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("sim: open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<24)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		base := 3
		if offline {
			base = 4
		}
		n := len(fields) - base
		if n < 0 {
			return 0, fmt.Errorf("sim: %s: only %d fields, need at least %d", path, len(fields), base)
		}
		return n, nil
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("sim: %s is empty", path)
}

// ParseOpt splits a "-opt key=value" flag value into its key and value.
func ParseOpt(raw string) (key, value string, err error) {
	idx := strings.IndexByte(raw, '=')
	if idx < 0 {
		return "", "", fmt.Errorf("sim: malformed -opt %q, want key=value", raw)
	}
	return raw[:idx], raw[idx+1:], nil
}

// ParseIntOpt looks up key in opts and parses it as an int64, removing
// it from opts on success so it is not also forwarded to the policy.
func ParseIntOpt(opts map[string]string, key string, dflt int64) (int64, error) {
	raw, ok := opts[key]
	if !ok {
		return dflt, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sim: -opt %s=%s: %w", key, raw, err)
	}
	delete(opts, key)
	return v, nil
}

// ParseBoolOpt is ParseIntOpt's counterpart for boolean options, accepted
// as 0/1 or true/false.
func ParseBoolOpt(opts map[string]string, key string, dflt bool) (bool, error) {
	raw, ok := opts[key]
	if !ok {
		return dflt, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("sim: -opt %s=%s: %w", key, raw, err)
	}
	delete(opts, key)
	return v, nil
}

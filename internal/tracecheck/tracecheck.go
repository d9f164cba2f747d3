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

// Package tracecheck performs a cheap, optional sanity scan over a trace
// file before a full run: enough to catch an obviously wrong file (wrong
// column count, non-numeric fields, non-monotonic timestamps) without
// paying the cost of the full two-pass offline pipeline. Like the rss
// package, no dependency in this codebase's pack exposes trace-format
// validation, so this is stdlib-only by necessity.
package tracecheck

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultSampleLines = 1000

// Checker validates the shape of a trace file.
type Checker interface {
	Check(path string) error
}

// DefaultChecker scans up to SampleLines records, verifying every field
// is an integer, the field count is consistent, and timestamps are
// non-decreasing within the sampled prefix. Offline shifts the
// timestamp column by one, since annotated traces carry a leading
// next-occurrence field that is in no particular order.
type DefaultChecker struct {
	SampleLines int
	Offline     bool
}

func (c DefaultChecker) Check(path string) error {
	limit := c.SampleLines
	if limit <= 0 {
		limit = defaultSampleLines
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("tracecheck: open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<24)

	wantFields := -1
	minFields := 3
	tField := 0
	if c.Offline {
		minFields = 4
		tField = 1
	}
	lastT := int64(-1)
	n := 0
	for n < limit && sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if wantFields == -1 {
			wantFields = len(fields)
		} else if len(fields) != wantFields {
			return fmt.Errorf("tracecheck: %s line %d: field count %d, want %d", path, n+1, len(fields), wantFields)
		}
		if len(fields) < minFields {
			return fmt.Errorf("tracecheck: %s line %d: only %d fields, want at least %d", path, n+1, len(fields), minFields)
		}
		for i, field := range fields {
			if _, err := strconv.ParseInt(field, 10, 64); err != nil {
				return fmt.Errorf("tracecheck: %s line %d field %d: not an integer: %q", path, n+1, i, field)
			}
		}
		t, _ := strconv.ParseInt(fields[tField], 10, 64)
		if t < lastT {
			return fmt.Errorf("tracecheck: %s line %d: timestamp %d precedes prior timestamp %d", path, n+1, t, lastT)
		}
		lastT = t
		n++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("tracecheck: scan %s: %w", path, err)
	}
	if n == 0 {
		return fmt.Errorf("tracecheck: %s is empty", path)
	}
	return nil
}

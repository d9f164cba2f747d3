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

package trace

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// fileState tracks one open trace file's read position and its last
// peeked-but-not-yet-consumed record. Keeping the peeked record cached
// here (rather than seeking the underlying file back and forth) means a
// file whose pending record was not chosen this round simply keeps it
// cached for the next call to Next.
type fileState struct {
	path     string
	f        *os.File
	sc       *bufio.Scanner
	pending  *Record
	readable bool
}

// Reader multiplexes one or more trace files into a single, globally
// time-ordered stream. A malformed record or I/O error drops that file,
// not the whole run. Files tied on the minimum timestamp are picked
// uniformly at random, using an RNG seeded at construction for
// determinism.
type Reader struct {
	files   []*fileState
	offline bool
	nExtra  int
	uniSize bool
	rng     *rand.Rand
}

// Options configures a Reader.
type Options struct {
	Offline bool  // whether records carry a leading NextSeq field
	NExtra  int   // number of trailing uint16 extra fields per record
	UniSize bool  // coerce every record's Size to 1
	Seed    int64 // RNG seed for the timestamp tie-break
}

// NewReader opens every path in paths and returns a Reader over them.
// Opening fails fast: a reader is either fully constructed or not
// constructed at all.
func NewReader(paths []string, opts Options) (*Reader, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("trace: at least one trace file is required")
	}
	files := make([]*fileState, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			for _, fs := range files {
				_ = fs.f.Close()
			}
			return nil, fmt.Errorf("trace: open %s: %w", p, err)
		}
		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), 1<<24)
		files = append(files, &fileState{path: p, f: f, sc: sc, readable: true})
	}
	return &Reader{
		files:   files,
		offline: opts.Offline,
		nExtra:  opts.NExtra,
		uniSize: opts.UniSize,
		rng:     rand.New(rand.NewSource(opts.Seed)),
	}, nil
}

// Close closes every underlying file handle. Safe to call once, after the
// simulation has finished reading (or given up on) the trace.
func (r *Reader) Close() error {
	var first error
	for _, fs := range r.files {
		if err := fs.f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// PeekFirstTimestamp reports the timestamp of the earliest pending record
// across all files, without consuming it. Used by the driver to seed the
// first real-time window boundary before the main loop starts. Returns
// ok=false if every file is already exhausted.
func (r *Reader) PeekFirstTimestamp() (t int64, ok bool) {
	tMin := int64(0)
	found := false
	for _, fs := range r.files {
		if !r.peek(fs) {
			continue
		}
		if !found || fs.pending.T < tMin {
			tMin = fs.pending.T
			found = true
		}
	}
	return tMin, found
}

// peek ensures fs has a pending record cached, reading and parsing the
// next line if needed. Returns false if the file is exhausted or has
// become unreadable (malformed line), in which case fs.readable is set to
// false so subsequent calls skip it immediately.
func (r *Reader) peek(fs *fileState) bool {
	if !fs.readable {
		return false
	}
	if fs.pending != nil {
		return true
	}
	if !fs.sc.Scan() {
		fs.readable = false
		return false
	}
	rec, err := r.parseLine(fs.sc.Text())
	if err != nil {
		fs.readable = false
		return false
	}
	fs.pending = rec
	return true
}

func (r *Reader) parseLine(line string) (*Record, error) {
	fields := strings.Fields(line)
	want := 3 + r.nExtra
	if r.offline {
		want++
	}
	if len(fields) < want {
		return nil, fmt.Errorf("trace: malformed record %q: want >= %d fields, got %d", line, want, len(fields))
	}
	idx := 0
	next := func() (int64, error) {
		v, err := strconv.ParseInt(fields[idx], 10, 64)
		idx++
		return v, err
	}

	rec := &Record{NextSeq: NoNextSeq}
	if r.offline {
		v, err := next()
		if err != nil {
			return nil, err
		}
		rec.NextSeq = v
	}
	t, err := next()
	if err != nil {
		return nil, err
	}
	id, err := next()
	if err != nil {
		return nil, err
	}
	size, err := next()
	if err != nil {
		return nil, err
	}
	rec.T, rec.ID, rec.Size = t, id, size
	if r.uniSize {
		rec.Size = 1
	}
	if r.nExtra > 0 {
		rec.Extra = make([]uint16, r.nExtra)
		for i := 0; i < r.nExtra; i++ {
			v, err := next()
			if err != nil {
				return nil, err
			}
			rec.Extra[i] = uint16(v)
		}
	}
	return rec, nil
}

// Next returns the next record in globally time-ordered order, or
// ok=false once every file is exhausted or unreadable.
func (r *Reader) Next() (rec *Record, ok bool) {
	// Drop files that went bad on a previous call.
	live := r.files[:0]
	for _, fs := range r.files {
		if fs.readable {
			live = append(live, fs)
		}
	}
	r.files = live

	type candidate struct {
		fs *fileState
	}
	var eligible []candidate
	tMin := int64(0)
	for _, fs := range r.files {
		if !r.peek(fs) {
			continue
		}
		if len(eligible) == 0 || fs.pending.T < tMin {
			tMin = fs.pending.T
		}
		eligible = append(eligible, candidate{fs})
	}
	if len(eligible) == 0 {
		return nil, false
	}

	var tied []*fileState
	for _, c := range eligible {
		if c.fs.pending.T == tMin {
			tied = append(tied, c.fs)
		}
	}

	choice := tied[0]
	if len(tied) > 1 {
		choice = tied[r.rng.Intn(len(tied))]
	}

	rec = choice.pending
	choice.pending = nil
	return rec, true
}

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

package annotate

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"webcachesim/internal/trace"
)

func TestAnnotateNextOccurrence(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tr")
	dst := filepath.Join(dir, "out.tr")

	// seq: 0 1 2 3 4, ids: 10 20 10 30 10
	content := "1 10 100\n2 20 200\n3 10 100\n4 30 300\n5 10 100\n"
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	if err := Annotate(src, dst); err != nil {
		t.Fatalf("Annotate: %v", err)
	}

	out, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}

	wantNextSeq := []int64{2, trace.NoNextSeq, 4, trace.NoNextSeq, trace.NoNextSeq}
	for i, line := range lines {
		fields := strings.Fields(line)
		got, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			t.Fatalf("line %d: bad next_seq field %q: %v", i, fields[0], err)
		}
		if got != wantNextSeq[i] {
			t.Fatalf("line %d: next_seq = %d, want %d", i, got, wantNextSeq[i])
		}
	}
}

func TestEnsureAnnotatedSkipsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tr")
	if err := os.WriteFile(src, []byte("1 10 100\n"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	dst, err := EnsureAnnotated(src)
	if err != nil {
		t.Fatalf("EnsureAnnotated: %v", err)
	}
	if dst != Path(src) {
		t.Fatalf("EnsureAnnotated returned %q, want %q", dst, Path(src))
	}

	// A second call must reuse the existing file rather than rewrite it.
	if err := os.WriteFile(dst, []byte("sentinel\n"), 0o644); err != nil {
		t.Fatalf("overwrite dst: %v", err)
	}
	if _, err := EnsureAnnotated(src); err != nil {
		t.Fatalf("EnsureAnnotated (second): %v", err)
	}
	out, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(out) != "sentinel\n" {
		t.Fatal("expected the existing annotated file to be left untouched")
	}
}

func TestAnnotatePreservesOriginalFields(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tr")
	dst := filepath.Join(dir, "out.tr")

	if err := os.WriteFile(src, []byte("1 10 100 7 8\n"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}
	if err := Annotate(src, dst); err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	out, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	fields := strings.Fields(strings.TrimSpace(string(out)))
	if len(fields) != 6 {
		t.Fatalf("got %d fields, want 6 (next_seq + 5 original): %v", len(fields), fields)
	}
	if fields[1] != "1" || fields[2] != "10" || fields[3] != "100" || fields[4] != "7" || fields[5] != "8" {
		t.Fatalf("original fields not preserved verbatim: %v", fields)
	}
}

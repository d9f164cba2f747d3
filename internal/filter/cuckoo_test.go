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

package filter

import "testing"

func TestCuckooFilterFirstSightingThenRepeat(t *testing.T) {
	f := NewCuckooFilter(1000)
	if f.ExistOrInsert(42) {
		t.Fatal("first sighting of id 42 should report false")
	}
	if !f.ExistOrInsert(42) {
		t.Fatal("second sighting of id 42 should report true")
	}
}

func TestCuckooFilterDistinctIDsIndependent(t *testing.T) {
	f := NewCuckooFilter(1000)
	f.ExistOrInsert(1)
	if f.ExistOrInsert(2) {
		t.Fatal("id 2 should be reported as unseen independent of id 1")
	}
}

func TestNullFilterAlwaysTrue(t *testing.T) {
	var f NullFilter
	if !f.ExistOrInsert(1) || !f.ExistOrInsert(1) {
		t.Fatal("NullFilter must always report true")
	}
}

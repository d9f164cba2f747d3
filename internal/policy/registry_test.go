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

package policy

import "testing"

func TestRegistryHasReferencePolicies(t *testing.T) {
	lruInfo, ok := Lookup("lru")
	if !ok {
		t.Fatal(`Lookup("lru") not found`)
	}
	if lruInfo.Offline {
		t.Fatal("lru should not be marked offline")
	}
	if lruInfo.New() == nil {
		t.Fatal("lru factory returned nil")
	}

	beladyInfo, ok := Lookup("belady")
	if !ok {
		t.Fatal(`Lookup("belady") not found`)
	}
	if !beladyInfo.Offline {
		t.Fatal("belady should be marked offline")
	}
}

func TestLookupUnknownPolicy(t *testing.T) {
	if _, ok := Lookup("does-not-exist"); ok {
		t.Fatal("expected ok=false for unregistered policy")
	}
}

func TestNamesIncludesRegistered(t *testing.T) {
	names := Names()
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	if !seen["lru"] || !seen["belady"] {
		t.Fatalf("Names() = %v, want it to include lru and belady", names)
	}
}

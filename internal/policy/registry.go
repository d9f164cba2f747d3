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

import "fmt"

var registry = map[string]Info{}

// Register adds a named policy to the registry. Called from each
// policy implementation's init().
func Register(info Info) {
	if _, exists := registry[info.Name]; exists {
		panic(fmt.Sprintf("policy: %q already registered", info.Name))
	}
	registry[info.Name] = info
}

// Lookup returns the registered policy named name, or ok=false if no
// such policy exists.
func Lookup(name string) (Info, bool) {
	info, ok := registry[name]
	return info, ok
}

// Names returns every registered policy name, for CLI usage text.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}

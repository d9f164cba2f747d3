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

package publish

import (
	"context"
	"fmt"
	"os"
)

// FilePublisher writes the result document to a path on the local
// filesystem: key is the file path, joined under Dir when Dir is set.
// This is the default publisher: every run produces a result even with
// no external backend configured.
type FilePublisher struct {
	Dir string
}

func (p FilePublisher) Publish(_ context.Context, key string, doc []byte) error {
	path := key
	if p.Dir != "" {
		path = p.Dir + string(os.PathSeparator) + key
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("publish: write %s: %w", path, err)
	}
	return nil
}

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

// Package publish ships the finished result document somewhere durable.
// A publish failure is never fatal to the run that produced the result:
// the simulation has already completed by the time Publish is called.
// Every implementation here returns its error to the caller, which logs
// it as a warning rather than treating it as a reason to exit non-zero.
package publish

import "context"

// Publisher ships a finished result document, identified by key, to some
// destination.
type Publisher interface {
	Publish(ctx context.Context, key string, doc []byte) error
}

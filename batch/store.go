// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package batch

import (
	"context"
	"slices"
	"sync"
)

// Store receives the results of a run. Implementations must be safe for
// concurrent use.
type Store interface {
	Add(ctx context.Context, r Result) error
}

// MemoryStore keeps results in memory.
type MemoryStore struct {
	mu      sync.Mutex
	results []Result
}

var _ Store = (*MemoryStore)(nil)

// Add implements [Store].
func (s *MemoryStore) Add(_ context.Context, r Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return nil
}

// Results returns the stored results, in no particular order.
func (s *MemoryStore) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.results)
}

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

// Package fuzztesting holds helpers shared by fuzz tests.
package fuzztesting

import (
	"context"
	"testing"
	"time"
)

// Budget is how long a fuzz test may spend on one input before the input
// is reported as too slow.
const Budget = 2 * time.Second

// RunWithTimeout runs fn a few times and fails t if the runs together take
// longer than [Budget]. The race detector slows parsing down considerably,
// so under it the budget is ten times larger.
//
// fn should stop early once ctx is done.
func RunWithTimeout(t testing.TB, fn func(ctx context.Context)) {
	t.Helper()

	allowed := Budget
	if raceEnabled {
		allowed *= 10
		t.Logf("allowing %v since race detector is enabled", allowed)
	}

	ctx, cancel := context.WithTimeout(context.Background(), allowed)
	defer cancel()
	for range 3 {
		if ctx.Err() != nil {
			break
		}
		fn(ctx)
	}
	if ctx.Err() != nil {
		t.Errorf("input took too long to process (> %v)", allowed)
	}
}

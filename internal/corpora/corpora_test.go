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

package corpora

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"SUM(A1)", " B1", "C1"},
		Lines("// header\nSUM(A1)\r\n\n   \n B1\nC1"),
	)
	assert.Nil(t, Lines(""))
}

func TestDiff(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Diff("a\nb\n", "a\nb\n"))

	diff := Diff("a\nc\n", "a\nb\n")
	assert.Contains(t, diff, "--- want")
	assert.Contains(t, diff, "+++ got")
	assert.Contains(t, diff, "-b")
	assert.Contains(t, diff, "+c")
}

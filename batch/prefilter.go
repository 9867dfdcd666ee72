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
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// Prefilter cheaply rules out formulas that cannot call any of a set of
// functions, without parsing them.
//
// It may accept formulas that do not actually call one of the functions,
// such as ones mentioning the name inside a string, but never rejects one
// that does.
type Prefilter struct {
	keywords []string

	mu      sync.Mutex // Matching mutates the matcher.
	matcher *ahocorasick.Matcher
}

// NewPrefilter returns a prefilter for the named functions. With no
// functions, every formula is accepted.
func NewPrefilter(functions []string) *Prefilter {
	p := new(Prefilter)
	seen := make(map[string]bool)
	for _, fn := range functions {
		keyword := strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(fn), "(")) + "("
		if keyword == "(" || seen[keyword] {
			continue
		}
		seen[keyword] = true
		p.keywords = append(p.keywords, keyword)
	}

	if len(p.keywords) > 0 {
		p.matcher = ahocorasick.NewStringMatcher(p.keywords)
	}
	return p
}

// Match returns whether formula may call one of the prefilter's functions.
func (p *Prefilter) Match(formula string) bool {
	return p.matcher == nil || len(p.Keywords(formula)) > 0
}

// Keywords returns the functions whose names, followed by an opening
// parenthesis, occur in formula.
func (p *Prefilter) Keywords(formula string) []string {
	if p.matcher == nil {
		return nil
	}

	p.mu.Lock()
	hits := p.matcher.Match([]byte(strings.ToUpper(formula)))
	p.mu.Unlock()

	out := make([]string, 0, len(hits))
	for _, hit := range hits {
		out = append(out, strings.TrimSuffix(p.keywords[hit], "("))
	}
	return out
}

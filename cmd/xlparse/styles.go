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

package main

import (
	"fmt"

	"github.com/fatih/color"
)

// styles holds the color formatters for human-readable output.
type styles struct {
	heading *color.Color
	name    *color.Color
	value   *color.Color
	ok      *color.Color
	failed  *color.Color
	muted   *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		heading: color.New(color.Bold),
		name:    color.New(color.FgHiBlue),
		value:   color.New(color.FgYellow),
		ok:      color.New(color.Bold, color.FgGreen),
		failed:  color.New(color.Bold, color.FgRed),
		muted:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{s.heading, s.name, s.value, s.ok, s.failed, s.muted} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// colorEnabled resolves a --color mode. In auto mode, color is used when
// standard output is a terminal and NO_COLOR is unset.
func colorEnabled(mode string) (bool, error) {
	switch mode {
	case "", "auto":
		return !color.NoColor, nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid color mode %q: want auto, always or never", mode)
	}
}

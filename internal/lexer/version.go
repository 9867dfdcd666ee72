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

package lexer

import (
	"fmt"
	"slices"
	"strings"
)

// Version selects which Excel release's built-in function names are
// recognized as [token.ExcelFunction]. Names that a version does not know
// lex as user-defined functions instead.
type Version int8

const (
	Excel2010 Version = iota
	Excel2013
	Excel2016
	Excel2019
	Excel365

	// DefaultVersion is used when no version is requested.
	DefaultVersion = Excel365
)

var versionNames = [...]string{
	Excel2010: "2010",
	Excel2013: "2013",
	Excel2016: "2016",
	Excel2019: "2019",
	Excel365:  "365",
}

// String implements [fmt.Stringer].
func (v Version) String() string {
	if v < 0 || int(v) >= len(versionNames) {
		return fmt.Sprintf("Version(%d)", int(v))
	}
	return "Excel" + versionNames[v]
}

// Versions returns every known version, oldest first.
func Versions() []Version {
	return []Version{Excel2010, Excel2013, Excel2016, Excel2019, Excel365}
}

// ParseVersion parses a version name such as "2016", "excel2016" or "365".
func ParseVersion(s string) (Version, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "excel")
	for v, n := range versionNames {
		if n == name {
			return Version(v), nil
		}
	}
	return 0, fmt.Errorf("unknown Excel version %q", s)
}

// Functions returns the built-in function names known to v, sorted.
//
// The reference functions INDEX, OFFSET, INDIRECT, IF and CHOOSE are never
// part of this list; they lex as [token.RefFunction] or
// [token.CondRefFunction].
func Functions(v Version) []string {
	var out []string
	for i, table := range functionTables {
		if Version(i) > v {
			break
		}
		out = append(out, strings.Fields(table)...)
	}
	slices.Sort(out)
	return out
}

// functionPrefixes are the storage prefixes Excel writes in front of
// functions newer than the file format.
var functionPrefixes = []string{"_xlfn.", "_xlws."}

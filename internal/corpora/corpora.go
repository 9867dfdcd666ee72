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

// Package corpora runs golden-file tests over a directory of formula
// corpora.
//
// Each test case is a file holding one formula per line. Running a case
// produces one or more outputs, which are compared against files next to
// the case named after it plus an output extension. Setting the refresh
// environment variable to a glob rewrites the outputs of matching cases
// instead.
package corpora

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a table-driven test whose table lives in the file system.
type Corpus struct {
	// Root is the directory holding the cases, relative to the file that
	// calls [Corpus.Run].
	Root string

	// Refresh names an environment variable holding a glob of cases whose
	// outputs should be rewritten rather than checked.
	Refresh string

	// Extension is the extension, without a dot, of case files.
	Extension string
	// Outputs are the outputs of each case. A missing output file is the
	// same as an empty one.
	Outputs []Output

	// Test runs one case, returning one string per element of Outputs.
	Test func(t *testing.T, path string, formulas []string) []string
}

// Output is one output of a test case.
type Output struct {
	// Extension is appended to the case's file name to find this output:
	// for case "sum.xlf" and extension "print", "sum.xlf.print".
	Extension string

	// Compare checks an output. Nil means byte-for-byte comparison.
	Compare Compare
}

// Compare compares a result against its golden file, returning an empty
// string when they match or a description of the difference.
type Compare func(got, want string) string

// Run runs every case in the corpus as a subtest.
func (c Corpus) Run(t *testing.T) {
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)
	t.Logf("corpora: searching for cases in %q", root)

	cases, err := doublestar.Glob(os.DirFS(root), "**/*."+c.Extension, doublestar.WithFilesOnly())
	if err != nil {
		t.Fatal("corpora: listing cases:", err)
	}
	if len(cases) == 0 {
		t.Fatalf("corpora: no *.%s files in %q", c.Extension, root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("corpora: refreshing test data because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, name := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(root, filepath.FromSlash(name))
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("corpora: loading case %q: %v", path, err)
			}

			results := c.Test(t, name, Lines(string(data)))
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: got %d results for %d outputs", len(results), len(c.Outputs))
			}

			refreshing := refresh != "" && matches(refresh, name)
			for i, output := range c.Outputs {
				out := path + "." + output.Extension
				if refreshing {
					if err := write(out, results[i]); err != nil {
						t.Errorf("corpora: refreshing %q: %v", out, err)
					}
					continue
				}

				want, err := os.ReadFile(out)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("corpora: loading output %q: %v", out, err)
					continue
				}
				compare := output.Compare
				if compare == nil {
					compare = Diff
				}
				if diff := compare(results[i], string(want)); diff != "" {
					t.Errorf("output mismatch for %q:\n%s", out, diff)
				}
			}
		})
	}
}

// Lines splits a case file into formulas, dropping blank lines and lines
// starting with "//".
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "//") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Diff compares got and want byte-for-byte, describing a mismatch as a
// colorized unified diff.
func Diff(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	added := color.New(color.Bold, color.FgHiGreen)
	removed := color.New(color.Bold, color.FgHiRed)
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = added.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removed.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}

func matches(pattern, name string) bool {
	ok, _ := doublestar.Match(pattern, name)
	return ok
}

// write replaces the output file at path, removing it if the output is
// empty.
func write(path, output string) error {
	if output == "" {
		err := os.Remove(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.WriteFile(path, []byte(output), 0o644)
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine test file's directory")
	}
	return filepath.Dir(file)
}

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

// Command xlparse parses and analyzes Excel formulas.
//
// Formulas are given as arguments, or read from standard input one per
// line when there are none:
//
//	xlparse parse 'SUM(A1:A3)'
//	xlparse refs --json < formulas.txt
//	xlparse batch --db results.db 'corpus/**/*.txt'
//
// Defaults for most flags can be set in a YAML file, .xlparse.yaml in the
// working directory unless --config says otherwise.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "xlparse:", err)
		os.Exit(1)
	}
}

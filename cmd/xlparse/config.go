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
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultConfigPath is read if it exists and --config is not given.
const defaultConfigPath = ".xlparse.yaml"

// config holds defaults for command-line flags.
type config struct {
	// Version is the Excel version whose functions are recognized.
	Version string `yaml:"version"`
	// Workers bounds concurrent parses in batch mode.
	Workers int `yaml:"workers"`
	// MaxFailures stops a batch run after this many invalid formulas.
	MaxFailures int `yaml:"max_failures"`
	// Color is one of auto, always or never.
	Color string `yaml:"color"`
	// Functions restricts batch runs to formulas calling these.
	Functions []string `yaml:"functions"`
	// Database is a SQLite file that batch results are written to.
	Database string `yaml:"database"`
}

// loadConfig reads the config file at path. A missing file is only an
// error if required is set.
func loadConfig(path string, required bool) (config, error) {
	var cfg config
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Copyright 2024 comfylang Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// fallbackConfigTOML is used verbatim when the project config file
// cannot be read.
const fallbackConfigTOML = `[target]
arch = "arm32"
output = "build/main.s"
`

// targetSection is the `[target]` table: the architecture tag and an
// optional output path override.
type targetSection struct {
	Arch   string `toml:"arch"`
	Output string `toml:"output"`
}

// metaSection is an optional `[meta]` table; nothing in the core reads
// it, but a project.comfx with author/version metadata still loads
// cleanly.
type metaSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Author  string `toml:"author"`
}

// projectConfig is the `project.comfx` TOML schema.
type projectConfig struct {
	Target  targetSection     `toml:"target"`
	Meta    metaSection       `toml:"meta"`
	Defines map[string]string `toml:"defines"`
}

// loadConfig reads path as TOML, falling back to the arm32/build/main.s
// default when the file is missing. A file that exists but fails to
// parse as TOML is still a fatal error.
func loadConfig(path string) (projectConfig, error) {
	content, err := os.ReadFile(path)
	text := fallbackConfigTOML
	if err == nil {
		text = string(content)
	}

	var cfg projectConfig
	if _, err := toml.Decode(text, &cfg); err != nil {
		return projectConfig{}, err
	}
	return cfg, nil
}

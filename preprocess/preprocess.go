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

// Package preprocess implements the textual inclusion and conditional
// compilation pass. The core never touches the filesystem directly:
// it goes through the FileSystem capability, so the whole pass is
// testable against an in-memory fixture without touching disk.
package preprocess

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/comfylang/comfyc/diagnostic"
)

// SystemLibPath is the fixed location `#include<NAME>` resolves
// against.
const SystemLibPath = "/usr/include/comfylang"

// Config is the flat key-value mapping #if/#else conditions evaluate
// against. It is one of the data types every pass shares.
type Config map[string]string

// FileSystem is the read-only capability the preprocessor needs:
// check whether a path exists, read its contents, and canonicalize it
// for cycle detection. Production code uses OSFileSystem; tests can
// substitute an in-memory fake.
type FileSystem interface {
	Exists(path string) bool
	ReadFile(path string) (string, error)
	Canonicalize(path string) (string, error)
	Dir(path string) string
}

// Expand preprocesses entryPath, following #include directives and
// evaluating #if/#else/#endif blocks against config, and returns the
// fully expanded source text.
func Expand(fs FileSystem, entryPath string, userIncludeDirs []string, config Config) (string, error) {
	e := &expander{fs: fs, userDirs: userIncludeDirs, config: config, seen: map[string]bool{}}
	return e.expandFile(entryPath)
}

type expander struct {
	fs       FileSystem
	userDirs []string
	config   Config
	seen     map[string]bool
}

func (e *expander) expandFile(path string) (string, error) {
	canonical, err := e.fs.Canonicalize(path)
	if err != nil {
		return "", &diagnostic.IoError{Path: path, Err: err}
	}

	if e.seen[canonical] {
		return "", &diagnostic.CircularInclude{Path: canonical}
	}
	e.seen[canonical] = true
	defer delete(e.seen, canonical)

	source, err := e.fs.ReadFile(canonical)
	if err != nil {
		return "", &diagnostic.IoError{Path: canonical, Err: err}
	}

	var output strings.Builder
	var conditionStack []bool
	currentActive := true

	for _, line := range strings.Split(strings.TrimSuffix(source, "\n"), "\n") {
		trimmed := strings.TrimSpace(line)

		if condition, ok := parseIfDirective(trimmed); ok {
			conditionStack = append(conditionStack, currentActive)
			currentActive = currentActive && evaluateCondition(condition, e.config)
			continue
		}

		if trimmed == "#else" {
			if len(conditionStack) == 0 {
				return "", &diagnostic.UnmatchedConditional{File: canonical, Detail: "#else with no matching #if"}
			}
			outer := conditionStack[len(conditionStack)-1]
			currentActive = outer && !currentActive
			continue
		}

		if trimmed == "#endif" {
			if len(conditionStack) == 0 {
				return "", &diagnostic.UnmatchedConditional{File: canonical, Detail: "#endif with no matching #if"}
			}
			currentActive = conditionStack[len(conditionStack)-1]
			conditionStack = conditionStack[:len(conditionStack)-1]
			continue
		}

		if !currentActive {
			continue
		}

		if userName, ok := parseUserInclude(trimmed); ok {
			resolved, err := e.resolveUserInclude(userName, e.fs.Dir(path))
			if err != nil {
				return "", err
			}
			expanded, err := e.expandFile(resolved)
			if err != nil {
				return "", err
			}
			output.WriteString(expanded)
			continue
		}

		if sysName, ok := parseSystemInclude(trimmed); ok {
			sysPath := filepath.Join(SystemLibPath, sysName)
			expanded, err := e.expandFile(sysPath)
			if err != nil {
				return "", err
			}
			output.WriteString(expanded)
			continue
		}

		output.WriteString(line)
		output.WriteString("\n")
	}

	if len(conditionStack) != 0 {
		return "", &diagnostic.UnmatchedConditional{File: canonical, Detail: "unclosed #if at end of file"}
	}

	return output.String(), nil
}

func (e *expander) resolveUserInclude(name, currentDir string) (string, error) {
	if currentDir != "" {
		candidate := filepath.Join(currentDir, name)
		if e.fs.Exists(candidate) {
			return candidate, nil
		}
	}

	candidate, found := lo.Find(e.userDirs, func(dir string) bool {
		return e.fs.Exists(filepath.Join(dir, name))
	})
	if !found {
		return "", &diagnostic.UnresolvedInclude{Name: name}
	}
	return filepath.Join(candidate, name), nil
}

// parseIfDirective reports the condition text of a `#if EXPR` line.
func parseIfDirective(line string) (string, bool) {
	const prefix = "#if "
	if strings.HasPrefix(line, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
	}
	return "", false
}

// parseSystemInclude reports NAME from `#include<NAME>`.
func parseSystemInclude(line string) (string, bool) {
	if strings.HasPrefix(line, "#include<") && strings.HasSuffix(line, ">") &&
		!strings.HasPrefix(line, `#include<"`) {
		inner := strings.TrimSuffix(strings.TrimPrefix(line, "#include<"), ">")
		return strings.TrimSpace(inner), true
	}
	return "", false
}

// parseUserInclude reports NAME from `#include<"NAME">`.
func parseUserInclude(line string) (string, bool) {
	if strings.HasPrefix(line, `#include<"`) && strings.HasSuffix(line, `">`) {
		inner := strings.TrimSuffix(strings.TrimPrefix(line, `#include<"`), `">`)
		return strings.TrimSpace(inner), true
	}
	return "", false
}

// evaluateCondition implements the three-form grammar from spec.md
// §4.1: KEY == "VALUE", KEY != "VALUE", or a bare KEY truthiness check.
func evaluateCondition(condition string, config Config) bool {
	if key, value, ok := strings.Cut(condition, "=="); ok {
		k := strings.TrimSpace(key)
		v := unquote(strings.TrimSpace(value))
		got, present := config[k]
		return present && got == v
	}
	if key, value, ok := strings.Cut(condition, "!="); ok {
		k := strings.TrimSpace(key)
		v := unquote(strings.TrimSpace(value))
		got, present := config[k]
		return !present || got != v
	}
	got, present := config[strings.TrimSpace(condition)]
	return present && (got == "true" || got == "1")
}

func unquote(s string) string {
	return strings.Trim(s, `"`)
}

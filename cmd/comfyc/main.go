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

// Command comfyc is the CLI entry point for the comfylang compiler:
// the glue around the core passes (argument parsing, file I/O,
// project configuration). It resolves the project config, reads the
// entry file, preprocesses, tokenizes, parses, generates, and writes
// the assembly output, as a github.com/spf13/cobra command.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comfylang/comfyc/codegen"
	"github.com/comfylang/comfyc/lex"
	"github.com/comfylang/comfyc/parse"
	"github.com/comfylang/comfyc/preprocess"
)

var (
	verbose      bool
	outputFlag   string
	includePaths []string
	configFlag   string
)

var command = &cobra.Command{
	Use:   "comfyc <source>",
	Short: "compile a comfylang source file to ARM32 GAS assembly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return compile(args[0])
	},
}

func init() {
	command.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "output assembly path (overrides project.comfx [target].output)")
	command.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "dump tokens, AST, preprocessed source, and assembly to stdout")
	command.PersistentFlags().StringSliceVarP(&includePaths, "include-path", "I", nil, "additional user include search directory")
	command.PersistentFlags().StringVarP(&configFlag, "config", "c", "project.comfx", "path to the project TOML config")
}

func compile(sourcePath string) error {
	cfg, err := loadConfig(configFlag)
	if err != nil {
		return fmt.Errorf("loading %s: %w", configFlag, err)
	}

	outputPath := outputFlag
	if outputPath == "" {
		outputPath = cfg.Target.Output
	}
	if outputPath == "" {
		stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
		outputPath = filepath.Join("build", stem+".s")
	}

	userDirs := append([]string{"./src"}, includePaths...)

	preprocessed, err := preprocess.Expand(preprocess.OSFileSystem{}, sourcePath, userDirs, cfg.Defines)
	if err != nil {
		return fmt.Errorf("preprocessing %s: %w", sourcePath, err)
	}

	tokens, err := lex.Tokenize(sourcePath, preprocessed)
	if err != nil {
		return fmt.Errorf("tokenizing %s: %w", sourcePath, err)
	}

	program, err := parse.Parse(tokens)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", sourcePath, err)
	}

	if verbose {
		fmt.Println("Preprocessed Content:")
		fmt.Println(preprocessed)
		fmt.Println("Tokens:")
		for _, t := range tokens {
			fmt.Println("  ", t)
		}
		fmt.Printf("AST: %#v\n", program)
	}

	arch := cfg.Target.Arch
	if arch == "" {
		arch = "arm32"
	}
	assembly, err := codegen.Generate(program, arch)
	if err != nil {
		return fmt.Errorf("generating code for %s: %w", sourcePath, err)
	}

	if verbose {
		fmt.Println("Generated Assembly:")
		fmt.Println(assembly)
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(outputPath, []byte(assembly), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	fmt.Printf("Assembly written to %s (arch=%s)\n", outputPath, arch)
	return nil
}

func main() {
	if err := command.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

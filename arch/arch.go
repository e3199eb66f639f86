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

// Package arch is the registry the code generator dispatches through
// for architecture-specific detail: the syscall-number table and the
// svc-convention instruction formatters. Backends register themselves
// by name, so adding a second architecture later is a matter of
// registering another Backend, not touching codegen.
package arch

import (
	"github.com/samber/lo"

	"github.com/comfylang/comfyc/diagnostic"
)

// Backend is what codegen needs from a target architecture: its
// syscall number table and the instruction text for invoking one.
type Backend interface {
	// Name is the architecture tag as it appears in project config
	// ("arm32 | arm64 | x86 | x86_64").
	Name() string

	// SyscallNumber returns the kernel syscall number for one of the
	// five built-ins, or an UnknownSyscall error.
	SyscallNumber(name string) (int, error)

	// Syscall1/2/3 emit the register-loading + svc instruction
	// sequence for a syscall taking 1, 2, or 3 arguments, each either
	// a decimal literal or a label to load via `ldr`.
	Syscall1(number int, arg0 string) string
	Syscall2(number int, arg0, arg1 string) string
	Syscall3(number int, arg0, arg1, arg2 string) string
}

var backends = map[string]Backend{}

// Register adds a Backend under its own Name(). Called from each
// backend's package init.
func Register(b Backend) {
	backends[b.Name()] = b
}

// Get resolves an architecture tag to its registered Backend.
// Unsupported tags fail explicitly with UnknownArchitecture rather
// than falling back to a default.
func Get(name string) (Backend, error) {
	if b, ok := backends[name]; ok {
		return b, nil
	}
	return nil, &diagnostic.UnknownArchitecture{Name: name}
}

// Supported lists the architecture tags with a registered backend,
// for CLI usage/error messages.
func Supported() []string {
	return lo.Keys(backends)
}

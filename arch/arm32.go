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

package arch

import (
	"fmt"
	"strings"

	"github.com/comfylang/comfyc/diagnostic"
)

// arm32SyscallNumbers is the minimum syscall table this back end
// needs to support: exit, read, write, open, sysinfo.
var arm32SyscallNumbers = map[string]int{
	"exit":    1,
	"read":    3,
	"write":   4,
	"open":    5,
	"sysinfo": 143,
}

// arm32 implements Backend for the ARM EABI svc convention: syscall
// number in r7, arguments in r0..r2, trap via `svc #0`.
type arm32 struct{}

func init() {
	Register(arm32{})
}

func (arm32) Name() string { return "arm32" }

func (arm32) SyscallNumber(name string) (int, error) {
	n, ok := arm32SyscallNumbers[name]
	if !ok {
		return 0, &diagnostic.UnknownSyscall{Name: name}
	}
	return n, nil
}

func (arm32) Syscall1(number int, arg0 string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\tmov r7, #%d\n", number)
	fmt.Fprintf(&b, "\t%s\n", loadArg(arg0, "r0"))
	b.WriteString("\tsvc #0\n")
	return b.String()
}

func (arm32) Syscall2(number int, arg0, arg1 string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\tmov r7, #%d\n", number)
	fmt.Fprintf(&b, "\t%s\n", loadArg(arg0, "r0"))
	fmt.Fprintf(&b, "\t%s\n", loadArg(arg1, "r1"))
	b.WriteString("\tsvc #0\n")
	return b.String()
}

func (arm32) Syscall3(number int, arg0, arg1, arg2 string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\tmov r7, #%d\n", number)
	fmt.Fprintf(&b, "\t%s\n", loadArg(arg0, "r0"))
	fmt.Fprintf(&b, "\t%s\n", loadArg(arg1, "r1"))
	fmt.Fprintf(&b, "\t%s\n", loadArg(arg2, "r2"))
	b.WriteString("\tsvc #0\n")
	return b.String()
}

// loadArg implements the argument-materialization rule: a decimal
// literal moves immediate, anything else is a label loaded with
// `ldr`.
func loadArg(value, register string) string {
	if isDecimal(value) {
		return fmt.Sprintf("mov %s, #%s", register, value)
	}
	return fmt.Sprintf("ldr %s, =%s", register, value)
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

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

package codegen

import (
	"fmt"
	"strings"
)

// syscallRetVal is the common return-value buffer every non-exit
// syscall stores its result into.
const syscallRetVal = "syscall_ret_val"

// section is the generator's append-only owner of one GAS section's
// lines. A Generator owns three of these (rodata, bss, text) created
// fresh per compilation; nothing here is package-level state.
type section struct {
	lines []string
}

func (s *section) push(line string) {
	s.lines = append(s.lines, line)
}

func (s *section) pushf(format string, args ...any) {
	s.push(fmt.Sprintf(format, args...))
}

// sectionWriter owns the three GAS sections a compilation produces.
// It is created once per Generate call and handed off by the caller
// once traversal completes; nothing about it is shared across
// compilations.
type sectionWriter struct {
	rodata section
	bss    section
	text   section
}

func newSectionWriter() *sectionWriter {
	w := &sectionWriter{}
	w.bss.pushf(".comm %s, 4, 4", syscallRetVal)
	return w
}

// declareBSS reserves raw, unlabeled storage (a function parameter's
// slot gets no `_len` sibling).
func (w *sectionWriter) declareBSS(label string, size int) {
	w.bss.pushf(".lcomm %s, %d", label, size)
}

// declareBSSWithLen reserves storage and a `_len` absolute symbol
// sized to it — buffer declarations get a `_len` sibling the same way
// string literals do, so read/sysinfo callers can size into them
// uniformly.
func (w *sectionWriter) declareBSSWithLen(label string, size int) {
	w.bss.pushf(".lcomm %s, %d", label, size)
	w.bss.pushf("%s_len = %d", label, size)
}

// rodataWord emits an immutable numeric variable: booleans are
// encoded 0/1 and chars as their code point by the caller before this
// is invoked.
func (w *sectionWriter) rodataWord(label string, value int32) {
	w.rodata.pushf("%s: .word %d", label, value)
}

// rodataStringWithLen emits an immutable string variable and its
// `_len` sibling computed from the assembled size (`.-label`).
func (w *sectionWriter) rodataStringWithLen(label, value string) {
	w.rodata.pushf("%s: .asciz %q", label, value)
	w.rodata.pushf("%s_len = .-%s", label, label)
}

// pushText appends one already-formatted instruction or label line.
func (w *sectionWriter) pushText(line string) {
	w.text.push(line)
}

// render assembles the three sections into the final GAS text, in the
// fixed .rodata / .bss / .text layout every compilation produces.
func (w *sectionWriter) render() string {
	var b strings.Builder

	b.WriteString(".section .rodata\n")
	for _, l := range w.rodata.lines {
		b.WriteString("\t")
		b.WriteString(l)
		b.WriteString("\n")
	}

	b.WriteString(".section .bss\n")
	for _, l := range w.bss.lines {
		b.WriteString("\t")
		b.WriteString(l)
		b.WriteString("\n")
	}

	b.WriteString(".section .text\n")
	b.WriteString(".global _start\n")
	for _, l := range w.text.lines {
		b.WriteString(l)
		b.WriteString("\n")
	}

	return b.String()
}

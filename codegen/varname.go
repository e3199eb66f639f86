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
	"math/rand"
	"strings"
)

// varnameAlphabet is a cryptographically-weak but uniformly
// distributed 62-character alphanumeric source; collision handling
// for generated labels is by probability, not detection.
const varnameAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// generateStrVarname produces a synthetic `.rodata` label of the form
// `str_XXXXXXXX` for a string literal that has no declared identifier
// of its own (a write/open call's inline string argument).
func generateStrVarname(rnd *rand.Rand) string {
	var b strings.Builder
	b.WriteString("str_")
	for i := 0; i < 8; i++ {
		b.WriteByte(varnameAlphabet[rnd.Intn(len(varnameAlphabet))])
	}
	return b.String()
}

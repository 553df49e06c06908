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

package token

import (
	"iter"
	"strings"
)

// Source is a pull-based producer of tokens.
//
// Sources are single-pass: once Next returns false, it keeps returning false.
type Source interface {
	// Next returns the next token, or false when the stream is exhausted.
	Next() (Token, bool)
}

// Slice is a [Source] over a fixed list of tokens.
type Slice struct {
	Tokens []Token
	next   int
}

// NewSlice returns a [Source] that yields tokens in order.
func NewSlice(tokens ...Token) *Slice {
	return &Slice{Tokens: tokens}
}

// Next implements [Source].
func (s *Slice) Next() (Token, bool) {
	if s.next >= len(s.Tokens) {
		return Token{}, false
	}
	s.next++
	return s.Tokens[s.next-1], true
}

// All adapts a [Source] into an iterator. Iterating consumes the source.
func All(src Source) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := src.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Collect drains a [Source] into a slice.
func Collect(src Source) []Token {
	var out []Token
	for tok := range All(src) {
		out = append(out, tok)
	}
	return out
}

// Concat concatenates the text of every non-synthetic token.
func Concat(tokens []Token) string {
	var out strings.Builder
	for _, tok := range tokens {
		if !tok.Synthetic {
			out.WriteString(tok.Text)
		}
	}
	return out.String()
}

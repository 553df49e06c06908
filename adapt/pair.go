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

package adapt

import (
	"github.com/bufbuild/frontc/operator"
	"github.com/bufbuild/frontc/token"
)

// Modifiers are the words [WordPairer] turns into decorators.
var Modifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true,
	"static": true, "sealed": true, "export": true, "abstract": true,
	"override": true, "const": true, "var": true,
}

// WordPairer rewrites a modifier keyword followed by another word into a
// decorator application: public fn f() becomes @public fn f().
//
// const and var followed by exactly one word become @const let and @var
// let. A word directly after . never acts as an operator or modifier, and
// a modifier already written as @public is left alone.
type WordPairer struct {
	in    *Lookahead
	table *operator.Table
	out   outbox

	prev token.Token
}

// NewWordPairer wraps src.
func NewWordPairer(src token.Source, table *operator.Table) *WordPairer {
	return &WordPairer{in: NewLookahead(src), table: table}
}

// Next implements [token.Source].
func (w *WordPairer) Next() (token.Token, bool) {
	if tok, ok := w.out.pop(); ok {
		w.prev = tok
		return tok, true
	}

	tok, ok := w.in.Next()
	if !ok {
		return tok, false
	}

	switch {
	case tok.Kind != token.Word:

	case w.prev.IsPunct(".") || w.prev.IsPunct("?."):
		tok.MayPrefix = false
		tok.MayInfix = false

	case Modifiers[tok.Text] && !w.prev.IsPunct("@"):
		next, ok := w.in.Peek(0)
		if !ok || next.Kind != token.Word {
			break
		}

		at := token.Synthesize(token.Punctuation, "@", tok.Left)
		w.table.Classify(&at)
		w.out.PushBack(tok)

		if (tok.Text == "const" || tok.Text == "var") && w.wordRun() == 1 {
			let := token.Synthesize(token.Word, "let", tok.Right)
			w.table.Classify(&let)
			w.out.PushBack(let)
		}
		tok = at
	}

	w.prev = tok
	return tok, true
}

// wordRun counts the words at the front of the lookahead buffer.
func (w *WordPairer) wordRun() int {
	n := 0
	for {
		tok, ok := w.in.Peek(n)
		if !ok || tok.Kind != token.Word {
			return n
		}
		n++
	}
}

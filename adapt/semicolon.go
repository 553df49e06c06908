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

// SemicolonInserter drops space and comment tokens, and inserts synthetic ;
// tokens at line breaks:
//
//   - before a line-initial {, unless the previous token expects an operand;
//   - after a line-final }, unless the next token can continue it.
//
// At most one ; is inserted per line break.
type SemicolonInserter struct {
	src   token.Source
	table *operator.Table
	out   outbox

	prev     token.Token
	havePrev bool
}

// NewSemicolonInserter wraps src.
func NewSemicolonInserter(src token.Source, table *operator.Table) *SemicolonInserter {
	return &SemicolonInserter{src: src, table: table}
}

// Next implements [token.Source].
func (s *SemicolonInserter) Next() (token.Token, bool) {
	if tok, ok := s.out.pop(); ok {
		return tok, true
	}

	sawBreak := false
	var tok token.Token
	for {
		var ok bool
		if tok, ok = s.src.Next(); !ok {
			return tok, false
		}
		if !tok.Kind.IsSkippable() {
			break
		}
		if !tok.Synthetic && countBreaks(tok.Text) > 0 {
			sawBreak = true
		}
	}

	first := !s.havePrev
	s.havePrev = true
	if sawBreak && !first && s.insertBefore(tok) {
		semi := token.Synthesize(token.Punctuation, ";", s.prev.Right)
		s.table.Classify(&semi)
		s.out.PushBack(tok)
		s.prev = tok
		return semi, true
	}

	s.prev = tok
	return tok, true
}

// insertBefore returns whether a separator belongs between the previous
// token and tok, given a line break between them.
func (s *SemicolonInserter) insertBefore(tok token.Token) bool {
	switch {
	case tok.IsPunct("{") && tok.MayBracket:
		return !s.wantsOperand(s.prev)
	case s.prev.IsPunct("}") && s.prev.MayBracket:
		return !s.continues(tok)
	default:
		return false
	}
}

// wantsOperand returns whether prev cannot end an expression, so that a {
// after it continues the same statement.
func (s *SemicolonInserter) wantsOperand(prev token.Token) bool {
	switch {
	case prev.Kind == token.LeftDelimiter:
		return true
	case prev.Kind != token.Punctuation && prev.Kind != token.Word:
		return false
	case prev.MayBracket && s.table.Closes(prev):
		return false
	case prev.MayBracket:
		return true // An open bracket.
	case prev.MayPrefix:
		return true
	}

	op := s.table.Infix(prev)
	return op != nil && op.Type != operator.Postfix
}

// continues returns whether next can continue an expression ending in }.
func (s *SemicolonInserter) continues(next token.Token) bool {
	return next.MayInfix ||
		next.Kind == token.RightDelimiter ||
		s.table.Closes(next)
}

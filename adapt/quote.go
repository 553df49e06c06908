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
	"strings"

	"github.com/bufbuild/frontc/token"
)

// QuoteTagger wraps every string and regular expression group in synthetic
// parentheses, so that the group parses as one operand.
//
// The synthetic ( may act as a call when it directly follows a word, so that
// tag"..." parses as a call of tag.
type QuoteTagger struct {
	src token.Source
	out outbox

	// One entry per open left delimiter: whether it was wrapped.
	open []bool

	prev     token.Token
	havePrev bool
}

// NewQuoteTagger wraps src.
func NewQuoteTagger(src token.Source) *QuoteTagger {
	return &QuoteTagger{src: src}
}

// Next implements [token.Source].
func (q *QuoteTagger) Next() (token.Token, bool) {
	if tok, ok := q.out.pop(); ok {
		q.prev = tok
		return tok, true
	}

	tok, ok := q.src.Next()
	if !ok {
		return tok, false
	}

	switch tok.Kind {
	case token.LeftDelimiter:
		wrap := opensString(tok.Text)
		q.open = append(q.open, wrap)
		if wrap {
			paren := token.Synthesize(token.Punctuation, "(", tok.Left)
			paren.MayBracket = true
			paren.MayPrefix = true
			paren.MayInfix = q.havePrev && q.prev.Kind == token.Word && q.prev.Right == tok.Left
			q.out.PushBack(tok)
			tok = paren
		}

	case token.RightDelimiter:
		if n := len(q.open); n > 0 {
			wrap := q.open[n-1]
			q.open = q.open[:n-1]
			if wrap {
				paren := token.Synthesize(token.Punctuation, ")", tok.Right)
				paren.MayBracket = true
				q.out.PushBack(paren)
			}
		}
	}

	q.prev, q.havePrev = tok, true
	return tok, true
}

// opensString returns whether a left delimiter opens a string or regular
// expression, rather than a hole or unicode run.
func opensString(text string) bool {
	return text != "" && strings.ContainsRune("\"'`/", rune(text[0]))
}

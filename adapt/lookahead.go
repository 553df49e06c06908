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
	"github.com/bufbuild/frontc/internal/ext/slicesx"
	"github.com/bufbuild/frontc/token"
)

// Lookahead wraps a [token.Source] with a buffer, so that tokens can be
// inspected before they are consumed, and pushed back after they are.
type Lookahead struct {
	src token.Source
	buf slicesx.Queue[token.Token]
	eof bool
}

// NewLookahead wraps src.
func NewLookahead(src token.Source) *Lookahead {
	return &Lookahead{src: src}
}

// Peek returns the ith token that [Lookahead.Next] would return, without
// consuming anything.
func (l *Lookahead) Peek(i int) (token.Token, bool) {
	for l.buf.Len() <= i && !l.eof {
		tok, ok := l.src.Next()
		if !ok {
			l.eof = true
			break
		}
		l.buf.PushBack(tok)
	}
	if tok := l.buf.At(i); tok != nil {
		return *tok, true
	}
	return token.Token{}, false
}

// Next implements [token.Source].
func (l *Lookahead) Next() (token.Token, bool) {
	if _, ok := l.Peek(0); !ok {
		return token.Token{}, false
	}
	return l.buf.PopFront()
}

// PushBack returns tokens to the front of the stream, so that tokens[0] is
// the next token returned.
func (l *Lookahead) PushBack(tokens ...token.Token) {
	l.buf.PushFront(tokens...)
}

// outbox is a queue of tokens a transformer has produced but not yet
// returned.
type outbox struct {
	slicesx.Queue[token.Token]
}

func (o *outbox) pop() (token.Token, bool) {
	return o.PopFront()
}

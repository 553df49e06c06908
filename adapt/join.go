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

// CallJoiner inserts a synthetic join token between a } and a directly
// following word that is not an operator, so that
//
//	if (a) { ... } else { ... }
//
// parses as one expression.
type CallJoiner struct {
	src     token.Source
	pending token.Token
	held    bool // Whether pending holds the word after a join.
	prev    token.Token
}

// NewCallJoiner wraps src.
func NewCallJoiner(src token.Source) *CallJoiner {
	return &CallJoiner{src: src}
}

// Next implements [token.Source].
func (j *CallJoiner) Next() (token.Token, bool) {
	if j.held {
		j.held = false
		j.prev = j.pending
		return j.pending, true
	}

	tok, ok := j.src.Next()
	if !ok {
		return tok, false
	}

	if j.prev.IsPunct("}") && j.prev.MayBracket &&
		tok.Kind == token.Word && !tok.MayPrefix && !tok.MayInfix {
		join := token.Synthesize(token.Punctuation, operator.JoinText, tok.Left)
		join.MayInfix = true
		j.pending, j.held = tok, true
		tok = join
	}

	j.prev = tok
	return tok, true
}

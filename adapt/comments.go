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

// CommentGrouper passes every token through unchanged while recording
// comments.
//
// Consecutive line comments separated only by space containing at most one
// line break are merged into one [token.Comment]; block and semilit comments
// are recorded individually.
type CommentGrouper struct {
	src token.Source
	out *[]token.Comment

	run    *token.Comment // The run of line comments being built.
	breaks int            // Line breaks since the last comment in run.
}

// NewCommentGrouper wraps src. Records are appended to out, which may be nil.
func NewCommentGrouper(src token.Source, out *[]token.Comment) *CommentGrouper {
	return &CommentGrouper{src: src, out: out}
}

// Next implements [token.Source].
func (g *CommentGrouper) Next() (token.Token, bool) {
	tok, ok := g.src.Next()
	if !ok {
		g.flush()
		return tok, false
	}

	switch {
	case tok.Kind == token.CommentToken:
		kind := token.ClassifyComment(tok)
		if kind != token.LineComment {
			g.flush()
			g.record(token.Comment{Left: tok.Left, Right: tok.Right, Text: tok.Text, Kind: kind})
			break
		}

		if g.run != nil && g.breaks <= 1 {
			g.run.Text += "\n" + tok.Text
			g.run.Right = tok.Right
		} else {
			g.flush()
			g.run = &token.Comment{Left: tok.Left, Right: tok.Right, Text: tok.Text, Kind: kind}
		}
		g.breaks = 0

	case tok.Kind == token.Space && g.run != nil:
		g.breaks += countBreaks(tok.Text)

	default:
		g.flush()
	}
	return tok, true
}

func (g *CommentGrouper) flush() {
	if g.run != nil {
		g.record(*g.run)
		g.run = nil
	}
}

func (g *CommentGrouper) record(c token.Comment) {
	if g.out != nil {
		*g.out = append(*g.out, c)
	}
}

// countBreaks counts line breaks in text, with \r\n counting once.
func countBreaks(text string) int {
	return strings.Count(text, "\n") + strings.Count(text, "\r") - strings.Count(text, "\r\n")
}

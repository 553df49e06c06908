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

package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/frontc/token"
)

func TestToken(t *testing.T) {
	t.Parallel()

	word := token.Token{Text: "x", Kind: token.Word, Left: 0, Right: 1}
	assert.Equal(t, `Word "x" [0:1]`, word.String())
	assert.True(t, word.Is(token.Word, "x"))
	assert.False(t, word.IsPunct("x"))

	semi := token.Synthesize(token.Punctuation, ";", 5)
	semi.MayInfix = true
	assert.Equal(t, `Punctuation ";" [5:5] synthetic infix`, semi.String())
	assert.True(t, semi.IsPunct(";"))

	assert.True(t, token.Space.IsSkippable())
	assert.True(t, token.CommentToken.IsSkippable())
	assert.False(t, token.QuotedString.IsSkippable())
}

func TestSource(t *testing.T) {
	t.Parallel()

	tokens := []token.Token{
		{Text: "a", Kind: token.Word, Left: 0, Right: 1},
		token.Synthesize(token.Punctuation, "@", 1),
		{Text: " ", Kind: token.Space, Left: 1, Right: 2},
		{Text: "b", Kind: token.Word, Left: 2, Right: 3},
	}
	assert.Equal(t, tokens, token.Collect(token.NewSlice(tokens...)))
	assert.Equal(t, "a b", token.Concat(tokens))

	var n int
	for range token.All(token.NewSlice(tokens...)) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
	assert.Empty(t, token.Collect(token.NewSlice()))
}

func TestClassifyComment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tok  token.Token
		want token.CommentKind
	}{
		{token.Token{Kind: token.CommentToken, Text: "// x"}, token.LineComment},
		{token.Token{Kind: token.CommentToken, Text: "/* x\n */"}, token.BlockComment},
		{token.Token{Kind: token.CommentToken, Text: "# Title\n\n"}, token.Semilit},
		{token.Synthesize(token.CommentToken, "Some prose.", 3), token.SemilitParagraph},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, token.ClassifyComment(tt.tok), "%q", tt.tok.Text)
	}
	assert.Equal(t, "Block", token.BlockComment.String())
}

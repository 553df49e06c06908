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

package adapt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/frontc/adapt"
	"github.com/bufbuild/frontc/lexer"
	"github.com/bufbuild/frontc/operator"
	"github.com/bufbuild/frontc/source"
	"github.com/bufbuild/frontc/token"
)

func run(t *testing.T, text string) ([]token.Token, []token.Comment) {
	t.Helper()

	var comments []token.Comment
	stream := new(lexer.Lexer).Lex(source.NewFile("test.fc", text), nil)
	tokens := token.Collect(adapt.Pipeline(stream, nil, &comments))
	assert.Zero(t, stream.Depth())
	return tokens, comments
}

func texts(tokens []token.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

func TestSemicolons(t *testing.T) {
	t.Parallel()

	tokens, _ := run(t, "x = 1\n{ y }")
	assert.Equal(t, []string{"x", "=", "1", ";", "{", "y", "}"}, texts(tokens))
	semi := tokens[3]
	assert.True(t, semi.Synthetic)
	assert.Equal(t, 5, semi.Left)
	assert.True(t, semi.MayInfix)

	tests := []struct {
		text string
		want []string
	}{
		{"f(\n{ y })", []string{"f", "(", "{", "y", "}", ")"}},
		{"x =\n{ }", []string{"x", "=", "{", "}"}},
		{"return\n{ }", []string{"return", "{", "}"}},
		{"if (a) { b }\nc", []string{"if", "(", "a", ")", "{", "b", "}", ";", "c"}},
		{"a = { b }\n.c", []string{"a", "=", "{", "b", "}", ".", "c"}},
		{"a = { b }\nelse", []string{"a", "=", "{", "b", "}", ";", "else"}},
		{"{ }\n{ }", []string{"{", "}", ";", "{", "}"}},
		{"{ }\n", []string{"{", "}"}},
		{"\n{ }", []string{"{", "}"}},
		{"a\nb", []string{"a", "b"}},
	}
	for _, tt := range tests {
		tokens, _ := run(t, tt.text)
		assert.Equal(t, tt.want, texts(tokens), "%q", tt.text)
	}
}

func TestQuotes(t *testing.T) {
	t.Parallel()

	tokens, _ := run(t, `tag"x${y}"`)
	assert.Equal(t, []string{"tag", "(", `"`, "x", "${", "y", "}", `"`, ")"}, texts(tokens))
	assert.True(t, tokens[1].Synthetic)
	assert.True(t, tokens[1].MayInfix)
	assert.True(t, tokens[1].MayPrefix)
	assert.True(t, tokens[8].Synthetic)
	assert.Equal(t, tokens[7].Right, tokens[8].Left)

	tokens, _ = run(t, `f "x"`)
	assert.False(t, tokens[1].MayInfix)

	tokens, _ = run(t, `x = /a/g`)
	assert.Equal(t, []string{"x", "=", "(", "/", "a", "/g", ")"}, texts(tokens))
}

func TestJoins(t *testing.T) {
	t.Parallel()

	tokens, _ := run(t, "if (a) { b } else { c }")
	assert.Equal(t,
		[]string{"if", "(", "a", ")", "{", "b", "}", operator.JoinText, "else", "{", "c", "}"},
		texts(tokens))
	join := tokens[7]
	assert.True(t, join.Synthetic)
	assert.True(t, join.MayInfix)
	assert.Equal(t, tokens[8].Left, join.Left)

	tokens, _ = run(t, "foo(x) { y } bar(z) { w }")
	assert.Equal(t,
		[]string{"foo", "(", "x", ")", "{", "y", "}", operator.JoinText, "bar", "(", "z", ")", "{", "w", "}"},
		texts(tokens))

	tokens, _ = run(t, "{ b } in c")
	assert.NotContains(t, texts(tokens), operator.JoinText)
}

func TestWordPairs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want []string
	}{
		{"public static fn f() {}", []string{"@", "public", "@", "static", "fn", "f", "(", ")", "{", "}"}},
		{"const x = 1", []string{"@", "const", "let", "x", "=", "1"}},
		{"var a b", []string{"@", "var", "a", "b"}},
		{"const = 1", []string{"const", "=", "1"}},
		{"a.public b", []string{"a", ".", "public", "b"}},
		{"f(@public x, y)", []string{"f", "(", "@", "public", "x", ",", "y", ")"}},
	}
	for _, tt := range tests {
		tokens, _ := run(t, tt.text)
		assert.Equal(t, tt.want, texts(tokens), "%q", tt.text)
	}

	tokens, _ := run(t, "const x")
	require.Len(t, tokens, 4)
	assert.True(t, tokens[0].Synthetic)
	assert.True(t, tokens[0].MayPrefix)
	assert.True(t, tokens[2].Synthetic)
	assert.True(t, tokens[2].MayPrefix)
	assert.Equal(t, tokens[1].Right, tokens[2].Left)

	tokens, _ = run(t, "x.let")
	assert.Equal(t, "let", tokens[2].Text)
	assert.False(t, tokens[2].MayPrefix)
	assert.False(t, tokens[2].MayInfix)
}

func TestComments(t *testing.T) {
	t.Parallel()

	_, comments := run(t, "// a\n// b\n\n// c\n/* d */ x")
	assert.Equal(t, []token.Comment{
		{Left: 0, Right: 9, Text: "// a\n// b", Kind: token.LineComment},
		{Left: 11, Right: 15, Text: "// c", Kind: token.LineComment},
		{Left: 16, Right: 23, Text: "/* d */", Kind: token.BlockComment},
	}, comments)
}

func TestLookahead(t *testing.T) {
	t.Parallel()

	la := adapt.NewLookahead(token.NewSlice(
		token.Token{Text: "a"},
		token.Token{Text: "b"},
	))

	tok, ok := la.Peek(1)
	assert.True(t, ok)
	assert.Equal(t, "b", tok.Text)
	_, ok = la.Peek(2)
	assert.False(t, ok)

	tok, _ = la.Next()
	assert.Equal(t, "a", tok.Text)
	la.PushBack(token.Token{Text: "x"}, token.Token{Text: "y"})
	assert.Equal(t, []string{"x", "y", "b"}, texts(token.Collect(la)))
}

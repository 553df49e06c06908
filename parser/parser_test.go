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

package parser_test

import (
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/frontc/adapt"
	"github.com/bufbuild/frontc/cst"
	"github.com/bufbuild/frontc/internal/golden"
	"github.com/bufbuild/frontc/lexer"
	"github.com/bufbuild/frontc/operator"
	"github.com/bufbuild/frontc/parser"
	"github.com/bufbuild/frontc/report"
	"github.com/bufbuild/frontc/source"
	"github.com/bufbuild/frontc/token"
)

// parse lexes, adapts and parses text with the default table.
func parse(t *testing.T, text string) (cst.Node, *report.Report, []token.Token) {
	t.Helper()

	r := new(report.Report)
	file := source.NewFile("test.fc", text)
	stream := new(lexer.Lexer).Lex(file, r)
	tokens := token.Collect(adapt.Pipeline(stream, nil, nil))
	node := parser.Parse(token.NewSlice(tokens...), parser.Options{Sink: r, File: file})
	require.NotNil(t, node)
	assert.False(t, r.Has(report.ICE), "%v", r)
	return node, r, tokens
}

// tokenize builds space-separated tokens directly, bypassing the lexer.
func tokenize(table *operator.Table, texts ...string) []token.Token {
	out := make([]token.Token, 0, len(texts))
	at := 0
	for _, text := range texts {
		kind := token.Punctuation
		switch r, _ := utf8.DecodeRuneInString(text); {
		case unicode.IsLetter(r):
			kind = token.Word
		case unicode.IsDigit(r):
			kind = token.Number
		}
		tok := token.Token{Text: text, Kind: kind, Left: at, Right: at + len(text)}
		table.Classify(&tok)
		out = append(out, tok)
		at += len(text) + 1
	}
	return out
}

func leaves(node cst.Node) []token.Token {
	var out []token.Token
	for tok := range cst.Leaves(node) {
		out = append(out, tok)
	}
	return out
}

func TestShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text, want string
	}{
		{"x - -y", `(Additive x - (Unary - y))`},
		{"a + b * c", `(Additive a + (Multiplicative b * c))`},
		{"a * b + c", `(Additive (Multiplicative a * b) + c)`},
		{"a - b - c", `(Additive (Additive a - b) - c)`},
		{"a + b * c - d", `(Additive (Additive a + (Multiplicative b * c)) - d)`},
		{"a = b = c", `(Assign a = (Assign b = c))`},
		{"-a * b", `(Multiplicative (Unary - a) * b)`},
		{"-a.b", `(Unary - (Member a . b))`},
		{"x++ + y", `(Additive (Increment x ++) + y)`},
		{"a.b(c)", `(Call (Member a . b) "(" c ")")`},
		{"f(a, b)", `(Call f "(" (Comma a , b) ")")`},

		{"c ? a : b", `(Ternary c ? a : b)`},
		{"a ? b ? c : d : e", `(Ternary a ? (Ternary b ? c : d) : e)`},
		{"a ? b : c ? d : e", `(Ternary a ? b : (Ternary c ? d : e))`},

		{"a: b", `(LowColon a : b)`},
		{"name: T = v", `(Assign (HighColon name : T) = v)`},

		{"T<A & B>(c)", `(Call (Generic T < (BitAnd A & B) >) "(" c ")")`},
		{"T<A && B>(c)", `(And (Relational T < A) && (Relational B > (Paren "(" c ")")))`},
		{"Map<K, List<V>>", `(Generic Map < (Comma K , (Generic List < V >)) >)`},

		{"x = 1\n{ y }", `(Semicolon (Assign x = 1) ; (Block { y }))`},
		{"if (a) { b } else { c }", `(Join (BlockCall (Call if "(" a ")") { b }) \j (BlockCall else { c }))`},
		{"foo(x) { y } bar(z) { w }", `(Join (BlockCall (Call foo "(" x ")") { y }) \j (BlockCall (Call bar "(" z ")") { w }))`},
		{"const x = 1", `(Decorator @ const (Keyword let (Assign x = 1)))`},
		{"f(@public x, y)", `(Call f "(" (Comma (Decorator @ public x) , y) ")")`},
		{"@a.b(c) x", `(Decorator @ (Call (Member a . b) "(" c ")") x)`},
		{"@a x = 1", `(Decorator @ a (Assign x = 1))`},

		{"a; b; c", `(Semicolon a ; b ; c)`},
		{"a, b; c", `(Semicolon (Comma a , b) ; c)`},
		{"@a fn f() {}; x", `(Semicolon (Decorator @ a (Keyword fn (BlockCall (Call f "(" ")") { }))) ; x)`},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			node, r, _ := parse(t, tt.text)
			assert.Equal(t, tt.want, node.String())
			assert.Empty(t, r.Diagnostics, "%v", r)
		})
	}
}

func TestJoinedCalls(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text  string
		words []string
	}{
		{"if (a) { b } else { c }", []string{"if", "(", "a", ")", "{", "b", "}", "else", "{", "c", "}"}},
		{"foo(x) { y } bar(z) { w }", []string{"foo", "(", "x", ")", "{", "y", "}", "bar", "(", "z", ")", "{", "w", "}"}},
	}
	for _, tt := range tests {
		node, _, tokens := parse(t, tt.text)
		assert.True(t, cst.Is(node, operator.NameJoin), "%q: %v", tt.text, node)

		var joins int
		var words []string
		for _, tok := range leaves(node) {
			if tok.Synthetic {
				assert.Equal(t, operator.JoinText, tok.Text)
				joins++
				continue
			}
			words = append(words, tok.Text)
		}
		assert.Equal(t, 1, joins, "%q", tt.text)
		assert.Equal(t, tt.words, words, "%q", tt.text)
		assert.Len(t, tokens, len(tt.words)+1, "%q", tt.text)
	}
}

func TestLeafOrder(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"x - -y",
		"a ? b ? c : d : e",
		"T<A && B>(c)",
		"public static fn f(x: Int) { return x + 1 }",
		"f(@public x, y)",
		"foo(x) { y } bar(z) { w }",
		"a ;;; b ;;; c ;;; d",
		"greet = \"Hello, ${name}!\"",
		"f(a, b",
		"a ) b",
		"",
	}
	for _, text := range inputs {
		node, _, tokens := parse(t, text)
		if diff := cmp.Diff(tokens, leaves(node)); diff != "" {
			t.Errorf("leaf order mismatch for %q (-want +got):\n%s", text, diff)
		}
	}
}

func TestPostProcess(t *testing.T) {
	t.Parallel()

	node, _, _ := parse(t, "x = \"\"\"\n    \"Line 1\n    \"Line 2\ny")
	root, ok := node.(*cst.Inner)
	require.True(t, ok)
	require.Len(t, root.Children, 2)
	assign := root.Children[0].(*cst.Inner)
	require.True(t, cst.Is(assign, operator.NameAssign))

	once := parser.PostProcess(assign.Children[2])
	value, ok := parser.StringValue(once)
	require.True(t, ok)
	assert.Equal(t, "Line 1\nLine 2", value)

	twice := parser.PostProcess(once)
	assert.Equal(t, once.String(), twice.String())
	assert.Equal(t, leaves(once), leaves(twice))

	// The input tree is left alone.
	_, ok = parser.StringValue(assign.Children[2])
	require.True(t, ok)
	assert.Len(t, assign.Children[2].(*cst.Inner).Children[1].(*cst.Inner).Children, 5)
}

func TestStringValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{`"plain"`, "plain", true},
		{`'single'`, "single", true},
		{`"a\tb\x41"`, "a\tbA", true},
		{`"\u{1F600}!"`, "\U0001F600!", true},
		{`"\u{48,49}"`, "HI", true},
		{`"x${}y"`, "xy", true},
		{`"x${y}z"`, "", false},
		{"\"\"\"\n  hello\n  world\n  \"\"\"", "hello\n  world", true},
		{"\"\"\"\n  trailing   \n  space\n  \"\"\"", "trailing\n  space", true},
		{"\"\"\"\n  keep  ${}\n  next\n  \"\"\"", "keep  \n  next", true},
		{"\"\"\"\n    \"Line 1   \n    \"Line 2\n", "Line 1\nLine 2", true},
	}
	for _, tt := range tests {
		node, r, _ := parse(t, tt.text)
		assert.False(t, r.Has(report.Error), "%q: %v", tt.text, r)

		processed := parser.PostProcess(node)
		value, ok := parser.StringValue(processed)
		assert.Equal(t, tt.ok, ok, "%q", tt.text)
		assert.Equal(t, tt.want, value, "%q", tt.text)

		again := parser.PostProcess(processed)
		assert.Equal(t, processed.String(), again.String(), "%q", tt.text)
	}

	_, ok := parser.StringValue(&cst.Leaf{Token: token.Token{Kind: token.Word, Text: "x"}})
	assert.False(t, ok)
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	table := operator.Default()
	tests := []struct {
		name   string
		tokens []string
		want   []report.Tag
	}{
		{"too-few", []string{"a", "+"}, []report.Tag{"too-few-operands"}},
		{"closes-nothing", []string{"a", ")"}, []report.Tag{"closes-nothing"}},
		{"unclosed", []string{"(", "a"}, []report.Tag{"unclosed"}},
		{"clean", []string{"(", "a", ")"}, []report.Tag{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := new(report.Report)
			tokens := tokenize(table, tt.tokens...)
			node := parser.Parse(token.NewSlice(tokens...), parser.Options{Sink: r})
			assert.Equal(t, tt.want, r.Tags())
			assert.Equal(t, tokens, leaves(node))
		})
	}

	_, r, _ := parse(t, "a ;;; b ;;; c")
	assert.False(t, r.Has(report.Fatal))

	_, r, _ = parse(t, "a ;;; b ;;; c ;;; d ;;; e")
	assert.True(t, r.Has(report.Fatal))
	assert.Equal(t, []report.Tag{"too-many-segments"}, r.Tags())
	assert.Equal(t, 1, r.Diagnostics[0].Primary().StartLoc().Line)
}

func TestShunt(t *testing.T) {
	t.Parallel()

	build := func(shunt bool) *operator.Table {
		return operator.NewTable(
			&operator.Operator{
				Name: operator.NameAssign, Text: "=", Type: operator.Infix, Prec: 30,
				MinArity: 3, MaxArity: 3, RightAssoc: true, Shunt: shunt,
			},
			&operator.Operator{
				Name: operator.NameMultiplicative, Text: "*", Type: operator.Infix, Prec: 130,
				MinArity: 3, MaxArity: 3,
			},
		)
	}

	for _, tt := range []struct {
		shunt bool
		want  string
	}{
		{false, `(Assign x = (Multiplicative 1 * 2))`},
		{true, `(Root (Assign x = 1) * 2)`},
	} {
		table := build(tt.shunt)
		tokens := tokenize(table, "x", "=", "1", "*", "2")
		node := parser.Parse(token.NewSlice(tokens...), parser.Options{Table: table})
		assert.Equal(t, tt.want, node.String(), "shunt: %v", tt.shunt)
	}
}

func TestOptionalOperand(t *testing.T) {
	t.Parallel()

	table := operator.NewTable(&operator.Operator{
		Name: "If", Text: "if", Type: operator.Prefix, Prec: 15,
		MinArity: 2, MaxArity: 3,
	})
	tokens := tokenize(table, "if", "c", "x")
	node := parser.Parse(token.NewSlice(tokens...), parser.Options{Table: table})
	assert.Equal(t, `(Root (If if c) x)`, node.String())
}

func TestGolden(t *testing.T) {
	t.Parallel()

	corpus := golden.Corpus{
		Root:       "testdata",
		Refresh:    "FRONTC_REFRESH",
		Extensions: []string{"fc"},
		Outputs: []golden.Output{
			{Extension: "tree.txt"},
			{Extension: "stderr.txt"},
		},
	}

	corpus.Run(t, func(t *testing.T, path, text string, outputs []string) {
		r := new(report.Report)
		file := source.NewFile(path, text)
		tokens := token.Collect(adapt.Pipeline(new(lexer.Lexer).Lex(file, r), nil, nil))
		node := parser.Parse(token.NewSlice(tokens...), parser.Options{Sink: r, File: file})

		assert.Equal(t, tokens, leaves(node), "leaves must reproduce the token stream")

		outputs[0] = parser.PostProcess(node).String() + "\n"
		outputs[1], _, _ = report.Renderer{Compact: true}.RenderString(r)
	})
}

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

package operator

import (
	"cmp"
	"slices"
	"strings"

	"github.com/bufbuild/frontc/internal/ext/unicodex"
	"github.com/bufbuild/frontc/token"
)

// Name identifies an operator independently of its spelling. Several
// operators may share a name, such as + and -.
type Name string

const (
	NameRoot           Name = "Root"
	NameSegment        Name = "Segment"
	NameSemicolon      Name = "Semicolon"
	NameKeyword        Name = "Keyword"
	NameComma          Name = "Comma"
	NameLowColon       Name = "LowColon"
	NameAssign         Name = "Assign"
	NameHighColon      Name = "HighColon"
	NameArrow          Name = "Arrow"
	NameTernary        Name = "Ternary"
	NameCoalesce       Name = "Coalesce"
	NameOr             Name = "Or"
	NameAnd            Name = "And"
	NameEquality       Name = "Equality"
	NameRelational     Name = "Relational"
	NameRange          Name = "Range"
	NameBitOr          Name = "BitOr"
	NameBitXor         Name = "BitXor"
	NameBitAnd         Name = "BitAnd"
	NameShift          Name = "Shift"
	NameAdditive       Name = "Additive"
	NameMultiplicative Name = "Multiplicative"
	NamePower          Name = "Power"
	NameUnary          Name = "Unary"
	NameIncrement      Name = "Increment"
	NameNew            Name = "New"
	NameJoin           Name = "Join"
	NameMember         Name = "Member"
	NameCall           Name = "Call"
	NameIndex          Name = "Index"
	NameGeneric        Name = "Generic"
	NameBlockCall      Name = "BlockCall"
	NameDecorator      Name = "Decorator"
	NameParen          Name = "Paren"
	NameList           Name = "List"
	NameBlock          Name = "Block"
	NameQuotedGroup    Name = "QuotedGroup"
	NameHole           Name = "Hole"
	NameScriptlet      Name = "Scriptlet"
	NameUnicodeRun     Name = "UnicodeRun"
)

// Table maps token spellings to operators.
//
// A Table is immutable once built and safe for concurrent use.
type Table struct {
	root      *Operator
	prefix    map[string]*Operator
	infix     map[string][]*Operator // Infix, Postfix and Separator.
	delimited map[string]*Operator
	quoted    *Operator // Delimited group for any other left delimiter.
	closers   map[string][]*Operator
	punct     []string
	byName    map[nameKey]*Operator
}

type nameKey struct {
	name Name
	text string
}

// NewTable builds a table out of the given operators.
//
// A delimited operator with empty Text becomes the group for every left
// delimiter that no other operator claims. Operators reachable only through
// another operator's Promote field need not be listed.
func NewTable(ops ...*Operator) *Table {
	t := &Table{
		root: &Operator{
			Name:     NameRoot,
			Type:     Root,
			MaxArity: Unbounded,
		},
		prefix:    make(map[string]*Operator),
		infix:     make(map[string][]*Operator),
		delimited: make(map[string]*Operator),
		closers:   make(map[string][]*Operator),
		byName:    make(map[nameKey]*Operator),
	}

	punct := make(map[string]struct{})
	addPunct := func(text string, op *Operator) {
		if text == "" || op.SyntheticOnly || isWord(text) {
			return
		}
		punct[text] = struct{}{}
	}

	for _, op := range ops {
		t.register(op)
		switch {
		case op.Delimited:
			if op.Text == "" {
				t.quoted = op
			} else {
				t.delimited[op.Text] = op
			}
			continue
		case op.Type == Prefix:
			t.prefix[op.Text] = op
		case op.Type == Infix, op.Type == Postfix, op.Type == Separator:
			t.infix[op.Text] = append(t.infix[op.Text], op)
		case op.Type == Root:
			t.root = op
			continue
		}

		addPunct(op.Text, op)
		if op.Close != "" {
			t.closers[op.Close] = append(t.closers[op.Close], op)
			addPunct(op.Close, op)
		}
		for _, f := range op.Followers {
			addPunct(f.Text, op)
		}
	}

	// Operators with stricter matching rules shadow plain ones.
	for _, list := range t.infix {
		slices.SortStableFunc(list, func(a, b *Operator) int {
			return cmp.Compare(strictness(b), strictness(a))
		})
	}

	t.register(t.root)

	for p := range punct {
		t.punct = append(t.punct, p)
	}
	slices.SortFunc(t.punct, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return t
}

func (t *Table) register(op *Operator) {
	for op != nil {
		t.byName[nameKey{op.Name, op.Text}] = op
		op = op.Promote
	}
}

// Lookup returns the operator with the given name and spelling, including
// operators only reachable through Promote.
func (t *Table) Lookup(name Name, text string) *Operator {
	return t.byName[nameKey{name, text}]
}

// Root returns the operator at the top of every tree.
func (t *Table) Root() *Operator {
	return t.root
}

// Prefix returns the prefix operator spelled by tok, if any.
func (t *Table) Prefix(tok token.Token) *Operator {
	if !spellsOperator(tok) {
		return nil
	}
	op := t.prefix[tok.Text]
	if op == nil || !matches(op, tok) {
		return nil
	}
	return op
}

// Infix returns the infix, postfix or separator operator spelled by tok, if
// any.
func (t *Table) Infix(tok token.Token) *Operator {
	if !spellsOperator(tok) {
		return nil
	}
	for _, op := range t.infix[tok.Text] {
		if matches(op, tok) {
			return op
		}
	}
	return nil
}

// Delimited returns the group operator opened by a left delimiter token.
func (t *Table) Delimited(tok token.Token) *Operator {
	if tok.Kind != token.LeftDelimiter {
		return nil
	}
	if op := t.delimited[tok.Text]; op != nil {
		return op
	}
	return t.quoted
}

// Closes returns whether tok may close the node of some operator in this
// table.
func (t *Table) Closes(tok token.Token) bool {
	if tok.Kind != token.Punctuation {
		return false
	}
	for _, op := range t.closers[tok.Text] {
		if matches(op, tok) {
			return true
		}
	}
	return false
}

// Punctuation returns every punctuation spelling this table knows, longest
// first. The returned slice must not be modified.
func (t *Table) Punctuation() []string {
	return t.punct
}

// Classify sets the MayPrefix, MayInfix and MayBracket flags of a word or
// punctuation token according to this table. MayBracket is only ever added:
// the lexer sets it on angle brackets it has paired itself.
func (t *Table) Classify(tok *token.Token) {
	if !spellsOperator(*tok) {
		return
	}
	tok.MayPrefix = t.Prefix(*tok) != nil
	tok.MayInfix = t.Infix(*tok) != nil
	if t.opensBracket(*tok) || t.Closes(*tok) {
		tok.MayBracket = true
	}
}

func (t *Table) opensBracket(tok token.Token) bool {
	if op := t.prefix[tok.Text]; op != nil && op.Close != "" && !op.Bracket {
		return true
	}
	for _, op := range t.infix[tok.Text] {
		if op.Close != "" && !op.Bracket {
			return true
		}
	}
	return false
}

func spellsOperator(tok token.Token) bool {
	return tok.Kind == token.Punctuation || tok.Kind == token.Word
}

func matches(op *Operator, tok token.Token) bool {
	if op.SyntheticOnly && !tok.Synthetic {
		return false
	}
	if op.Bracket && !tok.MayBracket {
		return false
	}
	return true
}

func strictness(op *Operator) int {
	var n int
	if op.Bracket {
		n++
	}
	if op.SyntheticOnly {
		n++
	}
	return n
}

func isWord(text string) bool {
	for _, r := range text {
		if !unicodex.IsXIDContinue(r) {
			return false
		}
	}
	return true
}

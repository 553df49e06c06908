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

package cst

import (
	"iter"
	"strconv"
	"strings"

	"github.com/bufbuild/frontc/operator"
	"github.com/bufbuild/frontc/source"
	"github.com/bufbuild/frontc/token"
)

// Node is a node in a concrete syntax tree: either a [*Leaf] or an [*Inner].
type Node interface {
	// Pos returns the byte range [left, right) covered by this node's
	// leaves. A node with no leaves covers [0, 0).
	Pos() (left, right int)

	// String returns this node as an s-expression.
	String() string

	isNode()
}

// Leaf is a node holding a single token.
type Leaf struct {
	Token token.Token
}

// Inner is a node built by an operator.
type Inner struct {
	Op       *operator.Operator
	Children []Node
}

var (
	_ Node = (*Leaf)(nil)
	_ Node = (*Inner)(nil)
)

// Pos implements [Node].
func (l *Leaf) Pos() (int, int) {
	return l.Token.Left, l.Token.Right
}

// String implements [Node].
func (l *Leaf) String() string {
	text := l.Token.Text
	if l.Token.Kind == token.QuotedString || text == "" ||
		strings.ContainsAny(text, " \t\r\n()\"") {
		return strconv.Quote(text)
	}
	return text
}

// Pos implements [Node].
func (n *Inner) Pos() (int, int) {
	first, ok := First(n)
	if !ok {
		return 0, 0
	}
	last, _ := Last(n)
	return first.Left, last.Right
}

// String implements [Node].
func (n *Inner) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Inner) write(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(n.Op.String())
	for _, child := range n.Children {
		b.WriteByte(' ')
		if inner, ok := child.(*Inner); ok {
			inner.write(b)
		} else {
			b.WriteString(child.String())
		}
	}
	b.WriteByte(')')
}

func (*Leaf) isNode()  {}
func (*Inner) isNode() {}

// Is returns whether node is an inner node of the named operator.
func Is(node Node, name operator.Name) bool {
	inner, ok := node.(*Inner)
	return ok && inner.Op.Name == name
}

// Span returns the span of node within file.
func Span(node Node, file *source.File) source.Span {
	left, right := node.Pos()
	return file.Span(left, right)
}

// Leaves returns an iterator over the tokens of the leaves of node, in order.
func Leaves(node Node) iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		leaves(node, yield)
	}
}

func leaves(node Node, yield func(token.Token) bool) bool {
	switch node := node.(type) {
	case *Leaf:
		return yield(node.Token)
	case *Inner:
		for _, child := range node.Children {
			if !leaves(child, yield) {
				return false
			}
		}
	}
	return true
}

// First returns the first token under node.
func First(node Node) (token.Token, bool) {
	for tok := range Leaves(node) {
		return tok, true
	}
	return token.Token{}, false
}

// Last returns the last token under node.
func Last(node Node) (token.Token, bool) {
	for {
		switch n := node.(type) {
		case *Leaf:
			return n.Token, true
		case *Inner:
			if len(n.Children) == 0 {
				return token.Token{}, false
			}
			node = n.Children[len(n.Children)-1]
		default:
			return token.Token{}, false
		}
	}
}

// Walk calls visit on node and its descendants in pre-order. If visit returns
// false, the children of that node are skipped.
func Walk(node Node, visit func(Node) bool) {
	if !visit(node) {
		return
	}
	if inner, ok := node.(*Inner); ok {
		for _, child := range inner.Children {
			Walk(child, visit)
		}
	}
}

// Clone returns a deep copy of node.
func Clone(node Node) Node {
	switch n := node.(type) {
	case *Leaf:
		leaf := *n
		return &leaf
	case *Inner:
		inner := &Inner{Op: n.Op, Children: make([]Node, len(n.Children))}
		for i, child := range n.Children {
			inner.Children[i] = Clone(child)
		}
		return inner
	default:
		return nil
	}
}

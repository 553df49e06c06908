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

package parser

import (
	"regexp"
	"strings"

	"github.com/bufbuild/frontc/cst"
	"github.com/bufbuild/frontc/operator"
	"github.com/bufbuild/frontc/token"
)

var (
	leadingBreak  = regexp.MustCompile(`^[ \t]*(\r\n|\r|\n)[ \t]*`)
	trailingBreak = regexp.MustCompile(`(\r\n|\r|\n)[ \t]*$`)
	spaceOnBreak  = regexp.MustCompile(`[ \t]+(\r\n|\r|\n)`)
	anyBreak      = regexp.MustCompile(`\r\n|\r`)
)

// PostProcess normalizes the string-like groups of a tree, bottom-up. It
// returns a new tree; node is not modified. Applying it to its own output
// changes nothing.
//
// In a quoted group that spans several lines, the line break and
// indentation right after the opening quote and right before the closing
// quote are removed, as is trailing space on each line, and line breaks
// are normalized to \n. Literal chunks that touch in the source are merged
// first, and empty ${} holes are removed last. Escape sequences stay
// separate tokens.
//
// In a unicode run, holes are removed and adjacent digit and letter tokens
// are merged, so that \u{1F600} holds a single token.
func PostProcess(node cst.Node) cst.Node {
	inner, ok := node.(*cst.Inner)
	if !ok {
		return node
	}

	out := &cst.Inner{Op: inner.Op, Children: make([]cst.Node, 0, len(inner.Children))}
	for _, child := range inner.Children {
		out.Children = append(out.Children, PostProcess(child))
	}

	switch inner.Op.Name {
	case operator.NameQuotedGroup:
		out.Children = processQuoted(out.Children)
	case operator.NameUnicodeRun:
		out.Children = processRun(out.Children)
	}
	return out
}

// processQuoted normalizes the children of a quoted group.
func processQuoted(children []cst.Node) []cst.Node {
	opener, body, closer := splitGroup(children)

	// Chunks are merged only when they touch in the source, so a dropped
	// ${} keeps the text on either side of it apart on every pass.
	body = merge(body, token.QuotedString, true, func(tok token.Token) bool {
		return tok.Kind == token.QuotedString && !isEscape(tok)
	})
	if multiline(body) {
		body = stripMargins(opener, body, closer)
	}
	body = dropHoles(body, func(n *cst.Inner) bool { return len(n.Children) <= 2 })

	return joinGroup(opener, body, closer)
}

// processRun normalizes the children of a unicode run.
func processRun(children []cst.Node) []cst.Node {
	opener, body, closer := splitGroup(children)
	body = mergeRun(body)

	for i, child := range body {
		if inner, ok := child.(*cst.Inner); ok && inner.Op.Type == operator.Separator {
			body[i] = &cst.Inner{Op: inner.Op, Children: mergeRun(inner.Children)}
		}
	}
	return joinGroup(opener, body, closer)
}

func mergeRun(nodes []cst.Node) []cst.Node {
	nodes = dropHoles(nodes, func(*cst.Inner) bool { return true })
	return merge(nodes, token.Word, false, func(tok token.Token) bool {
		return tok.Kind == token.Number || tok.Kind == token.Word
	})
}

// splitGroup separates the delimiters of a group from its contents. Either
// delimiter may be missing from a malformed group.
func splitGroup(children []cst.Node) (opener *cst.Leaf, body []cst.Node, closer *cst.Leaf) {
	body = children
	if len(body) > 0 && isKind(body[0], token.LeftDelimiter) {
		opener, body = body[0].(*cst.Leaf), body[1:]
	}
	if n := len(body); n > 0 && isKind(body[n-1], token.RightDelimiter) {
		closer, body = body[n-1].(*cst.Leaf), body[:n-1]
	}
	return opener, body, closer
}

func joinGroup(opener *cst.Leaf, body []cst.Node, closer *cst.Leaf) []cst.Node {
	out := make([]cst.Node, 0, len(body)+2)
	if opener != nil {
		out = append(out, opener)
	}
	out = append(out, body...)
	if closer != nil {
		out = append(out, closer)
	}
	return out
}

func isKind(node cst.Node, kind token.Kind) bool {
	leaf, ok := node.(*cst.Leaf)
	return ok && leaf.Token.Kind == kind
}

func isEscape(tok token.Token) bool {
	return strings.HasPrefix(tok.Text, `\`)
}

// chunk returns node as a literal string chunk, if it is one.
func chunk(node cst.Node) (*cst.Leaf, bool) {
	leaf, ok := node.(*cst.Leaf)
	if !ok || leaf.Token.Kind != token.QuotedString || isEscape(leaf.Token) {
		return nil, false
	}
	return leaf, true
}

func multiline(body []cst.Node) bool {
	for _, child := range body {
		if leaf, ok := chunk(child); ok && strings.ContainsAny(leaf.Token.Text, "\r\n") {
			return true
		}
	}
	return false
}

// stripMargins removes incidental whitespace from the chunks of a multi-line
// string. Bytes stripped at either end also shrink the chunk's span, so that
// a second pass finds nothing next to the delimiters.
func stripMargins(opener *cst.Leaf, body []cst.Node, closer *cst.Leaf) []cst.Node {
	out := make([]cst.Node, 0, len(body))
	for i, child := range body {
		leaf, ok := chunk(child)
		if !ok {
			out = append(out, child)
			continue
		}
		tok := leaf.Token

		if i == 0 && opener != nil && tok.Left == opener.Token.Right {
			if m := leadingBreak.FindStringIndex(tok.Text); m != nil {
				tok.Text = tok.Text[m[1]:]
				tok.Left += m[1]
			}
		}
		if i == len(body)-1 && closer != nil && tok.Right == closer.Token.Left {
			if m := trailingBreak.FindStringIndex(tok.Text); m != nil {
				tok.Right -= len(tok.Text) - m[0]
				tok.Text = tok.Text[:m[0]]
			}
		}
		tok.Text = spaceOnBreak.ReplaceAllString(tok.Text, "$1")
		tok.Text = anyBreak.ReplaceAllString(tok.Text, "\n")

		switch {
		case tok.Text == "":
		case tok == leaf.Token:
			out = append(out, leaf)
		default:
			out = append(out, &cst.Leaf{Token: tok})
		}
	}
	return out
}

// dropHoles removes the hole nodes for which drop returns true.
func dropHoles(nodes []cst.Node, drop func(*cst.Inner) bool) []cst.Node {
	out := make([]cst.Node, 0, len(nodes))
	for _, node := range nodes {
		if inner, ok := node.(*cst.Inner); ok && inner.Op.Name == operator.NameHole && drop(inner) {
			continue
		}
		out = append(out, node)
	}
	return out
}

// merge joins each run of adjacent leaves whose tokens satisfy ok into one
// leaf of the given kind. A run of numbers stays a number. If contiguous is
// set, a run also ends wherever two tokens do not touch in the source.
func merge(nodes []cst.Node, kind token.Kind, contiguous bool, ok func(token.Token) bool) []cst.Node {
	mergeable := func(i int) bool {
		leaf, isLeaf := nodes[i].(*cst.Leaf)
		return isLeaf && ok(leaf.Token)
	}
	touches := func(i int) bool {
		return !contiguous || nodes[i-1].(*cst.Leaf).Token.Right == nodes[i].(*cst.Leaf).Token.Left
	}

	out := make([]cst.Node, 0, len(nodes))
	for i := 0; i < len(nodes); {
		j := i + 1
		if mergeable(i) {
			for j < len(nodes) && mergeable(j) && touches(j) {
				j++
			}
		}
		if j == i+1 {
			out = append(out, nodes[i])
			i = j
			continue
		}

		tok := nodes[i].(*cst.Leaf).Token
		var text strings.Builder
		numbers := true
		for _, n := range nodes[i:j] {
			t := n.(*cst.Leaf).Token
			text.WriteString(t.Text)
			tok.Right = t.Right
			numbers = numbers && t.Kind == token.Number
		}
		tok.Text = text.String()
		tok.Kind = kind
		if numbers {
			tok.Kind = token.Number
		}
		out = append(out, &cst.Leaf{Token: tok})
		i = j
	}
	return out
}

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
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bufbuild/frontc/cst"
	"github.com/bufbuild/frontc/operator"
	"github.com/bufbuild/frontc/token"
)

// StringValue decodes the contents of a quoted group that has been through
// [PostProcess]. It fails if the group contains interpolations or invalid
// escapes.
//
// The synthetic parentheses placed around every string are looked through.
func StringValue(node cst.Node) (string, bool) {
	inner, ok := node.(*cst.Inner)
	if !ok {
		return "", false
	}
	if inner.Op.Name == operator.NameParen && len(inner.Children) == 3 {
		if open, ok := inner.Children[0].(*cst.Leaf); ok && open.Token.Synthetic {
			return StringValue(inner.Children[1])
		}
	}
	if inner.Op.Name != operator.NameQuotedGroup {
		return "", false
	}

	_, body, _ := splitGroup(inner.Children)
	var b strings.Builder
	for _, child := range body {
		switch child := child.(type) {
		case *cst.Leaf:
			if child.Token.Kind != token.QuotedString {
				return "", false
			}
			if !isEscape(child.Token) {
				b.WriteString(child.Token.Text)
				break
			}
			r, ok := decodeEscape(child.Token.Text)
			if !ok {
				return "", false
			}
			b.WriteRune(r)

		case *cst.Inner:
			if child.Op.Name != operator.NameUnicodeRun || !decodeRun(child, &b) {
				return "", false
			}
		}
	}
	return b.String(), true
}

func decodeEscape(text string) (rune, bool) {
	if len(text) < 2 {
		return 0, false
	}
	switch text[1] {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '0':
		return 0, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case '\\', '"', '\'', '`', '$', '{':
		return rune(text[1]), true
	case 'x', 'u':
		n, err := strconv.ParseUint(text[2:], 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return 0, false
		}
		return rune(n), true
	}
	return 0, false
}

// decodeRun writes the code points of a unicode run to b.
func decodeRun(run *cst.Inner, b *strings.Builder) bool {
	_, body, _ := splitGroup(run.Children)
	ok := true
	for _, child := range body {
		cst.Walk(child, func(n cst.Node) bool {
			leaf, isLeaf := n.(*cst.Leaf)
			if !isLeaf || !ok {
				return ok
			}
			switch leaf.Token.Kind {
			case token.Punctuation:
				ok = leaf.Token.Text == ","
			case token.Word, token.Number:
				cp, err := strconv.ParseUint(leaf.Token.Text, 16, 32)
				ok = err == nil && utf8.ValidRune(rune(cp))
				if ok {
					b.WriteRune(rune(cp))
				}
			default:
				ok = false
			}
			return ok
		})
	}
	return ok
}

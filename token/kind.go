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

package token

import "fmt"

const (
	Error Kind = iota // Garbage in the input, or a malformed construct.

	Word           // An identifier or keyword.
	Number         // A numeric literal.
	Punctuation    // Operators and brackets.
	CommentToken   // A comment, or markdown prose in literate files.
	Space          // Non-comment contiguous whitespace.
	QuotedString   // Literal text within a string, or one escape sequence.
	LeftDelimiter  // Opens a string, an interpolation hole, a scriptlet, or a unicode run.
	RightDelimiter // Closes whatever the matching LeftDelimiter opened.
)

// Kind identifies what kind of token a particular [Token] is.
type Kind byte

// IsSkippable returns whether this kind is ignored by the parser.
func (k Kind) IsSkippable() bool {
	return k == Space || k == CommentToken
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Error:
		return "Error"
	case Word:
		return "Word"
	case Number:
		return "Number"
	case Punctuation:
		return "Punctuation"
	case CommentToken:
		return "Comment"
	case Space:
		return "Space"
	case QuotedString:
		return "QuotedString"
	case LeftDelimiter:
		return "LeftDelimiter"
	case RightDelimiter:
		return "RightDelimiter"
	default:
		return fmt.Sprintf("token.Kind(%d)", int(k))
	}
}

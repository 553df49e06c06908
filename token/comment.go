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

import (
	"fmt"
	"strings"
)

const (
	LineComment      CommentKind = iota // A run of one or more // comments.
	BlockComment                        // A /* */ comment.
	Semilit                             // Prose surrounding code in a literate file.
	SemilitParagraph                    // One paragraph of such prose.
)

// CommentKind identifies what kind of comment a [Comment] is.
type CommentKind byte

// String implements [fmt.Stringer].
func (k CommentKind) String() string {
	switch k {
	case LineComment:
		return "Line"
	case BlockComment:
		return "Block"
	case Semilit:
		return "Semilit"
	case SemilitParagraph:
		return "SemilitParagraph"
	default:
		return fmt.Sprintf("token.CommentKind(%d)", int(k))
	}
}

// Comment is a comment collected from the token stream, independent of the
// syntax tree. Consumers correlate comments with tree nodes by position.
type Comment struct {
	Left, Right int
	Text        string
	Kind        CommentKind
}

// ClassifyComment returns the kind of comment a Comment token is.
//
// Line comments never contain their trailing newline, while prose runs in
// literate files always end in one unless they end the file.
func ClassifyComment(tok Token) CommentKind {
	switch {
	case tok.Synthetic:
		return SemilitParagraph
	case strings.HasPrefix(tok.Text, "//") && !strings.Contains(tok.Text, "\n"):
		return LineComment
	case strings.HasPrefix(tok.Text, "/*"):
		return BlockComment
	default:
		return Semilit
	}
}

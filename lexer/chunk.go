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

package lexer

import (
	"strings"

	"github.com/bufbuild/frontc/report"
)

// Diagnostic templates logged by the lexer.
var (
	MissingCloseQuote = report.Template{
		Tag:    "missing-close-quote",
		Format: "missing close quote",
	}
	MissingCloseBracket = report.Template{
		Tag:    "missing-close-bracket",
		Format: "missing close bracket: expected `%s`",
	}
	UnmatchedCloseBracket = report.Template{
		Tag:    "unmatched-close-bracket",
		Format: "close bracket `%s` matches no open bracket",
	}
	UnterminatedComment = report.Template{
		Tag:    "unterminated-comment",
		Format: "block comment is missing its closing `*/`",
	}
	InvalidEscape = report.Template{
		Tag:    "invalid-escape",
		Format: "invalid escape sequence `%s`",
	}
	MalformedNumber = report.Template{
		Tag:    "malformed-number",
		Format: "malformed number: unexpected `%s` after `%s`",
	}
	DisallowedEmoji = report.Template{
		Tag:    "disallowed-emoji",
		Format: "emoji sequence `%s` is not allowed in identifiers",
	}
	NotNormalized = report.Template{
		Tag:    "identifier-not-nfkc",
		Format: "identifier `%s` is not in NFKC normal form",
	}
	Unrecognized = report.Template{
		Tag:    "unrecognized",
		Format: "unrecognized character `%s`",
	}
)

type chunkKind int8

const (
	bracketChunk   chunkKind = iota // ( [ {
	stringChunk                     // Any quoted string.
	holeChunk                       // ${ in a string.
	scriptletChunk                  // {: in a multi-quote string.
	unicodeChunk                    // \u{ in a string.
)

// chunk is one level of the token-cluster stack.
type chunk struct {
	kind chunkKind
	at   int // Offset of the opener.

	open string // For brackets.

	// For strings: the quote character and how many of it delimit the
	// string.
	quote  byte
	n      int
	margin bool
}

// closer returns the text of the token that closes this chunk.
func (c *chunk) closer() string {
	switch c.kind {
	case bracketChunk:
		return closeFor[c.open]
	case stringChunk:
		return strings.Repeat(string(c.quote), c.n)
	case scriptletChunk:
		return ":}"
	default:
		return "}"
	}
}

// isCode returns whether the content of this chunk is lexed as code.
func (c *chunk) isCode() bool {
	return c.kind != stringChunk && c.kind != unicodeChunk
}

var (
	closeFor = map[string]string{"(": ")", "[": "]", "{": "}"}
	openFor  = map[string]string{")": "(", "]": "[", "}": "{"}
)

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
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bufbuild/frontc/internal/ext/slicesx"
	"github.com/bufbuild/frontc/operator"
	"github.com/bufbuild/frontc/report"
	"github.com/bufbuild/frontc/source"
	"github.com/bufbuild/frontc/token"
)

// Language is the host format of a source file.
type Language int8

const (
	// The whole file is code.
	Standalone Language = iota
	// Code lives in fenced and indented blocks of a markdown document;
	// everything else is prose.
	MarkdownEmbedded
)

// String implements [fmt.Stringer].
func (l Language) String() string {
	switch l {
	case Standalone:
		return "standalone"
	case MarkdownEmbedded:
		return "markdown"
	default:
		return fmt.Sprintf("lexer.Language(%d)", int(l))
	}
}

// ParseLanguage parses the result of [Language.String].
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(s) {
	case "", "standalone":
		return Standalone, nil
	case "markdown", "md":
		return MarkdownEmbedded, nil
	default:
		return 0, fmt.Errorf("unknown language %q", s)
	}
}

// Lexer is the token-cluster lexer. The zero value lexes standalone files
// with the default operator table.
type Lexer struct {
	Language Language
	// If set, each markdown prose paragraph is additionally exposed as a
	// zero-width synthetic comment token.
	SemilitParagraphs bool
	// Used for punctuation spellings and operator flags. Defaults to
	// [operator.Default].
	Table *operator.Table
}

// Lex starts lexing file. Tokens are produced lazily by the returned
// [Stream]; diagnostics go to sink as they are found.
func (l *Lexer) Lex(file *source.File, sink report.Sink) *Stream {
	if sink == nil {
		sink = report.Discard
	}
	table := l.Table
	if table == nil {
		table = operator.Default()
	}

	lx := &lexer{
		Lexer: l,
		file:  file,
		text:  file.Text(),
		table: table,
		sink:  sink,
		seg:   -1,
	}
	if l.Language == MarkdownEmbedded {
		lx.segments = splitMarkdown(lx.text)
	} else {
		lx.segments = []segment{{end: len(lx.text), code: true}}
	}
	return &Stream{l: lx}
}

// Stream is a lazily lexed sequence of tokens. It implements [token.Source].
//
// A Stream cannot be rewound; lex the file again for a fresh one.
type Stream struct {
	l *lexer
}

// Next implements [token.Source].
func (s *Stream) Next() (token.Token, bool) {
	s.l.fill()
	return s.l.out.PopFront()
}

// Depth returns the number of lexical structures (brackets, strings, holes)
// currently open. It is zero once the stream is exhausted.
func (s *Stream) Depth() int {
	return len(s.l.chunks)
}

// lexer is the actual lexer book-keeping used in this package.
type lexer struct {
	*Lexer
	file  *source.File
	text  string
	table *operator.Table
	sink  report.Sink

	cursor int
	// The end of the current segment. Code and strings never look past it.
	end      int
	segments []segment
	seg      int

	chunks   []chunk
	out      slicesx.Queue[token.Token]
	finished bool

	// The last token that was not space or a comment.
	prev     token.Token
	havePrev bool

	// Offsets of > characters that close an angle bracket.
	angles map[int]struct{}
}

// rest returns the remaining text in the current segment.
func (l *lexer) rest() string {
	return l.text[l.cursor:l.end]
}

// done returns whether the current segment is exhausted.
func (l *lexer) done() bool {
	return l.cursor >= l.end
}

// peek peeks the next character.
//
// Returns -1 if l.done().
func (l *lexer) peek() rune {
	if l.done() {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.rest())
	return r
}

// byteAt returns the byte n bytes past the cursor, or zero past the end of
// the segment.
func (l *lexer) byteAt(n int) byte {
	if l.cursor+n >= l.end {
		return 0
	}
	return l.text[l.cursor+n]
}

// takeWhile consumes the characters while they match the given function.
// Returns consumed characters.
func (l *lexer) takeWhile(f func(rune) bool) string {
	start := l.cursor
	for !l.done() {
		r, n := utf8.DecodeRuneInString(l.rest())
		if !f(r) {
			break
		}
		l.cursor += n
	}
	return l.text[start:l.cursor]
}

// push appends a token to the output, classifying it against the operator
// table.
func (l *lexer) push(tok token.Token) token.Token {
	if tok.Kind == token.Word || tok.Kind == token.Punctuation {
		l.table.Classify(&tok)
	}
	if !tok.Kind.IsSkippable() {
		l.prev = tok
		l.havePrev = true
	}
	l.out.PushBack(tok)
	return tok
}

// emit pushes a token spanning from start to the cursor.
func (l *lexer) emit(kind token.Kind, start int) token.Token {
	return l.push(token.Token{
		Text:  l.text[start:l.cursor],
		Kind:  kind,
		Left:  start,
		Right: l.cursor,
	})
}

// synthesize pushes a zero-width synthetic token at the cursor.
func (l *lexer) synthesize(kind token.Kind, text string) token.Token {
	return l.push(token.Synthesize(kind, text, l.cursor))
}

// errorf logs an error diagnostic for the given byte range.
func (l *lexer) errorf(t report.Template, start, end int, values ...any) {
	l.sink.Log(report.Error, t, l.file.Span(start, end), values...)
}

// top returns the innermost open chunk, or nil.
func (l *lexer) top() *chunk {
	if len(l.chunks) == 0 {
		return nil
	}
	return &l.chunks[len(l.chunks)-1]
}

func (l *lexer) open(c chunk) {
	l.chunks = append(l.chunks, c)
}

func (l *lexer) pop() chunk {
	c := l.chunks[len(l.chunks)-1]
	l.chunks = l.chunks[:len(l.chunks)-1]
	return c
}

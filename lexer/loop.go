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
	"unicode"

	"github.com/bufbuild/frontc/report"
	"github.com/bufbuild/frontc/token"
)

// fill lexes until a token is available or the input is exhausted.
func (l *lexer) fill() {
	defer report.Recover(l.sink,
		func() report.Spanner { return l.file.Span(l.cursor, l.cursor) },
		l.abandon,
	)

	mp := l.mustProgress()
	for l.out.Len() == 0 && !l.finished {
		mp.check()
		l.step()
	}
}

// step lexes one construct, which may produce several tokens or none.
func (l *lexer) step() {
	if l.done() {
		if l.seg+1 < len(l.segments) {
			l.enter(l.seg + 1)
			return
		}
		l.cursor = len(l.text)
		l.finish()
		return
	}

	if top := l.top(); top != nil && top.kind == stringChunk {
		lexString(l, top)
		return
	}
	lexCode(l)
}

// enter moves the lexer into the ith segment. Prose segments are emitted
// whole.
func (l *lexer) enter(i int) {
	seg := l.segments[i]
	l.seg = i
	l.cursor = seg.start
	l.end = seg.end
	if !seg.code {
		lexProse(l, seg)
	}
}

// finish closes every open chunk at the end of input.
func (l *lexer) finish() {
	for len(l.chunks) > 0 {
		c := l.top()
		switch {
		case c.kind == stringChunk && c.margin:
		case c.kind == stringChunk:
			l.errorf(MissingCloseQuote, l.cursor, l.cursor)
		default:
			l.errorf(MissingCloseBracket, l.cursor, l.cursor, c.closer())
		}
		l.closeChunk()
	}
	l.finished = true
}

// abandon gives up on lexing after an internal error, leaving the cluster
// stack balanced.
func (l *lexer) abandon() {
	l.finished = true
	for len(l.chunks) > 0 {
		l.closeChunk()
	}
}

// closeChunk pops the innermost chunk and synthesizes its closer.
func (l *lexer) closeChunk() {
	c := l.pop()
	kind := token.RightDelimiter
	if c.kind == bracketChunk {
		kind = token.Punctuation
	}
	l.synthesize(kind, c.closer())
}

// lexCode lexes one construct in code context: top level, brackets, holes,
// scriptlets, and unicode runs.
func lexCode(l *lexer) {
	start := l.cursor
	top := l.top()
	if top != nil && top.kind == unicodeChunk {
		lexUnicodeRun(l, top)
		return
	}

	rest := l.rest()
	r := l.peek()
	switch {
	case isSpace(r):
		l.takeWhile(isSpace)
		l.emit(token.Space, start)

	case strings.HasPrefix(rest, "//"):
		// The line break is not part of the comment.
		l.takeWhile(func(r rune) bool { return r != '\n' && r != '\r' })
		l.emit(token.CommentToken, start)

	case strings.HasPrefix(rest, "/*"):
		// Block comments do not nest.
		if end := strings.Index(rest[2:], "*/"); end != -1 {
			l.cursor += 2 + end + 2
		} else {
			l.errorf(UnterminatedComment, start, start+2)
			l.cursor = l.end
		}
		l.emit(token.CommentToken, start)

	case r == '"', r == '\'', r == '`':
		lexQuote(l)

	case r == '/' && l.regexAllowed() && lexRegex(l):

	case r >= '0' && r <= '9':
		lexNumber(l)

	case top != nil && top.kind == holeChunk && r == '}',
		top != nil && top.kind == scriptletChunk && strings.HasPrefix(rest, ":}"):
		l.cursor += len(top.closer())
		l.pop()
		l.emit(token.RightDelimiter, start)

	case r == '(', r == '[', r == '{':
		l.cursor++
		l.open(chunk{kind: bracketChunk, at: start, open: string(r)})
		l.emit(token.Punctuation, start)

	case r == ')', r == ']', r == '}':
		lexCloser(l, string(r))

	case startsWord(l):
		lexWord(l)

	default:
		lexPunct(l)
	}
}

// lexCloser lexes a close bracket, repairing the cluster stack if the
// bracket skips over open brackets.
func lexCloser(l *lexer, text string) {
	start := l.cursor
	open := openFor[text]

	match := -1
	for i := len(l.chunks) - 1; i >= 0; i-- {
		c := &l.chunks[i]
		if c.kind != bracketChunk {
			// Brackets never close across a string or a hole.
			break
		}
		if c.open == open {
			match = i
			break
		}
	}

	if match == -1 {
		l.cursor++
		l.emit(token.Error, start)
		l.errorf(UnmatchedCloseBracket, start, l.cursor, text)
		return
	}

	for len(l.chunks)-1 > match {
		l.errorf(MissingCloseBracket, start, start, l.top().closer())
		l.closeChunk()
	}
	l.pop()
	l.cursor++
	l.emit(token.Punctuation, start)
}

func isSpace(r rune) bool {
	return unicode.In(r, unicode.Pattern_White_Space) || r == '\uFEFF'
}

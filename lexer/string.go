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
	"unicode/utf8"

	"github.com/bufbuild/frontc/internal/ext/unicodex"
	"github.com/bufbuild/frontc/token"
)

// lexQuote lexes the opening delimiter of a string.
//
// A run of three or more quotes opens a multi-quote string delimited by the
// longest odd prefix of the run. Any other run opens a single-quote string,
// so "" is an empty string.
func lexQuote(l *lexer) {
	start := l.cursor
	q := l.text[start]
	run := quoteRun(l.rest(), q)

	n := 1
	if run >= 3 {
		n = run
		if n%2 == 0 {
			n--
		}
	}
	l.cursor += n
	l.emit(token.LeftDelimiter, start)

	c := chunk{kind: stringChunk, at: start, quote: q, n: n}
	if n > 1 {
		if margin := marginLine(l.rest(), q, true); margin > 0 && quoteRun(l.rest()[margin-1:], q) < n {
			// The rest of the opening line plus the next line's indentation
			// and margin character.
			c.margin = true
			spaceStart := l.cursor
			l.cursor += margin
			l.emit(token.Space, spaceStart)
		}
	}
	l.open(c)
}

// lexString lexes one construct inside a string.
func lexString(l *lexer, c *chunk) {
	start := l.cursor
	rest := l.rest()
	r := l.peek()

	switch {
	case unicodex.IsLineBreak(r) && c.margin:
		nl := lineBreakLen(rest)
		margin := marginLine(rest[nl:], c.quote, false)
		if margin == 0 {
			// The first line without a margin ends the string.
			l.closeChunk()
			return
		}
		l.cursor += nl
		l.emit(token.QuotedString, start)
		l.cursor += margin
		l.emit(token.Space, start+nl)

	case unicodex.IsLineBreak(r) && c.n == 1:
		l.errorf(MissingCloseQuote, start, start)
		l.closeChunk()

	case r == '\\':
		lexEscape(l)

	case strings.HasPrefix(rest, "${"):
		l.cursor += 2
		l.emit(token.LeftDelimiter, start)
		l.open(chunk{kind: holeChunk, at: start})

	case c.n > 1 && strings.HasPrefix(rest, "{:"):
		l.cursor += 2
		l.emit(token.LeftDelimiter, start)
		l.open(chunk{kind: scriptletChunk, at: start})

	case r == rune(c.quote) && !c.margin:
		n := c.n
		if run := quoteRun(rest, c.quote); n > 1 && run > n {
			// Extra quotes before the closing run are content.
			l.cursor += run - n
			l.emit(token.QuotedString, start)
			start = l.cursor
		} else if run < n {
			l.cursor += run
			l.emit(token.QuotedString, start)
			return
		}
		l.cursor += n
		l.pop()
		l.emit(token.RightDelimiter, start)

	default:
		l.cursor += stringContentLen(rest, c)
		l.emit(token.QuotedString, start)
	}
}

// stringContentLen returns the length of the literal text at the start of
// rest, which is never zero.
func stringContentLen(rest string, c *chunk) int {
	multiline := c.n > 1 && !c.margin
	for i := 0; i < len(rest); i++ {
		b := rest[i]
		stop := false
		switch {
		case b == '\\':
			stop = true
		case b == '$' || b == '{':
			stop = strings.HasPrefix(rest[i:], "${") ||
				(c.n > 1 && strings.HasPrefix(rest[i:], "{:"))
		case b == c.quote:
			stop = !c.margin
		case b == '\n' || b == '\r':
			stop = !multiline
		}
		if stop && i > 0 {
			return i
		}
	}
	return len(rest)
}

// lexEscape lexes one escape sequence. Valid escapes become their own
// QuotedString token; \u{ opens a unicode run.
func lexEscape(l *lexer) {
	start := l.cursor
	rest := l.rest()

	valid := 0
	if len(rest) >= 2 {
		switch rest[1] {
		case 'n', 'r', 't', '0', 'b', 'f', '\\', '"', '\'', '`', '$', '{':
			valid = 2
		case 'x':
			if hexRun(rest[2:], 2) {
				valid = 4
			}
		case 'u':
			if strings.HasPrefix(rest[2:], "{") {
				l.cursor += 3
				l.emit(token.LeftDelimiter, start)
				l.open(chunk{kind: unicodeChunk, at: start})
				return
			}
			if hexRun(rest[2:], 4) {
				valid = 6
			}
		}
	}

	if valid > 0 {
		l.cursor += valid
		l.emit(token.QuotedString, start)
		return
	}

	l.cursor++
	if r, n := utf8.DecodeRuneInString(rest[1:]); n > 0 && !unicodex.IsLineBreak(r) {
		l.cursor += n
	}
	tok := l.emit(token.Error, start)
	l.errorf(InvalidEscape, tok.Left, tok.Right, tok.Text)
}

// lexUnicodeRun lexes one construct inside \u{...}: hex digits lex as
// numbers and words, which are merged back together after parsing.
func lexUnicodeRun(l *lexer, c *chunk) {
	start := l.cursor
	rest := l.rest()
	r := l.peek()

	var quote byte
	if len(l.chunks) >= 2 {
		if s := l.chunks[len(l.chunks)-2]; s.kind == stringChunk {
			quote = s.quote
		}
	}

	switch {
	case unicodex.IsLineBreak(r), quote != 0 && r == rune(quote):
		l.errorf(MissingCloseBracket, start, start, c.closer())
		l.closeChunk()

	case unicodex.IsHorizontalSpace(r):
		l.takeWhile(unicodex.IsHorizontalSpace)
		l.emit(token.Space, start)

	case r == '}':
		l.cursor++
		l.pop()
		l.emit(token.RightDelimiter, start)

	case r == ',':
		l.cursor++
		l.emit(token.Punctuation, start)

	case strings.HasPrefix(rest, "${"):
		l.cursor += 2
		l.emit(token.LeftDelimiter, start)
		l.open(chunk{kind: holeChunk, at: start})

	case unicode.IsDigit(r):
		l.takeWhile(unicode.IsDigit)
		l.emit(token.Number, start)

	case unicode.IsLetter(r):
		l.takeWhile(unicode.IsLetter)
		l.emit(token.Word, start)

	default:
		_, n := utf8.DecodeRuneInString(rest)
		l.cursor += n
		tok := l.emit(token.Error, start)
		l.errorf(Unrecognized, tok.Left, tok.Right, tok.Text)
	}
}

// quoteRun counts the copies of q at the start of s.
func quoteRun(s string, q byte) int {
	n := 0
	for n < len(s) && s[n] == q {
		n++
	}
	return n
}

// marginLine checks whether s starts with a margin line: optional horizontal
// space, then q. If blankFirst is set, s must instead start with the blank
// remainder of a line, then a line break, then the margin line.
//
// Returns the length of the prefix up to and including q, or zero.
func marginLine(s string, q byte, blankFirst bool) int {
	i := 0
	if blankFirst {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		nl := lineBreakLen(s[i:])
		if nl == 0 {
			return 0
		}
		i += nl
	}
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i < len(s) && s[i] == q {
		return i + 1
	}
	return 0
}

// lineBreakLen returns the length of the line break at the start of s.
func lineBreakLen(s string) int {
	switch {
	case strings.HasPrefix(s, "\r\n"):
		return 2
	case s != "" && (s[0] == '\n' || s[0] == '\r'):
		return 1
	default:
		return 0
	}
}

// hexRun returns whether s starts with n hex digits.
func hexRun(s string, n int) bool {
	if len(s) < n {
		return false
	}
	for _, r := range s[:n] {
		if !unicodex.IsHexDigit(r) {
			return false
		}
	}
	return true
}

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
	"unicode/utf8"

	"github.com/bufbuild/frontc/internal/ext/unicodex"
	"github.com/bufbuild/frontc/token"
)

// maxAngleScan bounds how far past a < the lexer looks for its >.
const maxAngleScan = 256

// closesAngles maps runs of > to how many angle brackets they can close.
var closesAngles = map[string]int{
	">": 1, ">>": 2, ">>>": 3,
	">=": 1, ">>=": 2, ">>>=": 3,
}

// regexKeywords are the words after which a / starts a regular expression.
var regexKeywords = map[string]bool{
	"return": true, "throw": true, "case": true, "yield": true,
	"in": true, "of": true, "typeof": true, "do": true, "else": true,
	"when": true, "is": true, "and": true, "or": true, "not": true,
}

// lexPunct lexes punctuation by greedy longest match against the operator
// table.
func lexPunct(l *lexer) {
	start := l.cursor

	if _, ok := l.angles[start]; ok {
		// A > that closes an angle bracket is always split off of any run
		// it begins.
		delete(l.angles, start)
		l.cursor++
		l.push(token.Token{
			Text: ">", Kind: token.Punctuation,
			Left: start, Right: l.cursor,
			MayBracket: true,
		})
		return
	}

	rest := l.rest()
	for _, p := range l.table.Punctuation() {
		if !strings.HasPrefix(rest, p) || l.splitsAngle(start, len(p)) {
			continue
		}

		l.cursor += len(p)
		tok := token.Token{
			Text: p, Kind: token.Punctuation,
			Left: start, Right: l.cursor,
		}
		if p == "<" && l.havePrev && l.prev.Kind == token.Word && l.prev.Right == start {
			tok.MayBracket = l.scanAngle(start)
		}
		l.push(tok)
		return
	}

	_, n := utf8.DecodeRuneInString(rest)
	l.cursor += n
	tok := l.emit(token.Error, start)
	l.errorf(Unrecognized, tok.Left, tok.Right, tok.Text)
}

// splitsAngle returns whether a punctuation run of length n at start would
// swallow a > that closes an angle bracket.
func (l *lexer) splitsAngle(start, n int) bool {
	for i := start + 1; i < start+n; i++ {
		if _, ok := l.angles[i]; ok {
			return true
		}
	}
	return false
}

// scanAngle scans raw text after the < at start for the > that would close
// it as a bracket. On success, the offset of that > is recorded.
//
// The scan accepts type-like text: words, numbers, space, commas, dots,
// single & and |, ?, :, *, balanced () and [], and nested angles. Anything
// else, notably && || ; { } = and quotes, means < is a comparison.
func (l *lexer) scanAngle(start int) bool {
	text := l.text[:l.end]
	limit := min(len(text), start+maxAngleScan)
	depth := 1
	var parens []byte

	for i := start + 1; i < limit; {
		r, n := utf8.DecodeRuneInString(text[i:])
		switch {
		case unicodex.IsXIDContinue(r), isSpace(r):
			i += n

		case r == ',', r == '.', r == '?', r == ':', r == '*':
			i++

		case r == '&', r == '|':
			if i+1 < len(text) && text[i+1] == byte(r) {
				return false
			}
			i++

		case r == '(', r == '[':
			parens = append(parens, byte(r))
			i++

		case r == ')', r == ']':
			if len(parens) == 0 || closeFor[string(parens[len(parens)-1])] != string(r) {
				return false
			}
			parens = parens[:len(parens)-1]
			i++

		case r == '<':
			if len(parens) > 0 {
				return false
			}
			depth++
			i++

		case r == '>':
			if len(parens) > 0 {
				return false
			}
			run := i
			for run < len(text) && run-i < 3 && text[run] == '>' {
				run++
			}
			closes := closesAngles[text[i:run]]
			if closes >= depth {
				if l.angles == nil {
					l.angles = make(map[int]struct{})
				}
				l.angles[i+depth-1] = struct{}{}
				return true
			}
			if run < len(text) && text[run] == '=' {
				return false
			}
			depth -= closes
			i = run

		default:
			return false
		}
	}
	return false
}

// regexAllowed returns whether a / at the cursor may start a regular
// expression, judging by the previous significant token.
func (l *lexer) regexAllowed() bool {
	if !l.havePrev {
		return true
	}
	prev := l.prev
	switch prev.Kind {
	case token.LeftDelimiter:
		return true
	case token.Punctuation:
		switch prev.Text {
		case ")", "]", "}", "++", "--":
			return false
		case ">":
			return !prev.MayBracket
		}
		return true
	case token.Word:
		return regexKeywords[prev.Text]
	default:
		return false
	}
}

// lexRegex lexes /body/flags, if a closing / appears on the same line.
// Returns false, consuming nothing, if there is none.
func lexRegex(l *lexer) bool {
	rest := l.rest()
	inClass := false
	end := -1

scan:
	for i := 1; i < len(rest); i++ {
		switch rest[i] {
		case '\n', '\r':
			break scan
		case '\\':
			if i+1 < len(rest) && (rest[i+1] == '\n' || rest[i+1] == '\r') {
				break scan
			}
			i++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				end = i
				break scan
			}
		}
	}
	if end <= 1 {
		return false
	}

	start := l.cursor
	l.cursor++
	l.emit(token.LeftDelimiter, start)
	l.cursor = start + end
	l.emit(token.QuotedString, start+1)

	closer := l.cursor
	l.cursor++
	l.takeWhile(unicodex.IsXIDContinue)
	l.emit(token.RightDelimiter, closer)
	return true
}

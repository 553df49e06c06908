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
	"github.com/bufbuild/frontc/internal/ext/unicodex"
	"github.com/bufbuild/frontc/token"
)

// lexNumber lexes a numeric literal.
//
// Any identifier characters directly after the literal are split off into
// an error token, so that 12px lexes as a number followed by a malformed
// tail rather than as garbage.
func lexNumber(l *lexer) {
	start := l.cursor

	switch {
	case l.byteAt(0) == '0' && (l.byteAt(1) == 'x' || l.byteAt(1) == 'X') && unicodex.IsHexDigit(rune(l.byteAt(2))):
		l.cursor += 2
		l.takeWhile(func(r rune) bool { return unicodex.IsHexDigit(r) || r == '_' })

	case l.byteAt(0) == '0' && (l.byteAt(1) == 'b' || l.byteAt(1) == 'B') && isBinary(l.byteAt(2)):
		l.cursor += 2
		l.takeWhile(func(r rune) bool { return r == '0' || r == '1' || r == '_' })

	default:
		l.takeWhile(isDecimal)

		// A dot only starts a fraction when a digit follows it, so that
		// 1..2 and x.0.1 keep their dots.
		if l.byteAt(0) == '.' && isDigit(l.byteAt(1)) {
			l.cursor++
			l.takeWhile(isDecimal)
		}

		if e := l.byteAt(0); e == 'e' || e == 'E' {
			skip := 1
			if sign := l.byteAt(1); sign == '+' || sign == '-' {
				skip++
			}
			if isDigit(l.byteAt(skip)) {
				l.cursor += skip
				l.takeWhile(isDecimal)
			}
		}
	}

	number := l.emit(token.Number, start)

	tail := l.cursor
	if l.takeWhile(unicodex.IsXIDContinue) != "" {
		tok := l.emit(token.Error, tail)
		l.errorf(MalformedNumber, tok.Left, tok.Right, tok.Text, number.Text)
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isBinary(b byte) bool {
	return b == '0' || b == '1'
}

func isDecimal(r rune) bool {
	return (r >= '0' && r <= '9') || r == '_'
}

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
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/bufbuild/frontc/internal/ext/unicodex"
	"github.com/bufbuild/frontc/token"
)

// startsWord returns whether a word starts at the cursor.
func startsWord(l *lexer) bool {
	if unicodex.IsXIDStart(l.peek()) {
		return true
	}
	emoji, _ := unicodex.ClassifyEmoji(l.rest())
	return emoji != unicodex.NotEmoji
}

// lexWord lexes an identifier or keyword.
//
// Words are walked one grapheme cluster at a time so that emoji sequences
// are classified as a whole. Words containing a disallowed emoji sequence, or
// which are not in NFKC, become error tokens.
func lexWord(l *lexer) {
	start := l.cursor
	var badEmoji string

	for !l.done() {
		rest := l.rest()
		if rest[0] < utf8.RuneSelf && (len(rest) == 1 || rest[1] < utf8.RuneSelf) {
			// ASCII fast path: a lone ASCII byte is its own cluster.
			if !unicodex.IsXIDContinue(rune(rest[0])) {
				break
			}
			l.cursor++
			continue
		}

		if emoji, n := unicodex.ClassifyEmoji(rest); emoji != unicodex.NotEmoji {
			if emoji == unicodex.DisallowedEmoji && badEmoji == "" {
				badEmoji = rest[:n]
			}
			l.cursor += n
			continue
		}

		cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
		if r, _ := utf8.DecodeRuneInString(cluster); !unicodex.IsXIDContinue(r) {
			break
		}
		l.cursor += len(cluster)
	}

	word := l.text[start:l.cursor]
	switch {
	case badEmoji != "":
		l.emit(token.Error, start)
		l.errorf(DisallowedEmoji, start, l.cursor, badEmoji)
	case !norm.NFKC.IsNormalString(word):
		l.emit(token.Error, start)
		l.errorf(NotNormalized, start, l.cursor, word)
	default:
		l.emit(token.Word, start)
	}
}

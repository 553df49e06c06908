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

package unicodex

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// TabstopWidth is the size we render all tabstops as.
const TabstopWidth int = 4

// NonPrint defines whether or not a rune is considered "unprintable for the
// purposes of diagnostics", that is, whether it is a rune that is rendered as
// <U+NNNN> when printing.
func NonPrint(r rune) bool {
	return !strings.ContainsRune(" \r\t\n", r) && !unicode.IsPrint(r)
}

// Width measures the rendered width of text in terminal cells, accounting
// for tabstops and East Asian wide characters.
type Width struct {
	// The column at which the text is being rendered. This is necessary for
	// tabstop calculations.
	Column int

	// If set, non-printable characters are counted as if they were rendered
	// as <U+NNNN>.
	EscapeNonPrint bool

	// If non-nil, text is written here with tabs expanded to spaces.
	Out *strings.Builder
}

// WriteString advances the column by the width of text.
func (w *Width) WriteString(text string) (int, error) {
	for i, chunk := range strings.Split(text, "\t") {
		if i > 0 {
			tab := TabstopWidth - (w.Column % TabstopWidth)
			w.Column += tab
			if w.Out != nil {
				w.Out.WriteString(strings.Repeat(" ", tab))
			}
		}

		for chunk != "" {
			next := strings.IndexFunc(chunk, NonPrint)
			if !w.EscapeNonPrint || next == -1 {
				w.write(chunk)
				break
			}

			w.write(chunk[:next])
			r, n := utf8.DecodeRuneInString(chunk[next:])
			escape := "<U+" + strings.ToUpper(hex(r)) + ">"
			w.Column += len(escape)
			if w.Out != nil {
				w.Out.WriteString(escape)
			}
			chunk = chunk[next+n:]
		}
	}
	return len(text), nil
}

func (w *Width) write(text string) {
	w.Column += uniseg.StringWidth(text)
	if w.Out != nil {
		w.Out.WriteString(text)
	}
}

func hex(r rune) string {
	const digits = "0123456789abcdef"
	var buf [8]byte
	i := len(buf)
	for v := uint32(r); v > 0 || i > len(buf)-4; v >>= 4 {
		i--
		buf[i] = digits[v&0xf]
	}
	return string(buf[i:])
}

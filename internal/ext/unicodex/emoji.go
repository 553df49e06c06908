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
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Emoji classifies a grapheme cluster for use inside an identifier.
type Emoji int8

const (
	NotEmoji Emoji = iota
	// A single pictograph, optionally with a presentation selector or a skin
	// tone modifier.
	AllowedEmoji
	// Joined sequences, flags, keycaps, and tag sequences.
	DisallowedEmoji
)

// ClassifyEmoji classifies the grapheme cluster at the start of text, and
// returns the length of that cluster in bytes.
func ClassifyEmoji(text string) (Emoji, int) {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text, -1)
	first, n := utf8.DecodeRuneInString(cluster)

	switch {
	case isRegionalIndicator(first):
		return DisallowedEmoji, len(cluster)
	case !isPictograph(first):
		// Keycaps start with an ASCII digit, '#' or '*'.
		if n < len(cluster) && containsRune(cluster[n:], 0x20e3) {
			return DisallowedEmoji, len(cluster)
		}
		return NotEmoji, len(cluster)
	}

	for _, r := range cluster[n:] {
		switch {
		case r == 0xfe0f, r >= 0x1f3fb && r <= 0x1f3ff:
		default:
			// ZWJ, tags, keycaps, or a second pictograph.
			return DisallowedEmoji, len(cluster)
		}
	}
	return AllowedEmoji, len(cluster)
}

func isPictograph(r rune) bool {
	switch {
	case r >= 0x2600 && r <= 0x27bf, // Miscellaneous Symbols, Dingbats.
		r >= 0x1f300 && r <= 0x1f5ff, // Symbols and Pictographs.
		r >= 0x1f600 && r <= 0x1f64f, // Emoticons.
		r >= 0x1f680 && r <= 0x1f6ff, // Transport and Map.
		r >= 0x1f900 && r <= 0x1f9ff, // Supplemental Symbols and Pictographs.
		r >= 0x1fa70 && r <= 0x1faff: // Symbols and Pictographs Extended-A.
		return true
	}
	return false
}

func isRegionalIndicator(r rune) bool {
	return r >= 0x1f1e6 && r <= 0x1f1ff
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

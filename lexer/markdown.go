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

	"github.com/bufbuild/frontc/source"
	"github.com/bufbuild/frontc/token"
)

// segment is a run of whole lines of a markdown-embedded file that is either
// code or prose.
type segment struct {
	start, end int
	code       bool

	// For prose: the byte ranges of its paragraphs, excluding fence lines.
	paragraphs [][2]int
}

type mdLine struct {
	start, end int // end includes the line break.
	text       string
}

// splitMarkdown splits text into alternating prose and code segments.
//
// Code is the content of fenced blocks (``` or ~~~, at most three spaces of
// indentation) and of indented blocks (four spaces or a tab) that follow a
// blank line. Fence lines are prose.
func splitMarkdown(text string) []segment {
	var lines []mdLine
	for start := 0; start < len(text); {
		end := strings.IndexByte(text[start:], '\n')
		if end == -1 {
			end = len(text)
		} else {
			end += start + 1
		}
		lines = append(lines, mdLine{start: start, end: end, text: text[start:end]})
		start = end
	}

	const (
		prose = iota
		fenced
		indented
	)
	state := prose
	var fence string
	code := make([]bool, len(lines))
	isFence := make([]bool, len(lines))

	// fromProse classifies line i when it is read in prose.
	fromProse := func(i int) {
		line := lines[i].text
		if f := fenceOf(line); f != "" {
			isFence[i] = true
			fence = f
			state = fenced
		} else if !source.IsBlank(line) && isIndentedCode(line) && (i == 0 || source.IsBlank(lines[i-1].text)) {
			code[i] = true
			state = indented
		}
	}

	for i, line := range lines {
		blank := source.IsBlank(line.text)
		switch state {
		case prose:
			fromProse(i)

		case fenced:
			if f := fenceOf(line.text); f != "" && f[0] == fence[0] && len(f) >= len(fence) &&
				source.IsBlank(strings.TrimLeft(strings.TrimLeft(line.text, " "), f[:1])) {
				isFence[i] = true
				state = prose
			} else {
				code[i] = true
			}

		case indented:
			switch {
			case !blank && isIndentedCode(line.text):
				code[i] = true
			case blank && continuesIndented(lines[i+1:]):
				code[i] = true
			default:
				state = prose
				fromProse(i)
			}
		}
	}

	var segs []segment
	for i, line := range lines {
		if len(segs) == 0 || segs[len(segs)-1].code != code[i] {
			segs = append(segs, segment{start: line.start, code: code[i]})
		}
		seg := &segs[len(segs)-1]
		seg.end = line.end

		if !code[i] && !isFence[i] && !source.IsBlank(line.text) {
			// Extend the current paragraph if this line directly follows it.
			n := len(seg.paragraphs)
			if n > 0 && seg.paragraphs[n-1][1] == line.start {
				seg.paragraphs[n-1][1] = line.end
			} else {
				seg.paragraphs = append(seg.paragraphs, [2]int{line.start, line.end})
			}
		}
	}
	return segs
}

// lexProse emits a prose segment as one comment token, preceded by one
// synthetic comment per paragraph if requested.
func lexProse(l *lexer, seg segment) {
	if l.SemilitParagraphs {
		for _, p := range seg.paragraphs {
			text := strings.TrimRight(l.text[p[0]:p[1]], "\r\n")
			l.push(token.Synthesize(token.CommentToken, text, seg.start))
		}
	}
	l.cursor = seg.end
	if seg.end > seg.start {
		l.emit(token.CommentToken, seg.start)
	}
}

// fenceOf returns the fence that line opens or closes, if any.
func fenceOf(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return ""
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return ""
	}
	n := quoteRun(trimmed, c)
	if n < 3 {
		return ""
	}
	return trimmed[:n]
}

func isIndentedCode(line string) bool {
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

// continuesIndented returns whether the next non-blank line continues an
// indented code block.
func continuesIndented(lines []mdLine) bool {
	for _, line := range lines {
		if !source.IsBlank(line.text) {
			return isIndentedCode(line.text)
		}
	}
	return false
}

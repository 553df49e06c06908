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

package source

import (
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/bufbuild/frontc/internal/ext/unicodex"
)

// File is a source code file being compiled.
//
// Files are immutable once created. A nil *File behaves like an empty file
// with the path name "".
type File struct {
	path, text string

	once sync.Once
	// The index after each \n in text, plus a leading zero. Given a byte
	// offset, a binary search over this slice recovers its line.
	lineIndex []int
}

// NewFile constructs a new source file.
func NewFile(path, text string) *File {
	return &File{path: path, text: text}
}

// Path returns this file's path.
//
// It doesn't need to be a real path, but it is used to label diagnostics.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Text returns this file's textual contents.
func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return f.text
}

// Len returns the length of this file in bytes.
func (f *File) Len() int {
	return len(f.Text())
}

// Span is a shorthand for creating a new [Span].
func (f *File) Span(start, end int) Span {
	if f == nil {
		return Span{}
	}
	return Span{File: f, Start: start, End: end}
}

// EOF returns a zero-width span at the very end of the file.
func (f *File) EOF() Span {
	return f.Span(f.Len(), f.Len())
}

// LineByOffset returns the zero-indexed line containing offset.
//
// This operation is O(log n).
func (f *File) LineByOffset(offset int) int {
	line, exact := slices.BinarySearch(f.lines(), offset)
	if !exact {
		line--
	}
	return line
}

// Location converts a byte offset into a user-displayable location.
//
// Columns are measured in terminal cells, so that carets line up under wide
// characters when rendered.
func (f *File) Location(offset int) Location {
	if f == nil || offset == 0 {
		return Location{Offset: 0, Line: 1, Column: 1}
	}

	line := f.LineByOffset(offset)
	w := unicodex.Width{}
	_, _ = w.WriteString(f.text[f.lines()[line]:offset])
	return Location{
		Offset: offset,
		Line:   line + 1,
		Column: w.Column + 1,
	}
}

// Line returns the given 1-indexed line, without its trailing newline.
func (f *File) Line(line int) string {
	start, end := f.LineOffsets(line)
	return strings.TrimRight(f.text[start:end], "\r\n")
}

// LineOffsets returns the offsets for the given 1-indexed line, including its
// trailing newline.
func (f *File) LineOffsets(line int) (start, end int) {
	lines := f.lines()
	if len(lines) == line {
		return lines[line-1], len(f.Text())
	}
	return lines[line-1], lines[line]
}

// Indentation returns the horizontal whitespace at the start of the line
// containing offset.
func (f *File) Indentation(offset int) string {
	nl := strings.LastIndexByte(f.Text()[:offset], '\n') + 1
	margin := strings.IndexFunc(f.Text()[nl:], func(r rune) bool {
		return r != ' ' && r != '\t'
	})
	if margin == -1 {
		return f.Text()[nl:]
	}
	return f.Text()[nl : nl+margin]
}

// IsBlank returns whether text consists only of Pattern_White_Space.
func IsBlank(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool {
		return !unicode.In(r, unicode.Pattern_White_Space)
	}) == -1
}

func (f *File) lines() []int {
	if f == nil {
		return []int{0}
	}

	f.once.Do(func() {
		f.lineIndex = append(f.lineIndex, 0)
		for i := range len(f.text) {
			if f.text[i] == '\n' {
				f.lineIndex = append(f.lineIndex, i+1)
			}
		}
	})
	return f.lineIndex
}

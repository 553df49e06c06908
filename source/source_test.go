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

package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/frontc/source"
)

func TestLocation(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test", "foo\nbar\ncat: 猫x\ntail")

	tests := []source.Location{
		{Offset: 0, Line: 1, Column: 1},
		{Offset: 2, Line: 1, Column: 3},
		{Offset: 4, Line: 2, Column: 1},
		{Offset: 13, Line: 3, Column: 6},
		{Offset: 16, Line: 3, Column: 8},
		{Offset: 18, Line: 4, Column: 1},
		{Offset: 22, Line: 4, Column: 5},
	}
	for _, want := range tests {
		assert.Equal(t, want, file.Location(want.Offset), "%q", file.Text()[:want.Offset])
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test", "a\r\n  bc\n\td")
	assert.Equal(t, "a", file.Line(1))
	assert.Equal(t, "  bc", file.Line(2))
	assert.Equal(t, "\td", file.Line(3))
	assert.Equal(t, 1, file.LineByOffset(5))
	assert.Equal(t, "  ", file.Indentation(6))
	assert.Equal(t, "\t", file.Indentation(9))

	start, end := file.LineOffsets(2)
	assert.Equal(t, 3, start)
	assert.Equal(t, 8, end)
}

func TestSpan(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.fc", "hello\nworld")
	span := file.Span(6, 11)
	assert.Equal(t, "world", span.Text())
	assert.Equal(t, 5, span.Len())
	assert.Equal(t, "test.fc:2:1[6:11]", span.String())
	assert.Equal(t, source.Location{Offset: 11, Line: 2, Column: 6}, span.EndLoc())

	joined := source.Join(file.Span(1, 2), span, source.Span{})
	assert.Equal(t, file.Span(1, 11), joined)

	assert.True(t, source.Span{}.IsZero())
	assert.Equal(t, "<nil>", source.Span{}.String())
	assert.Equal(t, file.Span(11, 11), file.EOF())

	var nilFile *source.File
	assert.Empty(t, nilFile.Path())
	assert.True(t, nilFile.Span(0, 1).IsZero())

	assert.True(t, source.IsBlank(" \t\r\n"))
	assert.False(t, source.IsBlank(" x "))
}

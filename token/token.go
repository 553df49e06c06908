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

package token

import (
	"fmt"
	"strings"

	"github.com/bufbuild/frontc/source"
)

// Token is a lexical element of a source file.
//
// The zero Token is not a valid token; [Source.Next] signals exhaustion with
// its second return value instead.
type Token struct {
	Text string
	Kind Kind

	// The byte range [Left, Right) this token covers. Synthetic tokens are
	// zero-width.
	Left, Right int

	// Set on tokens inserted to repair or normalize the input. Their text
	// does not appear in the source.
	Synthetic bool

	// Set on tokens that may open or close a bracketed group.
	MayBracket bool
	// Set on tokens that may act as a prefix operator.
	MayPrefix bool
	// Set on tokens that may act as an infix, postfix, or separator operator.
	MayInfix bool
}

// Synthesize returns a zero-width synthetic token at the given offset.
func Synthesize(kind Kind, text string, at int) Token {
	return Token{
		Text:      text,
		Kind:      kind,
		Left:      at,
		Right:     at,
		Synthetic: true,
	}
}

// Is returns whether this token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsPunct returns whether this token is the given punctuation.
func (t Token) IsPunct(text string) bool {
	return t.Is(Punctuation, text)
}

// In returns the span of this token within file.
func (t Token) In(file *source.File) source.Span {
	return file.Span(t.Left, t.Right)
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	var flags strings.Builder
	for _, f := range []struct {
		set  bool
		name string
	}{
		{t.Synthetic, "synthetic"},
		{t.MayBracket, "bracket"},
		{t.MayPrefix, "prefix"},
		{t.MayInfix, "infix"},
	} {
		if f.set {
			flags.WriteString(" ")
			flags.WriteString(f.name)
		}
	}
	return fmt.Sprintf("%v %q [%d:%d]%s", t.Kind, t.Text, t.Left, t.Right, flags.String())
}

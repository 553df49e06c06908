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

package report

import (
	"fmt"
	"runtime/debug"
	"slices"
	"strings"
)

// Report is a collection of diagnostics.
//
// A zero Report is empty and ready to use. Report is not safe for concurrent
// use; each parse owns its own.
type Report struct {
	Diagnostics []Diagnostic
}

// Errorf creates a new error diagnostic with the given message.
func (r *Report) Errorf(format string, args ...any) *Diagnostic {
	return r.push(Error).With(Message(format, args...))
}

// Warnf creates a new warning diagnostic with the given message.
func (r *Report) Warnf(format string, args ...any) *Diagnostic {
	return r.push(Warning).With(Message(format, args...))
}

// Remarkf creates a new remark diagnostic with the given message.
func (r *Report) Remarkf(format string, args ...any) *Diagnostic {
	return r.push(Remark).With(Message(format, args...))
}

// Fatalf creates a new fatal diagnostic with the given message.
func (r *Report) Fatalf(format string, args ...any) *Diagnostic {
	return r.push(Fatal).With(Message(format, args...))
}

// Log implements [Sink].
func (r *Report) Log(level Level, t Template, at Spanner, values ...any) {
	r.push(level).With(
		Message(t.Format, values...),
		t.Tag,
		Snippet(at),
	)
}

// Has returns whether this report contains a diagnostic at level or more
// severe.
func (r *Report) Has(level Level) bool {
	return slices.ContainsFunc(r.Diagnostics, func(d Diagnostic) bool {
		return d.level <= level
	})
}

// Tags returns the tags of every diagnostic in this report, in order.
func (r *Report) Tags() []Tag {
	tags := make([]Tag, len(r.Diagnostics))
	for i := range r.Diagnostics {
		tags[i] = r.Diagnostics[i].tag
	}
	return tags
}

// Sort sorts the diagnostics in this report by primary span, keeping
// diagnostics without spans at the end.
func (r *Report) Sort() {
	slices.SortStableFunc(r.Diagnostics, func(a, b Diagnostic) int {
		pa, pb := a.Primary(), b.Primary()
		switch {
		case pa.IsZero() != pb.IsZero():
			if pa.IsZero() {
				return 1
			}
			return -1
		case pa.Path() != pb.Path():
			return strings.Compare(pa.Path(), pb.Path())
		case pa.Start != pb.Start:
			return pa.Start - pb.Start
		default:
			return pa.End - pb.End
		}
	})
}

// CatchICE will recover a panic (an internal compiler error, or ICE) and log
// it as an error diagnostic. This function should be called in a defer
// statement.
//
// When constructing the diagnostic, diagnose is called, to provide an
// opportunity to annotate further.
//
// If resume is true, resumes the recovered panic.
func (r *Report) CatchICE(resume bool, diagnose func(*Diagnostic)) {
	panicked := recover()
	if panicked == nil {
		return
	}

	d := r.push(ICE).With(
		Message("unexpected panic; this is a bug in frontc"),
		Debug("panic: %v", panicked),
		Debug("stack:\n%s", debug.Stack()),
	)
	if diagnose != nil {
		diagnose(d)
	}

	if resume {
		panic(panicked)
	}
}

// ICETemplate is the template [Recover] logs panics with.
var ICETemplate = Template{
	Tag:    "ice",
	Format: "unexpected panic; this is a bug in frontc: %v",
}

// Recover is the [Sink] counterpart to [Report.CatchICE]: it recovers a panic
// and logs it to sink at the [ICE] level. It must be called directly in a
// defer statement.
//
// at, if non-nil, supplies the span to blame. then, if non-nil, runs after
// the diagnostic is logged, to put the caller back into a consistent state.
func Recover(sink Sink, at func() Spanner, then func()) {
	panicked := recover()
	if panicked == nil {
		return
	}

	var span Spanner
	if at != nil {
		span = at()
	}
	sink.Log(ICE, ICETemplate, span, panicked)
	if then != nil {
		then()
	}
}

// push is the core "make me a diagnostic" function.
func (r *Report) push(level Level) *Diagnostic {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{level: level})
	return &r.Diagnostics[len(r.Diagnostics)-1]
}

// String implements [fmt.Stringer] using a compact [Renderer].
func (r *Report) String() string {
	text, _, _ := Renderer{Compact: true, ShowRemarks: true}.RenderString(r)
	return text
}

var _ fmt.Stringer = (*Report)(nil)

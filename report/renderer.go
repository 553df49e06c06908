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
	"io"
	"strconv"
	"strings"

	"github.com/bufbuild/frontc/internal/ext/unicodex"
)

// Renderer configures a diagnostic rendering operation.
type Renderer struct {
	// If set, uses a compact one-line format for each diagnostic.
	Compact bool

	// If set, rendering results are enriched with ANSI color escapes.
	Colorize bool

	// Upgrades all warnings to errors.
	WarningsAreErrors bool

	// If set, remark diagnostics will be printed.
	ShowRemarks bool

	// If set, rendering a diagnostic will show the debug footer.
	ShowDebug bool
}

// Render renders a diagnostic report.
//
// In addition to the write error, returns the number of errors and warnings
// rendered.
func (r Renderer) Render(report *Report, out io.Writer) (errorCount, warningCount int, err error) {
	for i := range report.Diagnostics {
		d := &report.Diagnostics[i]
		if !r.ShowRemarks && d.level == Remark {
			continue
		}

		if _, err = fmt.Fprintln(out, r.Diagnostic(d)); err != nil {
			return errorCount, warningCount, err
		}
		if !r.Compact {
			if _, err = fmt.Fprintln(out); err != nil {
				return errorCount, warningCount, err
			}
		}

		switch {
		case d.level <= Error, d.level == Warning && r.WarningsAreErrors:
			errorCount++
		case d.level == Warning:
			warningCount++
		}
	}
	if r.Compact || errorCount+warningCount == 0 {
		return errorCount, warningCount, nil
	}

	c := newStyleSheet(r)
	if errorCount > 0 {
		_, err = fmt.Fprint(out, c.bError, "encountered ", pluralize(errorCount, "error"))
		if err == nil && warningCount > 0 {
			_, err = fmt.Fprint(out, " and ", pluralize(warningCount, "warning"))
		}
	} else {
		_, err = fmt.Fprint(out, c.bWarning, "encountered ", pluralize(warningCount, "warning"))
	}
	if err == nil {
		_, err = fmt.Fprintln(out, c.reset)
	}
	return errorCount, warningCount, err
}

// RenderString is a helper for calling [Renderer.Render] with a [strings.Builder].
func (r Renderer) RenderString(report *Report) (text string, errorCount, warningCount int) {
	var buf strings.Builder
	e, w, _ := r.Render(report, &buf)
	return buf.String(), e, w
}

// Diagnostic renders a single diagnostic to a string.
func (r Renderer) Diagnostic(d *Diagnostic) string {
	level := d.level
	if level == Warning && r.WarningsAreErrors {
		level = Error
	}
	c := newStyleSheet(r)
	primary := d.Primary()

	// For the compact style, we imitate the Go compiler.
	if r.Compact {
		var where string
		switch {
		case !primary.IsZero():
			loc := primary.StartLoc()
			where = fmt.Sprintf("%s:%d:%d: ", primary.Path(), loc.Line, loc.Column)
		case d.inFile != "":
			where = d.inFile + ": "
		}
		return fmt.Sprint(c.ColorForLevel(level), level, ": ", where, d.message, c.reset)
	}

	// Otherwise, we imitate the Rust compiler, with one source window per
	// annotation.
	var out strings.Builder
	fmt.Fprint(&out, c.BoldForLevel(level), level, ": ", d.message, c.reset)

	gutter := 2
	for _, a := range d.annotations {
		gutter = max(gutter, len(strconv.Itoa(a.EndLoc().Line)))
	}

	for i, a := range d.annotations {
		start := a.StartLoc()
		arrow := "-->"
		if i > 0 {
			arrow = ":::"
		}
		fmt.Fprintf(&out, "\n%s%s %s %s:%d:%d%s", c.nAccent, pad(gutter-1), arrow, a.Path(), start.Line, start.Column, c.reset)
		fmt.Fprintf(&out, "\n%s%s |%s", c.nAccent, pad(gutter), c.reset)
		r.window(&out, &c, level, a, gutter)
	}
	if len(d.annotations) == 0 && d.inFile != "" {
		fmt.Fprintf(&out, "\n%s%s --> %s%s", c.nAccent, pad(gutter-1), d.inFile, c.reset)
	}

	footer := func(color, kind, text string) {
		fmt.Fprintf(&out, "\n%s%s = %s%s: %s", c.nAccent, pad(gutter), color, kind, c.reset)
		out.WriteString(strings.ReplaceAll(text, "\n", "\n"+pad(gutter+5+len(kind))))
	}
	for _, n := range d.notes {
		footer(c.bRemark, "note", n)
	}
	for _, h := range d.help {
		footer(c.bRemark, "help", h)
	}
	if r.ShowDebug {
		for _, dbg := range d.debug {
			footer(c.bError, "debug", dbg)
		}
	}
	return out.String()
}

// window renders the first line of an annotation with an underline beneath
// the annotated range.
func (r Renderer) window(out *strings.Builder, c *styleSheet, level Level, a annotation, gutter int) {
	start, end := a.StartLoc(), a.EndLoc()
	line := a.File.Line(start.Line)

	var text strings.Builder
	w := unicodex.Width{EscapeNonPrint: true, Out: &text}
	_, _ = w.WriteString(line)
	fmt.Fprintf(out, "\n%s%*d |%s %s", c.nAccent, gutter, start.Line, c.reset, text.String())

	// The underline stops at the end of the first line for multi-line spans.
	width := 1
	if end.Line == start.Line && end.Column > start.Column {
		width = end.Column - start.Column
	} else if end.Line != start.Line {
		_, lineEnd := a.File.LineOffsets(start.Line)
		width = max(1, a.Location(lineEnd).Column-start.Column)
	}

	color, mark := c.nAccent, "-"
	if a.primary {
		color, mark = c.BoldForLevel(level), "^"
	}
	fmt.Fprintf(out, "\n%s%s |%s %s%s%s", c.nAccent, pad(gutter), c.reset,
		pad(start.Column-1), color, strings.Repeat(mark, width))
	if a.message != "" {
		out.WriteString(" ")
		out.WriteString(a.message)
	}
	out.WriteString(c.reset)
}

func pad(n int) string {
	return strings.Repeat(" ", max(0, n))
}

func pluralize(count int, what string) string {
	if count == 1 {
		return "1 " + what
	}
	return fmt.Sprint(count, " ", what, "s")
}

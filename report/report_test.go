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

package report_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/frontc/report"
	"github.com/bufbuild/frontc/source"
)

var bad = report.Template{Tag: "bad", Format: "bad `%s`"}

func TestRender(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.fc", "x = @\ny")
	r := new(report.Report)
	r.Log(report.Error, bad, file.Span(4, 5), "@")

	text, errs, warnings := report.Renderer{Compact: true}.RenderString(r)
	assert.Equal(t, "error: test.fc:1:5: bad `@`\n", text)
	assert.Equal(t, 1, errs)
	assert.Zero(t, warnings)

	text, _, _ = report.Renderer{}.RenderString(r)
	assert.Equal(t, "error: bad `@`\n"+
		"  --> test.fc:1:5\n"+
		"   |\n"+
		" 1 | x = @\n"+
		"   |     ^\n"+
		"\n"+
		"encountered 1 error\n", text)

	text, _, _ = report.Renderer{Compact: true, Colorize: true}.RenderString(r)
	assert.Equal(t, "\033[0;31merror: test.fc:1:5: bad `@`\033[0m\n", text)
}

func TestRenderWindows(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.fc", "x = @\ny")
	r := new(report.Report)
	r.Errorf("two places").With(report.Snippet(file.Span(0, 1)), report.Snippet(file.Span(6, 7)))

	text, _, _ := report.Renderer{}.RenderString(r)
	assert.Equal(t, "error: two places\n"+
		"  --> test.fc:1:1\n"+
		"   |\n"+
		" 1 | x = @\n"+
		"   | ^\n"+
		"  ::: test.fc:2:1\n"+
		"   |\n"+
		" 2 | y\n"+
		"   | -\n"+
		"\n"+
		"encountered 1 error\n", text)

	r = new(report.Report)
	r.Errorf("whole file").With(report.InFile("other.fc"))
	text, _, _ = report.Renderer{}.RenderString(r)
	assert.Contains(t, text, "error: whole file\n  --> other.fc\n")
}

func TestRenderLevels(t *testing.T) {
	t.Parallel()

	r := new(report.Report)
	r.Warnf("careful")
	r.Remarkf("by the way")
	r.Errorf("broken").With(report.Note("see %s", "above"), report.Help("fix it"))

	text, errs, warnings := report.Renderer{Compact: true}.RenderString(r)
	assert.Equal(t, "warning: careful\nerror: broken\n", text)
	assert.Equal(t, 1, errs)
	assert.Equal(t, 1, warnings)

	_, errs, warnings = report.Renderer{Compact: true, WarningsAreErrors: true, ShowRemarks: true}.RenderString(r)
	assert.Equal(t, 2, errs)
	assert.Zero(t, warnings)

	text, _, _ = report.Renderer{}.RenderString(r)
	assert.Contains(t, text, "  = note: see above")
	assert.Contains(t, text, "  = help: fix it")
	assert.Contains(t, text, "encountered 1 error and 1 warning")

	assert.False(t, r.Has(report.Fatal))
	assert.True(t, r.Has(report.Error))
	assert.True(t, r.Has(report.Remark))
}

func TestSort(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.fc", "abcdef")
	r := new(report.Report)
	r.Log(report.Error, report.Template{Tag: "c", Format: "c"}, file.Span(4, 5))
	r.Log(report.Error, report.Template{Tag: "none", Format: "none"}, nil)
	r.Log(report.Error, report.Template{Tag: "a", Format: "a"}, file.Span(1, 2))
	r.Log(report.Error, report.Template{Tag: "b", Format: "b"}, file.Span(1, 3))

	r.Sort()
	assert.Equal(t, []report.Tag{"a", "b", "c", "none"}, r.Tags())
	assert.True(t, r.Diagnostics[0].Is("a"))
	assert.Equal(t, "a", r.Diagnostics[0].Message())
}

func TestSinks(t *testing.T) {
	t.Parallel()

	r := new(report.Report)
	counts := make(report.Counter)
	var seen []report.Level
	sink := report.Tee(r, nil, counts, report.SinkFunc(func(l report.Level, _ report.Template, _ report.Spanner, _ ...any) {
		seen = append(seen, l)
	}))

	sink.Log(report.Warning, bad, nil, "x")
	sink.Log(report.Fatal, bad, nil, "y")
	assert.Equal(t, []report.Level{report.Warning, report.Fatal}, seen)
	assert.Equal(t, report.Counter{report.Warning: 1, report.Fatal: 1}, counts)
	assert.Len(t, r.Diagnostics, 2)
	assert.Equal(t, "bad `y`", r.Diagnostics[1].Message())

	assert.Same(t, r, report.Tee(nil, r))
	report.Discard.Log(report.Error, bad, nil, "z")

	locked := report.Locked(counts)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locked.Log(report.Remark, bad, nil, "w")
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, counts[report.Remark])
}

func TestRecover(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.fc", "boom")
	r := new(report.Report)
	var restored bool
	func() {
		defer report.Recover(r, func() report.Spanner { return file.Span(0, 4) }, func() { restored = true })
		panic("kaboom")
	}()

	assert.True(t, restored)
	require.Len(t, r.Diagnostics, 1)
	assert.True(t, r.Has(report.ICE))
	assert.Equal(t, []report.Tag{"ice"}, r.Tags())
	assert.Equal(t, file.Span(0, 4), r.Diagnostics[0].Primary())

	func() {
		defer r.CatchICE(false, func(d *report.Diagnostic) {
			d.With(report.Note("while testing"))
		})
		panic("again")
	}()
	require.Len(t, r.Diagnostics, 2)
	assert.Equal(t, report.ICE, r.Diagnostics[1].Level())
	assert.Equal(t, []string{"while testing"}, r.Diagnostics[1].Notes())
}

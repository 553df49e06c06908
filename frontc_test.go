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

package frontc_test

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/frontc"
	"github.com/bufbuild/frontc/cst"
	"github.com/bufbuild/frontc/lexer"
	"github.com/bufbuild/frontc/report"
	"github.com/bufbuild/frontc/source"
)

func TestParse(t *testing.T) {
	t.Parallel()

	counts := make(report.Counter)
	res := frontc.Parse(source.NewFile("test.fc", "x = 1 // one\ny = 2\n"), frontc.Options{Sink: counts})
	assert.Equal(t, `(Root (Assign x = 1) (Assign y = 2))`, res.CST.String())
	assert.Empty(t, res.Report.Diagnostics)
	assert.Empty(t, counts)
	assert.False(t, res.Unusable)

	require.Len(t, res.Comments, 1)
	assert.Equal(t, "// one", res.Comments[0].Text)
	index := res.CommentIndex()
	assert.Equal(t, 1, index.Len())
	assert.Len(t, index.Between(0, res.File.Len()), 1)
}

func TestParseMarkdown(t *testing.T) {
	t.Parallel()

	text := "# Title\n\nSome prose.\n\n```\nx = 1\n```\n"
	res := frontc.Parse(source.NewFile("test.fc.md", text), frontc.Options{Language: lexer.MarkdownEmbedded})
	assert.Equal(t, `(Assign x = 1)`, res.CST.String())
	assert.NotEmpty(t, res.Comments)
	assert.False(t, res.Unusable)
}

func TestUnusable(t *testing.T) {
	t.Parallel()

	counts := make(report.Counter)
	res := frontc.Parse(source.NewFile("test.fc", "a ;;; b ;;; c ;;; d"), frontc.Options{Sink: counts})
	assert.True(t, res.Unusable)
	assert.True(t, res.Report.Has(report.Fatal))
	assert.Equal(t, 1, counts[report.Fatal])
}

func TestRaw(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.fc", `x = "a${}b"`)
	raw := frontc.Parse(file, frontc.Options{Raw: true})
	processed := frontc.Parse(file, frontc.Options{})
	assert.Contains(t, raw.CST.String(), "Hole")
	assert.NotContains(t, processed.CST.String(), "Hole")
	assert.Contains(t, processed.CST.String(), `"a" "b"`)
}

func TestCompiler(t *testing.T) {
	t.Parallel()

	config := new(frontc.Config)
	compiler := frontc.Compiler{
		Resolver: &frontc.SourceResolver{
			Accessor: frontc.SourceAccessorFromMap(map[string]string{
				"a.fc":    "x = 1",
				"b.fc.md": "```\ny = 2\n```\n",
				"bad.fc":  "a ;;; b ;;; c ;;; d",
			}),
		},
		MaxParallelism: 2,
		OptionsFor:     config.Options,
	}

	results, err := compiler.Compile(t.Context(), "a.fc", "b.fc.md", "a.fc", "bad.fc")
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, `(Assign x = 1)`, results[0].CST.String())
	assert.Equal(t, `(Assign y = 2)`, results[1].CST.String())
	assert.Same(t, results[0], results[2])
	assert.True(t, results[3].Unusable)

	_, err = compiler.Compile(t.Context(), "a.fc", "missing.fc")
	require.ErrorIs(t, err, fs.ErrNotExist)

	compiler.FailFast = true
	_, err = compiler.Compile(t.Context(), "a.fc", "bad.fc")
	var unusable *frontc.UnusableError
	require.ErrorAs(t, err, &unusable)
	assert.Equal(t, "bad.fc", unusable.Path)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = compiler.Compile(ctx, "a.fc")
	assert.ErrorIs(t, err, context.Canceled)

	results, err = compiler.Compile(t.Context())
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestCompilerTrees(t *testing.T) {
	t.Parallel()

	tree := frontc.Parse(source.NewFile("a.fc", "f(a, b)"), frontc.Options{}).CST
	compiler := frontc.Compiler{
		Resolver: frontc.CompositeResolver{
			frontc.ResolverFunc(func(path string) (frontc.SearchResult, error) {
				if path != "tree.fc" {
					return frontc.SearchResult{}, frontc.ErrNotFound
				}
				return frontc.SearchResult{CST: cst.Marshal(tree)}, nil
			}),
			&frontc.SourceResolver{
				Accessor: frontc.SourceAccessorFromMap(map[string]string{"src.fc": "a.b"}),
			},
		},
	}

	results, err := compiler.Compile(t.Context(), "tree.fc", "src.fc")
	require.NoError(t, err)
	assert.Equal(t, tree.String(), results[0].CST.String())
	assert.Equal(t, `(Member a . b)`, results[1].CST.String())

	_, err = compiler.Compile(t.Context(), "nowhere.fc")
	assert.True(t, errors.Is(err, frontc.ErrNotFound) || errors.Is(err, fs.ErrNotExist))

	_, err = frontc.CompositeResolver(nil).FindFileByPath("x")
	assert.ErrorIs(t, err, frontc.ErrNotFound)
}

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

package frontc

import (
	"github.com/bufbuild/frontc/adapt"
	"github.com/bufbuild/frontc/cst"
	"github.com/bufbuild/frontc/lexer"
	"github.com/bufbuild/frontc/operator"
	"github.com/bufbuild/frontc/parser"
	"github.com/bufbuild/frontc/report"
	"github.com/bufbuild/frontc/source"
	"github.com/bufbuild/frontc/token"
)

// Options configures [Parse].
type Options struct {
	Language lexer.Language
	// If set, markdown prose paragraphs are recorded as comments.
	SemilitParagraphs bool
	// Defaults to [operator.Default].
	Table *operator.Table
	// If set, every diagnostic is also logged here as it is produced.
	Sink report.Sink
	// If set, the tree is returned as the parser built it, without
	// [parser.PostProcess].
	Raw bool
}

// Result is the outcome of parsing one file.
type Result struct {
	// The parsed file. For results decoded from a stored tree, only the
	// path is known and the text is empty.
	File     *source.File
	CST      cst.Node
	Comments []token.Comment
	Report   *report.Report

	// Set if a fatal diagnostic or an internal error was logged. The tree
	// of an unusable result must not be handed to later phases.
	Unusable bool
}

// CommentIndex returns a positional index over the comments of this result.
func (r *Result) CommentIndex() *cst.CommentIndex {
	return cst.NewCommentIndex(r.Comments)
}

// Parse runs the whole front end on file.
func Parse(file *source.File, opts Options) *Result {
	res := &Result{File: file, Report: new(report.Report)}
	counts := make(report.Counter)
	sink := report.Tee(res.Report, counts, opts.Sink)

	table := opts.Table
	if table == nil {
		table = operator.Default()
	}

	func() {
		defer report.Recover(sink, nil, nil)

		lx := &lexer.Lexer{
			Language:          opts.Language,
			SemilitParagraphs: opts.SemilitParagraphs,
			Table:             table,
		}
		stream := adapt.Pipeline(lx.Lex(file, sink), table, &res.Comments)
		res.CST = parser.Parse(stream, parser.Options{
			Table: table,
			Sink:  sink,
			File:  file,
		})
		if !opts.Raw {
			res.CST = parser.PostProcess(res.CST)
		}
	}()

	if res.CST == nil {
		res.CST = &cst.Inner{Op: table.Root()}
	}
	res.Report.Sort()
	res.Unusable = counts[report.Fatal] > 0 || counts[report.ICE] > 0
	return res
}

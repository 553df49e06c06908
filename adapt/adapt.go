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

// Package adapt contains the token stream transformers that sit between the
// lexer and the parser.
//
// Each transformer is a [token.Source] that pulls from the previous one. They
// are applied in this order by [Pipeline]:
//
//  1. [CommentGrouper] records comments on the side.
//  2. [SemicolonInserter] drops space and comments, and inserts statement
//     separators at line breaks around braces.
//  3. [QuoteTagger] wraps string groups in synthetic parentheses.
//  4. [CallJoiner] joins a closing brace to a following word.
//  5. [WordPairer] rewrites modifier keywords into decorators.
package adapt

import (
	"github.com/bufbuild/frontc/operator"
	"github.com/bufbuild/frontc/token"
)

// Pipeline applies every transformer in this package to src. If comments is
// non-nil, comment records are appended to it as the stream is consumed.
func Pipeline(src token.Source, table *operator.Table, comments *[]token.Comment) token.Source {
	if table == nil {
		table = operator.Default()
	}
	src = NewCommentGrouper(src, comments)
	src = NewSemicolonInserter(src, table)
	src = NewQuoteTagger(src)
	src = NewCallJoiner(src)
	return NewWordPairer(src, table)
}

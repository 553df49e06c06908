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

package cst

import (
	"math"

	"github.com/bufbuild/frontc/internal/interval"
	"github.com/bufbuild/frontc/token"
)

// CommentIndex finds the comments around positions in a file.
//
// Zero-width comments, such as synthetic paragraph markers, are not indexed.
type CommentIndex struct {
	comments interval.Map[int, token.Comment]
}

// NewCommentIndex indexes comments. Comments that overlap one already
// indexed are dropped.
func NewCommentIndex(comments []token.Comment) *CommentIndex {
	ci := new(CommentIndex)
	for _, c := range comments {
		if c.Right <= c.Left {
			continue
		}
		ci.comments.Insert(c.Left, c.Right-1, c)
	}
	return ci
}

// Len returns the number of indexed comments.
func (ci *CommentIndex) Len() int {
	return ci.comments.Len()
}

// At returns the comment covering offset.
func (ci *CommentIndex) At(offset int) (token.Comment, bool) {
	e, ok := ci.comments.Get(offset)
	return e.Value, ok
}

// Between returns the comments that lie entirely within [left, right).
func (ci *CommentIndex) Between(left, right int) []token.Comment {
	var out []token.Comment
	if right <= left {
		return out
	}
	for e := range ci.comments.Range(left, right-1) {
		if left <= e.Start && e.End < right {
			out = append(out, e.Value)
		}
	}
	return out
}

// Attach assigns each comment to the first non-synthetic leaf after it.
// Comments after the last such leaf go to that leaf.
func (ci *CommentIndex) Attach(root Node) map[*Leaf][]token.Comment {
	out := make(map[*Leaf][]token.Comment)
	var prev *Leaf
	cursor := 0
	Walk(root, func(n Node) bool {
		leaf, ok := n.(*Leaf)
		if !ok || leaf.Token.Synthetic {
			return true
		}
		if found := ci.Between(cursor, leaf.Token.Left); len(found) > 0 {
			out[leaf] = append(out[leaf], found...)
		}
		prev, cursor = leaf, leaf.Token.Right
		return true
	})
	if prev != nil {
		if found := ci.Between(cursor, math.MaxInt); len(found) > 0 {
			out[prev] = append(out[prev], found...)
		}
	}
	return out
}

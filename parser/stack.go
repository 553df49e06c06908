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

package parser

import (
	"github.com/bufbuild/frontc/cst"
	"github.com/bufbuild/frontc/internal/arena"
	"github.com/bufbuild/frontc/operator"
	"github.com/bufbuild/frontc/token"
)

// element is a node under construction: either a token, or an operator and
// its children.
type element struct {
	op   *operator.Operator // Nil for tokens.
	tok  token.Token
	kids []ptr

	// Set on tokens that spell their parent's operator, such as the + of
	// a + b or both parentheses of (a), as opposed to operands.
	syntax bool
	// Set on bracketed nodes once their close token arrives.
	closed bool
}

type ptr = arena.Pointer[element]

// awaiting returns whether e is a group still waiting for its close token.
func (e *element) awaiting() bool {
	return e.op.Closer() && !e.closed
}

// expectsFollower returns whether the next child of e must be a follower.
func (e *element) expectsFollower() bool {
	_, ok := e.op.FollowerAt(len(e.kids))
	return ok
}

// complete returns whether e may be committed without a diagnostic once
// pending more children have been attached to it.
func (e *element) complete(pending int) bool {
	n := len(e.kids) + pending
	_, follower := e.op.FollowerAt(n)
	return n >= e.op.MinArity && !e.awaiting() && !follower
}

// accepts returns whether e can take another operand.
func (e *element) accepts() bool {
	switch {
	case e.awaiting():
		return true
	case e.op.Full(len(e.kids)), e.expectsFollower():
		return false
	default:
		return true
	}
}

// stack is the parser's operator stack.
//
// Frames are open inner elements; frames[0] is the root. A frame becomes
// the last child of the frame below it when it is committed. All elements
// live in one arena, so reparenting an element is a matter of moving its
// pointer between kids slices.
type stack struct {
	arena  arena.Arena[element]
	frames []ptr
}

func newStack(root *operator.Operator) *stack {
	s := new(stack)
	s.frames = append(s.frames, s.arena.New(element{op: root}))
	return s
}

func (s *stack) len() int {
	return len(s.frames)
}

func (s *stack) get(p ptr) *element {
	return p.In(&s.arena)
}

// at returns the ith frame from the bottom.
func (s *stack) at(i int) *element {
	return s.get(s.frames[i])
}

func (s *stack) top() *element {
	return s.at(len(s.frames) - 1)
}

// lastKid returns the last child of e, if it has one.
func (s *stack) lastKid(e *element) (*element, bool) {
	if len(e.kids) == 0 {
		return nil, false
	}
	return s.get(e.kids[len(e.kids)-1]), true
}

func (s *stack) token(tok token.Token, syntax bool) ptr {
	return s.arena.New(element{tok: tok, syntax: syntax})
}

// push opens a new frame with the given children.
func (s *stack) push(op *operator.Operator, kids ...ptr) {
	s.frames = append(s.frames, s.arena.New(element{op: op, kids: kids}))
}

// pop removes the top frame without attaching it anywhere.
func (s *stack) pop() ptr {
	p := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return p
}

// bounds returns the first and last token under p.
func (s *stack) bounds(p ptr) (first, last token.Token, ok bool) {
	e := s.get(p)
	if e.op == nil {
		return e.tok, e.tok, true
	}
	for _, k := range e.kids {
		if first, _, ok = s.bounds(k); ok {
			break
		}
	}
	for i := len(e.kids) - 1; i >= 0; i-- {
		if _, last, ok = s.bounds(e.kids[i]); ok {
			break
		}
	}
	return first, last, ok
}

// build converts the subtree at p into a syntax tree.
func (s *stack) build(p ptr) cst.Node {
	e := s.get(p)
	if e.op == nil {
		return &cst.Leaf{Token: e.tok}
	}
	inner := &cst.Inner{Op: e.op, Children: make([]cst.Node, len(e.kids))}
	for i, k := range e.kids {
		inner.Children[i] = s.build(k)
	}
	return inner
}

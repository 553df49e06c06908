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

package operator

import (
	"fmt"
	"slices"
)

const (
	Prefix    Type = iota // Operator token first: -x, (x), let x.
	Infix                 // Left operand, operator, right operand: a + b.
	Postfix               // Left operand, then operator: x++, f(x).
	Separator             // Items between separator tokens: a, b, c.
	Leaf                  // A spelling that never acts as an operator.
	Root                  // The implicit operator at the top of every tree.
)

// Type is the syntactic shape of an [Operator].
type Type int8

// String implements [fmt.Stringer].
func (t Type) String() string {
	switch t {
	case Prefix:
		return "Prefix"
	case Infix:
		return "Infix"
	case Postfix:
		return "Postfix"
	case Separator:
		return "Separator"
	case Leaf:
		return "Leaf"
	case Root:
		return "Root"
	default:
		return fmt.Sprintf("operator.Type(%d)", int(t))
	}
}

// Unbounded is the MaxArity of operators that take any number of children.
const Unbounded = -1

// Follower is a token that must appear at a particular child index of an
// operator's node, such as the : of a ternary.
type Follower struct {
	Index int
	Text  string
}

// Operator describes how one kind of inner node is built.
type Operator struct {
	Name Name
	// The spelling of the token that introduces this operator. Empty for
	// the root and for delimited groups, which open on any left delimiter.
	Text string
	Type Type
	// Higher binds tighter.
	Prec int

	MinArity, MaxArity int
	RightAssoc         bool

	// The spelling of the token that closes this operator's node, if it is a
	// bracket.
	Close string
	// Set for groups closed by a right delimiter token instead of Close.
	Delimited bool

	Followers []Follower

	// Set for operators whose node closes as soon as its arity is satisfied,
	// so that following content is implicitly separated from it.
	Shunt bool

	// Set for operators only matched on tokens marked as brackets, such as
	// the < of a generic argument list.
	Bracket bool
	// Set for operators only matched on synthetic tokens.
	SyntheticOnly bool

	// If nonzero, the first operand after a prefix operator's token only
	// takes nodes binding at least this tightly, as the name a.b does in
	// @a.b x. Later operands follow Prec.
	HeadPrec int

	// The operator an open node of this operator is rewritten to when a
	// token of a Promotes operator arrives while it is on the stack.
	Promote  *Operator
	Promotes bool
}

// Closer returns whether this operator's node stays open until a matching
// close token arrives.
func (o *Operator) Closer() bool {
	return o.Close != "" || o.Delimited
}

// Bounded returns whether this operator has a maximum arity.
func (o *Operator) Bounded() bool {
	return o.MaxArity != Unbounded
}

// Full returns whether a node with n children has reached its maximum arity.
func (o *Operator) Full(n int) bool {
	return o.Bounded() && n >= o.MaxArity
}

// Atomic returns whether a node of this operator acts as a single operand
// regardless of precedence: bracketed and delimited groups.
func (o *Operator) Atomic() bool {
	return o.Type == Prefix && o.Closer()
}

// HasLeft returns whether the first child of this operator's node is an
// operand that precedes the operator token.
func (o *Operator) HasLeft() bool {
	return o.Type == Infix || o.Type == Postfix
}

// FollowerAt returns the follower this operator expects at child index i.
func (o *Operator) FollowerAt(i int) (string, bool) {
	idx := slices.IndexFunc(o.Followers, func(f Follower) bool { return f.Index == i })
	if idx == -1 {
		return "", false
	}
	return o.Followers[idx].Text, true
}

// String implements [fmt.Stringer].
func (o *Operator) String() string {
	if o == nil {
		return "<nil>"
	}
	return string(o.Name)
}

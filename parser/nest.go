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

import "github.com/bufbuild/frontc/operator"

// slot classifies the position a child occupies within its parent.
type slot int8

const (
	slotAny   slot = iota // Root children and bracket contents.
	slotLeft              // The operand before an infix or postfix operator.
	slotRight             // The operand after an operator.
	slotItem              // An item of a separator run.
	slotHead              // The first operand of a prefix operator with a HeadPrec.
)

// slotOf returns the kind of slot at child index i of a node of op.
func slotOf(op *operator.Operator, i int) slot {
	switch {
	case op.Type == operator.Root:
		return slotAny
	case op.Type == operator.Separator:
		return slotItem
	case i == 0 && op.HasLeft():
		return slotLeft
	case i == 1 && op.Type == operator.Prefix && op.HeadPrec > 0:
		return slotHead
	case op.Closer():
		return slotAny
	}

	// Operands before the last follower are bracketed by operator tokens,
	// like the middle of a ? b : c.
	for _, f := range op.Followers {
		if i < f.Index {
			return slotAny
		}
	}
	return slotRight
}

// canNest returns whether a node of child may occupy slot s of a node of
// parent. A nil child is a leaf.
func canNest(parent *operator.Operator, s slot, child *operator.Operator) bool {
	if child == nil || child.Atomic() {
		return true
	}

	switch s {
	case slotLeft:
		return child.Prec > parent.Prec ||
			(child.Prec == parent.Prec && !parent.RightAssoc)
	case slotRight:
		return child.Prec > parent.Prec ||
			(child.Prec == parent.Prec && parent.RightAssoc) ||
			child.Type == operator.Prefix
	case slotItem:
		return child.Prec > parent.Prec || child.Type == operator.Prefix
	case slotHead:
		return child.Prec >= parent.HeadPrec
	default:
		return true
	}
}

// canAdopt returns whether a new node of op may take child as its left
// operand, while itself taking child's place at index i of grandparent.
func canAdopt(grandparent *operator.Operator, i int, op, child *operator.Operator) bool {
	return canNest(op, slotOf(op, 0), child) &&
		canNest(grandparent, slotOf(grandparent, i), op)
}

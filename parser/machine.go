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
	"github.com/bufbuild/frontc/operator"
	"github.com/bufbuild/frontc/report"
	"github.com/bufbuild/frontc/token"
)

// site is a place an operand can be taken from: the last child of frame if
// child is set, or else the frame directly above frame.
type site struct {
	frame int
	child bool
}

// infixOp returns the infix, postfix or separator operator tok may spell.
func (p *parser) infixOp(tok token.Token) *operator.Operator {
	if !tok.MayInfix {
		return nil
	}
	return p.table.Infix(tok)
}

// operandExpected returns whether the top frame's next child must be an
// operand for it to make progress.
func (p *parser) operandExpected() bool {
	top := p.s.top()
	if !top.accepts() {
		return false
	}
	last, ok := p.s.lastKid(top)
	return !ok || last.syntax
}

// startsOperand returns whether tok can be the first token of an operand.
func (p *parser) startsOperand(tok token.Token) bool {
	switch tok.Kind {
	case token.Number, token.QuotedString, token.LeftDelimiter, token.Error:
		return true
	case token.Word:
		return tok.MayPrefix || !tok.MayInfix
	case token.Punctuation:
		return tok.MayPrefix || (tok.MayBracket && !p.table.Closes(tok))
	default:
		return false
	}
}

// findLeft finds the tightest-binding operand op can adopt as its left
// child. Candidates are the last child of the top frame, then each complete
// frame from the top down.
func (p *parser) findLeft(op *operator.Operator) (site, bool) {
	top := p.s.len() - 1
	e := p.s.top()
	if last, ok := p.s.lastKid(e); ok && !last.syntax &&
		canAdopt(e.op, len(e.kids)-1, op, last.op) {
		return site{frame: top, child: true}, true
	}

	for i := top; i > 0; i-- {
		if !p.complete(i) {
			break
		}
		parent := p.s.at(i - 1)
		if canAdopt(parent.op, len(parent.kids), op, p.s.at(i).op) {
			return site{frame: i - 1}, true
		}
	}
	return site{}, false
}

// swap replaces the operand at the given site with a new frame for op whose
// children are that operand and tok.
//
// If siblings is set, operands directly preceding the adopted one that op
// may also contain are adopted too, so a separator run collects every
// juxtaposed item before it.
func (p *parser) swap(at site, op *operator.Operator, tok token.Token, siblings bool) {
	var moved []ptr
	if at.child {
		e := p.s.top()
		moved = append(moved, e.kids[len(e.kids)-1])
		e.kids = e.kids[:len(e.kids)-1]
	} else {
		p.commitAbove(at.frame + 1)
		moved = append(moved, p.s.pop())
	}

	if siblings {
		parent := p.s.top()
		for len(parent.kids) > 0 {
			i := len(parent.kids) - 1
			kid := p.s.get(parent.kids[i])
			if kid.syntax || !canNest(op, slotItem, kid.op) ||
				!canNest(parent.op, slotOf(parent.op, i), op) {
				break
			}
			moved = append([]ptr{parent.kids[i]}, moved...)
			parent.kids = parent.kids[:i]
		}
	}

	p.s.push(op, append(moved, p.s.token(tok, true))...)
}

// complete returns whether frame i is complete, counting the frame above
// it as the child it will become.
func (p *parser) complete(i int) bool {
	pending := 0
	if i < p.s.len()-1 {
		pending = 1
	}
	return p.s.at(i).complete(pending)
}

// prepareOperand commits every frame that cannot take another operand.
func (p *parser) prepareOperand() {
	for p.s.len() > 1 && !p.s.top().accepts() {
		p.commit()
	}
}

// append adds tok to the top frame.
func (p *parser) append(tok token.Token, syntax bool) {
	e := p.s.top()
	e.kids = append(e.kids, p.s.token(tok, syntax))
}

// close appends tok, the close token of frame i, and commits that frame.
func (p *parser) close(i int, tok token.Token) {
	p.commitAbove(i)
	p.append(tok, true)
	p.s.top().closed = true
	p.commit()
}

// commit pops the top frame and makes it the last child of the frame below.
func (p *parser) commit() {
	e := p.s.pop()
	p.check(e)
	top := p.s.top()
	top.kids = append(top.kids, e)
}

// commitAbove commits frames until frame i is on top.
func (p *parser) commitAbove(i int) {
	for p.s.len()-1 > i {
		p.commit()
	}
}

// check diagnoses a node being committed with the wrong number of children.
func (p *parser) check(at ptr) {
	e := p.s.get(at)
	first, last, _ := p.s.bounds(at)
	span := p.span(first, last)
	n := len(e.kids)

	switch {
	case e.awaiting():
		p.log(report.Error, Unclosed, span, p.spelling(e))
	case n < e.op.MinArity:
		p.log(report.Error, TooFewOperands, span, p.spelling(e))
	case e.op.Bounded() && n > e.op.MaxArity:
		p.log(report.Error, TooManyOperands, span, p.spelling(e))
	}
}

// spelling returns the text of the operator token of e.
func (p *parser) spelling(e *element) string {
	for _, k := range e.kids {
		if kid := p.s.get(k); kid.syntax {
			return kid.tok.Text
		}
	}
	if e.op.Text != "" {
		return e.op.Text
	}
	return string(e.op.Name)
}

func (p *parser) log(level report.Level, t report.Template, at report.Spanner, values ...any) {
	p.sink.Log(level, t, at, values...)
}

// span returns the span from first to last, or nil if there is no file.
func (p *parser) span(first, last token.Token) report.Spanner {
	if p.file == nil {
		return nil
	}
	return p.file.Span(first.Left, last.Right)
}

// where returns the span of the most recent token, for blaming panics.
func (p *parser) where() report.Spanner {
	return p.span(p.last, p.last)
}

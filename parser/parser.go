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
	"github.com/bufbuild/frontc/adapt"
	"github.com/bufbuild/frontc/cst"
	"github.com/bufbuild/frontc/operator"
	"github.com/bufbuild/frontc/report"
	"github.com/bufbuild/frontc/source"
	"github.com/bufbuild/frontc/token"
)

// Options configures [Parse].
type Options struct {
	// The operator table. Defaults to [operator.Default]; must be the table
	// the token stream was classified with.
	Table *operator.Table
	// Where diagnostics go. Defaults to [report.Discard].
	Sink report.Sink
	// The file the tokens came from, used to give diagnostics a location.
	// May be nil.
	File *source.File
}

// Parse consumes src and returns the resulting tree.
//
// If the whole input forms a single node, that node is returned; otherwise
// the result is an inner node of the table's root operator.
func Parse(src token.Source, opts Options) (node cst.Node) {
	p := newParser(src, opts)
	defer report.Recover(p.sink, p.where, func() {
		node = &cst.Inner{Op: p.table.Root()}
	})

	for {
		tok, ok := p.in.Next()
		if !ok {
			break
		}
		p.last = tok
		p.shift(tok)
	}
	return p.finish()
}

type parser struct {
	table *operator.Table
	sink  report.Sink
	file  *source.File
	in    *adapt.Lookahead
	s     *stack

	segments int
	last     token.Token
}

func newParser(src token.Source, opts Options) *parser {
	p := &parser{
		table: opts.Table,
		sink:  opts.Sink,
		file:  opts.File,
		in:    adapt.NewLookahead(src),
	}
	if p.table == nil {
		p.table = operator.Default()
	}
	if p.sink == nil {
		p.sink = report.Discard
	}
	p.s = newStack(p.table.Root())
	return p
}

// shift feeds one token to the stack machine.
func (p *parser) shift(tok token.Token) {
	p.promote(tok)

	switch {
	case p.follower(tok):
	case p.closeBracket(tok):
	case p.closeDelimiter(tok):
	case p.separator(tok):
	case p.infix(tok):
	case p.prefix(tok):
	case p.openDelimiter(tok):
	default:
		p.leaf(tok)
	}
}

// promote rewrites the nearest open colon-like node when an operator that
// promotes arrives, so that name: T = v parses as (name: T) = v.
func (p *parser) promote(tok token.Token) {
	op := p.infixOp(tok)
	if op == nil || !op.Promotes {
		return
	}
	for i := p.s.len() - 1; i > 0; i-- {
		e := p.s.at(i)
		if e.op.Promote != nil {
			e.op = e.op.Promote
			return
		}
		if e.awaiting() {
			return
		}
	}
}

// follower appends tok to the nearest open node that expects it next.
func (p *parser) follower(tok token.Token) bool {
	if tok.Kind != token.Punctuation && tok.Kind != token.Word {
		return false
	}

	top := p.s.len() - 1
	for i := top; i >= 0; i-- {
		e := p.s.at(i)

		// A frame below the top receives the frame above it as its next
		// operand once that is committed.
		n, ready := len(e.kids)+1, true
		if i == top {
			last, ok := p.s.lastKid(e)
			n, ready = len(e.kids), ok && !last.syntax
		}
		if text, ok := e.op.FollowerAt(n); ready && ok && text == tok.Text {
			p.commitAbove(i)
			p.append(tok, true)
			return true
		}

		if e.awaiting() || !p.complete(i) {
			break
		}
	}
	return false
}

// closeBracket closes the nearest open bracket with tok.
func (p *parser) closeBracket(tok token.Token) bool {
	if tok.Kind != token.Punctuation || !tok.MayBracket || !p.table.Closes(tok) {
		return false
	}

	for i := p.s.len() - 1; i > 0; i-- {
		e := p.s.at(i)
		if !e.awaiting() {
			continue
		}
		if e.op.Close == tok.Text {
			p.close(i, tok)
			return true
		}
		break
	}

	p.leaf(tok)
	p.log(report.Error, ClosesNothing, p.span(tok, tok), tok.Text)
	return true
}

// closeDelimiter closes the nearest open quoted group with tok.
func (p *parser) closeDelimiter(tok token.Token) bool {
	if tok.Kind != token.RightDelimiter {
		return false
	}

	for i := p.s.len() - 1; i > 0; i-- {
		e := p.s.at(i)
		if !e.awaiting() {
			continue
		}
		if e.op.Delimited {
			p.close(i, tok)
			return true
		}
		break
	}

	p.leaf(tok)
	p.log(report.Error, ClosesNothing, p.span(tok, tok), tok.Text)
	return true
}

// separator extends an open run of tok's separator, or starts a new one.
func (p *parser) separator(tok token.Token) bool {
	op := p.infixOp(tok)
	if op == nil || op.Type != operator.Separator {
		return false
	}

	if op.Name == operator.NameSegment {
		p.segments++
		if p.segments == MaxSegments+1 {
			p.log(report.Fatal, TooManySegments, p.span(tok, tok), MaxSegments)
		}
	}

	for i := p.s.len() - 1; i > 0; i-- {
		e := p.s.at(i)
		if e.op == op {
			p.commitAbove(i)
			p.append(tok, true)
			return true
		}
		if !p.complete(i) || e.op.Prec < op.Prec {
			break
		}
	}

	if at, ok := p.findLeft(op); ok {
		p.swap(at, op, tok, true)
		return true
	}

	p.prepareOperand()
	p.s.push(op, p.s.token(tok, true))
	return true
}

// infix makes tok an infix or postfix operator if some element on the
// stack can be its left operand.
func (p *parser) infix(tok token.Token) bool {
	op := p.infixOp(tok)
	if op == nil || (op.Type != operator.Infix && op.Type != operator.Postfix) {
		return false
	}

	// In x - -y, the second - must start an operand rather than take one.
	if tok.MayPrefix && p.table.Prefix(tok) != nil && p.operandExpected() {
		if next, ok := p.in.Peek(0); ok && p.startsOperand(next) {
			return false
		}
	}

	at, ok := p.findLeft(op)
	if !ok {
		return false
	}
	p.swap(at, op, tok, false)
	return true
}

// prefix opens a node for a prefix operator.
func (p *parser) prefix(tok token.Token) bool {
	if !tok.MayPrefix {
		return false
	}
	op := p.table.Prefix(tok)
	if op == nil {
		return false
	}

	p.prepareOperand()
	p.s.push(op, p.s.token(tok, true))
	return true
}

// openDelimiter opens a quoted group.
func (p *parser) openDelimiter(tok token.Token) bool {
	op := p.table.Delimited(tok)
	if op == nil {
		return false
	}

	p.prepareOperand()
	p.s.push(op, p.s.token(tok, true))
	return true
}

// leaf appends tok as an operand.
func (p *parser) leaf(tok token.Token) {
	p.prepareOperand()
	p.append(tok, false)

	// A shunting operator ends as soon as it is full, so that whatever
	// follows is implicitly separated from it.
	for p.s.len() > 1 {
		e := p.s.top()
		if !e.op.Shunt || !e.op.Full(len(e.kids)) || e.awaiting() {
			break
		}
		p.commit()
	}

	// A prefix operator whose trailing operand is optional does not wait
	// for it once it has an operand.
	if p.s.len() > 1 {
		e := p.s.top()
		n := len(e.kids)
		if e.op.Type == operator.Prefix && !e.op.Closer() && e.op.Bounded() &&
			n >= e.op.MinArity && n < e.op.MaxArity {
			p.commit()
		}
	}
}

// finish commits every open frame and returns the tree.
func (p *parser) finish() cst.Node {
	for p.s.len() > 1 {
		p.commit()
	}

	root := p.s.build(p.s.frames[0]).(*cst.Inner)
	if len(root.Children) == 1 {
		return root.Children[0]
	}
	return root
}

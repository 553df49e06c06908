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
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/bufbuild/frontc/operator"
	"github.com/bufbuild/frontc/token"
)

// The wire format is a protobuf encoding of the following messages:
//
//	message Node {
//	  oneof node {
//	    Token leaf = 1;
//	    Inner inner = 2;
//	  }
//	}
//	message Inner {
//	  string name = 1;
//	  string text = 2;
//	  repeated Node children = 3;
//	}
//	message Token {
//	  string text = 1;
//	  uint32 kind = 2;
//	  uint64 left = 3;
//	  uint64 right = 4;
//	  uint32 flags = 5;
//	}
const (
	nodeLeaf  protowire.Number = 1
	nodeInner protowire.Number = 2

	innerName     protowire.Number = 1
	innerText     protowire.Number = 2
	innerChildren protowire.Number = 3

	tokenText  protowire.Number = 1
	tokenKind  protowire.Number = 2
	tokenLeft  protowire.Number = 3
	tokenRight protowire.Number = 4
	tokenFlags protowire.Number = 5
)

const (
	flagSynthetic = 1 << iota
	flagBracket
	flagPrefix
	flagInfix
)

// Marshal encodes node in a compact binary format, so that trees can be
// handed to consumers in other processes.
func Marshal(node Node) []byte {
	return appendNode(nil, node)
}

func appendNode(b []byte, node Node) []byte {
	switch n := node.(type) {
	case *Leaf:
		b = protowire.AppendTag(b, nodeLeaf, protowire.BytesType)
		return protowire.AppendBytes(b, appendToken(nil, n.Token))
	case *Inner:
		var body []byte
		body = protowire.AppendTag(body, innerName, protowire.BytesType)
		body = protowire.AppendString(body, string(n.Op.Name))
		if n.Op.Text != "" {
			body = protowire.AppendTag(body, innerText, protowire.BytesType)
			body = protowire.AppendString(body, n.Op.Text)
		}
		for _, child := range n.Children {
			body = protowire.AppendTag(body, innerChildren, protowire.BytesType)
			body = protowire.AppendBytes(body, appendNode(nil, child))
		}
		b = protowire.AppendTag(b, nodeInner, protowire.BytesType)
		return protowire.AppendBytes(b, body)
	default:
		panic(fmt.Sprintf("cst: unexpected node type %T", node))
	}
}

func appendToken(b []byte, tok token.Token) []byte {
	var flags uint64
	if tok.Synthetic {
		flags |= flagSynthetic
	}
	if tok.MayBracket {
		flags |= flagBracket
	}
	if tok.MayPrefix {
		flags |= flagPrefix
	}
	if tok.MayInfix {
		flags |= flagInfix
	}

	b = protowire.AppendTag(b, tokenText, protowire.BytesType)
	b = protowire.AppendString(b, tok.Text)
	b = protowire.AppendTag(b, tokenKind, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(tok.Kind))
	b = protowire.AppendTag(b, tokenLeft, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(tok.Left))
	b = protowire.AppendTag(b, tokenRight, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(tok.Right))
	if flags != 0 {
		b = protowire.AppendTag(b, tokenFlags, protowire.VarintType)
		b = protowire.AppendVarint(b, flags)
	}
	return b
}

// Unmarshal decodes a tree encoded with [Marshal]. Operators are resolved
// against table, or [operator.Default] if table is nil.
func Unmarshal(data []byte, table *operator.Table) (Node, error) {
	if table == nil {
		table = operator.Default()
	}
	d := decoder{table: table}
	return d.node(data)
}

type decoder struct {
	table *operator.Table
}

// fields calls f with each field of a message, and the field's payload: the
// bytes of a length-delimited field, or the value of a varint.
func fields(data []byte, f func(num protowire.Number, payload []byte, value uint64) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		var (
			payload []byte
			value   uint64
		)
		switch typ {
		case protowire.BytesType:
			payload, n = protowire.ConsumeBytes(data)
		case protowire.VarintType:
			value, n = protowire.ConsumeVarint(data)
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		if err := f(num, payload, value); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) node(data []byte) (Node, error) {
	var node Node
	err := fields(data, func(num protowire.Number, payload []byte, _ uint64) error {
		var err error
		switch num {
		case nodeLeaf:
			var tok token.Token
			tok, err = d.token(payload)
			node = &Leaf{Token: tok}
		case nodeInner:
			node, err = d.inner(payload)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, errors.New("cst: empty node")
	}
	return node, nil
}

func (d *decoder) inner(data []byte) (*Inner, error) {
	var (
		name     string
		text     string
		children []Node
	)
	err := fields(data, func(num protowire.Number, payload []byte, _ uint64) error {
		switch num {
		case innerName:
			name = string(payload)
		case innerText:
			text = string(payload)
		case innerChildren:
			child, err := d.node(payload)
			if err != nil {
				return err
			}
			children = append(children, child)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	op := d.table.Lookup(operator.Name(name), text)
	if op == nil {
		return nil, fmt.Errorf("cst: unknown operator %s %q", name, text)
	}
	return &Inner{Op: op, Children: children}, nil
}

func (d *decoder) token(data []byte) (token.Token, error) {
	var tok token.Token
	err := fields(data, func(num protowire.Number, payload []byte, value uint64) error {
		switch num {
		case tokenText:
			tok.Text = string(payload)
		case tokenKind:
			tok.Kind = token.Kind(value)
		case tokenLeft:
			tok.Left = int(value)
		case tokenRight:
			tok.Right = int(value)
		case tokenFlags:
			tok.Synthetic = value&flagSynthetic != 0
			tok.MayBracket = value&flagBracket != 0
			tok.MayPrefix = value&flagPrefix != 0
			tok.MayInfix = value&flagInfix != 0
		}
		return nil
	})
	return tok, err
}

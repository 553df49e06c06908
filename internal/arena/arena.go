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

// Package arena provides an append-only pool of values addressed by
// four-byte handles.
//
// Values in an [Arena] never move once allocated, so a *T obtained from
// [Arena.At] stays valid as the arena grows.
package arena

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

// Blocks double in length, starting at 1<<firstShift.
const (
	firstShift = 4
	firstLen   = 1 << firstShift
)

// Pointer addresses a value in an [Arena].
//
// The value of a pointer is one plus the number of values allocated before
// it. The zero value is nil.
type Pointer[T any] uint32

// Nil returns whether this pointer is nil.
func (p Pointer[T]) Nil() bool {
	return p == 0
}

// In looks up this pointer in a. a must be the arena that allocated p.
func (p Pointer[T]) In(a *Arena[T]) *T {
	return a.At(p)
}

// Arena is a pool of T.
//
// A zero Arena is empty and ready to use.
type Arena[T any] struct {
	// blocks[i] has capacity firstLen<<i, and every block except the last
	// in use is full.
	blocks [][]T
	n      int
}

// New allocates value and returns a pointer to it.
func (a *Arena[T]) New(value T) Pointer[T] {
	block, _ := locate(a.n)
	if block == len(a.blocks) {
		a.blocks = append(a.blocks, make([]T, 0, firstLen<<block))
	}
	a.blocks[block] = append(a.blocks[block], value)
	a.n++
	return Pointer[T](a.n)
}

// At dereferences p. Panics if p is nil or was not allocated by a.
func (a *Arena[T]) At(p Pointer[T]) *T {
	idx := int(p) - 1
	if idx < 0 || idx >= a.n {
		panic(fmt.Sprintf("arena: pointer out of range: %d", p))
	}
	block, offset := locate(idx)
	return &a.blocks[block][offset]
}

// Len returns the number of values allocated.
func (a *Arena[T]) Len() int {
	return a.n
}

// All returns an iterator over every value in allocation order.
func (a *Arena[T]) All() iter.Seq2[Pointer[T], *T] {
	return func(yield func(Pointer[T], *T) bool) {
		for i := range a.n {
			p := Pointer[T](i + 1)
			if !yield(p, a.At(p)) {
				return
			}
		}
	}
}

// Reset discards every value, keeping the allocated blocks for reuse.
//
// Pointers obtained before the call must not be used afterwards.
func (a *Arena[T]) Reset() {
	for i := range a.blocks {
		clear(a.blocks[i])
		a.blocks[i] = a.blocks[i][:0]
	}
	a.n = 0
}

// String implements [fmt.Stringer]. Block boundaries are shown as |.
func (a *Arena[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, block := range a.blocks {
		if len(block) == 0 {
			break
		}
		if i > 0 {
			b.WriteByte('|')
		}
		for j, v := range block {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprint(&b, v)
		}
	}
	b.WriteByte(']')
	return b.String()
}

// locate returns the block holding the idx-th value, and its offset within
// that block.
//
// Block i starts at firstLen<<i - firstLen, so adding firstLen to idx moves
// the start of every block onto a power of two.
func locate(idx int) (block, offset int) {
	block = bits.Len(uint(idx+firstLen)) - firstShift - 1
	return block, idx - (firstLen<<block - firstLen)
}

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

// Package slicesx contains slice-backed containers.
package slicesx

import "iter"

// Queue is a ring buffer.
//
// Values can be pushed and popped from either the front or the back of the
// buffer, making it usable as a double-ended queue, and any element can be
// inspected in place with [Queue.At], making it usable as a lookahead window.
//
// A zero [Queue] is empty and ready to use.
type Queue[E any] struct {
	buf        []E // Invariant: len(buf) is always a power of 2, or zero.
	start, end int
}

// NewQueue returns a [Queue] with the given capacity.
func NewQueue[E any](capacity int) *Queue[E] {
	q := new(Queue[E])
	q.Reserve(capacity)
	return q
}

// Len returns the number of elements currently in the buffer.
func (r *Queue[E]) Len() int {
	if r.start > r.end {
		// The in-use part wraps around the end of the buffer.
		return len(r.buf) - r.start + r.end
	}
	return r.end - r.start
}

// Cap returns the number of elements the buffer can hold before being resized.
func (r *Queue[E]) Cap() int {
	if len(r.buf) == 0 {
		return 0
	}
	// One slot is always kept empty to tell a full buffer from an empty one.
	return len(r.buf) - 1
}

// Reserve ensures that the capacity is large enough to push an additional n
// elements.
func (r *Queue[E]) Reserve(n int) {
	if n <= 0 || r.Len()+n <= r.Cap() {
		return
	}

	size := 4
	for size < r.Len()+n+1 {
		size *= 2
	}
	r.resize(size)
}

// At returns a pointer to the ith element from the front of the queue, or nil
// if there is no such element.
func (r *Queue[E]) At(i int) *E {
	if i < 0 || i >= r.Len() {
		return nil
	}
	return &r.buf[(r.start+i)&(len(r.buf)-1)]
}

// Front returns a pointer to the element at the front of the queue.
func (r *Queue[E]) Front() *E {
	return r.At(0)
}

// Back returns a pointer to the element at the back of the queue.
func (r *Queue[E]) Back() *E {
	return r.At(r.Len() - 1)
}

// PushFront pushes elements to the front of the queue, so that v[0] ends up
// at the front.
func (r *Queue[E]) PushFront(v ...E) {
	r.Reserve(len(v))
	for i := len(v) - 1; i >= 0; i-- {
		r.start = (r.start - 1) & (len(r.buf) - 1)
		r.buf[r.start] = v[i]
	}
}

// PushBack pushes elements to the back of the queue.
func (r *Queue[E]) PushBack(v ...E) {
	r.Reserve(len(v))
	for _, e := range v {
		r.buf[r.end] = e
		r.end = (r.end + 1) & (len(r.buf) - 1)
	}
}

// PopFront pops the element at the front of the queue.
func (r *Queue[E]) PopFront() (E, bool) {
	var z E
	if r.start == r.end {
		return z, false
	}
	v := r.buf[r.start]
	r.buf[r.start] = z
	r.start = (r.start + 1) & (len(r.buf) - 1)
	return v, true
}

// PopBack pops the element at the back of the queue.
func (r *Queue[E]) PopBack() (E, bool) {
	var z E
	if r.start == r.end {
		return z, false
	}
	r.end = (r.end - 1) & (len(r.buf) - 1)
	v := r.buf[r.end]
	r.buf[r.end] = z
	return v, true
}

// Values returns an iterator over the elements of the queue, front to back.
func (r *Queue[E]) Values() iter.Seq[E] {
	return func(yield func(E) bool) {
		for i := range r.Len() {
			if !yield(*r.At(i)) {
				return
			}
		}
	}
}

// Clear clears the queue, keeping its storage.
func (r *Queue[_]) Clear() {
	clear(r.buf)
	r.start, r.end = 0, 0
}

func (r *Queue[E]) resize(n int) {
	old := r.buf
	count := r.Len()
	r.buf = make([]E, n)
	if r.start > r.end {
		k := copy(r.buf, old[r.start:])
		copy(r.buf[k:], old[:r.end])
	} else {
		copy(r.buf, old[r.start:r.end])
	}
	r.start = 0
	r.end = count
}

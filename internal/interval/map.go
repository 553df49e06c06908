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

// Package interval provides a map from disjoint closed intervals to values.
package interval

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd // Needs integer arithmetic, not just ordering.
)

// Endpoint is a type that may be used as an interval endpoint.
type Endpoint = constraints.Integer

// Entry is an interval in a [Map], along with its value.
type Entry[K Endpoint, V any] struct {
	Start, End K // Inclusive.
	Value      V
}

// Contains returns whether point lies within e.
func (e Entry[K, V]) Contains(point K) bool {
	return e.Start <= point && point <= e.End
}

// Map is a collection of pairwise-disjoint intervals.
//
// A zero Map is empty and ready to use.
type Map[K Endpoint, V any] struct {
	// Keyed by End. Because intervals are disjoint, ordering by End also
	// orders by Start.
	tree btree.Map[K, *Entry[K, V]]
}

// Len returns the number of intervals in m.
func (m *Map[K, V]) Len() int {
	return m.tree.Len()
}

// Insert adds [start, end] to m.
//
// If the interval overlaps one already present, nothing is inserted, and the
// overlapping interval with the least start is returned along with false.
func (m *Map[K, V]) Insert(start, end K, value V) (Entry[K, V], bool) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}

	// The first interval ending at or after start is the only candidate for
	// the least overlap; everything before it ends before start.
	it := m.tree.Iter()
	if it.Seek(start) && it.Value().Start <= end {
		return *it.Value(), false
	}

	m.tree.Set(end, &Entry[K, V]{Start: start, End: end, Value: value})
	return Entry[K, V]{}, true
}

// Get returns the interval containing point, if there is one.
func (m *Map[K, V]) Get(point K) (Entry[K, V], bool) {
	it := m.tree.Iter()
	if !it.Seek(point) || point < it.Value().Start {
		return Entry[K, V]{}, false
	}
	return *it.Value(), true
}

// Before returns the last interval that ends before point.
func (m *Map[K, V]) Before(point K) (Entry[K, V], bool) {
	it := m.tree.Iter()
	var ok bool
	if it.Seek(point) {
		ok = it.Prev()
	} else {
		ok = it.Last()
	}
	if !ok {
		return Entry[K, V]{}, false
	}
	return *it.Value(), true
}

// After returns the first interval that starts after point.
func (m *Map[K, V]) After(point K) (Entry[K, V], bool) {
	it := m.tree.Iter()
	ok := it.Seek(point)
	if ok && it.Value().Start <= point {
		ok = it.Next()
	}
	if !ok {
		return Entry[K, V]{}, false
	}
	return *it.Value(), true
}

// Range returns an iterator over the intervals that intersect [start, end],
// in order.
func (m *Map[K, V]) Range(start, end K) iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		it := m.tree.Iter()
		for more := it.Seek(start); more; more = it.Next() {
			if end < it.Value().Start || !yield(*it.Value()) {
				return
			}
		}
	}
}

// All returns an iterator over every interval in m, in order.
func (m *Map[K, V]) All() iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		m.tree.Scan(func(_ K, e *Entry[K, V]) bool {
			return yield(*e)
		})
	}
}

// Format implements [fmt.Formatter].
func (m *Map[K, V]) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, "{")
	first := true
	for e := range m.All() {
		if !first {
			fmt.Fprint(s, ", ")
		}
		first = false

		if e.Start == e.End {
			fmt.Fprintf(s, "%#v: ", e.Start)
		} else {
			fmt.Fprintf(s, "[%#v, %#v]: ", e.Start, e.End)
		}
		fmt.Fprintf(s, fmt.FormatString(s, verb), e.Value)
	}
	fmt.Fprint(s, "}")
}

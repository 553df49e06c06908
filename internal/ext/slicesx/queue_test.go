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

package slicesx_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/frontc/internal/ext/slicesx"
)

func TestQueue(t *testing.T) {
	t.Parallel()

	var q slicesx.Queue[int]
	assert.Nil(t, q.Front())
	_, ok := q.PopFront()
	assert.False(t, ok)

	q.PushBack(1, 2, 3)
	q.PushFront(-1, 0)
	assert.Equal(t, []int{-1, 0, 1, 2, 3}, slices.Collect(q.Values()))
	assert.Equal(t, -1, *q.Front())
	assert.Equal(t, 3, *q.Back())
	assert.Equal(t, 1, *q.At(2))
	assert.Nil(t, q.At(5))

	v, ok := q.PopBack()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	v, _ = q.PopFront()
	assert.Equal(t, -1, v)
	assert.Equal(t, 3, q.Len())

	q.Clear()
	assert.Equal(t, 0, q.Len())
}

func TestQueueWrapAround(t *testing.T) {
	t.Parallel()

	q := slicesx.NewQueue[int](3)
	assert.Equal(t, 3, q.Cap())

	// Drive start past the end of the buffer several times, growing along
	// the way.
	var want []int
	for i := range 100 {
		q.PushBack(i, i+1000)
		want = append(want, i, i+1000)
		v, ok := q.PopFront()
		assert.True(t, ok)
		assert.Equal(t, want[0], v)
		want = want[1:]
		assert.Equal(t, want, slices.Collect(q.Values()))
	}

	for i := range q.Len() {
		assert.Equal(t, want[i], *q.At(i))
	}
}

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

package report

import (
	"sync"

	"github.com/bufbuild/frontc/source"
)

// Spanner is anything that can point at source text.
type Spanner = source.Spanner

// Template is a diagnostic message template: a [Tag] plus a format string
// that the values passed to [Sink.Log] are formatted with.
//
// Packages that log diagnostics expose their templates as variables, so that
// callers can match on them.
type Template struct {
	Tag    Tag
	Format string
}

// Sink receives diagnostics as they are produced.
//
// The lexer and parser only ever write to a Sink; what happens to a
// diagnostic afterwards (collection, rendering, forwarding to a logger) is
// up to the caller.
type Sink interface {
	Log(level Level, t Template, at Spanner, values ...any)
}

// SinkFunc adapts a function into a [Sink].
type SinkFunc func(level Level, t Template, at Spanner, values ...any)

// Log implements [Sink].
func (f SinkFunc) Log(level Level, t Template, at Spanner, values ...any) {
	f(level, t, at, values...)
}

// Discard is a [Sink] that drops everything.
var Discard Sink = SinkFunc(func(Level, Template, Spanner, ...any) {})

// Tee returns a [Sink] that forwards to every non-nil sink in sinks.
func Tee(sinks ...Sink) Sink {
	var live []Sink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	if len(live) == 1 {
		return live[0]
	}
	return SinkFunc(func(level Level, t Template, at Spanner, values ...any) {
		for _, s := range live {
			s.Log(level, t, at, values...)
		}
	})
}

// Locked wraps a [Sink] so that it may be shared by concurrent parses.
func Locked(sink Sink) Sink {
	var mu sync.Mutex
	return SinkFunc(func(level Level, t Template, at Spanner, values ...any) {
		mu.Lock()
		defer mu.Unlock()
		sink.Log(level, t, at, values...)
	})
}

// Counter is a [Sink] that counts diagnostics by level.
type Counter map[Level]int

// Log implements [Sink].
func (c Counter) Log(level Level, _ Template, _ Spanner, _ ...any) {
	c[level]++
}

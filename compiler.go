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

package frontc

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/bufbuild/frontc/cst"
	"github.com/bufbuild/frontc/operator"
	"github.com/bufbuild/frontc/report"
	"github.com/bufbuild/frontc/source"
)

// Compiler parses many files in parallel.
type Compiler struct {
	// Resolves paths into source text or pre-parsed trees. This field is the
	// only required field.
	Resolver Resolver
	// The maximum parallelism to use when parsing. If unspecified or set to
	// a non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// will be used.
	MaxParallelism int
	// Options for each file. Options.Sink is shared by every file and may
	// be called concurrently; wrap it with [report.Locked] if it is not safe
	// for that.
	Options Options
	// If set, chooses the options for each file instead of Options.
	OptionsFor func(path string) Options
	// If set, Compile fails with an [UnusableError] as soon as a file's
	// result is unusable.
	FailFast bool
}

// UnusableError is returned by [Compiler.Compile] in fail-fast mode.
type UnusableError struct {
	Path string
}

func (e *UnusableError) Error() string {
	return fmt.Sprintf("%s: file is unusable due to fatal errors", e.Path)
}

// Compile parses the given files, returning one result per path, in order.
//
// Results for the same path are shared.
func (c *Compiler) Compile(ctx context.Context, files ...string) ([]*Result, error) {
	if len(files) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := c.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if par > cpus {
			par = cpus
		}
	}

	e := executor{
		c:       c,
		s:       semaphore.NewWeighted(int64(par)),
		results: map[string]*result{},
	}

	results := make([]*result, len(files))
	for i, f := range files {
		results[i] = e.compile(ctx, f)
	}

	out := make([]*Result, len(files))
	for i, r := range results {
		select {
		case <-r.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if r.err != nil {
			return nil, r.err
		}
		if c.FailFast && r.res.Unusable {
			return nil, &UnusableError{Path: files[i]}
		}
		out[i] = r.res
	}

	return out, nil
}

type result struct {
	ready chan struct{}
	res   *Result
	err   error
}

func (r *result) fail(err error) {
	r.err = err
	close(r.ready)
}

func (r *result) complete(res *Result) {
	r.res = res
	close(r.ready)
}

type executor struct {
	c *Compiler
	s *semaphore.Weighted

	mu      sync.Mutex
	results map[string]*result
}

func (e *executor) compile(ctx context.Context, file string) *result {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.results[file]
	if r != nil {
		return r
	}

	r = &result{
		ready: make(chan struct{}),
	}
	e.results[file] = r
	go func() {
		e.doCompile(ctx, file, r)
	}()
	return r
}

func (e *executor) doCompile(ctx context.Context, file string, r *result) {
	if err := e.s.Acquire(ctx, 1); err != nil {
		r.fail(err)
		return
	}
	defer e.s.Release(1)

	sr, err := e.c.Resolver.FindFileByPath(file)
	if err != nil {
		r.fail(err)
		return
	}

	defer func() {
		// If the result came with a reader, don't leave it open.
		if sr.Source == nil {
			return
		}
		if c, ok := sr.Source.(io.Closer); ok {
			_ = c.Close()
		}
	}()

	res, err := e.asResult(file, sr)
	if err != nil {
		r.fail(err)
		return
	}
	r.complete(res)
}

func (e *executor) asResult(name string, sr SearchResult) (*Result, error) {
	opts := e.c.Options
	if e.c.OptionsFor != nil {
		opts = e.c.OptionsFor(name)
	}
	if sr.CST != nil {
		table := opts.Table
		if table == nil {
			table = operator.Default()
		}
		node, err := cst.Unmarshal(sr.CST, table)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return &Result{File: source.NewFile(name, ""), CST: node, Report: new(report.Report)}, nil
	}

	if sr.Source == nil {
		return nil, fmt.Errorf("search result for %q has neither source nor tree", name)
	}
	text, err := io.ReadAll(sr.Source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return Parse(source.NewFile(name, string(text)), opts), nil
}

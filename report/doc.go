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

/*
Package report provides the diagnostics framework for the front end.

Diagnostics are collected into a [Report], which is a builder over a slice of
[Diagnostic]s. Each [Diagnostic] has a level, a message, and metadata for
rendering, such as source spans, notes, and suggestions. Reports are rendered
for humans by a [Renderer].

The lexer and parser do not depend on [Report] directly: they write to a
[Sink], which receives a level, a [Template], a span, and the values to
format the template with. *Report is the usual sink; [Tee] fans one stream of
diagnostics out to several sinks, such as a report plus a process logger.

# Diagnostics Style Guide

Messages do not begin with a capital letter and do not end in punctuation.
They name the offending construct in backticks, e.g. "`)` closes nothing".
Every message emitted through a [Sink] has a [Tag], a lowercase dashed
identifier like "missing-close-quote" that tests and tools match on instead
of the message text.

Errors are for input the compiler cannot produce valid output for. Warnings
are for input that is probably a mistake. Remarks are hidden by default.
Fatal marks a result that downstream stages must not consume at all. ICE is
reserved for bugs in the compiler itself, such as a recovered panic.
*/
package report

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

// Package frontc is the front end of a compiler for a multi-target
// language: it turns source text into a concrete syntax tree.
//
// The work happens in four phases, each in its own package:
//
//  1. Lexing into token clusters.
//     Also see: lexer.Lexer
//  2. Adapting the token stream: statement separators, string tagging,
//     call joins and modifier rewrites.
//     Also see: adapt.Pipeline
//  3. Operator-precedence parsing with an operator stack.
//     Also see: parser.Parse
//  4. Normalizing strings in the resulting tree.
//     Also see: parser.PostProcess
//
// [Parse] runs every phase on a single file. A [Compiler] does the same for
// many files at once, locating them with a [Resolver] and taking advantage
// of multiple CPU cores.
//
// # Resolvers
//
// A Resolver is how the compiler locates its inputs. It can answer a query
// with source text, which is parsed, or with a tree that was already parsed
// and encoded with cst.Marshal, in which case parsing is skipped.
//
// A minimal Compiler, that loads files from the file system relative to the
// current working directory, can be had with:
//
//	compiler := frontc.Compiler{
//		Resolver: &frontc.SourceResolver{},
//	}
//
// # Configuration
//
// A [Config] holds the settings of a project. It can be loaded from a
// frontc.yaml or frontc.toml file with [LoadConfig].
package frontc

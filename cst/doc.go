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

// Package cst defines the concrete syntax tree produced by the parser.
//
// A tree is made of [*Leaf] nodes, each holding one token, and [*Inner]
// nodes, each holding an operator and its children. Children include the
// operator's own tokens, so an in-order walk of the leaves of a tree yields
// every token the parser consumed, synthetic ones included.
package cst

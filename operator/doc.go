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

// Package operator defines the operators the parser builds syntax trees from,
// and the table that maps token spellings to them.
//
// Every inner node of a syntax tree is labeled with an [Operator]. Its arity
// counts all of the node's children, including the tokens that spell the
// operator itself: the binary minus in a - b has arity three, and a
// parenthesized group has arity two plus its contents.
package operator

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

// Package parser builds a concrete syntax tree from an adapted token stream
// with an operator-precedence stack machine.
//
// Each token is offered to a fixed sequence of strategies, and the first one
// that applies decides what happens to it:
//
//  1. an = may promote an open colon to a tighter-binding one;
//  2. a follower, such as the : of a ternary, completes an open operator;
//  3. a close bracket closes the nearest open bracket;
//  4. a right delimiter closes the nearest open quoted group;
//  5. a separator extends an open run of itself, or starts one;
//  6. an infix or postfix operator adopts a left operand from the stack;
//  7. a prefix operator opens a new node;
//  8. a left delimiter opens a quoted group;
//  9. anything else becomes a leaf.
//
// Every structural decision goes through one legality check, which compares
// precedence and associativity of a would-be parent and child.
//
// The parser never fails: malformed input produces diagnostics and a tree
// that still contains every token.
package parser

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

package parser

import "github.com/bufbuild/frontc/report"

// MaxSegments is the number of segment separators a file may contain.
const MaxSegments = 2

var (
	TooFewOperands = report.Template{
		Tag:    "too-few-operands",
		Format: "`%s` is missing an operand",
	}
	TooManyOperands = report.Template{
		Tag:    "too-many-operands",
		Format: "too many operands for `%s`",
	}
	Unclosed = report.Template{
		Tag:    "unclosed",
		Format: "`%s` is never closed",
	}
	ClosesNothing = report.Template{
		Tag:    "closes-nothing",
		Format: "`%s` closes nothing",
	}
	TooManySegments = report.Template{
		Tag:    "too-many-segments",
		Format: "too many segment separators: a file may contain at most %d",
	}
)

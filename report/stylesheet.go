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

// styleSheet holds the escape sequences the renderer writes. All of them
// are empty unless the renderer colorizes.
type styleSheet struct {
	reset string

	bError, bWarning, bRemark string
	nAccent                   string // Line numbers, gutters, arrows.

	normal, bold [Remark + 1]string
}

func newStyleSheet(r Renderer) styleSheet {
	var c styleSheet
	if !r.Colorize {
		return c
	}

	const red, yellow, cyan = "31m", "33m", "36m"
	c.reset = "\033[0m"
	c.nAccent = "\033[0;34m"
	for l, color := range map[Level]string{
		ICE: red, Fatal: red, Error: red, Warning: yellow, Remark: cyan,
	} {
		c.normal[l] = "\033[0;" + color
		c.bold[l] = "\033[1;" + color
	}
	c.bError, c.bWarning, c.bRemark = c.bold[Error], c.bold[Warning], c.bold[Remark]
	return c
}

// ColorForLevel returns the plain color for diagnostics of level l.
func (c styleSheet) ColorForLevel(l Level) string {
	if l < ICE || l > Remark {
		return ""
	}
	return c.normal[l]
}

// BoldForLevel returns the bold color for diagnostics of level l.
func (c styleSheet) BoldForLevel(l Level) string {
	if l < ICE || l > Remark {
		return ""
	}
	return c.bold[l]
}

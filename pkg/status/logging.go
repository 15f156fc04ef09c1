// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent    = 4  // spaces to indent file entries
	nameWidth     = 40 // Base width for filename
	outcomeWidth  = 12 // Width for outcome text
	rewritesWidth = 10 // Width for the rewrite count
)

// 🎯 FormatFileLine formats one file's outcome for terminal display
func FormatFileLine(path string, outcome Outcome, rewrites int, detail string) string {
	// Determine prefix symbol
	var prefix string
	var outcomeColor func(format string, a ...interface{}) string
	switch outcome {
	case OutcomeModified:
		prefix = color.YellowString("⟳")
		outcomeColor = color.YellowString
	case OutcomeNotFound:
		prefix = color.MagentaString("?")
		outcomeColor = color.MagentaString
	case OutcomeError:
		prefix = color.RedString("✗")
		outcomeColor = color.RedString
	default:
		prefix = color.HiBlackString("-")
		outcomeColor = color.HiBlackString
	}

	rewritesText := ""
	if rewrites > 0 {
		rewritesText = fmt.Sprintf("%d sites", rewrites)
	}

	// Format parts with padding
	namePart := fmt.Sprintf("%-*s", nameWidth, path)
	outcomePart := outcomeColor("%-*s", outcomeWidth, outcome.String())
	rewritesPart := fmt.Sprintf("%-*s", rewritesWidth, rewritesText)

	// Build final string with indentation
	line := fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		outcomePart,
		rewritesPart,
	)
	if detail != "" {
		line += color.New(color.Faint).Sprint(detail)
	}
	return strings.TrimRight(line, " ")
}

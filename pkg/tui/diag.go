// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/yeetrun/cmdline/pkg/cmdline"
)

// RenderError formats a parse error for a terminal: the message, the
// command line, and a marker under the offending token. args must be the
// tokens the parser was given.
//
//	error: unknown option: boh
//	  www.google.it -boh -w:a
//	                ^^^^
func RenderError(c Colorizer, args []string, e *cmdline.ParsingError) string {
	var b strings.Builder
	b.WriteString(c.Wrap(ColorRed, "error:"))
	b.WriteString(" ")
	b.WriteString(e.Error())
	b.WriteString("\n")
	if len(args) == 0 {
		return b.String()
	}

	line := strings.Join(args, " ")
	// Columns are counted in runes.
	col, width := utf8.RuneCountInString(line)+1, 1
	if t := e.Token; t != nil && t.Index >= 0 && t.Index < len(args) {
		col = 0
		for _, a := range args[:t.Index] {
			col += utf8.RuneCountInString(a) + 1
		}
		width = max(utf8.RuneCountInString(args[t.Index]), 1)
	}
	b.WriteString("  ")
	b.WriteString(c.Wrap(ColorDim, line))
	b.WriteString("\n  ")
	b.WriteString(strings.Repeat(" ", col))
	b.WriteString(c.Wrap(ColorYellow, strings.Repeat("^", width)))
	b.WriteString("\n")
	return b.String()
}

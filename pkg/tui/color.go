// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	ColorRed    = color.FgRed
	ColorGreen  = color.FgGreen
	ColorYellow = color.FgYellow
	ColorDim    = color.FgHiBlack
	ColorBold   = color.Bold
)

type Colorizer struct {
	Enabled bool
}

func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// ForFile returns a Colorizer that is enabled when f is a terminal.
func ForFile(f *os.File) Colorizer {
	return NewColorizer(term.IsTerminal(int(f.Fd())))
}

func (c Colorizer) Wrap(attr color.Attribute, text string) string {
	if !c.Enabled {
		return text
	}
	col := color.New(attr)
	col.EnableColor()
	return col.Sprint(text)
}

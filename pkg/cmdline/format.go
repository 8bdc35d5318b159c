// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"regexp"
)

// ValueMode describes how an option's value is attached to its name.
type ValueMode int

const (
	// Separator: the value follows the name after a literal delimiter (-w:1000).
	Separator ValueMode = iota
	// Separate: the value is the next token (-w 1000).
	Separate
	// Adjacent: the value immediately follows the name (-w1000).
	Adjacent
)

func (m ValueMode) String() string {
	switch m {
	case Separator:
		return "separator"
	case Separate:
		return "separate"
	case Adjacent:
		return "adjacent"
	}
	return fmt.Sprintf("ValueMode(%d)", int(m))
}

// Format is a compiled option format pattern.
//
// Sep is only meaningful in Separator mode and is never empty there; a
// pattern with no delimiter between the two placeholders compiles to
// Adjacent instead.
type Format struct {
	Prefix string
	Mode   ValueMode
	Sep    string
}

// DefaultFormat is the format used by a Parser until OptionFormat is called.
var DefaultFormat = Format{Prefix: "-", Mode: Separator, Sep: ":"}

var (
	prefixPattern    = regexp.MustCompile(`^(-+|/+)`)
	separatePattern  = regexp.MustCompile(`^[xX]\s+[xX]$`)
	adjacentPattern  = regexp.MustCompile(`^[xX]{2}$`)
	separatorPattern = regexp.MustCompile(`^[xX][^a-zA-Z0-9\s]+[xX]$`)
)

// FormatError is returned when an option format pattern does not match any
// of the supported shapes.
type FormatError struct {
	Pattern string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid option format: [%s]", e.Pattern)
}

// CompileFormat parses an option format pattern such as "-x:x", "-x x" or
// "/xx". The leading run of '-' or '/' characters is the option prefix and
// the letter x stands for the name and value slots.
func CompileFormat(pattern string) (Format, error) {
	prefix := prefixPattern.FindString(pattern)
	if prefix == "" {
		return Format{}, &FormatError{Pattern: pattern}
	}
	rest := pattern[len(prefix):]
	switch {
	case separatePattern.MatchString(rest):
		return Format{Prefix: prefix, Mode: Separate}, nil
	case adjacentPattern.MatchString(rest):
		return Format{Prefix: prefix, Mode: Adjacent}, nil
	case separatorPattern.MatchString(rest):
		return Format{Prefix: prefix, Mode: Separator, Sep: rest[1 : len(rest)-1]}, nil
	}
	return Format{}, &FormatError{Pattern: pattern}
}

// MustCompileFormat is like CompileFormat but panics if the pattern is
// invalid.
func MustCompileFormat(pattern string) Format {
	f, err := CompileFormat(pattern)
	if err != nil {
		panic(err)
	}
	return f
}

// String returns the canonical pattern for f. Compiling it yields f again.
func (f Format) String() string {
	switch f.Mode {
	case Separate:
		return f.Prefix + "x x"
	case Adjacent:
		return f.Prefix + "xx"
	}
	return f.Prefix + "x" + f.Sep + "x"
}

// spell renders an option and a value placeholder the way they are written
// on the command line under f.
func (f Format) spell(name, value string) string {
	switch f.Mode {
	case Separate:
		return f.Prefix + name + " " + value
	case Adjacent:
		return f.Prefix + name + value
	}
	return f.Prefix + name + f.Sep + value
}

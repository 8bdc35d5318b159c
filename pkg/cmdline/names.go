// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import "strings"

// NameComparer decides when two option names are the same.
type NameComparer interface {
	// Key returns the canonical form of name used as the registration key.
	Key(name string) string
	// HasPrefix reports whether s begins with prefix.
	HasPrefix(s, prefix string) bool
}

var (
	// IgnoreCase compares names without regard to case. It is the default.
	IgnoreCase NameComparer = ignoreCase{}
	// ExactCase compares names byte for byte.
	ExactCase NameComparer = exactCase{}
)

type ignoreCase struct{}

func (ignoreCase) Key(name string) string { return strings.ToLower(name) }

func (ignoreCase) HasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

type exactCase struct{}

func (exactCase) Key(name string) string { return name }

func (exactCase) HasPrefix(s, prefix string) bool { return strings.HasPrefix(s, prefix) }

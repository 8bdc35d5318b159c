// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package env

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
)

// Write writes an environment file with one PREFIX_NAME=value line per
// entry in values.
func Write(name, prefix string, values map[string]string) error {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := Marshal(f, prefix, values); err != nil {
		return fmt.Errorf("failed to marshal env: %v", err)
	}
	return f.Close()
}

// Marshal writes values to o sorted by variable name.
func Marshal(o io.Writer, prefix string, values map[string]string) error {
	vars := make(map[string]string, len(values))
	for name, v := range values {
		vars[Key(prefix, name)] = v
	}
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		if _, err := fmt.Fprintf(o, "%s=%s\n", k, quote(vars[k])); err != nil {
			return err
		}
	}
	return nil
}

// Key returns the variable name for an option: upper-cased, with every
// character that is not a letter or digit replaced by '_'.
func Key(prefix, name string) string {
	if prefix != "" {
		name = prefix + "_" + name
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, name)
}

func quote(v string) string {
	if v == "" || strings.ContainsAny(v, " \t\n\"'\\$`#") {
		return strconv.Quote(v)
	}
	return v
}

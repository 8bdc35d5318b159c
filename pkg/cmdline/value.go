// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"strconv"
	"time"
)

// Kind names the type an option value is converted to.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindInt64
	KindUint
	KindFloat
	KindBool
	KindDuration
	KindCustom
)

var kindNames = [...]string{
	KindString:   "string",
	KindInt:      "int",
	KindInt64:    "int64",
	KindUint:     "uint",
	KindFloat:    "float",
	KindBool:     "bool",
	KindDuration: "duration",
	KindCustom:   "value",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind with the given name.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Value converts the raw text of an option value and hands the result to a
// callback. Build one with Typed.
type Value struct {
	kind  Kind
	apply func(raw string) error
}

// Kind returns the kind of value v converts to.
func (v Value) Kind() Kind { return v.kind }

// Typed returns a Value that converts raw text with conv and passes the
// result to fn. A conversion error is reported as InvalidValue and fn is
// not called.
func Typed[T any](kind Kind, conv func(string) (T, error), fn func(T)) Value {
	if conv == nil {
		panic("cmdline: nil converter")
	}
	if fn == nil {
		panic("cmdline: nil handler")
	}
	return Value{
		kind: kind,
		apply: func(raw string) error {
			v, err := conv(raw)
			if err != nil {
				return err
			}
			fn(v)
			return nil
		},
	}
}

// Converters used by the typed On* methods. Errors are returned unwrapped so
// callers can inspect the *strconv.NumError.

func ParseString(s string) (string, error) { return s, nil }

func ParseInt(s string) (int, error) { return strconv.Atoi(s) }

func ParseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

func ParseUint(s string) (uint, error) {
	u, err := strconv.ParseUint(s, 10, 0)
	return uint(u), err
}

func ParseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

func ParseBool(s string) (bool, error) { return strconv.ParseBool(s) }

func ParseDuration(s string) (time.Duration, error) { return time.ParseDuration(s) }

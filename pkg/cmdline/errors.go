// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	UnknownOption ErrorKind = iota
	ValueExpected
	ValueNotAllowed
	InvalidValue
	MultipleArgumentNotAllowed
	UnhandledArgument
	ArgumentRequired
)

// Sentinel errors matched by errors.Is against a *ParsingError of the same
// kind.
var (
	ErrUnknownOption              = errors.New("unknown option")
	ErrValueExpected              = errors.New("value expected")
	ErrValueNotAllowed            = errors.New("value not allowed")
	ErrInvalidValue               = errors.New("invalid value")
	ErrMultipleArgumentNotAllowed = errors.New("multiple arguments not allowed")
	ErrUnhandledArgument          = errors.New("unhandled argument")
	ErrArgumentRequired           = errors.New("argument required")
)

var kindErrors = [...]error{
	UnknownOption:              ErrUnknownOption,
	ValueExpected:              ErrValueExpected,
	ValueNotAllowed:            ErrValueNotAllowed,
	InvalidValue:               ErrInvalidValue,
	MultipleArgumentNotAllowed: ErrMultipleArgumentNotAllowed,
	UnhandledArgument:          ErrUnhandledArgument,
	ArgumentRequired:           ErrArgumentRequired,
}

var kindStrings = [...]string{
	UnknownOption:              "UnknownOption",
	ValueExpected:              "ValueExpected",
	ValueNotAllowed:            "ValueNotAllowed",
	InvalidValue:               "InvalidValue",
	MultipleArgumentNotAllowed: "MultipleArgumentNotAllowed",
	UnhandledArgument:          "UnhandledArgument",
	ArgumentRequired:           "ArgumentRequired",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindStrings) {
		return kindStrings[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) sentinel() error {
	if k >= 0 && int(k) < len(kindErrors) {
		return kindErrors[k]
	}
	return nil
}

// Token describes the input that caused a parse failure.
type Token struct {
	// Index is the position of the token in the input sequence.
	Index int `json:"index"`
	// Text is the token exactly as given.
	Text string `json:"text"`
	// Name is the option name: the registered spelling once the option is
	// resolved, otherwise the candidate name taken from the token. Empty for
	// positional arguments.
	Name string `json:"name,omitempty"`
	// Value is the raw option value, if one was extracted.
	Value string `json:"value,omitempty"`
}

// ParsingError is the structured record of the first parse failure.
type ParsingError struct {
	Kind ErrorKind
	// Token is nil for ArgumentRequired, which is caused by missing input.
	Token *Token
	// CommandLine is the input joined with single spaces.
	CommandLine string
	// Cause is the conversion error for InvalidValue.
	Cause error
}

func (e *ParsingError) Error() string {
	var name, text, value string
	if e.Token != nil {
		name, text, value = e.Token.Name, e.Token.Text, e.Token.Value
	}
	switch e.Kind {
	case UnknownOption:
		return fmt.Sprintf("unknown option: %s", name)
	case ValueExpected:
		return fmt.Sprintf("option %s requires a value", name)
	case ValueNotAllowed:
		return fmt.Sprintf("option %s does not take a value, got %q", name, value)
	case InvalidValue:
		if e.Cause != nil {
			return fmt.Sprintf("invalid value %q for option %s: %v", value, name, e.Cause)
		}
		return fmt.Sprintf("invalid value %q for option %s", value, name)
	case MultipleArgumentNotAllowed:
		return fmt.Sprintf("unexpected argument %q: only one argument is allowed", text)
	case UnhandledArgument:
		return fmt.Sprintf("unexpected argument %q", text)
	case ArgumentRequired:
		return "an argument is required"
	}
	return e.Kind.String()
}

func (e *ParsingError) Unwrap() error { return e.Cause }

// Is reports whether target is the sentinel error for e.Kind.
func (e *ParsingError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

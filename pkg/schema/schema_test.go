// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/cmdline/pkg/cmdline"
)

const tracertTOML = `
program = "tracert"
requires = ">= 0.1.0"
format = "-x:x"
help = "/?, -help"

[argument]
name = "hostname"
policy = "once"

[[options]]
name = "d"
description = "Do not resolve addresses to hostnames"

[[options]]
name = "w"
kind = "int"

[[options]]
name = "h"
kind = "int"
`

const tracertYAML = `
program: tracert
requires: ">= 0.1.0"
format: "-x:x"
help: "/?, -help"
argument:
  name: hostname
  policy: once
options:
  - name: d
    description: Do not resolve addresses to hostnames
  - name: w
    kind: int
  - name: h
    kind: int
`

func writeSchema(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return path
}

func TestLoadEncodingsAgree(t *testing.T) {
	t.Parallel()

	fromTOML, err := Load(writeSchema(t, "tracert.toml", tracertTOML))
	if err != nil {
		t.Fatalf("Load(toml) error = %v", err)
	}
	fromYAML, err := Load(writeSchema(t, "tracert.yaml", tracertYAML))
	if err != nil {
		t.Fatalf("Load(yaml) error = %v", err)
	}
	if diff := cmp.Diff(fromTOML, fromYAML); diff != "" {
		t.Errorf("toml and yaml schemas differ (-toml +yaml):\n%s", diff)
	}
	want := &Schema{
		Program:  "tracert",
		Requires: ">= 0.1.0",
		Format:   "-x:x",
		Help:     "/?, -help",
		Argument: &ArgumentDecl{Name: "hostname", Policy: "once"},
		Options: []OptionDecl{
			{Name: "d", Description: "Do not resolve addresses to hostnames"},
			{Name: "w", Kind: "int"},
			{Name: "h", Kind: "int"},
		},
	}
	if diff := cmp.Diff(want, fromTOML); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	s, err := Load(writeSchema(t, "tracert.toml", tracertTOML))
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	t.Run("success", func(t *testing.T) {
		o := s.Run([]string{"www.google.it", "-d", "-w:1000", "-h:17"})
		if o.Result != cmdline.Success {
			t.Fatalf("Result = %v, want success (err = %v)", o.Result, o.Err())
		}
		wantValues := map[string]any{"d": true, "w": 1000, "h": 17}
		if diff := cmp.Diff(wantValues, o.Values); diff != "" {
			t.Errorf("Values mismatch (-want +got):\n%s", diff)
		}
		wantApplied := []Applied{{"d", true}, {"w", 1000}, {"h", 17}}
		if diff := cmp.Diff(wantApplied, o.Applied); diff != "" {
			t.Errorf("Applied mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"www.google.it"}, o.Arguments); diff != "" {
			t.Errorf("Arguments mismatch (-want +got):\n%s", diff)
		}
		if o.LastOption != "h" {
			t.Errorf("LastOption = %q, want %q", o.LastOption, "h")
		}
		if o.CommandLine != "www.google.it -d -w:1000 -h:17" {
			t.Errorf("CommandLine = %q", o.CommandLine)
		}
	})

	t.Run("help", func(t *testing.T) {
		o := s.Run([]string{"host", "/?"})
		if o.Result != cmdline.Help || !o.Help {
			t.Fatalf("Result = %v, Help = %v, want help", o.Result, o.Help)
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			args []string
			want cmdline.ErrorKind
		}{
			{[]string{"www.google.it", "-boh", "-w:a"}, cmdline.UnknownOption},
			{[]string{"www.google.it", "-d", "-w:a"}, cmdline.InvalidValue},
			{[]string{"-d", "-w:a"}, cmdline.ArgumentRequired},
			{[]string{"uno", "due", "-d", "-w:a"}, cmdline.MultipleArgumentNotAllowed},
		}
		for _, tt := range tests {
			o := s.Run(tt.args)
			if o.Result != cmdline.Error {
				t.Errorf("%v: Result = %v, want error", tt.args, o.Result)
				continue
			}
			if got := o.Err().Kind; got != tt.want {
				t.Errorf("%v: Kind = %v, want %v", tt.args, got, tt.want)
			}
		}
	})
}

func TestRunAllKinds(t *testing.T) {
	s := &Schema{
		Format: "--x=x",
		Options: []OptionDecl{
			{Name: "name", Kind: "string"},
			{Name: "big", Kind: "int64"},
			{Name: "count", Kind: "uint"},
			{Name: "ratio", Kind: "float"},
			{Name: "on", Kind: "bool"},
			{Name: "wait", Kind: "duration"},
			{Name: "quiet", Kind: "flag"},
		},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate error = %v", err)
	}
	o := s.Run([]string{"--name=x y", "--big=9000000000", "--count=3", "--ratio=0.5", "--on=false", "--wait=2s", "--quiet"})
	if o.Result != cmdline.Success {
		t.Fatalf("Result = %v, want success (err = %v)", o.Result, o.Err())
	}
	want := map[string]string{
		"name":  "x y",
		"big":   "9000000000",
		"count": "3",
		"ratio": "0.5",
		"on":    "false",
		"wait":  "2s",
		"quiet": "true",
	}
	if diff := cmp.Diff(want, o.Strings()); diff != "" {
		t.Errorf("Strings mismatch (-want +got):\n%s", diff)
	}
	if got := o.Values["wait"]; got != 2*time.Second {
		t.Errorf("Values[wait] = %v, want 2s", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		schema  Schema
		wantErr string
	}{
		{"ok_default_format", Schema{Options: []OptionDecl{{Name: "v"}}}, ""},
		{"bad_format", Schema{Format: "x:x"}, "invalid option format"},
		{"bad_requires", Schema{Requires: "not a constraint"}, "invalid requires"},
		{"help_on_empty_without_help", Schema{HelpOnEmpty: true, Help: " , "}, "help_on_empty"},
		{"bad_policy", Schema{Argument: &ArgumentDecl{Policy: "twice"}}, "unknown argument policy"},
		{"unnamed_option", Schema{Options: []OptionDecl{{Kind: "int"}}}, "has no name"},
		{"duplicate_option", Schema{Options: []OptionDecl{{Name: "v"}, {Name: "V", Kind: "int"}}}, "declared twice"},
		{"duplicate_case_sensitive_ok", Schema{CaseSensitive: true, Options: []OptionDecl{{Name: "v"}, {Name: "V"}}}, ""},
		{"unknown_kind", Schema{Options: []OptionDecl{{Name: "v", Kind: "complex"}}}, "unknown kind"},
		{"custom_kind", Schema{Options: []OptionDecl{{Name: "v", Kind: "value"}}}, "unknown kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeUnknownKeys(t *testing.T) {
	if _, err := Decode([]byte("program = \"x\"\nformatt = \"-xx\"\n"), TOML); err == nil {
		t.Error("Decode(toml) accepted an unknown key")
	}
	if _, err := Decode([]byte("program: x\nformatt: -xx\n"), YAML); err == nil {
		t.Error("Decode(yaml) accepted an unknown key")
	}
	if _, err := Decode([]byte("program: x\n"), Unknown); err == nil {
		t.Error("Decode(Unknown) succeeded")
	}
}

func TestLoadInvalid(t *testing.T) {
	path := writeSchema(t, "bad.toml", "format = \"-x:y\"\n")
	_, err := Load(path)
	var fe *cmdline.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Load error = %v, want *cmdline.FormatError", err)
	}
}

func TestCheckVersion(t *testing.T) {
	s := &Schema{Program: "tracert", Requires: ">= 1.2.0, < 2"}
	if err := s.CheckVersion("1.4.0"); err != nil {
		t.Errorf("CheckVersion(1.4.0) error = %v", err)
	}
	if err := s.CheckVersion("2.0.0"); err == nil {
		t.Error("CheckVersion(2.0.0) succeeded")
	}
	if err := s.CheckVersion("garbage"); err == nil {
		t.Error("CheckVersion(garbage) succeeded")
	}
	if err := (&Schema{}).CheckVersion("garbage"); err != nil {
		t.Errorf("CheckVersion without requires error = %v", err)
	}
}

func TestUsage(t *testing.T) {
	s := &Schema{
		Program:  "tracert",
		Format:   "-x x",
		Help:     "-?",
		Argument: &ArgumentDecl{Name: "hostname", Policy: "once"},
		Options:  []OptionDecl{{Name: "d"}, {Name: "w", Kind: "int"}},
	}
	want := "tracert [-d] [-w <int>] <hostname>\nhelp: -?"
	if got := s.Usage(); got != want {
		t.Errorf("Usage() = %q, want %q", got, want)
	}
}

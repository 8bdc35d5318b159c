// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema declares cmdline parsers in TOML or YAML files and records
// what a parse did.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/cmdline/pkg/cmdline"
	"gopkg.in/yaml.v3"
	"tailscale.com/util/set"
)

// FlagKind is the kind name of an option that takes no value. An empty
// kind means the same.
const FlagKind = "flag"

// Schema describes a command line.
type Schema struct {
	Program string `toml:"program" yaml:"program"`
	// Requires is an optional semver constraint on the tool version.
	Requires      string        `toml:"requires,omitempty" yaml:"requires,omitempty"`
	Format        string        `toml:"format,omitempty" yaml:"format,omitempty"`
	CaseSensitive bool          `toml:"case_sensitive,omitempty" yaml:"case_sensitive,omitempty"`
	HelpOnEmpty   bool          `toml:"help_on_empty,omitempty" yaml:"help_on_empty,omitempty"`
	Help          string        `toml:"help,omitempty" yaml:"help,omitempty"`
	Argument      *ArgumentDecl `toml:"argument,omitempty" yaml:"argument,omitempty"`
	Options       []OptionDecl  `toml:"options,omitempty" yaml:"options,omitempty"`
}

type ArgumentDecl struct {
	Name   string `toml:"name,omitempty" yaml:"name,omitempty"`
	Policy string `toml:"policy,omitempty" yaml:"policy,omitempty"`
}

type OptionDecl struct {
	Name        string `toml:"name" yaml:"name"`
	Kind        string `toml:"kind,omitempty" yaml:"kind,omitempty"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
}

// Load reads, decodes and validates the schema file at path.
func Load(path string) (*Schema, error) {
	ft, err := DetectFile(path)
	if err != nil {
		return nil, err
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Decode(bs, ft)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", path, err)
	}
	return s, nil
}

// Decode decodes a schema document without validating it.
func Decode(bs []byte, ft FileType) (*Schema, error) {
	var s Schema
	switch ft {
	case TOML:
		md, err := toml.NewDecoder(bytes.NewReader(bs)).Decode(&s)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(bs))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported schema file type %v", ft)
	}
	return &s, nil
}

// Validate reports the first problem that would make Build panic.
func (s *Schema) Validate() error {
	if _, err := cmdline.CompileFormat(s.format()); err != nil {
		return err
	}
	if s.Requires != "" {
		if _, err := semver.NewConstraint(s.Requires); err != nil {
			return fmt.Errorf("invalid requires %q: %w", s.Requires, err)
		}
	}
	if s.HelpOnEmpty && strings.Trim(s.Help, ", \t") == "" {
		return errors.New("help_on_empty needs help aliases")
	}
	if s.Argument != nil && s.Argument.Policy != "" {
		if _, ok := cmdline.ParseArgumentPolicy(s.Argument.Policy); !ok {
			return fmt.Errorf("unknown argument policy %q", s.Argument.Policy)
		}
	}
	names := s.comparer()
	seen := make(set.Set[string])
	for i, o := range s.Options {
		if o.Name == "" {
			return fmt.Errorf("option %d has no name", i)
		}
		key := names.Key(o.Name)
		if seen.Contains(key) {
			return fmt.Errorf("option %q declared twice", o.Name)
		}
		seen.Add(key)
		if _, _, err := o.kind(); err != nil {
			return err
		}
	}
	return nil
}

// CheckVersion reports whether version satisfies the Requires constraint.
func (s *Schema) CheckVersion(version string) error {
	if s.Requires == "" {
		return nil
	}
	c, err := semver.NewConstraint(s.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires %q: %w", s.Requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("schema %s requires version %s, have %s", s.Program, s.Requires, v)
	}
	return nil
}

func (s *Schema) format() string {
	if s.Format == "" {
		return cmdline.DefaultFormat.String()
	}
	return s.Format
}

func (s *Schema) comparer() cmdline.NameComparer {
	if s.CaseSensitive {
		return cmdline.ExactCase
	}
	return cmdline.IgnoreCase
}

// kind returns the value kind of o, or flag set for an option that takes
// no value. Custom kinds need Go code and are rejected.
func (o OptionDecl) kind() (k cmdline.Kind, flag bool, err error) {
	if o.Kind == "" || o.Kind == FlagKind {
		return 0, true, nil
	}
	k, ok := cmdline.ParseKind(o.Kind)
	if !ok || k == cmdline.KindCustom {
		return 0, false, fmt.Errorf("option %q has unknown kind %q", o.Name, o.Kind)
	}
	return k, false, nil
}

// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command optcheck parses a command line against a declarative option
// schema and reports what a program built with the same declarations would
// see.
//
//	optcheck [--schema FILE] [--json] [--env-out FILE] [--env-prefix P] [--color] -- TOKENS...
//
// The tokens to check must follow "--"; optcheck's own flags come before it.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/shayne/yargs"
	"github.com/yeetrun/cmdline/pkg/cmdline"
	"github.com/yeetrun/cmdline/pkg/env"
	"github.com/yeetrun/cmdline/pkg/schema"
	"github.com/yeetrun/cmdline/pkg/tui"
)

const version = "0.1.0"

const defaultSchemaFile = "optcheck.toml"

const (
	exitOK     = 0
	exitParse  = 1
	exitConfig = 2
)

type globalFlagsParsed struct {
	Schema    string `flag:"schema" help:"Schema file (OPTCHECK_SCHEMA)"`
	JSON      bool   `flag:"json" help:"Print the outcome as JSON"`
	EnvOut    string `flag:"env-out" help:"Write the applied values to an env file"`
	EnvPrefix string `flag:"env-prefix" help:"Prefix for variables written by --env-out"`
	Color     bool   `flag:"color" help:"Force coloured diagnostics"`
	Usage     bool   `flag:"usage" help:"Print the schema synopsis and exit"`
	Version   bool   `flag:"version" help:"Print the optcheck version and exit"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

// tokens returns the command line to check: everything after the first
// "--". Anything left in front of it is a flag optcheck does not know or a
// stray argument, and is rejected so that it is not silently dropped.
func tokens(remaining []string) ([]string, error) {
	before, after := remaining, []string(nil)
	if i := slices.Index(remaining, "--"); i >= 0 {
		before, after = remaining[:i], remaining[i+1:]
	}
	if len(before) > 0 {
		if strings.HasPrefix(before[0], "-") {
			return nil, fmt.Errorf("unknown flag %q", before[0])
		}
		return nil, fmt.Errorf("unexpected argument %q: the command line to check goes after --", before[0])
	}
	return after, nil
}

func schemaPath(flags globalFlagsParsed) string {
	if flags.Schema != "" {
		return flags.Schema
	}
	if p := os.Getenv("OPTCHECK_SCHEMA"); p != "" {
		return p
	}
	return defaultSchemaFile
}

func colorizer(flags globalFlagsParsed, w io.Writer) tui.Colorizer {
	if flags.Color {
		return tui.NewColorizer(true)
	}
	if f, ok := w.(*os.File); ok {
		return tui.ForFile(f)
	}
	return tui.Colorizer{}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "optcheck: ", 0)

	flags, remaining, err := parseGlobalFlags(args)
	if err != nil {
		logger.Printf("invalid flags: %v", err)
		return exitConfig
	}
	if flags.Version {
		fmt.Fprintln(stdout, version)
		return exitOK
	}
	input, err := tokens(remaining)
	if err != nil {
		logger.Printf("%v", err)
		return exitConfig
	}

	path := schemaPath(flags)
	s, err := schema.Load(path)
	if err != nil {
		logger.Printf("%v", err)
		return exitConfig
	}
	if err := s.CheckVersion(version); err != nil {
		logger.Printf("%s: %v", path, err)
		return exitConfig
	}
	if flags.Usage {
		fmt.Fprintln(stdout, s.Usage())
		return exitOK
	}

	o := s.Run(input)

	if flags.JSON {
		if err := printJSON(stdout, o); err != nil {
			logger.Printf("failed to encode outcome: %v", err)
			return exitConfig
		}
	} else {
		printText(stdout, s, o)
	}

	if o.Result == cmdline.Error {
		if e := o.Err(); e != nil && !flags.JSON {
			fmt.Fprint(stderr, tui.RenderError(colorizer(flags, stderr), input, e))
		}
		return exitParse
	}

	if flags.EnvOut != "" && !o.Help {
		if err := env.Write(flags.EnvOut, flags.EnvPrefix, o.Strings()); err != nil {
			logger.Printf("failed to write env file: %v", err)
			return exitConfig
		}
	}
	return exitOK
}

func printText(w io.Writer, s *schema.Schema, o *schema.Outcome) {
	if o.Help {
		fmt.Fprintln(w, s.Usage())
		return
	}
	fmt.Fprintf(w, "result: %s\n", o.Result)
	for _, a := range o.Applied {
		fmt.Fprintf(w, "option %s = %v\n", a.Name, a.Value)
	}
	for _, a := range o.Arguments {
		fmt.Fprintf(w, "argument: %s\n", a)
	}
	if o.LastOption != "" {
		fmt.Fprintf(w, "last option: %s\n", o.LastOption)
	}
}

type report struct {
	Result      string            `json:"result"`
	Help        bool              `json:"help,omitempty"`
	Values      map[string]string `json:"values,omitempty"`
	Arguments   []string          `json:"arguments,omitempty"`
	LastOption  string            `json:"lastOption,omitempty"`
	CommandLine string            `json:"commandLine"`
	Error       *errorReport      `json:"error,omitempty"`
}

type errorReport struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Token   *cmdline.Token `json:"token,omitempty"`
	Cause   string         `json:"cause,omitempty"`
}

func newReport(o *schema.Outcome) report {
	r := report{
		Result:      o.Result.String(),
		Help:        o.Help,
		Arguments:   o.Arguments,
		LastOption:  o.LastOption,
		CommandLine: o.CommandLine,
	}
	if len(o.Values) > 0 {
		r.Values = o.Strings()
	}
	if e := o.Err(); e != nil {
		r.Error = &errorReport{
			Kind:    e.Kind.String(),
			Message: e.Error(),
			Token:   e.Token,
		}
		if e.Cause != nil {
			r.Error.Cause = e.Cause.Error()
		}
	}
	return r
}

func printJSON(w io.Writer, o *schema.Outcome) error {
	j, err := json.MarshalIndent(newReport(o), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", j)
	return err
}

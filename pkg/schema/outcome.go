// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"fmt"
	"time"

	"github.com/yeetrun/cmdline/pkg/cmdline"
	"tailscale.com/util/mak"
)

// Applied is one handler invocation.
type Applied struct {
	Name  string
	Value any // true for flags
}

// Outcome records what a parse did.
type Outcome struct {
	Result cmdline.Result
	// Values holds the last value applied per option, keyed by the name
	// declared in the schema.
	Values    map[string]any
	Applied   []Applied
	Arguments []string
	Help      bool
	// Errors holds every error passed to the error hook, in order. The
	// last one is the parser's final error.
	Errors      []*cmdline.ParsingError
	LastOption  string
	CommandLine string
}

// Err returns the final parse error, or nil.
func (o *Outcome) Err() *cmdline.ParsingError {
	if len(o.Errors) == 0 || o.Result != cmdline.Error {
		return nil
	}
	return o.Errors[len(o.Errors)-1]
}

// Strings returns Values formatted as strings.
func (o *Outcome) Strings() map[string]string {
	out := make(map[string]string, len(o.Values))
	for k, v := range o.Values {
		out[k] = formatValue(v)
	}
	return out
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case time.Duration:
		return v.String()
	}
	return fmt.Sprint(v)
}

func (o *Outcome) record(name string, v any) {
	mak.Set(&o.Values, name, v)
	o.Applied = append(o.Applied, Applied{Name: name, Value: v})
}

func recordAs[T any](o *Outcome, name string) func(T) {
	return func(v T) { o.record(name, v) }
}

// Build returns a parser for args configured from s, and the Outcome its
// handlers write to. s must be valid; Build panics otherwise.
func (s *Schema) Build(args []string) (*cmdline.Parser, *Outcome) {
	o := &Outcome{}
	p := cmdline.New(args, cmdline.WithComparer(s.comparer())).
		OptionFormat(s.format()).
		HelpOnEmptyInput(s.HelpOnEmpty).
		OnError(func(e *cmdline.ParsingError) { o.Errors = append(o.Errors, e) })

	for _, d := range s.Options {
		k, flag, err := d.kind()
		if err != nil {
			panic(err)
		}
		if flag {
			name := d.Name
			p.OnOption(name, func() { o.record(name, true) })
			continue
		}
		switch k {
		case cmdline.KindString:
			p.OnString(d.Name, recordAs[string](o, d.Name))
		case cmdline.KindInt:
			p.OnInt(d.Name, recordAs[int](o, d.Name))
		case cmdline.KindInt64:
			p.OnInt64(d.Name, recordAs[int64](o, d.Name))
		case cmdline.KindUint:
			p.OnUint(d.Name, recordAs[uint](o, d.Name))
		case cmdline.KindFloat:
			p.OnFloat(d.Name, recordAs[float64](o, d.Name))
		case cmdline.KindBool:
			p.OnBool(d.Name, recordAs[bool](o, d.Name))
		case cmdline.KindDuration:
			p.OnDuration(d.Name, recordAs[time.Duration](o, d.Name))
		}
	}

	if a := s.Argument; a != nil {
		policy := cmdline.MultipleAllowed
		if a.Policy != "" {
			policy, _ = cmdline.ParseArgumentPolicy(a.Policy)
		}
		p.OnArgument(func(v string) { o.Arguments = append(o.Arguments, v) }, policy)
		if a.Name != "" {
			p.ArgumentName(a.Name)
		}
	}
	if s.Help != "" {
		p.OnHelp(s.Help, func() { o.Help = true })
	}
	return p, o
}

// Run parses args with the parser described by s.
func (s *Schema) Run(args []string) *Outcome {
	p, o := s.Build(args)
	o.Result = p.Parse()
	o.LastOption = p.LastOption()
	o.CommandLine = p.CommandLine()
	return o
}

// Usage returns the synopsis of the parser described by s.
func (s *Schema) Usage() string {
	p, _ := s.Build(nil)
	program := s.Program
	if program == "" {
		program = "command"
	}
	return p.Usage(program)
}

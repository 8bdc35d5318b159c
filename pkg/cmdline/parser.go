// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"strings"
	"time"

	"tailscale.com/util/set"
)

// Result is the outcome of Parse.
type Result int

const (
	Success Result = iota
	Help
	Error
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Help:
		return "help"
	case Error:
		return "error"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// ArgumentPolicy controls how many positional arguments are accepted.
type ArgumentPolicy int

const (
	// Optional accepts zero or one argument.
	Optional ArgumentPolicy = iota
	// Once requires exactly one argument.
	Once
	// MultipleAllowed requires at least one argument.
	MultipleAllowed
)

func (p ArgumentPolicy) String() string {
	switch p {
	case Optional:
		return "optional"
	case Once:
		return "once"
	case MultipleAllowed:
		return "multiple"
	}
	return fmt.Sprintf("ArgumentPolicy(%d)", int(p))
}

// ParseArgumentPolicy returns the policy named by s ("optional", "once" or
// "multiple").
func ParseArgumentPolicy(s string) (ArgumentPolicy, bool) {
	for _, p := range []ArgumentPolicy{Optional, Once, MultipleAllowed} {
		if strings.EqualFold(s, p.String()) {
			return p, true
		}
	}
	return 0, false
}

type option struct {
	name  string // registered spelling
	flag  func() // set for flags
	value *Value // set for valued options
}

// Parser classifies command-line tokens and dispatches them to registered
// handlers. Configure it with the builder methods, then call Parse.
//
// The builder methods panic on programming errors such as registering the
// same option twice. Errors in the input are reported by Parse.
type Parser struct {
	args        []string
	commandLine string
	names       NameComparer
	format      Format
	helpOnEmpty bool

	options map[string]*option // keyed by names.Key
	order   []*option

	argument     func(string)
	argumentName string
	policy       ArgumentPolicy

	help        func()
	helpAliases set.Set[string] // lower-cased
	helpOrder   []string

	onError func(*ParsingError)

	err        *ParsingError
	lastOption string
}

// Option configures a Parser at construction.
type Option func(*Parser)

// WithComparer sets the strategy used to compare option names.
func WithComparer(c NameComparer) Option {
	return func(p *Parser) {
		if c != nil {
			p.names = c
		}
	}
}

// WithCaseSensitive makes option names case sensitive.
func WithCaseSensitive() Option {
	return WithComparer(ExactCase)
}

// New returns a Parser for args, typically os.Args[1:].
func New(args []string, opts ...Option) *Parser {
	p := &Parser{
		args:        args,
		commandLine: strings.Join(args, " "),
		names:       IgnoreCase,
		format:      DefaultFormat,
		options:     make(map[string]*option),
		policy:      Optional,
		onError:     func(*ParsingError) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OptionFormat sets how options are written. See CompileFormat for the
// pattern syntax. It panics if the pattern is invalid.
func (p *Parser) OptionFormat(pattern string) *Parser {
	p.format = MustCompileFormat(pattern)
	return p
}

// Format returns the compiled option format.
func (p *Parser) Format() Format { return p.format }

// HelpOnEmptyInput makes Parse call the help handler when there are no
// tokens at all. An OnHelp handler must be registered before Parse; Parse
// panics otherwise, whatever the input.
func (p *Parser) HelpOnEmptyInput(enabled bool) *Parser {
	p.helpOnEmpty = enabled
	return p
}

// OnOption registers a flag: an option that takes no value.
func (p *Parser) OnOption(name string, fn func()) *Parser {
	if fn == nil {
		panic("cmdline: nil handler for option " + name)
	}
	p.register(&option{name: name, flag: fn})
	return p
}

// OnValue registers an option whose value is converted by v.
func (p *Parser) OnValue(name string, v Value) *Parser {
	if v.apply == nil {
		panic("cmdline: zero Value for option " + name)
	}
	p.register(&option{name: name, value: &v})
	return p
}

func (p *Parser) OnString(name string, fn func(string)) *Parser {
	return p.OnValue(name, Typed(KindString, ParseString, fn))
}

func (p *Parser) OnInt(name string, fn func(int)) *Parser {
	return p.OnValue(name, Typed(KindInt, ParseInt, fn))
}

func (p *Parser) OnInt64(name string, fn func(int64)) *Parser {
	return p.OnValue(name, Typed(KindInt64, ParseInt64, fn))
}

func (p *Parser) OnUint(name string, fn func(uint)) *Parser {
	return p.OnValue(name, Typed(KindUint, ParseUint, fn))
}

func (p *Parser) OnFloat(name string, fn func(float64)) *Parser {
	return p.OnValue(name, Typed(KindFloat, ParseFloat, fn))
}

func (p *Parser) OnBool(name string, fn func(bool)) *Parser {
	return p.OnValue(name, Typed(KindBool, ParseBool, fn))
}

func (p *Parser) OnDuration(name string, fn func(time.Duration)) *Parser {
	return p.OnValue(name, Typed(KindDuration, ParseDuration, fn))
}

func (p *Parser) register(o *option) {
	if o.name == "" {
		panic("cmdline: empty option name")
	}
	key := p.names.Key(o.name)
	if prev, ok := p.options[key]; ok {
		panic(fmt.Sprintf("cmdline: option %q already registered as %q", o.name, prev.name))
	}
	p.options[key] = o
	p.order = append(p.order, o)
}

// OnArgument registers the handler for positional arguments. The policy
// defaults to MultipleAllowed. Only one handler may be registered.
func (p *Parser) OnArgument(fn func(string), policy ...ArgumentPolicy) *Parser {
	if fn == nil {
		panic("cmdline: nil argument handler")
	}
	if p.argument != nil {
		panic("cmdline: argument handler already registered")
	}
	p.argument = fn
	p.policy = MultipleAllowed
	if len(policy) > 0 {
		p.policy = policy[0]
	}
	return p
}

// ArgumentName sets the placeholder used for positional arguments in Usage.
func (p *Parser) ArgumentName(name string) *Parser {
	p.argumentName = name
	return p
}

// OnHelp registers the help handler and the comma-separated list of tokens
// that trigger it, e.g. "-h, --help, /?". Aliases match case-insensitively.
// A second call replaces the first.
func (p *Parser) OnHelp(aliases string, fn func()) *Parser {
	if fn == nil {
		panic("cmdline: nil help handler")
	}
	p.help = fn
	p.helpAliases = make(set.Set[string])
	p.helpOrder = p.helpOrder[:0]
	for _, a := range strings.Split(aliases, ",") {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		p.helpAliases.Add(strings.ToLower(a))
		p.helpOrder = append(p.helpOrder, a)
	}
	return p
}

// OnError registers a hook called every time Parse records an error. The
// hook cannot change the result.
func (p *Parser) OnError(fn func(*ParsingError)) *Parser {
	if fn == nil {
		panic("cmdline: nil error handler")
	}
	p.onError = fn
	return p
}

// Err returns the error recorded by the last Parse, or nil.
func (p *Parser) Err() *ParsingError { return p.err }

// LastOption returns the registered name of the last valued option applied
// by Parse.
func (p *Parser) LastOption() string { return p.lastOption }

// CommandLine returns the input tokens joined with single spaces.
func (p *Parser) CommandLine() string { return p.commandLine }

// Parse consumes the tokens left to right, calling the registered handlers,
// and stops at the first error or help token. Handlers run synchronously;
// a panicking handler aborts Parse.
//
// When no positional argument was accepted and the policy requires one,
// an ArgumentRequired error is recorded after the scan, replacing any
// earlier error. The error hook sees both.
func (p *Parser) Parse() Result {
	if p.helpOnEmpty && p.help == nil {
		panic("cmdline: HelpOnEmptyInput requires an OnHelp handler")
	}
	if len(p.args) == 0 && p.helpOnEmpty {
		p.help()
	}
	p.err = nil
	p.lastOption = ""

	s := &scan{p: p}
	for s.result != Error {
		tok, ok := s.next()
		if !ok {
			break
		}
		if p.isHelp(tok) {
			p.help()
			return Help
		}
		if strings.HasPrefix(tok, p.format.Prefix) {
			s.option(tok)
		} else {
			s.positional(tok)
		}
	}
	if !s.argumentSeen && p.policy != Optional {
		s.fail(ArgumentRequired, nil, nil)
	}
	return s.result
}

func (p *Parser) isHelp(tok string) bool {
	return p.help != nil && p.helpAliases.Contains(strings.ToLower(tok))
}

func (p *Parser) lookup(name string) *option {
	return p.options[p.names.Key(name)]
}

// scan is the state of one Parse call.
type scan struct {
	p            *Parser
	pos          int
	argumentSeen bool
	result       Result
}

func (s *scan) next() (string, bool) {
	if s.pos >= len(s.p.args) {
		return "", false
	}
	tok := s.p.args[s.pos]
	s.pos++
	return tok, true
}

func (s *scan) fail(kind ErrorKind, tok *Token, cause error) {
	s.result = Error
	s.p.err = &ParsingError{
		Kind:        kind,
		Token:       tok,
		CommandLine: s.p.commandLine,
		Cause:       cause,
	}
	s.p.onError(s.p.err)
}

func (s *scan) option(tok string) {
	p := s.p
	text := tok[len(p.format.Prefix):]
	t := &Token{Index: s.pos - 1, Text: tok, Name: text}

	var opt *option
	switch p.format.Mode {
	case Separator:
		name, value, _ := strings.Cut(text, p.format.Sep)
		t.Name, t.Value = name, value
		opt = p.lookup(name)
	case Separate:
		opt = p.lookup(text)
		if opt != nil && opt.value != nil {
			// The next token is the value whatever it looks like.
			t.Value, _ = s.next()
		}
	case Adjacent:
		// First registered name that prefixes the text wins, so a flag "v"
		// shadows a later "verbose".
		for _, o := range p.order {
			if p.names.HasPrefix(text, o.name) {
				opt = o
				t.Value = text[len(o.name):]
				break
			}
		}
	}
	if opt == nil {
		s.fail(UnknownOption, t, nil)
		return
	}
	t.Name = opt.name

	if opt.value == nil {
		if t.Value != "" {
			s.fail(ValueNotAllowed, t, nil)
			return
		}
		opt.flag()
		return
	}
	if t.Value == "" {
		s.fail(ValueExpected, t, nil)
		return
	}
	if err := opt.value.apply(t.Value); err != nil {
		s.fail(InvalidValue, t, err)
		return
	}
	p.lastOption = opt.name
}

func (s *scan) positional(tok string) {
	p := s.p
	t := &Token{Index: s.pos - 1, Text: tok}
	if p.argument == nil {
		s.fail(UnhandledArgument, t, nil)
		return
	}
	if s.argumentSeen && p.policy != MultipleAllowed {
		s.fail(MultipleArgumentNotAllowed, t, nil)
		return
	}
	s.argumentSeen = true
	p.argument(tok)
}

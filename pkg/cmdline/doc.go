// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdline provides a fluent command-line parser driven by callbacks.
//
// A Parser is built for one token sequence, configured with a chain of
// registration calls and then run once with Parse:
//
//	var host string
//	timeout := 2000
//	p := cmdline.New(os.Args[1:]).
//	    OptionFormat("-x:x").
//	    OnArgument(func(a string) { host = a }, cmdline.Once).
//	    OnOption("d", func() { noResolve = true }).
//	    OnInt("w", func(v int) { timeout = v }).
//	    OnHelp("/?, -help", usage)
//	if p.Parse() == cmdline.Error {
//	    log.Fatal(p.Err())
//	}
//
// # Option Format
//
// OptionFormat takes a small pattern describing how options are written. A
// leading run of '-' or '/' characters is the option prefix; the letter x
// marks the name and value slots:
//   - "-x:x" the value follows a delimiter: -w:1000 (any run of punctuation works, "-x=x", "--x::x")
//   - "-x x" the value is the next token: -w 1000
//   - "-xx"  the value is glued to the name: -w1000
//
// In the glued form the parser cannot tell where the name ends, so the
// first registered name that prefixes the token wins. Registering "v"
// before "verbose" makes "-verbose" a ValueNotAllowed error for "v".
//
// # Errors
//
// Parse stops at the first error and returns Error; the details are
// available from Err as a *ParsingError and are also passed to the OnError
// hook. When a required positional argument never arrived, the error is
// ArgumentRequired even if the scan stopped early at another error; the
// hook sees both. Mistakes in the configuration itself, such as
// registering an option twice, panic at the call that makes them.
//
// Parse never prints. Handlers run synchronously in token order; a
// panicking handler aborts Parse.
package cmdline

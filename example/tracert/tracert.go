// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tracert is a command line front end in the style of the Windows
// tracert tool. It only parses its arguments and prints what it would do.
//
// The option syntax defaults to "-x:x" and can be changed with the
// TRACERT_FORMAT environment variable, e.g. TRACERT_FORMAT="-x x".
package main

import (
	"fmt"
	"os"

	"github.com/yeetrun/cmdline/pkg/cmdline"
	"github.com/yeetrun/cmdline/pkg/tui"
	"tailscale.com/util/must"
)

type config struct {
	host      string
	noResolve bool
	timeoutMS int
	maxHops   int
}

func main() {
	pattern := os.Getenv("TRACERT_FORMAT")
	if pattern == "" {
		pattern = cmdline.DefaultFormat.String()
	}
	format := must.Get(cmdline.CompileFormat(pattern))

	cfg := config{timeoutMS: 4000, maxHops: 30}
	var p *cmdline.Parser
	p = cmdline.New(os.Args[1:]).
		OptionFormat(format.String()).
		HelpOnEmptyInput(true).
		OnArgument(func(a string) { cfg.host = a }, cmdline.Once).
		ArgumentName("target_name").
		OnOption("d", func() { cfg.noResolve = true }).
		OnInt("h", func(v int) { cfg.maxHops = v }).
		OnInt("w", func(v int) { cfg.timeoutMS = v }).
		OnHelp("/?, -help", func() { fmt.Println(p.Usage("tracert")) })

	switch p.Parse() {
	case cmdline.Help:
		return
	case cmdline.Error:
		if len(os.Args) == 1 {
			// Usage was already printed.
			os.Exit(1)
		}
		fmt.Fprint(os.Stderr, tui.RenderError(tui.ForFile(os.Stderr), os.Args[1:], p.Err()))
		os.Exit(1)
	}

	fmt.Printf("Tracing route to %s over a maximum of %d hops\n", cfg.host, cfg.maxHops)
	if cfg.noResolve {
		fmt.Println("not resolving addresses to hostnames")
	}
	fmt.Printf("timeout %dms per reply\n", cfg.timeoutMS)
}

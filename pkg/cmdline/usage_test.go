// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"testing"
	"time"
)

func TestUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		policy ArgumentPolicy
		want   string
	}{
		{"separator", "-x:x", Once, "tracert [-d] [-w:<int>] [-t:<duration>] <hostname>\nhelp: /?, -help"},
		{"separate", "-x x", MultipleAllowed, "tracert [-d] [-w <int>] [-t <duration>] <hostname>...\nhelp: /?, -help"},
		{"adjacent", "/xx", Optional, "tracert [/d] [/w<int>] [/t<duration>] [<hostname>]\nhelp: /?, -help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(nil).
				OptionFormat(tt.format).
				OnOption("d", func() {}).
				OnInt("w", func(int) {}).
				OnDuration("t", func(time.Duration) {}).
				OnArgument(func(string) {}, tt.policy).
				ArgumentName("hostname").
				OnHelp("/?, -help", func() {})
			if got := p.Usage("tracert"); got != tt.want {
				t.Errorf("Usage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUsageBare(t *testing.T) {
	p := New(nil).OnValue("x", Typed(KindCustom, ParseString, func(string) {})).OnArgument(func(string) {})
	want := "prog [-x:<value>] <argument>..."
	if got := p.Usage("prog"); got != want {
		t.Errorf("Usage() = %q, want %q", got, want)
	}
}

// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import "strings"

// Usage returns a synopsis of the registered options and arguments written
// in the parser's option format, e.g.
//
//	tracert [-d] [-w:<int>] <hostname>
//	help: /?, -help
func (p *Parser) Usage(program string) string {
	var b strings.Builder
	b.WriteString(program)
	for _, o := range p.order {
		b.WriteString(" [")
		if o.value == nil {
			b.WriteString(p.format.Prefix + o.name)
		} else {
			b.WriteString(p.format.spell(o.name, "<"+o.value.kind.String()+">"))
		}
		b.WriteString("]")
	}
	if p.argument != nil {
		name := p.argumentName
		if name == "" {
			name = "argument"
		}
		arg := "<" + name + ">"
		switch p.policy {
		case Optional:
			arg = "[" + arg + "]"
		case MultipleAllowed:
			arg += "..."
		}
		b.WriteString(" " + arg)
	}
	if len(p.helpOrder) > 0 {
		b.WriteString("\nhelp: " + strings.Join(p.helpOrder, ", "))
	}
	return b.String()
}

// Copyright 2011 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package samurai

import "strings"

// isShellSafeByte reports whether c never needs quoting on its own.
func isShellSafeByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '_', '+', '-', '.', '/':
		return true
	}
	return false
}

// NodePath returns n's path, shell-quoted when escape is true and the path
// contains a byte a POSIX shell would otherwise treat specially. The
// quoted form is cached on n.ShellPath, matching graph.c's nodepath, which
// computes it once per node and reuses it for every subsequent edgevar
// expansion that needs $in/$out escaped.
func NodePath(n *Node, escape bool) string {
	if !escape {
		return n.Path
	}
	if n.ShellPath != "" {
		return n.ShellPath
	}

	needsQuote := false
	nquote := 0
	for i := 0; i < len(n.Path); i++ {
		c := n.Path[i]
		if !isShellSafeByte(c) {
			needsQuote = true
		}
		if c == '\'' {
			nquote++
		}
	}
	if !needsQuote {
		n.ShellPath = n.Path
		return n.ShellPath
	}

	var b strings.Builder
	b.Grow(len(n.Path) + 2 + 3*nquote)
	b.WriteByte('\'')
	for i := 0; i < len(n.Path); i++ {
		c := n.Path[i]
		b.WriteByte(c)
		if c == '\'' {
			b.WriteString(`\''`)
		}
	}
	b.WriteByte('\'')
	n.ShellPath = b.String()
	return n.ShellPath
}

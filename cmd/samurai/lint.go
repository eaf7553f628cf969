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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"go.uber.org/multierr"

	"github.com/svmhdvn/samurai"
)

// lintCmd validates every manifest reachable from a root via `include` or
// `subninja`, reporting every structural error found instead of stopping
// at the first one a single top-down parse would hit.
type lintCmd struct{}

func (*lintCmd) Name() string             { return "lint" }
func (*lintCmd) Synopsis() string         { return "validate a manifest and everything it includes/subninjas" }
func (*lintCmd) Usage() string            { return "lint <manifest>\n" }
func (*lintCmd) SetFlags(_ *flag.FlagSet) {}

func (c *lintCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(f.Output(), c.Usage())
		return subcommands.ExitUsageError
	}

	manifests, discoverErr := discoverManifests(f.Arg(0))
	var errs error
	errs = multierr.Append(errs, discoverErr)

	for _, path := range manifests {
		s := samurai.NewState()
		p := samurai.NewParser(s, samurai.ParseOptions{})
		if err := p.ParseFile(path, s.Bindings); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}

	for _, err := range multierr.Errors(errs) {
		fmt.Fprintln(f.Output(), err)
	}
	if errs != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// discoverManifests walks root's include/subninja graph textually,
// returning every reachable manifest path (root included) in discovery
// order. A file each of these is later parsed standalone, in isolation
// from its parent's rule/pool scope, since lint's job is per-file
// structural validity, not full cross-file resolution.
func discoverManifests(root string) ([]string, error) {
	seen := map[string]bool{}
	var order []string
	var errs error

	var visit func(path string)
	visit = func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			return
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		order = append(order, path)

		text, err := os.ReadFile(path)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
			return
		}
		dir := filepath.Dir(path)
		for _, dep := range scanIncludedPaths(path, string(text)) {
			visit(filepath.Join(dir, dep))
		}
	}
	visit(root)
	return order, errs
}

// scanIncludedPaths returns every literal path named by an include or
// subninja statement in text, skipping any whose value isn't a plain
// literal (a $-escaped variable reference can't be resolved without the
// manifest's full environment, which lint deliberately doesn't build).
func scanIncludedPaths(filename, text string) []string {
	var out []string
	lex := samurai.NewLexer(filename, text)
	atLineStart := true
	for {
		tok := lex.ReadToken()
		switch {
		case tok == samurai.TEOF:
			return out
		case tok == samurai.Newline:
			atLineStart = true
			continue
		case atLineStart && (tok == samurai.Include || tok == samurai.Subninja):
			p, err := lex.ReadPath()
			if err != nil {
				return out
			}
			if lit, ok := p.Literal(); ok {
				out = append(out, lit)
			}
		}
		atLineStart = false
	}
}

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

	"github.com/google/subcommands"

	"github.com/svmhdvn/samurai"
)

type parseCmd struct {
	dupBuildWarn bool
}

func (*parseCmd) Name() string     { return "parse" }
func (*parseCmd) Synopsis() string { return "parse a manifest and print a summary of its graph" }
func (*parseCmd) Usage() string {
	return "parse [-dupbuildwarn] <manifest>\n"
}

func (c *parseCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dupBuildWarn, "dupbuildwarn", false, "warn and drop a duplicate output instead of failing")
}

func (c *parseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(f.Output(), c.Usage())
		return subcommands.ExitUsageError
	}

	s := samurai.NewState()
	p := samurai.NewParser(s, samurai.ParseOptions{DupBuildWarn: c.dupBuildWarn})
	if err := p.ParseFile(f.Arg(0), s.Bindings); err != nil {
		fmt.Fprintln(f.Output(), err)
		return subcommands.ExitFailure
	}

	fmt.Printf("pools: %d\n", len(s.Pools))
	fmt.Printf("edges: %d\n", len(s.Edges))
	for _, e := range s.Edges {
		samurai.EdgeHash(e)
		fmt.Printf("  %s: %s -> %s (hash=%d)\n",
			e.Rule.Name, joinNodePaths(e.ExplicitInputs()), joinNodePaths(e.ExplicitOutputs()), e.Hash)
	}
	return subcommands.ExitSuccess
}

func joinNodePaths(nodes []*samurai.Node) string {
	out := ""
	for i, n := range nodes {
		if i > 0 {
			out += " "
		}
		out += n.Path
	}
	return out
}

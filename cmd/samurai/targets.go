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

// targetsCmd implements defaultnodes (spec.md §4.6) as an external
// collaborator: it prints exactly the nodes a build driver would start
// from, never launching anything itself.
type targetsCmd struct{}

func (*targetsCmd) Name() string             { return "targets" }
func (*targetsCmd) Synopsis() string         { return "print the default build targets of a manifest" }
func (*targetsCmd) Usage() string            { return "targets <manifest>\n" }
func (*targetsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *targetsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(f.Output(), c.Usage())
		return subcommands.ExitUsageError
	}

	s := samurai.NewState()
	p := samurai.NewParser(s, samurai.ParseOptions{})
	if err := p.ParseFile(f.Arg(0), s.Bindings); err != nil {
		fmt.Fprintln(f.Output(), err)
		return subcommands.ExitFailure
	}

	s.DefaultNodes(func(n *samurai.Node) { fmt.Println(n.Path) })
	return subcommands.ExitSuccess
}

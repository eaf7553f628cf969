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

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"
)

// NodeStat sets n.MTime from the filesystem: MtimeMissing if the path does
// not exist, or the file's modification time in nanoseconds since the
// Unix epoch otherwise. A stat failure other than "not found" is returned
// to the caller rather than being fatal here, since the core itself never
// decides whether a stat error should abort a build (that is an execution
// collaborator's call, per spec.md §5/§6).
func NodeStat(n *Node) error {
	fi, err := os.Stat(n.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			n.MTime = MtimeMissing
			return nil
		}
		return err
	}
	n.MTime = fi.ModTime().UnixNano()
	return nil
}

// StatAll concurrently stats every node in nodes, per spec.md §5's explicit
// allowance for a concurrent mtime-sampling helper. It returns the first
// error encountered, but every node is still attempted: callers that want
// partial results on error should collect them from the nodes themselves,
// since a failed stat leaves MTime at its prior value.
func StatAll(ctx context.Context, nodes []*Node) error {
	g, _ := errgroup.WithContext(ctx)
	for _, n := range nodes {
		n := n
		g.Go(func() error {
			return NodeStat(n)
		})
	}
	return g.Wait()
}

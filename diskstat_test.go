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
	"os"
	"path/filepath"
	"testing"
)

func TestNodeStatMissingFile(t *testing.T) {
	n := newNode(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := NodeStat(n); err != nil {
		t.Fatalf("NodeStat() on missing file error: %v", err)
	}
	if n.MTime != MtimeMissing {
		t.Errorf("MTime = %d, want MtimeMissing", n.MTime)
	}
}

func TestNodeStatExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	n := newNode(path)
	if err := NodeStat(n); err != nil {
		t.Fatalf("NodeStat() error: %v", err)
	}
	if n.MTime == MtimeUnknown || n.MTime == MtimeMissing {
		t.Errorf("MTime = %d, want a real modification time", n.MTime)
	}
}

func TestStatAllConcurrent(t *testing.T) {
	dir := t.TempDir()
	var nodes []*Node
	for _, name := range []string{"a", "b", "c"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}
		nodes = append(nodes, newNode(path))
	}
	nodes = append(nodes, newNode(filepath.Join(dir, "missing")))

	if err := StatAll(context.Background(), nodes); err != nil {
		t.Fatalf("StatAll() error: %v", err)
	}
	for _, n := range nodes[:3] {
		if n.MTime == MtimeUnknown {
			t.Errorf("node %q left at MtimeUnknown after StatAll", n.Path)
		}
	}
	if nodes[3].MTime != MtimeMissing {
		t.Errorf("missing node MTime = %d, want MtimeMissing", nodes[3].MTime)
	}
}

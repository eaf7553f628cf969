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

import "testing"

func TestRootNodesExcludesConsumedOutputs(t *testing.T) {
	s := NewState()
	rule := NewRule("r")
	e1 := s.addEdge(rule)
	s.addOut(e1, "root1")
	e2 := s.addEdge(rule)
	s.addOut(e2, "root2")
	s.addIn(e2, "root1") // root1 is consumed, so it is no longer a root

	roots := s.RootNodes()
	if len(roots) != 1 || roots[0].Path != "root2" {
		t.Fatalf("RootNodes() = %v, want [root2]", roots)
	}
}

func TestAddDefaultUnknownTargetSuggestsSpelling(t *testing.T) {
	s := NewState()
	s.GetNode("targett")
	err := s.addDefault("target")
	if err == nil {
		t.Fatalf("addDefault(target) = nil error, want error (target was never a build output)")
	}
	ute, ok := err.(*UnknownTargetError)
	if !ok {
		t.Fatalf("addDefault() error type = %T, want *UnknownTargetError", err)
	}
	if ute.Suggestion != "targett" {
		t.Errorf("Suggestion = %q, want targett", ute.Suggestion)
	}
}

func TestAddDefaultUnknownTargetNoSuggestionWhenNothingClose(t *testing.T) {
	s := NewState()
	s.GetNode("completely-unrelated")
	err := s.addDefault("x")
	ute, ok := err.(*UnknownTargetError)
	if !ok {
		t.Fatalf("addDefault() error type = %T, want *UnknownTargetError", err)
	}
	if ute.Suggestion != "" {
		t.Errorf("Suggestion = %q, want empty (nothing within edit distance)", ute.Suggestion)
	}
}

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

// addDefault resolves path to an already-known node and appends it to the
// default-target list, or returns an error if no such node exists —
// spec.md §4.3's "default" handling.
func (s *State) addDefault(path string) error {
	n := s.LookupNode(path)
	if n == nil {
		if guess := s.SpellcheckNode(path); guess != nil {
			return &UnknownTargetError{Path: path, Suggestion: guess.Path}
		}
		return &UnknownTargetError{Path: path}
	}
	s.Defaults = append(s.Defaults, n)
	return nil
}

// RootNodes returns every node that is an output of some edge but is not
// itself used as an input by any edge — the roots of the dependency DAG.
func (s *State) RootNodes() []*Node {
	var roots []*Node
	for _, e := range s.Edges {
		for _, out := range e.Out {
			if len(out.Use) == 0 {
				roots = append(roots, out)
			}
		}
	}
	return roots
}

// DefaultNodes implements defaultnodes from spec.md §4.6: it applies fn to
// every node named by a `default` statement, in declaration order, or —
// when there were none — to every root of the dependency DAG.
func (s *State) DefaultNodes(fn func(*Node)) {
	if len(s.Defaults) > 0 {
		for _, n := range s.Defaults {
			fn(n)
		}
		return
	}
	for _, n := range s.RootNodes() {
		fn(n)
	}
}

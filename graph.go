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

// Mtime sentinels, matching graph.c's MTIME_UNKNOWN / MTIME_MISSING.
const (
	MtimeUnknown int64 = -1
	MtimeMissing int64 = 0
)

// Node is a file path understood as a build artifact or source, per
// spec.md §3.
type Node struct {
	Path string
	// ShellPath is a lazily computed shell-quoted rendering of Path; it
	// equals Path itself when no quoting is needed. See NodePath.
	ShellPath string

	// Gen is the edge that produces this node as an output, or nil if the
	// node is a pure source input.
	Gen *Edge
	// Use lists, in insertion order and with duplicates allowed, every edge
	// that references this node as an input.
	Use []*Edge

	MTime    int64
	LogMTime int64
	Hash     uint64
	ID       int
}

func newNode(path string) *Node {
	return &Node{
		Path:     path,
		MTime:    MtimeUnknown,
		LogMTime: MtimeMissing,
		ID:       -1,
	}
}

// Pool is a named concurrency bucket with a maximum job count. Name ""
// and "console" are reserved by the manifest language.
type Pool struct {
	Name  string
	Depth int
}

// NewPool allocates a pool. depth must be positive for user-defined pools;
// the built-in default pool uses 0 to mean "unbounded", and the console
// pool has depth 1.
func NewPool(name string, depth int) *Pool {
	return &Pool{Name: name, Depth: depth}
}

// Edge flag bits.
const (
	FlagHash uint32 = 1 << iota
)

// Edge is an instance of a rule bound to a set of outputs and inputs, per
// spec.md §3.
type Edge struct {
	Rule *Rule
	Env  *Env
	Pool *Pool

	// Out holds every output; OutImplicitIdx splits it into explicit
	// outputs (indices < OutImplicitIdx) and implicit outputs (the rest).
	Out           []*Node
	OutImplicitIdx int

	// In holds every input; InImplicitIdx and InOrderOnlyIdx split it into
	// explicit (< InImplicitIdx), implicit ([InImplicitIdx,
	// InOrderOnlyIdx)), and order-only ([InOrderOnlyIdx, len(In))) regions.
	In              []*Node
	InImplicitIdx   int
	InOrderOnlyIdx  int

	Flags uint32
	Hash  uint64
}

// ExplicitOutputs returns the outputs surfaced to the command line as
// $out.
func (e *Edge) ExplicitOutputs() []*Node { return e.Out[:e.OutImplicitIdx] }

// ImplicitOutputs returns the outputs not surfaced as $out.
func (e *Edge) ImplicitOutputs() []*Node { return e.Out[e.OutImplicitIdx:] }

// ExplicitInputs returns the inputs surfaced to the command line as $in.
func (e *Edge) ExplicitInputs() []*Node { return e.In[:e.InImplicitIdx] }

// ImplicitInputs returns the inputs that participate in dependency but are
// not surfaced as $in.
func (e *Edge) ImplicitInputs() []*Node { return e.In[e.InImplicitIdx:e.InOrderOnlyIdx] }

// OrderOnlyInputs returns the inputs that gate scheduling but whose mtime
// does not trigger a rebuild.
func (e *Edge) OrderOnlyInputs() []*Node { return e.In[e.InOrderOnlyIdx:] }

// IsPhony reports whether e is the built-in phony rule.
func (e *Edge) IsPhony() bool { return e.Rule == PhonyRule }

// GetBinding expands a rule/edge-scoped variable, with no shell-escaping
// applied to $in/$out.
func (e *Edge) GetBinding(name string) string { return EdgeVar(e, name, false) }

// PhonyRule is the built-in rule used by mkphony for source files that
// later become generated (via a depfile-discovered dependency).
var PhonyRule = &Rule{Name: "phony", Bindings: map[string]*EvalString{}}

// State is the process-wide registry a single parse populates: every node
// keyed by canonical path, every edge in declaration order (oldest first:
// addEdge appends, so the list is not kept most-recent first), every
// named pool, the root binding environment, and the accumulated
// default-target list. Consolidating these into one value (rather than
// package-level globals) lets multiple independent parses coexist in one
// process, per spec.md §9.
type State struct {
	Bindings *Env
	Pools    map[string]*Pool
	Edges    []*Edge
	Defaults []*Node

	paths map[string]*Node
}

// DefaultPool and ConsolePool are the two pools every State starts with;
// depth 0 means unbounded.
var (
	DefaultPool = NewPool("", 0)
	ConsolePool = NewPool("console", 1)
)

// NewState allocates an empty registry seeded with the phony rule and the
// default/console pools.
func NewState() *State {
	s := &State{
		Bindings: NewEnv(nil),
		Pools:    map[string]*Pool{},
		paths:    map[string]*Node{},
	}
	s.Bindings.AddRule(PhonyRule)
	s.AddPool(DefaultPool)
	s.AddPool(ConsolePool)
	return s
}

// AddPool registers pool in s. It panics on a duplicate name, since that
// is a parser-level structural error the caller must have already ruled
// out (spec.md §7.2).
func (s *State) AddPool(p *Pool) {
	if _, ok := s.Pools[p.Name]; ok {
		panic("duplicate pool: " + p.Name)
	}
	s.Pools[p.Name] = p
}

// LookupPool returns the named pool, or nil if none exists.
func (s *State) LookupPool(name string) *Pool { return s.Pools[name] }

// GetNode returns the node for path, creating it on first use — this is
// mknode from spec.md §4.4. path must already be canonicalized by the
// caller: it is the node's sole identity key.
func (s *State) GetNode(path string) *Node {
	if n, ok := s.paths[path]; ok {
		return n
	}
	n := newNode(path)
	s.paths[path] = n
	return n
}

// LookupNode returns the node for path without creating it — nodeget from
// spec.md §4.4.
func (s *State) LookupNode(path string) *Node {
	return s.paths[path]
}

// SpellcheckNode finds the closest known node path to path by edit
// distance, for use in "unknown target" error messages.
func (s *State) SpellcheckNode(path string) *Node {
	const allowReplacements = true
	const maxValidEditDistance = 3
	minDistance := maxValidEditDistance + 1
	var result *Node
	for p, n := range s.paths {
		d := editDistance(p, path, allowReplacements, maxValidEditDistance)
		if d < minDistance {
			minDistance = d
			result = n
		}
	}
	return result
}

// addEdge allocates a new edge bound to rule, chained into s.Edges — mkedge
// from spec.md §4.4. The edge's env has s.Bindings as its ultimate parent.
func (s *State) addEdge(rule *Rule) *Edge {
	e := &Edge{
		Rule: rule,
		Env:  NewEnv(s.Bindings),
		Pool: DefaultPool,
	}
	s.Edges = append(s.Edges, e)
	return e
}

// addOut appends path as an output of e, returning false without mutating
// e.Out if some other edge already produces that node (a duplicate
// output, handled by the parser per spec.md §4.3 invariant (i)).
func (s *State) addOut(e *Edge, path string) bool {
	n := s.GetNode(path)
	if n.Gen != nil {
		return false
	}
	n.Gen = e
	e.Out = append(e.Out, n)
	return true
}

// addIn appends path as an input of e and records e in that node's Use
// list — nodeuse from spec.md §4.4.
func (s *State) addIn(e *Edge, path string) {
	n := s.GetNode(path)
	e.In = append(e.In, n)
	nodeuse(n, e)
}

// nodeuse appends edge to n.Use. Duplicates are allowed: the same edge may
// list a node multiple times across different input regions.
func nodeuse(n *Node, e *Edge) {
	n.Use = append(n.Use, e)
}

// mkphony allocates a synthetic edge whose rule is the built-in phony
// rule, with n as its sole output — used by EdgeAddDeps to give a
// depfile-discovered input a producing edge when it doesn't already have
// one, per spec.md §4.4.
func (s *State) mkphony(n *Node) *Edge {
	e := s.addEdge(PhonyRule)
	e.OutImplicitIdx = 1
	e.Out = []*Node{n}
	n.Gen = e
	return e
}

// EdgeAddDeps folds dep-file-discovered inputs into e, per spec.md §4.4's
// edgeadddeps. Each dep that has no producing edge yet is given a phony
// one, so the executor can treat it uniformly with a real source file.
// The deps are spliced in right at e's current order-only boundary — which
// pushes them into the implicit region and carries the pre-existing
// order-only inputs along, unchanged, further to the right.
func (s *State) EdgeAddDeps(e *Edge, deps []*Node) {
	for _, n := range deps {
		if n.Gen == nil {
			s.mkphony(n)
		}
		nodeuse(n, e)
	}
	in := make([]*Node, 0, len(e.In)+len(deps))
	in = append(in, e.In[:e.InOrderOnlyIdx]...)
	in = append(in, deps...)
	in = append(in, e.In[e.InOrderOnlyIdx:]...)
	e.In = in
	e.InOrderOnlyIdx += len(deps)
}

// Reset sets every node's MTime back to MtimeUnknown without discarding
// the parsed graph; edges and the other node fields are left as they are.
// It serves a build that wants to re-evaluate
// dirtiness from scratch. The core itself never calls this; it is exposed
// for an execution collaborator (spec.md §5's "population → consumption →
// graphinit() (reset)" lifecycle refers to a full graphinit, which is
// GraphInit below — Reset is the lighter per-build variant).
func (s *State) Reset() {
	for _, n := range s.paths {
		n.MTime = MtimeUnknown
	}
}

// GraphInit drops every node, edge, pool, and default target, releasing
// them for garbage collection and readying s for a fresh parse — graphinit
// from spec.md §4.4. Callers must not invoke parser operations
// concurrently with this.
func (s *State) GraphInit() {
	*s = *NewState()
}

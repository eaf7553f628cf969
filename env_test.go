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

func TestEvalStringEvaluate(t *testing.T) {
	env := NewEnv(nil)
	env.AddVar("foo", "bar")

	var ev EvalString
	ev.AddText("x=")
	ev.AddSpecial("foo")
	ev.AddText(";")

	if got, want := ev.Evaluate(env), "x=bar;"; got != want {
		t.Errorf("Evaluate() = %q, want %q", got, want)
	}
}

func TestEvalStringEvaluateMissingVar(t *testing.T) {
	env := NewEnv(nil)
	var ev EvalString
	ev.AddSpecial("nope")
	if got := ev.Evaluate(env); got != "" {
		t.Errorf("Evaluate() = %q, want empty", got)
	}
}

func TestEvalStringUnparse(t *testing.T) {
	var ev EvalString
	ev.AddText("cat ")
	ev.AddSpecial("in")
	ev.AddText(" > ")
	ev.AddSpecial("out")
	if got, want := ev.Unparse(), "cat ${in} > ${out}"; got != want {
		t.Errorf("Unparse() = %q, want %q", got, want)
	}
}

func TestEvalStringLiteral(t *testing.T) {
	var plain EvalString
	plain.AddText("build.ninja")
	if got, ok := plain.Literal(); !ok || got != "build.ninja" {
		t.Errorf("Literal() = (%q, %v), want (build.ninja, true)", got, ok)
	}

	var withVar EvalString
	withVar.AddSpecial("dir")
	withVar.AddText("/build.ninja")
	if _, ok := withVar.Literal(); ok {
		t.Errorf("Literal() on a template with a var ref = true, want false")
	}
}

func TestEnvParentLookup(t *testing.T) {
	parent := NewEnv(nil)
	parent.AddVar("a", "1")
	child := NewEnv(parent)
	child.AddVar("b", "2")

	if got := child.Var("a"); got != "1" {
		t.Errorf("child.Var(a) = %q, want 1", got)
	}
	if got := child.Var("b"); got != "2" {
		t.Errorf("child.Var(b) = %q, want 2", got)
	}
	if got := parent.Var("b"); got != "" {
		t.Errorf("parent.Var(b) = %q, want empty (no upward leak)", got)
	}
}

func TestLookupRuleWalksParent(t *testing.T) {
	parent := NewEnv(nil)
	r := NewRule("cc")
	parent.AddRule(r)
	child := NewEnv(parent)

	if got := child.LookupRule("cc"); got != r {
		t.Errorf("LookupRule(cc) = %v, want %v", got, r)
	}
	if got := child.LookupRuleCurrentScope("cc"); got != nil {
		t.Errorf("LookupRuleCurrentScope(cc) = %v, want nil", got)
	}
}

func TestIsReservedBinding(t *testing.T) {
	for _, name := range []string{"command", "depfile", "rspfile", "rspfile_content", "pool"} {
		if !IsReservedBinding(name) {
			t.Errorf("IsReservedBinding(%q) = false, want true", name)
		}
	}
	if IsReservedBinding("bogus") {
		t.Errorf("IsReservedBinding(bogus) = true, want false")
	}
}

// TestEdgeVarSimpleCommand mirrors testable property scenario 1: a single
// explicit input and output bound via $in/$out.
func TestEdgeVarSimpleCommand(t *testing.T) {
	s := NewState()
	r := NewRule("cc")
	var cmd EvalString
	cmd.AddText("cc -c ")
	cmd.AddSpecial("in")
	cmd.AddText(" -o ")
	cmd.AddSpecial("out")
	r.Bindings["command"] = &cmd
	s.Bindings.AddRule(r)

	e := s.addEdge(r)
	s.addOut(e, "a.o")
	e.OutImplicitIdx = 1
	s.addIn(e, "a.c")
	e.InImplicitIdx = 1
	e.InOrderOnlyIdx = 1

	if got, want := EdgeVar(e, "command", false), "cc -c a.c -o a.o"; got != want {
		t.Errorf("EdgeVar(command) = %q, want %q", got, want)
	}
}

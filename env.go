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

// EvalStringToken is one segment of an EvalString: either a literal run of
// text, or the name of a variable to substitute at evaluation time.
type EvalStringToken struct {
	Text    string
	Special bool
}

// EvalString is a deferred template: a sequence of literal and
// variable-reference segments, retained unevaluated until Evaluate is
// called against a concrete Env.
type EvalString struct {
	Parsed []EvalStringToken
}

// AddText appends a literal run of text, merging it into the previous
// segment when possible.
func (e *EvalString) AddText(text string) {
	if n := len(e.Parsed); n > 0 && !e.Parsed[n-1].Special {
		e.Parsed[n-1].Text += text
		return
	}
	e.Parsed = append(e.Parsed, EvalStringToken{Text: text})
}

// AddSpecial appends a variable reference by name.
func (e *EvalString) AddSpecial(name string) {
	e.Parsed = append(e.Parsed, EvalStringToken{Text: name, Special: true})
}

// Scope resolves a variable reference during EvalString expansion. *Env
// satisfies it directly; edgeScope wraps an edge's Env to special-case
// $in/$out the way ninja's EdgeEnv does, so a rule's command template sees
// the edge's actual inputs/outputs instead of an ordinary (and always
// empty) variable lookup.
type Scope interface {
	Var(name string) string
}

// Evaluate expands the template against scope, resolving every variable
// reference through it. A missing variable expands to the empty string;
// lookup is never fatal.
func (e *EvalString) Evaluate(scope Scope) string {
	var b strings.Builder
	for _, tok := range e.Parsed {
		if tok.Special {
			b.WriteString(scope.Var(tok.Text))
		} else {
			b.WriteString(tok.Text)
		}
	}
	return b.String()
}

// Serialize renders the token list in a debug-friendly form, e.g.
// "[cat ][$in][ > ][$out]".
func (e *EvalString) Serialize() string {
	var b strings.Builder
	for _, tok := range e.Parsed {
		b.WriteByte('[')
		if tok.Special {
			b.WriteByte('$')
		}
		b.WriteString(tok.Text)
		b.WriteByte(']')
	}
	return b.String()
}

// Unparse renders the template back into ninja-manifest surface syntax,
// e.g. "cat ${in} > ${out}".
func (e *EvalString) Unparse() string {
	var b strings.Builder
	for _, tok := range e.Parsed {
		if tok.Special {
			b.WriteString("${")
			b.WriteString(tok.Text)
			b.WriteByte('}')
			continue
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

// Empty reports whether the template has no segments at all.
func (e *EvalString) Empty() bool { return len(e.Parsed) == 0 }

// Literal reports whether the template is a single plain-text segment
// with no variable references, returning its text if so. A lint-style
// collaborator that wants to resolve an `include`/`subninja` path
// without building the manifest's full environment can use this to skip
// any path that actually needs evaluation.
func (e *EvalString) Literal() (string, bool) {
	if len(e.Parsed) != 1 || e.Parsed[0].Special {
		return "", false
	}
	return e.Parsed[0].Text, true
}

// reservedBindings are the rule variable names the manifest language
// interprets specially; any other name assigned in a rule block is
// rejected by the parser.
var reservedBindings = map[string]bool{
	"command":          true,
	"depfile":          true,
	"description":      true,
	"deps":             true,
	"generator":        true,
	"pool":             true,
	"restat":           true,
	"rspfile":          true,
	"rspfile_content":  true,
	"msvc_deps_prefix": true,
}

// IsReservedBinding reports whether name is one of the rule-scoped
// variables the manifest language gives built-in meaning to.
func IsReservedBinding(name string) bool {
	return reservedBindings[name]
}

// Rule is a named template: a rule-scoped variable name maps to an
// unevaluated EvalString. A rule must bind "command"; "rspfile" and
// "rspfile_content" must be bound together or not at all (checked by the
// parser at the point a rule block finishes).
type Rule struct {
	Name     string
	Bindings map[string]*EvalString
}

// NewRule allocates an empty rule with the given name.
func NewRule(name string) *Rule {
	return &Rule{Name: name, Bindings: map[string]*EvalString{}}
}

// Binding looks up a rule-scoped variable, returning nil if unset.
func (r *Rule) Binding(name string) *EvalString {
	return r.Bindings[name]
}

// Env is a scope for variable and rule lookups: a flat map of bindings plus
// an optional parent to walk when a name isn't found locally. The root Env
// is shared by the manifest and everything it `include`s; `subninja`
// begins a fresh child Env instead.
type Env struct {
	Parent   *Env
	Bindings map[string]string
	Rules    map[string]*Rule
}

// NewEnv allocates a scope with the given optional parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		Parent:   parent,
		Bindings: map[string]string{},
		Rules:    map[string]*Rule{},
	}
}

// Var looks up a variable, walking the parent chain. An unset variable
// evaluates to the empty string; this is never an error.
func (e *Env) Var(name string) string {
	for env := e; env != nil; env = env.Parent {
		if v, ok := env.Bindings[name]; ok {
			return v
		}
	}
	return ""
}

// AddVar binds name to an already-evaluated value in this scope,
// overwriting any prior binding at the same scope (but not shadowing a
// parent's binding, which remains visible to other scopes).
func (e *Env) AddVar(name, value string) {
	e.Bindings[name] = value
}

// LookupRule walks the parent chain looking for a rule named name.
func (e *Env) LookupRule(name string) *Rule {
	for env := e; env != nil; env = env.Parent {
		if r, ok := env.Rules[name]; ok {
			return r
		}
	}
	return nil
}

// LookupRuleCurrentScope looks up a rule bound directly in this scope,
// without walking to parents.
func (e *Env) LookupRuleCurrentScope(name string) *Rule {
	return e.Rules[name]
}

// AddRule registers rule in this scope. It is fatal (the caller's
// responsibility to reject, per spec.md §4.1) to redefine a rule already
// present at the same scope; AddRule itself just records it, since the
// parser is the one with source-location context for the error.
func (e *Env) AddRule(r *Rule) {
	e.Rules[r.Name] = r
}

// Eval expands an EvalString against this Env.
func (e *Env) Eval(v *EvalString) string {
	if v == nil {
		return ""
	}
	return v.Evaluate(e)
}

// edgeScope is the Scope a rule binding is evaluated against: it
// special-cases "in"/"in_newline"/"out" to the edge's own explicit
// input/output node paths (shell-escaped when shellEscape is set), and
// otherwise falls back to the edge's Env chain, which walks up to the
// manifest's scopes; the rule's own bindings are not consulted for these
// nested references. Without this, a $in/$out reference
// inside a rule's "command" would resolve against the edge's plain Env,
// where nothing ever binds "in"/"out" as an ordinary variable, and always
// expand to the empty string.
type edgeScope struct {
	edge        *Edge
	shellEscape bool
}

func (s edgeScope) Var(name string) string {
	switch name {
	case "in", "in_newline":
		sep := " "
		if name == "in_newline" {
			sep = "\n"
		}
		return joinPaths(s.edge.ExplicitInputs(), sep, s.shellEscape)
	case "out":
		return joinPaths(s.edge.ExplicitOutputs(), " ", s.shellEscape)
	}
	return s.edge.Env.Var(name)
}

// EdgeVar expands the variable named name in edge's environment, per
// spec.md §4.5. "in"/"in_newline"/"out" resolve to the edge's explicit
// input/output node paths, space- or newline-joined and shell-escaped
// when shellEscape is true. Any other name is looked up directly in the
// edge's own scope first, then in the rule's binding for that name — the
// rule binding is itself an EvalString, so it is evaluated against an
// edgeScope rather than the plain Env, letting a "command" template's own
// $in/$out references resolve correctly — and finally against the edge's
// Env chain.
func EdgeVar(e *Edge, name string, shellEscape bool) string {
	scope := edgeScope{edge: e, shellEscape: shellEscape}
	switch name {
	case "in", "in_newline", "out":
		return scope.Var(name)
	}
	if v, ok := e.Env.Bindings[name]; ok {
		return v
	}
	if e.Rule != nil {
		if b := e.Rule.Binding(name); b != nil {
			return b.Evaluate(scope)
		}
	}
	return e.Env.Var(name)
}

func joinPaths(nodes []*Node, sep string, shellEscape bool) string {
	var b strings.Builder
	for i, n := range nodes {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(NodePath(n, shellEscape))
	}
	return b.String()
}

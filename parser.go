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

import "strconv"

// Parser translates a manifest's token stream into mutations on a State
// and its environments, per spec.md §4.3.
type Parser struct {
	state *State
	opts  ParseOptions
	files FileReader
}

// NewParser builds a Parser that populates state according to opts,
// reading included/subninja'd files from the filesystem.
func NewParser(state *State, opts ParseOptions) *Parser {
	return &Parser{state: state, opts: opts, files: DefaultFileReader}
}

// ParseFile reads and parses the manifest at path into env.
func (p *Parser) ParseFile(path string, env *Env) error {
	text, err := p.files.ReadFile(path)
	if err != nil {
		return err
	}
	return p.parse(path, text, env)
}

func (p *Parser) parse(filename, text string, env *Env) error {
	lex := NewLexer(filename, text)
	for {
		switch tok := lex.ReadToken(); tok {
		case Newline:
			continue
		case Rule:
			if err := p.parseRule(lex, env); err != nil {
				return err
			}
		case Build:
			if err := p.parseEdge(lex, env); err != nil {
				return err
			}
		case Include:
			if err := p.parseInclude(lex, env, false); err != nil {
				return err
			}
		case Subninja:
			if err := p.parseInclude(lex, env, true); err != nil {
				return err
			}
		case Default:
			if err := p.parseDefault(lex, env); err != nil {
				return err
			}
		case Pool:
			if err := p.parsePool(lex, env); err != nil {
				return err
			}
		case Ident:
			lex.UnreadToken()
			if err := p.parseTopLevelVar(lex, env); err != nil {
				return err
			}
		case TEOF:
			return nil
		default:
			return lex.Errorf("expected build, default, include, pool, rule, subninja, or variable, got %s", TokenName(tok))
		}
	}
}

// expectToken produces "expected X, got Y" when the next token isn't want.
func (p *Parser) expectToken(lex *Lexer, want Token) error {
	if tok := lex.ReadToken(); tok != want {
		hint := ""
		if want == Colon {
			hint = " ($ also escapes ':')"
		}
		return lex.Errorf("expected %s, got %s%s", TokenName(want), TokenName(tok), hint)
	}
	return nil
}

// parseLet reads a "name = value" line, stopping at (and, for a
// non-path value, consuming) the line's terminating newline.
func (p *Parser) parseLet(lex *Lexer) (string, *EvalString, error) {
	name, ok := lex.ReadIdent()
	if !ok {
		return "", nil, lex.Errorf("expected variable name")
	}
	if err := p.expectToken(lex, Equals); err != nil {
		return "", nil, err
	}
	val, err := lex.ReadVarValue()
	if err != nil {
		return "", nil, err
	}
	return name, &val, nil
}

func (p *Parser) parseRule(lex *Lexer, env *Env) error {
	name, ok := lex.ReadIdent()
	if !ok {
		return lex.Errorf("expected rule name")
	}
	if err := p.expectToken(lex, Newline); err != nil {
		return err
	}
	if env.LookupRuleCurrentScope(name) != nil {
		return lex.Errorf("duplicate rule %q", name)
	}

	r := NewRule(name)
	for lex.PeekToken(Indent) {
		key, val, err := p.parseLet(lex)
		if err != nil {
			return err
		}
		if !IsReservedBinding(key) {
			return lex.Errorf("unexpected variable %q", key)
		}
		r.Bindings[key] = val
	}

	if b := r.Bindings["command"]; b == nil {
		return lex.Errorf("rule %q has no command", name)
	}
	_, hasRspfile := r.Bindings["rspfile"]
	_, hasRspContent := r.Bindings["rspfile_content"]
	if hasRspfile != hasRspContent {
		return lex.Errorf("rule %q has rspfile and no rspfile_content or vice versa", name)
	}

	env.AddRule(r)
	return nil
}

func (p *Parser) parsePool(lex *Lexer, env *Env) error {
	name, ok := lex.ReadIdent()
	if !ok {
		return lex.Errorf("expected pool name")
	}
	if err := p.expectToken(lex, Newline); err != nil {
		return err
	}
	if p.state.LookupPool(name) != nil {
		return lex.Errorf("duplicate pool %q", name)
	}

	depth := -1
	for lex.PeekToken(Indent) {
		key, val, err := p.parseLet(lex)
		if err != nil {
			return err
		}
		if key != "depth" {
			return lex.Errorf("unexpected pool variable %q", key)
		}
		n, convErr := strconv.Atoi(env.Eval(val))
		if convErr != nil || n <= 0 {
			return lex.Errorf("invalid pool depth")
		}
		depth = n
	}
	if depth < 0 {
		return lex.Errorf("pool %q has no depth", name)
	}

	p.state.AddPool(NewPool(name, depth))
	return nil
}

func (p *Parser) parseDefault(lex *Lexer, env *Env) error {
	paths, err := lex.ScanPaths()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return lex.Errorf("expected target name")
	}
	for _, ev := range paths {
		ev := ev
		path := env.Eval(&ev)
		if path == "" {
			return lex.Errorf("empty path")
		}
		canon, cerr := CanonicalizePath(path)
		if cerr != nil {
			return lex.Errorf("%s", cerr)
		}
		if derr := p.state.addDefault(canon); derr != nil {
			return lex.Errorf("%s", derr)
		}
	}
	return p.expectToken(lex, Newline)
}

func (p *Parser) parseInclude(lex *Lexer, env *Env, newScope bool) error {
	path, err := lex.ReadPath()
	if err != nil {
		return err
	}
	if path.Empty() {
		return lex.Errorf("expected include path")
	}
	if err := p.expectToken(lex, Newline); err != nil {
		return err
	}

	resolved := env.Eval(&path)
	text, err := p.files.ReadFile(resolved)
	if err != nil {
		return err
	}

	childEnv := env
	if newScope {
		childEnv = NewEnv(env)
	}
	return p.parse(resolved, text, childEnv)
}

func (p *Parser) parseTopLevelVar(lex *Lexer, env *Env) error {
	name, val, err := p.parseLet(lex)
	if err != nil {
		return err
	}
	value := env.Eval(val)
	if name == "ninja_required_version" {
		if verr := CheckRequiredVersion(value); verr != nil {
			return lex.Errorf("%s", verr)
		}
	}
	env.AddVar(name, value)
	return nil
}

func (p *Parser) parseEdge(lex *Lexer, env *Env) error {
	outs, err := lex.ScanPaths()
	if err != nil {
		return err
	}
	outImplicitIdx := len(outs)
	if lex.ScanPipe(ScanImplicit) == PipeImplicit {
		more, serr := lex.ScanPaths()
		if serr != nil {
			return serr
		}
		outs = append(outs, more...)
	}
	if len(outs) == 0 {
		return lex.Errorf("expected output path")
	}

	if err := p.expectToken(lex, Colon); err != nil {
		return err
	}
	ruleName, ok := lex.ReadIdent()
	if !ok {
		return lex.Errorf("expected build command name")
	}
	rule := env.LookupRule(ruleName)
	if rule == nil {
		return lex.Errorf("unknown build rule %q", ruleName)
	}

	ins, err := lex.ScanPaths()
	if err != nil {
		return err
	}
	inImplicitIdx := len(ins)
	inOrderOnlyIdx := len(ins)

	switch pipe := lex.ScanPipe(ScanImplicit | ScanOrderOnly); pipe {
	case PipeImplicit:
		more, serr := lex.ScanPaths()
		if serr != nil {
			return serr
		}
		ins = append(ins, more...)
		inOrderOnlyIdx = len(ins)
		if lex.ScanPipe(ScanOrderOnly) == PipeOrderOnly {
			more, serr := lex.ScanPaths()
			if serr != nil {
				return serr
			}
			ins = append(ins, more...)
		}
	case PipeOrderOnly:
		more, serr := lex.ScanPaths()
		if serr != nil {
			return serr
		}
		ins = append(ins, more...)
	}

	if err := p.expectToken(lex, Newline); err != nil {
		return err
	}

	edgeEnv := NewEnv(env)
	if lex.PeekToken(Indent) {
		for {
			name, val, err := p.parseLet(lex)
			if err != nil {
				return err
			}
			edgeEnv.AddVar(name, env.Eval(val))
			if !lex.PeekToken(Indent) {
				break
			}
		}
	}

	e := p.state.addEdge(rule)
	e.Env = edgeEnv

	// outImplicitIdxAdj tracks outimpidx the way parse.c's parseedge does:
	// the comparison is against how many outputs have actually been
	// written to e.Out so far (len(e.Out), since addOut only appends on
	// success), not against the dup's original position in outs. A dup
	// edge keeps whatever outputs it did produce — possibly none — rather
	// than being dropped from s.Edges, matching graph.c's nout-can-be-zero
	// bookkeeping.
	outImplicitIdxAdj := outImplicitIdx
	for _, ev := range outs {
		ev := ev
		path := edgeEnv.Eval(&ev)
		if path == "" {
			return lex.Errorf("empty path")
		}
		canon, cerr := CanonicalizePath(path)
		if cerr != nil {
			return lex.Errorf("%s", cerr)
		}
		written := len(e.Out)
		if !p.state.addOut(e, canon) {
			if !p.opts.DupBuildWarn {
				return lex.Errorf("multiple rules generate %q", canon)
			}
			Warning("multiple rules generate %q", canon)
			if written < outImplicitIdxAdj {
				outImplicitIdxAdj--
			}
		}
	}
	e.OutImplicitIdx = outImplicitIdxAdj

	for _, ev := range ins {
		ev := ev
		path := edgeEnv.Eval(&ev)
		if path == "" {
			return lex.Errorf("empty path")
		}
		canon, cerr := CanonicalizePath(path)
		if cerr != nil {
			return lex.Errorf("%s", cerr)
		}
		p.state.addIn(e, canon)
	}
	e.InImplicitIdx = inImplicitIdx
	e.InOrderOnlyIdx = inOrderOnlyIdx

	if poolName := e.GetBinding("pool"); poolName != "" {
		pool := p.state.LookupPool(poolName)
		if pool == nil {
			return lex.Errorf("unknown pool name %q", poolName)
		}
		e.Pool = pool
	}

	if !p.opts.PhonyCycleShouldErr && e.IsPhony() {
		filterSelfReferentialPhonyInput(e)
	}

	return nil
}

// filterSelfReferentialPhonyInput drops a phony edge's sole output from
// its own input list, tolerating the self-referential phony statements
// some old CMake releases used to emit.
func filterSelfReferentialPhonyInput(e *Edge) {
	if len(e.Out) == 0 {
		return
	}
	out := e.Out[0]
	for i, n := range e.In {
		if n != out {
			continue
		}
		Warning("phony target %q names itself as an input; ignoring", out.Path)
		e.In = append(e.In[:i], e.In[i+1:]...)
		if i < e.InImplicitIdx {
			e.InImplicitIdx--
		}
		if i < e.InOrderOnlyIdx {
			e.InOrderOnlyIdx--
		}
		return
	}
}

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

import "fmt"

// Token is a lexical unit of the manifest language, per spec.md §4.2.
type Token int

const (
	ErrorToken Token = iota
	Build
	Colon
	Default
	Equals
	Ident
	Include
	Indent
	Newline
	Pipe
	Pipe2
	Pool
	Rule
	Subninja
	TEOF
)

// TokenName renders t for use in parser error messages.
func TokenName(t Token) string {
	switch t {
	case ErrorToken:
		return "lexing error"
	case Build:
		return "'build'"
	case Colon:
		return "':'"
	case Default:
		return "'default'"
	case Equals:
		return "'='"
	case Ident:
		return "identifier"
	case Include:
		return "'include'"
	case Indent:
		return "indent"
	case Newline:
		return "newline"
	case Pipe:
		return "'|'"
	case Pipe2:
		return "'||'"
	case Pool:
		return "'pool'"
	case Rule:
		return "'rule'"
	case Subninja:
		return "'subninja'"
	case TEOF:
		return "eof"
	}
	return ""
}

var keywords = map[string]Token{
	"build":    Build,
	"default":  Default,
	"include":  Include,
	"pool":     Pool,
	"rule":     Rule,
	"subninja": Subninja,
}

// isIdentByte reports whether c may appear in a rule/variable name or a
// $-escaped variable reference: letters, digits, '_', '-', and '.'. Unlike
// a path, an identifier never contains '/'.
func isIdentByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '_', '-', '.':
		return true
	}
	return false
}

// Lexer tokenizes one manifest file's text, per spec.md §4.2.
type Lexer struct {
	filename string
	input    string

	ofs       int
	lastToken int
	lastIdent string
}

// NewLexer returns a Lexer positioned at the start of input.
func NewLexer(filename, input string) *Lexer {
	return &Lexer{filename: filename, input: input, lastToken: -1}
}

// Errorf builds a ParseError anchored at the start of the most recently
// read token, matching lexer.go's Error.
func (l *Lexer) Errorf(format string, args ...interface{}) *ParseError {
	offset := l.lastToken
	if offset < 0 {
		offset = l.ofs
	}
	return NewParseError(l.filename, l.input, offset, fmt.Sprintf(format, args...))
}

// describeLastError gives a more specific reason for an ErrorToken, when
// one is known (e.g. a literal tab), matching lexer.go's DescribeLastError.
func (l *Lexer) describeLastError() string {
	if l.lastToken >= 0 && l.lastToken < len(l.input) && l.input[l.lastToken] == '\t' {
		return "tabs are not allowed, use spaces"
	}
	return "lexing error"
}

// TokenText returns the text of the most recently read Ident token.
func (l *Lexer) TokenText() string { return l.lastIdent }

// UnreadToken rewinds to the start of the most recently read token.
func (l *Lexer) UnreadToken() {
	l.ofs = l.lastToken
}

// PeekToken reads a token, consuming it only if it matches want.
func (l *Lexer) PeekToken(want Token) bool {
	if l.ReadToken() == want {
		return true
	}
	l.UnreadToken()
	return false
}

// ReadToken returns the next token, skipping comments; a blank or
// comment-only line still yields its own Newline token. Leading spaces are
// reported as Indent only
// immediately after a Newline, since EatWhitespace consumes them
// everywhere else — this is what lets Indent mark the start of a binding
// block.
func (l *Lexer) ReadToken() Token {
	for {
		start := l.ofs
		if start >= len(l.input) {
			l.lastToken = start
			return TEOF
		}

		var tok Token
		switch c := l.input[start]; {
		case c == '\n':
			l.ofs = start + 1
			tok = Newline
		case c == '\r':
			if start+1 < len(l.input) && l.input[start+1] == '\n' {
				l.ofs = start + 2
				tok = Newline
			} else {
				l.ofs = start + 1
				tok = ErrorToken
			}
		case c == ' ':
			p := start
			for p < len(l.input) && l.input[p] == ' ' {
				p++
			}
			if p < len(l.input) && l.input[p] == '#' {
				for p < len(l.input) && l.input[p] != '\n' {
					p++
				}
				l.ofs = p
				continue
			}
			if p >= len(l.input) || l.input[p] == '\n' || l.input[p] == '\r' {
				l.ofs = p
				continue
			}
			l.ofs = p
			tok = Indent
		case c == '#':
			p := start
			for p < len(l.input) && l.input[p] != '\n' {
				p++
			}
			l.ofs = p
			continue
		case c == ':':
			l.ofs = start + 1
			tok = Colon
		case c == '=':
			l.ofs = start + 1
			tok = Equals
		case c == '|':
			if start+1 < len(l.input) && l.input[start+1] == '|' {
				l.ofs = start + 2
				tok = Pipe2
			} else {
				l.ofs = start + 1
				tok = Pipe
			}
		case isIdentByte(c):
			p := start
			for p < len(l.input) && isIdentByte(l.input[p]) {
				p++
			}
			l.ofs = p
			word := l.input[start:p]
			l.lastIdent = word
			if kw, ok := keywords[word]; ok {
				tok = kw
			} else {
				tok = Ident
			}
		default:
			l.ofs = start + 1
			tok = ErrorToken
		}

		l.lastToken = start
		if tok != Newline && tok != TEOF {
			l.eatWhitespace()
		}
		return tok
	}
}

// eatWhitespace consumes runs of spaces and "$\n"/"$\r\n" line
// continuations, leaving everything else (including a bare newline)
// untouched.
func (l *Lexer) eatWhitespace() {
	for l.ofs < len(l.input) {
		switch l.input[l.ofs] {
		case ' ':
			l.ofs++
		case '$':
			if l.ofs+1 < len(l.input) && l.input[l.ofs+1] == '\n' {
				l.ofs += 2
				continue
			}
			if l.ofs+2 < len(l.input) && l.input[l.ofs+1] == '\r' && l.input[l.ofs+2] == '\n' {
				l.ofs += 3
				continue
			}
			return
		default:
			return
		}
	}
}

// ReadIdent reads a bare identifier (a rule, pool, or variable name),
// bypassing keyword recognition.
func (l *Lexer) ReadIdent() (string, bool) {
	start := l.ofs
	p := start
	for p < len(l.input) && isIdentByte(l.input[p]) {
		p++
	}
	if p == start {
		l.lastToken = start
		return "", false
	}
	l.lastToken = start
	l.ofs = p
	l.eatWhitespace()
	return l.input[start:p], true
}

// ReadPath reads a $-escaped path eval-string, stopping (without
// consuming) at the next space, ':', '|', or newline. An empty result
// means a delimiter was hit immediately.
func (l *Lexer) ReadPath() (EvalString, error) {
	var out EvalString
	err := l.readEvalString(&out, true)
	return out, err
}

// ReadVarValue reads the value side of a `name = value` binding, where
// space, ':', and '|' are ordinary literal characters and only a newline
// ends the string.
func (l *Lexer) ReadVarValue() (EvalString, error) {
	var out EvalString
	err := l.readEvalString(&out, false)
	return out, err
}

func (l *Lexer) readEvalString(out *EvalString, isPath bool) error {
	for {
		start := l.ofs
		if start >= len(l.input) {
			l.lastToken = start
			return l.Errorf("unexpected EOF")
		}
		switch c := l.input[start]; c {
		case '\n':
			l.lastToken = start
			if !isPath {
				l.ofs = start + 1
			}
			if isPath {
				l.eatWhitespace()
			}
			return nil
		case '\r':
			if start+1 >= len(l.input) || l.input[start+1] != '\n' {
				l.lastToken = start
				return l.Errorf(l.describeLastError())
			}
			l.lastToken = start
			if !isPath {
				l.ofs = start + 2
			}
			if isPath {
				l.eatWhitespace()
			}
			return nil
		case ' ', ':', '|':
			if isPath {
				l.lastToken = start
				l.eatWhitespace()
				return nil
			}
			out.AddText(l.input[start : start+1])
			l.ofs = start + 1
		case '$':
			if err := l.readEscape(out); err != nil {
				return err
			}
		default:
			p := start
			for p < len(l.input) && !isEvalDelim(l.input[p]) {
				p++
			}
			out.AddText(l.input[start:p])
			l.ofs = p
		}
	}
}

func isEvalDelim(c byte) bool {
	switch c {
	case ' ', ':', '|', '$', '\n', '\r':
		return true
	}
	return false
}

// readEscape consumes a '$'-introduced escape: "$\n"/"$\r\n" line
// continuation, "$ ", "$$", "$:", "${name}", or a bare "$name" variable
// reference.
func (l *Lexer) readEscape(out *EvalString) error {
	dollar := l.ofs
	if dollar+1 >= len(l.input) {
		l.lastToken = dollar
		return l.Errorf("bad $-escape (literal $ must be written as $$)")
	}
	switch c := l.input[dollar+1]; {
	case c == '\n':
		l.ofs = dollar + 2
		l.skipLeadingSpaces()
		return nil
	case c == '\r':
		if dollar+2 >= len(l.input) || l.input[dollar+2] != '\n' {
			l.lastToken = dollar
			return l.Errorf("bad $-escape (literal $ must be written as $$)")
		}
		l.ofs = dollar + 3
		l.skipLeadingSpaces()
		return nil
	case c == ' ':
		out.AddText(" ")
		l.ofs = dollar + 2
		return nil
	case c == '$':
		out.AddText("$")
		l.ofs = dollar + 2
		return nil
	case c == ':':
		out.AddText(":")
		l.ofs = dollar + 2
		return nil
	case c == '{':
		end := dollar + 2
		for end < len(l.input) && isIdentByte(l.input[end]) {
			end++
		}
		if end == dollar+2 || end >= len(l.input) || l.input[end] != '}' {
			l.lastToken = dollar
			return l.Errorf("bad $-escape (literal $ must be written as $$)")
		}
		out.AddSpecial(l.input[dollar+2 : end])
		l.ofs = end + 1
		return nil
	case isIdentByte(c):
		end := dollar + 1
		for end < len(l.input) && isIdentByte(l.input[end]) {
			end++
		}
		out.AddSpecial(l.input[dollar+1 : end])
		l.ofs = end
		return nil
	default:
		l.lastToken = dollar
		return l.Errorf("bad $-escape (literal $ must be written as $$)")
	}
}

func (l *Lexer) skipLeadingSpaces() {
	for l.ofs < len(l.input) && l.input[l.ofs] == ' ' {
		l.ofs++
	}
}

// ScanPaths reads a run of paths, stopping (without consuming) at the
// first delimiter that isn't itself a path — spec.md §4.2's scanpaths.
// Each call returns a fresh slice; there is no shared staging buffer.
func (l *Lexer) ScanPaths() ([]EvalString, error) {
	var out []EvalString
	for {
		p, err := l.ReadPath()
		if err != nil {
			return out, err
		}
		if p.Empty() {
			return out, nil
		}
		out = append(out, p)
	}
}

// ScanImplicit and ScanOrderOnly are mask bits selecting which pipe
// separators ScanPipe is allowed to consume.
const (
	ScanImplicit  = 1 << iota // consume a lone '|'
	ScanOrderOnly             // consume a '||'
)

// PipeKind reports which separator ScanPipe consumed, if any.
type PipeKind int

const (
	PipeNone PipeKind = iota
	PipeImplicit
	PipeOrderOnly
)

// ScanPipe consumes a '|' or '||' token if present and allowed by mask,
// per spec.md §4.2's scanpipe. A token that doesn't match, or isn't
// allowed, is left unconsumed.
func (l *Lexer) ScanPipe(mask int) PipeKind {
	switch tok := l.ReadToken(); {
	case tok == Pipe2 && mask&ScanOrderOnly != 0:
		return PipeOrderOnly
	case tok == Pipe && mask&ScanImplicit != 0:
		return PipeImplicit
	default:
		l.UnreadToken()
		return PipeNone
	}
}

/*
Copyright (C) 2023-2026  Carl-Philip Hänsch
Copyright (C) 2013  Pieter Kelchtermans (originally licensed unter WTFPL 2.0)

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package scm

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// LineSource delivers one line of text per call, without the trailing newline.
// io.EOF ends the input.
type LineSource interface {
	ReadLine() (string, error)
}

type readerSource struct {
	r *bufio.Reader
}

func (s readerSource) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil // last line without newline
	}
	return strings.TrimRight(line, "\r\n"), err
}

// InputPort is an input port. It retains the unread rest of the current line;
// new lines are only pulled from the source when the line is used up.
type InputPort struct {
	Name   string
	source LineSource
	closer io.Closer
	line   string
	lineNo int
	eof    bool
}

func NewInputPort(name string, r io.Reader) *InputPort {
	p := &InputPort{Name: name, source: readerSource{bufio.NewReader(r)}}
	if c, ok := r.(io.Closer); ok {
		p.closer = c
	}
	return p
}

func NewLinePort(name string, source LineSource) *InputPort {
	return &InputPort{Name: name, source: source}
}

func NewStringPort(name, code string) *InputPort {
	return NewInputPort(name, strings.NewReader(code))
}

func (p *InputPort) Close() error {
	p.eof = true
	p.line = ""
	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}

// Discard drops the rest of the current line (used after syntax errors)
func (p *InputPort) Discard() {
	p.line = ""
}

// Pending reports whether unread text is left in the line buffer
func (p *InputPort) Pending() bool {
	return strings.TrimSpace(p.line) != ""
}

func (p *InputPort) LineNo() int {
	return p.lineNo
}

func (p *InputPort) fill() (bool, error) {
	if p.eof {
		return false, nil
	}
	line, err := p.source.ReadLine()
	if err == io.EOF {
		p.eof = true
		return false, nil
	}
	if err != nil {
		return false, err
	}
	p.lineNo++
	p.line = line
	return true, nil
}

// ReadChar returns the next character as a one-character string or EOF
func (p *InputPort) ReadChar() (Scmer, error) {
	if p.line == "" {
		ok, err := p.fill()
		if err != nil {
			return nil, err
		}
		if !ok {
			return EOF, nil
		}
		p.line += "\n"
	}
	r, size := utf8.DecodeRuneInString(p.line)
	p.line = p.line[size:]
	return string(r), nil
}

var tokenizer = regexp.MustCompile(`(?s)^\s*(,@|[('` + "`" + `,)]|"(?:\\.|[^\\"])*"|;.*|[^\s('"` + "`" + `,;)]*)(.*)$`)

type token struct {
	text string
	eof  bool
}

// nextToken returns the next token, reading new lines into the buffer as needed.
func (p *InputPort) nextToken() (token, error) {
	for {
		if strings.TrimSpace(p.line) == "" {
			ok, err := p.fill()
			if err != nil {
				return token{}, err
			}
			if !ok {
				return token{eof: true}, nil
			}
			continue
		}
		m := tokenizer.FindStringSubmatch(p.line)
		tok, rest := m[1], m[2]
		if tok == "" {
			// only an unterminated string can stop the scanner here
			p.line = ""
			return token{}, &SyntaxError{nil, "unterminated string: " + strings.TrimSpace(rest)}
		}
		p.line = rest
		if tok[0] != ';' {
			return token{text: tok}, nil
		}
	}
}

/*
 Parsing
*/

// Read reads one expression from p. At the end of the input it returns EOF.
func (in *Interp) Read(p *InputPort) (Scmer, error) {
	tok, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	if tok.eof {
		return EOF, nil
	}
	return in.readFrom(p, tok)
}

var quotes = map[string]string{
	"'":  "quote",
	"`":  "quasiquote",
	",":  "unquote",
	",@": "unquote-splicing",
}

func (in *Interp) readFrom(p *InputPort, tok token) (Scmer, error) {
	switch {
	case tok.eof:
		return nil, &SyntaxError{nil, "unexpected EOF in list"}
	case tok.text == "(":
		L := make([]Scmer, 0)
		for {
			next, err := p.nextToken()
			if err != nil {
				return nil, err
			}
			if next.text == ")" {
				return L, nil
			}
			x, err := in.readFrom(p, next)
			if err != nil {
				return nil, err
			}
			L = append(L, x)
		}
	case tok.text == ")":
		return nil, &SyntaxError{nil, "unexpected )"}
	}
	if q, ok := quotes[tok.text]; ok {
		next, err := p.nextToken()
		if err != nil {
			return nil, err
		}
		if next.eof {
			return nil, &SyntaxError{nil, "unexpected EOF after " + tok.text}
		}
		x, err := in.readFrom(p, next)
		if err != nil {
			return nil, err
		}
		return []Scmer{in.Symbols.Intern(q), x}, nil
	}
	return in.atom(tok.text), nil
}

// atom: numbers become numbers; #t and #f are booleans; "..." string; otherwise Symbol.
func (in *Interp) atom(tok string) Scmer {
	switch tok {
	case "#t":
		return true
	case "#f":
		return false
	}
	if tok[0] == '"' {
		return unescape(tok[1 : len(tok)-1])
	}
	if looksNumeric(tok) {
		// out of range literals read as ±Inf
		if f, err := strconv.ParseFloat(tok, 64); err == nil || errors.Is(err, strconv.ErrRange) {
			return f
		}
	}
	return in.Symbols.Intern(tok)
}

func unescape(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				c = '\n'
			case 't':
				c = '\t'
			case 'r':
				c = '\r'
			default:
				c = s[i] // \" and \\ and everything else stand for themselves
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// looksNumeric keeps names like inf or nan out of ParseFloat
func looksNumeric(tok string) bool {
	c := tok[0]
	if c != '+' && c != '-' && c != '.' && (c < '0' || c > '9') {
		return false
	}
	return strings.ContainsAny(tok, "0123456789") && !strings.Contains(tok, "_")
}

/*
Copyright (C) 2026  Carl-Philip Hänsch

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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// symbols the expander and the compiler dispatch on
type coreSymbols struct {
	quote, if_, set, define, defineMacro, lambda, begin *Symbol
	quasiquote, unquote, unquoteSplicing, append, cons  *Symbol
	let                                                 *Symbol
}

// Interp owns everything a running program can see: the symbol table, the
// macro table, the global environment and the default ports. Interps may
// share one SymbolTable; macros and globals are always private.
type Interp struct {
	Symbols *SymbolTable
	Macros  *MacroTable
	Global  *Env
	In      *InputPort
	Out     *OutputPort
	Wd      string // relative file names are resolved here
	Trace   *Tracefile

	// Open and Create are used by load and the file port primitives.
	// They default to the local filesystem.
	Open   func(name string) (io.ReadCloser, error)
	Create func(name string) (io.WriteCloser, error)

	mu    sync.Mutex
	sym   coreSymbols
	decls declarationTable
}

const prelude = `
(define-macro and (lambda args
   (if (null? args) #t
       (if (= (length args) 1) (car args)
           ` + "`" + `(if ,(car args) (and ,@(cdr args)) #f)))))
`

// NewInterp creates an interpreter with all primitives and the builtin
// macros installed. Pass nil to get a fresh symbol table.
func NewInterp(symbols *SymbolTable) *Interp {
	if symbols == nil {
		symbols = NewSymbolTable()
	}
	in := &Interp{
		Symbols: symbols,
		Macros:  NewMacroTable(),
		Global:  NewEnv(nil),
		In:      NewInputPort("stdin", io.NopCloser(os.Stdin)),
		Out:     NewOutputPort("stdout", struct{ io.Writer }{os.Stdout}),
		decls:   declarationTable{defs: make(map[string]*Declaration)},
	}
	in.Open = func(name string) (io.ReadCloser, error) {
		return os.Open(in.path(name))
	}
	in.Create = func(name string) (io.WriteCloser, error) {
		return os.Create(in.path(name))
	}
	intern := symbols.Intern
	in.sym = coreSymbols{
		quote:           intern("quote"),
		if_:             intern("if"),
		set:             intern("set!"),
		define:          intern("define"),
		defineMacro:     intern("define-macro"),
		lambda:          intern("lambda"),
		begin:           intern("begin"),
		quasiquote:      intern("quasiquote"),
		unquote:         intern("unquote"),
		unquoteSplicing: intern("unquote-splicing"),
		append:          intern("append"),
		cons:            intern("cons"),
		let:             intern("let"),
	}
	in.declareAlu()
	in.declareList()
	in.declareStrings()
	in.declareStreams()
	in.declareCore()
	in.Macros.Set(in.sym.let, &Primitive{"let", in.expandLet})
	if _, err := in.evalString(prelude); err != nil {
		panic(err)
	}
	return in
}

func (in *Interp) path(name string) string {
	if in.Wd == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(in.Wd, name)
}

// expandLet rewrites (let ((v e)...) body...) into ((lambda (v...) body...) e...)
func (in *Interp) expandLet(a ...Scmer) (Scmer, error) {
	x := append([]Scmer{in.sym.let}, a...)
	if err := demand(x, len(a) > 1); err != nil {
		return nil, err
	}
	bindings, ok := a[0].([]Scmer)
	if !ok {
		return nil, syntaxError(x, "illegal binding list")
	}
	vars := make([]Scmer, len(bindings))
	vals := make([]Scmer, len(bindings))
	for i, b := range bindings {
		pair, ok := b.([]Scmer)
		if !ok || len(pair) != 2 {
			return nil, syntaxError(x, "illegal binding list")
		}
		if _, ok := pair[0].(*Symbol); !ok {
			return nil, syntaxError(x, "illegal binding list")
		}
		vars[i], vals[i] = pair[0], pair[1]
	}
	lambda := append([]Scmer{in.sym.lambda, vars}, a[1:]...)
	return append([]Scmer{lambda}, vals...), nil
}

/*
 Driver
*/

// evalTop runs one freshly read expression through expansion, compilation
// and evaluation
func (in *Interp) evalTop(x Scmer) (Scmer, error) {
	if in.Trace != nil {
		in.Trace.EventHalf(SerializeToString(x), "eval", "B", 0, 0)
		defer in.Trace.EventHalf(SerializeToString(x), "eval", "E", 0, 0)
	}
	exp, err := in.Expand(x, true)
	if err != nil {
		return nil, err
	}
	code, err := in.Compile(exp)
	if err != nil {
		return nil, err
	}
	return in.Eval(code, in.Global)
}

// EvalString reads, expands and evaluates every expression in code and
// returns the value of the last one. It stops at the first error.
func (in *Interp) EvalString(code string) (Scmer, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.evalString(code)
}

func (in *Interp) evalString(code string) (Scmer, error) {
	p := NewStringPort("string", code)
	var result Scmer = Unspecified
	for {
		x, err := in.Read(p)
		if err != nil {
			return nil, err
		}
		if IsEOF(x) {
			return result, nil
		}
		if result, err = in.evalTop(x); err != nil {
			return nil, err
		}
	}
}

// Run is the read-eval-print loop over a port. Results other than
// Unspecified are written to echo unless echo is nil; errors are reported
// on in.Out and the loop continues with the next expression. I/O errors of
// the port and escapes to an enclosing call/cc end the loop early.
func (in *Interp) Run(p *InputPort, echo *OutputPort) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.run(p, echo)
}

func (in *Interp) run(p *InputPort, echo *OutputPort) error {
	for {
		x, err := in.Read(p)
		if err != nil {
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				return err
			}
			in.report(p, err)
			p.Discard()
			continue
		}
		if IsEOF(x) {
			return nil
		}
		val, err := in.evalTop(x)
		if err != nil {
			var esc *escape
			if errors.As(err, &esc) {
				// a call/cc further up the stack is waiting for it
				return err
			}
			in.report(p, err)
			continue
		}
		if echo != nil && !IsUnspecified(val) {
			echo.WriteString(SerializeToString(val) + "\n")
		}
	}
}

func (in *Interp) report(p *InputPort, err error) {
	if p.Name == "stdin" {
		in.Out.WriteString(err.Error() + "\n")
	} else {
		in.Out.WriteString(fmt.Sprintf("%s:%d: %s\n", p.Name, p.LineNo(), err.Error()))
	}
}

// Load evaluates every expression of the named source silently
func (in *Interp) Load(name string) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.load(name)
}

func (in *Interp) load(name string) error {
	r, err := in.Open(name)
	if err != nil {
		return err
	}
	p := NewInputPort(name, r)
	defer p.Close()
	if in.Trace != nil {
		in.Trace.Duration(name, "load", func() { err = in.run(p, nil) })
		return err
	}
	return in.run(p, nil)
}

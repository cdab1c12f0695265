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
/*
 * A minimal Scheme interpreter, as seen in lis.py and SICP
 * http://norvig.com/lispy.html
 * http://mitpress.mit.edu/sicp/full-text/sicp/book/node77.html
 *
 * Pieter Kelchtermans 2013
 * LICENSE: WTFPL 2.0
 */
package scm

import "fmt"

/*
 Eval / Apply
*/

// Eval runs a compiled expression. Tail positions (if branches, the last
// form of begin, calls of lambdas) jump back to restart instead of recursing,
// so tail recursive loops run in constant Go stack.
func (in *Interp) Eval(expression node, en *Env) (value Scmer, err error) {
restart:
	switch x := expression.(type) {
	case constNode:
		return x.value, nil
	case refNode:
		return en.Lookup(x.sym)
	case *ifNode:
		test, err := in.Eval(x.test, en)
		if err != nil {
			return nil, err
		}
		if ToBool(test) {
			expression = x.then
		} else {
			expression = x.otherwise
		}
		goto restart
	case *setNode:
		val, err := in.Eval(x.value, en)
		if err != nil {
			return nil, err
		}
		if err := en.Assign(x.sym, val); err != nil {
			return nil, err
		}
		return Unspecified, nil
	case *defineNode:
		val, err := in.Eval(x.value, en)
		if err != nil {
			return nil, err
		}
		en.Define(x.sym, val)
		return Unspecified, nil
	case *lambdaNode:
		return &Proc{Params: x.params, Rest: x.rest, Body: x.body, En: en, Source: x.source}, nil
	case *beginNode:
		for _, form := range x.body[:len(x.body)-1] {
			if _, err := in.Eval(form, en); err != nil {
				return nil, err
			}
		}
		expression = x.body[len(x.body)-1]
		goto restart
	case *applyNode:
		procedure, err := in.Eval(x.fn, en)
		if err != nil {
			return nil, err
		}
		args := make([]Scmer, len(x.args))
		for i, arg := range x.args {
			if args[i], err = in.Eval(arg, en); err != nil {
				return nil, err
			}
		}
		switch p := procedure.(type) {
		case *Proc:
			// tail call: no Go frame is consumed
			if en, err = NewFrame(p, args); err != nil {
				return nil, err
			}
			expression = p.Body
			goto restart
		case *Primitive:
			return p.Fn(args...)
		default:
			return nil, typeErrorf("not a procedure: %s", SerializeToString(procedure))
		}
	default:
		panic(fmt.Sprintf("unknown node type %T", expression))
	}
}

// Apply calls a procedure with already evaluated arguments; Eval duplicates
// this code to get the tail recursion done right
func (in *Interp) Apply(procedure Scmer, args ...Scmer) (Scmer, error) {
	switch p := procedure.(type) {
	case *Primitive:
		return p.Fn(args...)
	case *Proc:
		en, err := NewFrame(p, args)
		if err != nil {
			return nil, err
		}
		return in.Eval(p.Body, en)
	}
	return nil, typeErrorf("not a procedure: %s", SerializeToString(procedure))
}

/*
 Environments
*/

type Vars map[*Symbol]Scmer

// Env is one scope. Closures keep a pointer to the Env they were created in,
// so a frame lives as long as the longest-lived closure over it.
type Env struct {
	Vars  Vars
	Outer *Env
}

func NewEnv(outer *Env) *Env {
	return &Env{make(Vars), outer}
}

// NewFrame binds the arguments of a call to p's parameters
func NewFrame(p *Proc, args []Scmer) (*Env, error) {
	en := &Env{make(Vars, len(p.Params)+1), p.En}
	if p.Rest != nil {
		list := make([]Scmer, len(args))
		copy(list, args)
		en.Vars[p.Rest] = list
		return en, nil
	}
	if len(args) != len(p.Params) {
		params := make([]Scmer, len(p.Params))
		for i, param := range p.Params {
			params[i] = param
		}
		return nil, typeErrorf("expected %s, given %s", SerializeToString(params), SerializeToString(args))
	}
	for i, param := range p.Params {
		en.Vars[param] = args[i]
	}
	return en, nil
}

// FindRead returns the innermost frame that defines s or nil
func (e *Env) FindRead(s *Symbol) *Env {
	for ; e != nil; e = e.Outer {
		if _, ok := e.Vars[s]; ok {
			return e
		}
	}
	return nil
}

func (e *Env) Lookup(s *Symbol) (Scmer, error) {
	if en := e.FindRead(s); en != nil {
		return en.Vars[s], nil
	}
	return nil, &LookupError{s}
}

// Define binds s in this frame; outer frames are never searched.
func (e *Env) Define(s *Symbol, value Scmer) {
	e.Vars[s] = value
}

// Assign overwrites s in the frame that already defines it.
func (e *Env) Assign(s *Symbol, value Scmer) error {
	en := e.FindRead(s)
	if en == nil {
		return &LookupError{s}
	}
	en.Vars[s] = value
	return nil
}

/*
 Core functions
*/

func (in *Interp) declareCore() {
	in.DeclareTitle("Core")

	in.Declare(&Declaration{
		"eval", "expands and evaluates a piece of code in the global environment",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"code", "any", "list or atom representing the code"},
		}, "any",
		func(a ...Scmer) (Scmer, error) {
			exp, err := in.Expand(a[0], false)
			if err != nil {
				return nil, err
			}
			code, err := in.Compile(exp)
			if err != nil {
				return nil, err
			}
			return in.Eval(code, in.Global)
		},
	})
	callcc := &Declaration{
		"call/cc", "calls a procedure with an escape procedure; calling the escape procedure makes call/cc return its argument",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"procedure", "func", "procedure of one argument"},
		}, "any",
		func(a ...Scmer) (Scmer, error) {
			return in.callWithEscape(a[0])
		},
	}
	in.Declare(callcc)
	alias := *callcc
	alias.Name = "call-with-current-continuation"
	in.Declare(&alias)
	in.Declare(&Declaration{
		"help", "lists all functions or prints help for a specific function",
		0, 1,
		[]DeclarationParameter{
			DeclarationParameter{"topic", "string", "function name"},
		}, "any",
		func(a ...Scmer) (Scmer, error) {
			name := ""
			if len(a) > 0 {
				name = String(a[0])
			}
			if err := in.Help(in.Out, name); err != nil {
				return nil, err
			}
			return Unspecified, nil
		},
	})
	in.Declare(&Declaration{
		"macros", "lists the names of all registered macros in order",
		0, 0,
		[]DeclarationParameter{}, "list",
		func(a ...Scmer) (Scmer, error) {
			names := in.Macros.Names()
			result := make([]Scmer, len(names))
			for i, name := range names {
				result[i] = in.Symbols.Intern(name)
			}
			return result, nil
		},
	})
}
